package scraper_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/scraper"
)

const priceTableHTML = `
<html><body>
<table>
<tr><th>Category</th><th>USD/100kg</th><th>INR/100kg</th></tr>
<tr><td>RSS 4</td><td>215.00</td><td>18,200.00</td></tr>
<tr><td>Latex (60% drc)</td><td>145.50</td><td>12,345.00</td></tr>
</table>
</body></html>`

const noLatexHTML = `
<html><body>
<table>
<tr><td>RSS 4</td><td>18,200.00</td></tr>
<tr><td>RSS 5</td><td>17,900.00</td></tr>
</table>
</body></html>`

type RubberBoardScraperTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *RubberBoardScraperTestSuite) SetupTest() {
	s.logger = slog.New(slog.DiscardHandler)
}

func (s *RubberBoardScraperTestSuite) newScraper(urls []string) *scraper.RubberBoardScraper {
	return scraper.NewRubberBoardScraper(urls, decimal.NewFromInt(50), decimal.NewFromInt(50000), s.logger)
}

func (s *RubberBoardScraperTestSuite) TestFetch_Success() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(priceTableHTML))
	}))
	defer server.Close()

	fetched, err := s.newScraper([]string{server.URL}).Fetch(context.Background())

	s.Require().NoError(err)
	s.Require().NotNil(fetched)
	s.Equal(domain.DefaultProduct, fetched.Product)
	s.Equal(domain.RateSourceRubberBoard, fetched.Source)
	s.Equal(server.URL, fetched.FetchedFrom)
	// The INR column wins over the USD column on the latex row.
	s.True(fetched.Rate.Equal(decimal.RequireFromString("12345.00")), "got %s", fetched.Rate)
}

func (s *RubberBoardScraperTestSuite) TestFetch_SkipsNumbersOutsideSaneRange() {
	// A sane range tight enough that the thousands figure is rejected and
	// the USD-looking column is accepted instead.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(priceTableHTML))
	}))
	defer server.Close()

	sc := scraper.NewRubberBoardScraper([]string{server.URL}, decimal.NewFromInt(100), decimal.NewFromInt(1000), s.logger)
	fetched, err := sc.Fetch(context.Background())

	s.Require().NoError(err)
	s.True(fetched.Rate.Equal(decimal.RequireFromString("145.50")), "got %s", fetched.Rate)
}

func (s *RubberBoardScraperTestSuite) TestFetch_AdjacentCellsStayDistinct() {
	// Cells packed with no whitespace between them. Reading the row as one
	// string would merge 145.50 and 12,345.00 into garbage digits.
	html := `<html><body><table><tr><td>Latex (60% drc)</td><td>145.50</td><td>12,345.00</td><td>Rs</td></tr></table></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	defer server.Close()

	fetched, err := s.newScraper([]string{server.URL}).Fetch(context.Background())

	s.Require().NoError(err)
	s.True(fetched.Rate.Equal(decimal.RequireFromString("12345.00")), "got %s", fetched.Rate)
}

func (s *RubberBoardScraperTestSuite) TestFetch_AcceptsNonOKSuccessStatus() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		w.Write([]byte(priceTableHTML))
	}))
	defer server.Close()

	fetched, err := s.newScraper([]string{server.URL}).Fetch(context.Background())

	s.Require().NoError(err)
	s.True(fetched.Rate.Equal(decimal.RequireFromString("12345.00")), "got %s", fetched.Rate)
}

func (s *RubberBoardScraperTestSuite) TestFetch_NoLatexRow() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(noLatexHTML))
	}))
	defer server.Close()

	fetched, err := s.newScraper([]string{server.URL}).Fetch(context.Background())

	s.Require().Error(err)
	s.Nil(fetched)
}

func (s *RubberBoardScraperTestSuite) TestFetch_FallsThroughToSecondURL() {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer failing.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(priceTableHTML))
	}))
	defer working.Close()

	fetched, err := s.newScraper([]string{failing.URL, working.URL}).Fetch(context.Background())

	s.Require().NoError(err)
	s.Equal(working.URL, fetched.FetchedFrom)
}

func (s *RubberBoardScraperTestSuite) TestFetch_AllSourcesFail() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetched, err := s.newScraper([]string{server.URL, server.URL}).Fetch(context.Background())

	s.Require().Error(err)
	s.Nil(fetched)
}

func (s *RubberBoardScraperTestSuite) TestFetch_NoURLsConfigured() {
	fetched, err := s.newScraper(nil).Fetch(context.Background())

	s.Require().Error(err)
	s.Nil(fetched)
}

func TestRubberBoardScraperTestSuite(t *testing.T) {
	suite.Run(t, new(RubberBoardScraperTestSuite))
}
