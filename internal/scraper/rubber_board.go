package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// productPattern matches the latex row label in the daily price tables.
// The board publishes it as "Latex (60% drc)" with assorted spacing.
var productPattern = regexp.MustCompile(`(?i)latex\s*\(?60`)

// numberPattern extracts numeric cells, tolerating currency symbols and
// thousands separators.
var numberPattern = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// RubberBoardScraper pulls the daily latex price from the board's public
// price pages. Each candidate URL is tried in order with an escalating
// timeout before giving up.
type RubberBoardScraper struct {
	urls     []string
	timeouts []time.Duration
	saneMin  decimal.Decimal
	saneMax  decimal.Decimal
	client   *http.Client
	logger   *slog.Logger
}

// NewRubberBoardScraper builds a scraper over the given candidate URLs.
// saneMin and saneMax bound what counts as a plausible price; values outside
// the range are treated as parse noise and rejected.
func NewRubberBoardScraper(urls []string, saneMin, saneMax decimal.Decimal, logger *slog.Logger) *RubberBoardScraper {
	return &RubberBoardScraper{
		urls:     urls,
		timeouts: []time.Duration{15 * time.Second, 22 * time.Second, 30 * time.Second},
		saneMin:  saneMin,
		saneMax:  saneMax,
		client:   &http.Client{},
		logger:   logger,
	}
}

// Fetch scrapes the candidate URLs and returns the first plausible latex
// price found. It returns an error only when every source fails.
func (s *RubberBoardScraper) Fetch(ctx context.Context) (*domain.FetchedRate, error) {
	var lastErr error
	for i, url := range s.urls {
		timeout := s.timeouts[len(s.timeouts)-1]
		if i < len(s.timeouts) {
			timeout = s.timeouts[i]
		}

		rate, err := s.fetchOne(ctx, url, timeout)
		if err != nil {
			s.logger.Warn("rate source failed", slog.String("url", url), slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		return rate, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no rate source URLs configured")
	}
	return nil, fmt.Errorf("all rate sources failed: %w", lastErr)
}

func (s *RubberBoardScraper) fetchOne(ctx context.Context, url string, timeout time.Duration) (*domain.FetchedRate, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	price, found := s.extractPrice(doc)
	if !found {
		return nil, fmt.Errorf("no plausible latex price found at %s", url)
	}

	return &domain.FetchedRate{
		Product:     domain.DefaultProduct,
		Rate:        price,
		Source:      domain.RateSourceRubberBoard,
		FetchedFrom: url,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// extractPrice scans table rows for the latex entry and takes the largest
// numeric cell in the row. The board lists the INR price after the USD one,
// and INR per 100kg is always the bigger number.
func (s *RubberBoardScraper) extractPrice(doc *goquery.Document) (decimal.Decimal, bool) {
	best := decimal.Zero
	found := false

	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if !productPattern.MatchString(row.Text()) {
			return true
		}

		// Scan cell by cell; flattening the whole row would glue adjacent
		// numbers together.
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			for _, match := range numberPattern.FindAllString(cell.Text(), -1) {
				cleaned := strings.ReplaceAll(match, ",", "")
				value, err := decimal.NewFromString(cleaned)
				if err != nil {
					continue
				}
				if value.LessThan(s.saneMin) || value.GreaterThan(s.saneMax) {
					continue
				}
				if value.GreaterThan(best) {
					best = value
					found = true
				}
			}
		})
		// First latex row wins; later tables repeat older data.
		return !found
	})

	return best, found
}
