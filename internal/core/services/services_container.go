package services

import (
	"time"

	"github.com/shopspring/decimal"

	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/platform/config"
	"github.com/palamattam/rubber_plant_app/pkg/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// fetcher, rateCache and publisher may be nil; the rate service degrades accordingly.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	fetcher RateFetcher,
	rateCache *cache.RateCache,
	publisher portssvc.RateEventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Daily rate bucketing follows the plant's local calendar, same zone as
	// the scheduler. An unknown zone falls back to UTC.
	plantLocation, err := time.LoadLocation(cfg.SchedulerTimeZone)
	if err != nil {
		plantLocation = time.UTC
	}

	// Rate service first since barrels and reporting price against it
	container.Rate = NewRateService(
		repos.RateRepo,
		fetcher,
		rateCache,
		publisher,
		decimal.NewFromFloat(cfg.RateSaneMin),
		decimal.NewFromFloat(cfg.RateSaneMax),
		plantLocation,
	)

	container.User = NewUserService(repos.UserRepo)
	container.Barrel = NewBarrelService(repos.BarrelRepo, container.Rate)
	container.Worker = NewWorkerService(repos.WorkerRepo)
	container.Salary = NewSalaryService(repos.SalaryRepo, repos.WorkerRepo)
	container.Stock = NewStockService(repos.StockRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Rate)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
