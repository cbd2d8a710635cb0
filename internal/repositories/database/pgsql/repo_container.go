package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/palamattam/rubber_plant_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	rateRepo := newPgxRateRepository(dbPool)
	barrelRepo := newPgxBarrelRepository(dbPool)
	workerRepo := newPgxWorkerRepository(dbPool)
	salaryRepo := newPgxSalaryRepository(dbPool)
	stockRepo := newPgxStockRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		RateRepo:      rateRepo,
		BarrelRepo:    barrelRepo,
		WorkerRepo:    workerRepo,
		SalaryRepo:    salaryRepo,
		StockRepo:     stockRepo,
		ReportingRepo: reportingRepo,
	}
}
