package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo      UserRepositoryFacade
	RateRepo      RateRepositoryFacade
	BarrelRepo    BarrelRepositoryFacade
	WorkerRepo    WorkerRepositoryFacade
	SalaryRepo    SalaryRepositoryFacade
	StockRepo     StockRepositoryFacade
	ReportingRepo ReportingRepositoryFacade
}
