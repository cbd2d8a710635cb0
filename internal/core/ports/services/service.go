package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User      UserSvcFacade
	Rate      RateSvcFacade
	Barrel    BarrelSvcFacade
	Worker    WorkerSvcFacade
	Salary    SalarySvcFacade
	Stock     StockSvcFacade
	Reporting ReportingService

	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
