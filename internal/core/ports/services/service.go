package services

import "time"

// ServiceContainer holds instances of all the application services.
// It is the entry point handlers use to reach service functionality.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Sale     SaleSvcFacade
	Purchase PurchaseSvcFacade
	Ledger   LedgerSvc
	DayBook  DayBookSvcFacade

	// Clock is the services' time source. Handlers resolve relative date presets with it.
	Clock func() time.Time
}
