package services

import (
	portsrepo "github.com/dairyworks/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/dairyworks/farm_ledger/internal/core/ports/services"
	"github.com/dairyworks/farm_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, uow portsrepo.UnitOfWork, opts ...ServiceOption) *portssvc.ServiceContainer {
	names := AccountNames{
		Sales:    cfg.SalesAccountName,
		Purchase: cfg.PurchaseAccountName,
		Cash:     cfg.CashAccountName,
	}
	base := newBaseService(opts)
	return &portssvc.ServiceContainer{
		Account:  NewAccountService(uow, opts...),
		Sale:     NewSaleService(uow, names, opts...),
		Purchase: NewPurchaseService(uow, names, opts...),
		Ledger:   NewLedgerService(uow, names, opts...),
		DayBook:  NewDayBookService(uow, opts...),
		Clock:    base.Now,
	}
}
