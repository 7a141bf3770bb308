package services

import (
	"context"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/dto"
)

// SaleReaderSvc defines read operations for sales
type SaleReaderSvc interface {
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSalesByDate(ctx context.Context, date string) ([]domain.Sale, error)
}

// SaleWriterSvc defines the sale posting operations. Every method runs as one unit of
// work: on error nothing it attempted is persisted.
type SaleWriterSvc interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)
	CreateMultipleSales(ctx context.Context, req dto.CreateMultipleSalesRequest, userID string) ([]domain.Sale, error)
	UpdateSalePayment(ctx context.Context, saleID string, req dto.UpdateSalePaymentRequest, userID string) (*domain.Sale, error)

	// UpdateSale reverses every posting of the sale and re-applies the updated data.
	UpdateSale(ctx context.Context, saleID string, req dto.UpdateSaleRequest, userID string) (*domain.Sale, error)

	// DeleteSale reverses every posting of the sale and removes the document.
	DeleteSale(ctx context.Context, saleID string, userID string) error
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}

// PurchaseSvcFacade defines the purchase operations.
type PurchaseSvcFacade interface {
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.Purchase, error)
	GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListPurchasesByDate(ctx context.Context, date string) ([]domain.Purchase, error)
}
