package mapping

import (
	"encoding/json"

	"github.com/dairyworks/farm_ledger/internal/apperrors"
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/models"
)

// EncodeLineItems renders line items for the jsonb items column.
func EncodeLineItems(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode line items", err)
	}
	return encoded, nil
}

// DecodeLineItems is the inverse of EncodeLineItems. Empty input yields no items.
func DecodeLineItems(raw []byte) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if len(raw) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode line items", err)
	}
	return items, nil
}

// ToDomainSale converts a model Sale to a domain Sale
func ToDomainSale(m models.Sale) (domain.Sale, error) {
	items, err := DecodeLineItems(m.Items)
	if err != nil {
		return domain.Sale{}, err
	}
	return domain.Sale{
		SaleID:            m.SaleID,
		SaleNumber:        m.SaleNumber,
		CustomerAccountID: m.CustomerAccountID,
		Date:              m.Date,
		Items:             items,
		Discount:          m.Discount,
		GrandTotal:        m.GrandTotal,
		PaidAmount:        m.PaidAmount,
		PaymentAccountID:  m.PaymentAccountID,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditRow),
	}, nil
}

// ToDomainPurchase converts a model Purchase to a domain Purchase
func ToDomainPurchase(m models.Purchase) (domain.Purchase, error) {
	items, err := DecodeLineItems(m.Items)
	if err != nil {
		return domain.Purchase{}, err
	}
	return domain.Purchase{
		PurchaseID:        m.PurchaseID,
		PurchaseNumber:    m.PurchaseNumber,
		SupplierAccountID: m.SupplierAccountID,
		Date:              m.Date,
		Items:             items,
		Discount:          m.Discount,
		GrandTotal:        m.GrandTotal,
		PaidAmount:        m.PaidAmount,
		PaymentAccountID:  m.PaymentAccountID,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditRow),
	}, nil
}

func ToDomainCollection(m models.Collection) domain.Collection {
	return domain.Collection{
		CollectionID:      m.CollectionID,
		CollectionNumber:  m.CollectionNumber,
		CustomerAccountID: m.CustomerAccountID,
		PaymentAccountID:  m.PaymentAccountID,
		Amount:            m.Amount,
		Date:              m.Date,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditRow),
	}
}

func ToDomainExpense(m models.Expense) domain.ExpenseVoucher {
	return domain.ExpenseVoucher{
		ExpenseID:        m.ExpenseID,
		ExpenseNumber:    m.ExpenseNumber,
		ExpenseAccountID: m.ExpenseAccountID,
		PaymentAccountID: m.PaymentAccountID,
		Amount:           m.Amount,
		Category:         m.Category,
		Date:             m.Date,
		Notes:            m.Notes,
		AuditFields:      ToDomainAuditFields(m.AuditRow),
	}
}
