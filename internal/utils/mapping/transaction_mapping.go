package mapping

import (
	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/models"
)

// ToDomainTransaction converts a stored transaction row. A row without a ref
// kind or ref id is a bare journal entry and gets a nil Ref.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	t := domain.Transaction{
		TransactionID:       m.TransactionID,
		Date:                m.Date,
		DebitAccountID:      m.DebitAccountID,
		CreditAccountID:     m.CreditAccountID,
		Amount:              m.Amount,
		Description:         m.Description,
		ContextDescriptions: m.ContextDescriptions,
		CreatedAt:           m.CreatedAt,
		CreatedBy:           m.CreatedBy,
	}
	if m.RefKind != nil && m.RefID != nil {
		t.Ref = &domain.DocumentRef{Kind: domain.RefKind(*m.RefKind), ID: *m.RefID}
		if m.RefNumber != nil {
			t.Ref.Number = *m.RefNumber
		}
	}
	return t
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
