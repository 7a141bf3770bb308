package mapping

import (
	"testing"

	"github.com/dairyworks/farm_ledger/internal/core/domain"
	"github.com/dairyworks/farm_ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainTransaction_Ref(t *testing.T) {
	kind, id, number := "SALE", "sale-1", "SAL-000001"

	withRef := ToDomainTransaction(models.Transaction{TransactionID: "t1", RefKind: &kind, RefID: &id, RefNumber: &number})
	require.NotNil(t, withRef.Ref)
	assert.Equal(t, domain.RefKind("SALE"), withRef.Ref.Kind)
	assert.Equal(t, "sale-1", withRef.Ref.ID)
	assert.Equal(t, "SAL-000001", withRef.Ref.Number)

	journal := ToDomainTransaction(models.Transaction{TransactionID: "t2", RefKind: &kind})
	assert.Nil(t, journal.Ref)
}

func TestLineItems(t *testing.T) {
	encoded, err := EncodeLineItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(encoded))

	items, err := DecodeLineItems(nil)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = DecodeLineItems([]byte("{not json"))
	assert.Error(t, err)

	sale, err := ToDomainSale(models.Sale{
		SaleID:     "sale-1",
		Items:      []byte(`[{"item":{"kind":"PRODUCT","id":"prod-milk"},"quantity":"2","rate":"50","amount":"100"}]`),
		GrandTotal: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "prod-milk", sale.Items[0].Item.ID)
	assert.True(t, sale.Items[0].Quantity.Equal(decimal.NewFromInt(2)))
}
