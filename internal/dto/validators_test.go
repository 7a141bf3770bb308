package dto_test

import (
	"testing"

	"github.com/dairyworks/farm_ledger/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, dto.RegisterDecimalValidators(v))
	return v
}

func TestDecimalValidators(t *testing.T) {
	v := newValidator(t)

	valid := dto.CreatePaymentRequest{
		AccountID:        "a",
		PaymentAccountID: "b",
		Amount:           decimal.RequireFromString("0.01"),
		PaymentType:      dto.PaymentReceive,
	}
	assert.NoError(t, v.Struct(valid))

	zero := valid
	zero.Amount = decimal.Zero
	assert.Error(t, v.Struct(zero))

	negative := valid
	negative.Amount = decimal.NewFromInt(-5)
	assert.Error(t, v.Struct(negative))
}

func TestSaleRequestValidation(t *testing.T) {
	v := newValidator(t)

	req := dto.CreateSaleRequest{
		CustomerAccountID: "cust",
		Items: []dto.LineItemRequest{
			{ItemType: "PRODUCT", ItemID: "milk", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50)},
		},
	}
	assert.NoError(t, v.Struct(req))

	req.Discount = decimal.NewFromInt(-1)
	assert.Error(t, v.Struct(req))

	req.Discount = decimal.Zero
	req.Items[0].ItemType = "SEED"
	assert.Error(t, v.Struct(req))

	req.Items = nil
	assert.Error(t, v.Struct(req))
}

func TestDecimalPlacesValidator(t *testing.T) {
	v := newValidator(t)

	req := dto.CreateSaleRequest{
		CustomerAccountID: "cust",
		Items: []dto.LineItemRequest{
			{ItemType: "PRODUCT", ItemID: "milk", Quantity: decimal.RequireFromString("1.5"), Rate: decimal.RequireFromString("33.333")},
		},
		PaidAmount: decimal.RequireFromString("49.99"),
	}
	assert.NoError(t, v.Struct(req))

	req.PaidAmount = decimal.RequireFromString("49.995")
	assert.Error(t, v.Struct(req))

	req.PaidAmount = decimal.RequireFromString("50.000")
	assert.NoError(t, v.Struct(req))

	req.Items[0].Quantity = decimal.RequireFromString("1.2345")
	assert.Error(t, v.Struct(req))

	initial := decimal.RequireFromString("10.005")
	assert.Error(t, v.Struct(dto.UpdateAccountRequest{InitialBalance: &initial}))
	assert.NoError(t, v.Struct(dto.UpdateAccountRequest{}))
}
