package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, registerDecimalTags(v))
	return v
}

func TestDecimalTags_Deposit(t *testing.T) {
	v := newTestValidator(t)

	ok := RecordDepositRequest{Type: "add", Amount: decimal.NewFromInt(500)}
	assert.NoError(t, v.Struct(ok))

	zero := RecordDepositRequest{Type: "add", Amount: decimal.Zero}
	assert.Error(t, v.Struct(zero))

	negative := RecordDepositRequest{Type: "deduct", Amount: decimal.NewFromInt(-1)}
	assert.Error(t, v.Struct(negative))

	badType := RecordDepositRequest{Type: "refund", Amount: decimal.NewFromInt(1)}
	assert.Error(t, v.Struct(badType))
}

func TestDecimalTags_OptionalOwnerFields(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(CreateOwnerRequest{Name: "Ramesh"}))

	zeroLimit := decimal.Zero
	assert.NoError(t, v.Struct(CreateOwnerRequest{Name: "Ramesh", CreditLimit: &zeroLimit}))

	negLimit := decimal.NewFromInt(-10)
	assert.Error(t, v.Struct(CreateOwnerRequest{Name: "Ramesh", CreditLimit: &negLimit}))

	zeroRate := decimal.Zero
	assert.Error(t, v.Struct(CreateOwnerRequest{Name: "Ramesh", IsPartner: true, PartnerRate: &zeroRate}))

	rate := decimal.NewFromInt(1000)
	assert.NoError(t, v.Struct(UpdateOwnerRequest{PartnerRate: &rate}))
}
