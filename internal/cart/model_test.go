package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backend/internal/customer"
)

func validCart() ShoppingCart {
	return ShoppingCart{
		PlacedDate:    time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		Status:        StatusCompleted,
		TotalPrice:    decimal.RequireFromString("25.90"),
		PaymentMethod: PaymentCreditCard,
	}
}

func TestSetCustomerDetails_SyncsForeignKey(t *testing.T) {
	c := validCart()

	c.SetCustomerDetails(&customer.CustomerDetails{ID: 7})
	require.NotNil(t, c.CustomerDetailsID)
	assert.Equal(t, int64(7), *c.CustomerDetailsID)

	c.SetCustomerDetails(nil)
	assert.Nil(t, c.CustomerDetailsID)
	assert.Nil(t, c.CustomerDetails)
}

func TestValidate(t *testing.T) {
	c := validCart()
	require.NoError(t, c.Validate())

	bad := c
	bad.Status = "SHIPPED"
	assert.ErrorIs(t, bad.Validate(), ErrStatusInvalid)

	bad = c
	bad.PaymentMethod = "CASH"
	assert.ErrorIs(t, bad.Validate(), ErrPaymentMethodInvalid)

	bad = c
	bad.TotalPrice = decimal.RequireFromString("-0.01")
	assert.ErrorIs(t, bad.Validate(), ErrNegativePrice)

	bad = c
	bad.PlacedDate = time.Time{}
	assert.ErrorIs(t, bad.Validate(), ErrPlacedDateRequired)
}

func TestParseOrderStatus_CaseSensitive(t *testing.T) {
	_, err := ParseOrderStatus("completed")
	require.Error(t, err)

	got, err := ParseOrderStatus("COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got)
}

func TestPatchApply_IsSparse(t *testing.T) {
	current := validCart()
	current.ID = 3
	ref := "PAY-1"
	current.PaymentReference = &ref
	cdID := int64(7)
	current.CustomerDetailsID = &cdID

	newPrice := decimal.NewFromInt(1)
	merged := Patch{TotalPrice: &newPrice}.Apply(current)

	assert.True(t, merged.TotalPrice.Equal(newPrice))
	// everything else keeps the persisted values
	assert.Equal(t, current.ID, merged.ID)
	assert.Equal(t, current.Status, merged.Status)
	assert.Equal(t, current.PaymentMethod, merged.PaymentMethod)
	assert.Equal(t, current.PaymentReference, merged.PaymentReference)
	assert.Equal(t, current.CustomerDetailsID, merged.CustomerDetailsID)
	assert.True(t, current.PlacedDate.Equal(merged.PlacedDate))
}

func TestPatchApply_ReplacesRelationWholesale(t *testing.T) {
	current := validCart()
	current.ID = 3
	current.SetCustomerDetails(&customer.CustomerDetails{ID: 7, City: "Utrecht"})

	newCustomer := int64(9)
	merged := Patch{CustomerDetailsID: &newCustomer}.Apply(current)

	require.NotNil(t, merged.CustomerDetailsID)
	assert.Equal(t, int64(9), *merged.CustomerDetailsID)
	assert.Nil(t, merged.CustomerDetails, "a stale resolved object must not survive an FK overwrite")
}

func TestPatchApply_EmptyPatchIsIdentity(t *testing.T) {
	current := validCart()
	current.ID = 3

	merged := Patch{}.Apply(current)
	assert.Equal(t, current, merged)
}

func TestTotalPrice_CanonicalForm(t *testing.T) {
	a := decimal.RequireFromString("1.00")
	b := decimal.NewFromInt(1)

	assert.Equal(t, "1", a.String(), "the bound value strips insignificant trailing zeros")
	assert.True(t, a.Equal(b), "prices differing only in trailing zeros compare equal")
}
