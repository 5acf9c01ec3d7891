package relsql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_RequiredGetters(t *testing.T) {
	placed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rec := Record{
		"e_id":          int64(7),
		"e_quantity":    int32(3),
		"e_status":      "COMPLETED",
		"e_placed_date": placed,
		"e_total_price": "42.50",
	}

	id, err := rec.Int64("e_id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	qty, err := rec.Int32("e_quantity")
	require.NoError(t, err)
	assert.Equal(t, int32(3), qty)

	s, err := rec.String("e_status")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", s)

	ts, err := rec.Time("e_placed_date")
	require.NoError(t, err)
	assert.True(t, placed.Equal(ts))

	d, err := rec.Decimal("e_total_price")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("42.5")))
}

func TestRecord_MissingColumnFailsFast(t *testing.T) {
	rec := Record{"e_id": int64(1)}

	_, err := rec.String("e_status")
	require.Error(t, err, "a column absent from the projection is a programming error")

	_, err = rec.StringPtr("e_status")
	require.Error(t, err, "optional getters still require the column to be projected")
}

func TestRecord_NullHandling(t *testing.T) {
	rec := Record{
		"e_id":                  int64(1),
		"e_payment_reference":   nil,
		"e_customer_details_id": nil,
		"e_status":              nil,
	}

	ref, err := rec.StringPtr("e_payment_reference")
	require.NoError(t, err)
	assert.Nil(t, ref)

	fk, err := rec.Int64Ptr("e_customer_details_id")
	require.NoError(t, err)
	assert.Nil(t, fk)

	_, err = rec.String("e_status")
	require.Error(t, err, "a NOT NULL scalar read as null must fail")
}

func TestRecord_DecimalIsCanonical(t *testing.T) {
	rec := Record{"e_total_price": "1.00"}

	d, err := rec.Decimal("e_total_price")
	require.NoError(t, err)
	assert.Equal(t, "1", d.String())
	assert.True(t, d.Equal(decimal.NewFromInt(1)))
}

func TestRecord_TypeMismatch(t *testing.T) {
	rec := Record{"e_id": "not-a-number"}
	_, err := rec.Int64("e_id")
	require.Error(t, err)
}
