// Package cart manages shopping carts and their eagerly loaded customer
// details.
package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"boutique-backend/internal/customer"
	"boutique-backend/internal/relsql"
)

// ShoppingCart holds the persisted cart record. CustomerDetailsID is the
// source of truth for the customer relation; CustomerDetails is the hydrated
// convenience view populated by eager queries. TotalPrice is bound to the
// store through its canonical string form, so trailing zero digits never
// survive a round trip.
type ShoppingCart struct {
	ID                int64                     `json:"id,omitempty"`
	PlacedDate        time.Time                 `json:"placed_date"`
	Status            OrderStatus               `json:"status"`
	TotalPrice        decimal.Decimal           `json:"total_price"`
	PaymentMethod     PaymentMethod             `json:"payment_method"`
	PaymentReference  *string                   `json:"payment_reference,omitempty"`
	CustomerDetailsID *int64                    `json:"customer_details_id,omitempty"`
	CustomerDetails   *customer.CustomerDetails `json:"customer_details,omitempty"`
}

// SetCustomerDetails attaches the resolved customer and keeps the foreign
// key in sync.
func (c *ShoppingCart) SetCustomerDetails(cd *customer.CustomerDetails) {
	c.CustomerDetails = cd
	if cd != nil {
		id := cd.ID
		c.CustomerDetailsID = &id
	} else {
		c.CustomerDetailsID = nil
	}
}

var (
	ErrStatusInvalid        = errors.New("cart status is not a known order status")
	ErrPaymentMethodInvalid = errors.New("cart payment method is not a known payment method")
	ErrNegativePrice        = errors.New("cart total price must not be negative")
	ErrPlacedDateRequired   = errors.New("cart placed date must not be absent")
)

func (c ShoppingCart) Validate() error {
	if _, err := ParseOrderStatus(string(c.Status)); err != nil {
		return ErrStatusInvalid
	}
	if _, err := ParsePaymentMethod(string(c.PaymentMethod)); err != nil {
		return ErrPaymentMethodInvalid
	}
	if c.TotalPrice.IsNegative() {
		return ErrNegativePrice
	}
	if c.PlacedDate.IsZero() {
		return ErrPlacedDateRequired
	}
	return nil
}

// Patch carries the fields of a merge-patch request; nil means "leave the
// persisted value untouched". The customer relation is replaced wholesale
// when its foreign key is supplied, never merged into.
type Patch struct {
	ID                *int64           `json:"id"`
	PlacedDate        *time.Time       `json:"placed_date"`
	Status            *OrderStatus     `json:"status"`
	TotalPrice        *decimal.Decimal `json:"total_price"`
	PaymentMethod     *PaymentMethod   `json:"payment_method"`
	PaymentReference  *string          `json:"payment_reference"`
	CustomerDetailsID *int64           `json:"customer_details_id"`
}

func (p Patch) Apply(current ShoppingCart) ShoppingCart {
	merged := current
	if p.PlacedDate != nil {
		merged.PlacedDate = *p.PlacedDate
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	if p.TotalPrice != nil {
		merged.TotalPrice = *p.TotalPrice
	}
	if p.PaymentMethod != nil {
		merged.PaymentMethod = *p.PaymentMethod
	}
	if p.PaymentReference != nil {
		merged.PaymentReference = p.PaymentReference
	}
	if p.CustomerDetailsID != nil {
		merged.CustomerDetailsID = p.CustomerDetailsID
		merged.CustomerDetails = nil
	}
	return merged
}

// Columns is the ordered projection of the shopping_cart table: id first,
// declared scalars, then foreign keys. NUMERIC is projected through ::text
// so the driver returns the canonical value.
func Columns() []relsql.Column {
	return []relsql.Column{
		{Name: "id"},
		{Name: "placed_date"},
		{Name: "status"},
		{Name: "total_price", Cast: "text"},
		{Name: "payment_method"},
		{Name: "payment_reference"},
		{Name: "customer_details_id"},
	}
}

func Projection(alias string) relsql.Projection {
	return relsql.Projection{Table: "shopping_cart", Alias: alias, Columns: Columns()}
}

// FromRecord extracts the cart scalar fields aliased under prefix from a
// flattened joined row. The customer relation is attached by the caller.
func FromRecord(rec relsql.Record, prefix string) (*ShoppingCart, error) {
	var c ShoppingCart
	var err error
	if c.ID, err = rec.Int64(prefix + "_id"); err != nil {
		return nil, err
	}
	if c.PlacedDate, err = rec.Time(prefix + "_placed_date"); err != nil {
		return nil, err
	}
	status, err := rec.String(prefix + "_status")
	if err != nil {
		return nil, err
	}
	if c.Status, err = ParseOrderStatus(status); err != nil {
		return nil, err
	}
	if c.TotalPrice, err = rec.Decimal(prefix + "_total_price"); err != nil {
		return nil, err
	}
	method, err := rec.String(prefix + "_payment_method")
	if err != nil {
		return nil, err
	}
	if c.PaymentMethod, err = ParsePaymentMethod(method); err != nil {
		return nil, err
	}
	if c.PaymentReference, err = rec.StringPtr(prefix + "_payment_reference"); err != nil {
		return nil, err
	}
	if c.CustomerDetailsID, err = rec.Int64Ptr(prefix + "_customer_details_id"); err != nil {
		return nil, err
	}
	return &c, nil
}
