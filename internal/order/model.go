// Package order manages product orders, each eagerly loading its product and
// its shopping cart.
package order

import (
	"errors"

	"github.com/shopspring/decimal"

	"boutique-backend/internal/cart"
	"boutique-backend/internal/product"
	"boutique-backend/internal/relsql"
)

// ProductOrder holds the persisted order line. ProductID and CartID are the
// source of truth for the relations; Product and Cart are hydrated
// convenience views populated by eager queries. TotalPrice round-trips
// through its canonical string form, stripping insignificant trailing
// zeros.
type ProductOrder struct {
	ID         int64              `json:"id,omitempty"`
	Quantity   int32              `json:"quantity"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	ProductID  *int64             `json:"product_id,omitempty"`
	CartID     *int64             `json:"cart_id,omitempty"`
	Product    *product.Product   `json:"product,omitempty"`
	Cart       *cart.ShoppingCart `json:"cart,omitempty"`
}

// SetProduct attaches the resolved product and keeps the foreign key in
// sync.
func (o *ProductOrder) SetProduct(p *product.Product) {
	o.Product = p
	if p != nil {
		id := p.ID
		o.ProductID = &id
	} else {
		o.ProductID = nil
	}
}

// SetCart attaches the resolved cart and keeps the foreign key in sync.
func (o *ProductOrder) SetCart(c *cart.ShoppingCart) {
	o.Cart = c
	if c != nil {
		id := c.ID
		o.CartID = &id
	} else {
		o.CartID = nil
	}
}

var (
	ErrNegativeQuantity = errors.New("order quantity must not be negative")
	ErrNegativePrice    = errors.New("order total price must not be negative")
)

func (o ProductOrder) Validate() error {
	if o.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if o.TotalPrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Patch carries the fields of a merge-patch request; nil means "leave the
// persisted value untouched". Relations are replaced wholesale when their
// foreign key is supplied, never merged into.
type Patch struct {
	ID         *int64           `json:"id"`
	Quantity   *int32           `json:"quantity"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	ProductID  *int64           `json:"product_id"`
	CartID     *int64           `json:"cart_id"`
}

func (p Patch) Apply(current ProductOrder) ProductOrder {
	merged := current
	if p.Quantity != nil {
		merged.Quantity = *p.Quantity
	}
	if p.TotalPrice != nil {
		merged.TotalPrice = *p.TotalPrice
	}
	if p.ProductID != nil {
		merged.ProductID = p.ProductID
		merged.Product = nil
	}
	if p.CartID != nil {
		merged.CartID = p.CartID
		merged.Cart = nil
	}
	return merged
}

// Columns is the ordered projection of the product_order table: id first,
// declared scalars, then foreign keys.
func Columns() []relsql.Column {
	return []relsql.Column{
		{Name: "id"},
		{Name: "quantity"},
		{Name: "total_price", Cast: "text"},
		{Name: "product_id"},
		{Name: "cart_id"},
	}
}

func Projection(alias string) relsql.Projection {
	return relsql.Projection{Table: "product_order", Alias: alias, Columns: Columns()}
}

// FromRecord extracts the order scalar fields aliased under prefix from a
// flattened joined row. Relations are attached by the caller.
func FromRecord(rec relsql.Record, prefix string) (*ProductOrder, error) {
	var o ProductOrder
	var err error
	if o.ID, err = rec.Int64(prefix + "_id"); err != nil {
		return nil, err
	}
	if o.Quantity, err = rec.Int32(prefix + "_quantity"); err != nil {
		return nil, err
	}
	if o.TotalPrice, err = rec.Decimal(prefix + "_total_price"); err != nil {
		return nil, err
	}
	if o.ProductID, err = rec.Int64Ptr(prefix + "_product_id"); err != nil {
		return nil, err
	}
	if o.CartID, err = rec.Int64Ptr(prefix + "_cart_id"); err != nil {
		return nil, err
	}
	return &o, nil
}
