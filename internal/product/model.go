// Package product manages catalog products and their eagerly loaded
// category.
package product

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"boutique-backend/internal/category"
	"boutique-backend/internal/relsql"
)

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// ParseSize matches labels exactly, case sensitive.
func ParseSize(s string) (Size, error) {
	switch Size(s) {
	case SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return Size(s), nil
	}
	return "", fmt.Errorf("unknown product size %q", s)
}

// Product holds the persisted product record. ProductCategoryID is the
// source of truth for the category relation; ProductCategory is the hydrated
// convenience view populated by eager queries.
type Product struct {
	ID                int64                     `json:"id,omitempty"`
	Name              string                    `json:"name"`
	Description       *string                   `json:"description,omitempty"`
	Price             decimal.Decimal           `json:"price"`
	Size              Size                      `json:"product_size"`
	ProductCategoryID *int64                    `json:"product_category_id,omitempty"`
	ProductCategory   *category.ProductCategory `json:"product_category,omitempty"`
}

// SetProductCategory attaches the resolved category and keeps the foreign
// key in sync.
func (p *Product) SetProductCategory(c *category.ProductCategory) {
	p.ProductCategory = c
	if c != nil {
		id := c.ID
		p.ProductCategoryID = &id
	} else {
		p.ProductCategoryID = nil
	}
}

var (
	ErrNameRequired  = errors.New("product name must not be blank")
	ErrSizeInvalid   = errors.New("product size is not a known size")
	ErrNegativePrice = errors.New("product price must not be negative")
)

func (p Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if _, err := ParseSize(string(p.Size)); err != nil {
		return ErrSizeInvalid
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Patch carries the fields of a merge-patch request; nil means "leave the
// persisted value untouched".
type Patch struct {
	ID                *int64           `json:"id"`
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Size              *Size            `json:"product_size"`
	ProductCategoryID *int64           `json:"product_category_id"`
}

func (p Patch) Apply(current Product) Product {
	merged := current
	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.Description != nil {
		merged.Description = p.Description
	}
	if p.Price != nil {
		merged.Price = *p.Price
	}
	if p.Size != nil {
		merged.Size = *p.Size
	}
	if p.ProductCategoryID != nil {
		merged.ProductCategoryID = p.ProductCategoryID
		merged.ProductCategory = nil
	}
	return merged
}

// Columns is the ordered projection of the product table.
func Columns() []relsql.Column {
	return []relsql.Column{
		{Name: "id"},
		{Name: "name"},
		{Name: "description"},
		{Name: "price", Cast: "text"},
		{Name: "product_size"},
		{Name: "product_category_id"},
	}
}

func Projection(alias string) relsql.Projection {
	return relsql.Projection{Table: "product", Alias: alias, Columns: Columns()}
}

// FromRecord extracts the product scalar fields aliased under prefix from a
// flattened joined row. The category relation is attached by the caller.
func FromRecord(rec relsql.Record, prefix string) (*Product, error) {
	var p Product
	var err error
	if p.ID, err = rec.Int64(prefix + "_id"); err != nil {
		return nil, err
	}
	if p.Name, err = rec.String(prefix + "_name"); err != nil {
		return nil, err
	}
	if p.Description, err = rec.StringPtr(prefix + "_description"); err != nil {
		return nil, err
	}
	if p.Price, err = rec.Decimal(prefix + "_price"); err != nil {
		return nil, err
	}
	size, err := rec.String(prefix + "_product_size")
	if err != nil {
		return nil, err
	}
	if p.Size, err = ParseSize(size); err != nil {
		return nil, err
	}
	if p.ProductCategoryID, err = rec.Int64Ptr(prefix + "_product_category_id"); err != nil {
		return nil, err
	}
	return &p, nil
}
