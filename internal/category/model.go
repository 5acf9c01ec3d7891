// Package category manages product categories.
package category

import (
	"errors"

	"boutique-backend/internal/relsql"
)

type ProductCategory struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

var ErrNameRequired = errors.New("product category name must not be blank")

func (c ProductCategory) Validate() error {
	if c.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// Patch carries the fields of a merge-patch request; nil means "leave the
// persisted value untouched".
type Patch struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (p Patch) Apply(current ProductCategory) ProductCategory {
	merged := current
	if p.Name != nil {
		merged.Name = *p.Name
	}
	if p.Description != nil {
		merged.Description = p.Description
	}
	return merged
}

// Columns is the ordered projection of the product_category table.
func Columns() []relsql.Column {
	return []relsql.Column{
		{Name: "id"},
		{Name: "name"},
		{Name: "description"},
	}
}

func Projection(alias string) relsql.Projection {
	return relsql.Projection{Table: "product_category", Alias: alias, Columns: Columns()}
}

// FromRecord extracts the category fields aliased under prefix from a
// flattened joined row.
func FromRecord(rec relsql.Record, prefix string) (*ProductCategory, error) {
	var c ProductCategory
	var err error
	if c.ID, err = rec.Int64(prefix + "_id"); err != nil {
		return nil, err
	}
	if c.Name, err = rec.String(prefix + "_name"); err != nil {
		return nil, err
	}
	if c.Description, err = rec.StringPtr(prefix + "_description"); err != nil {
		return nil, err
	}
	return &c, nil
}
