// Package customer manages customer details and their link to the owning
// user account.
package customer

import (
	"errors"
	"fmt"

	"boutique-backend/internal/relsql"
	"boutique-backend/internal/user"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ParseGender matches labels exactly, case sensitive.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s), nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// CustomerDetails holds the persisted customer record. UserID is the source
// of truth for the user relation; User is the hydrated convenience view and
// is only populated by eager queries. Carts are not a field: they are
// resolved on demand through the shopping cart repository.
type CustomerDetails struct {
	ID           int64      `json:"id,omitempty"`
	Gender       Gender     `json:"gender"`
	Phone        string     `json:"phone"`
	AddressLine1 string     `json:"address_line_1"`
	AddressLine2 *string    `json:"address_line_2,omitempty"`
	City         string     `json:"city"`
	Country      string     `json:"country"`
	UserID       *string    `json:"user_id,omitempty"`
	User         *user.User `json:"user,omitempty"`
}

// SetUser attaches the resolved user and keeps the foreign key in sync.
func (c *CustomerDetails) SetUser(u *user.User) {
	c.User = u
	if u != nil {
		id := u.ID
		c.UserID = &id
	} else {
		c.UserID = nil
	}
}

var (
	ErrGenderInvalid  = errors.New("customer gender must be one of MALE, FEMALE, OTHER")
	ErrFieldsRequired = errors.New("customer phone, address line 1, city and country must not be blank")
)

func (c CustomerDetails) Validate() error {
	if _, err := ParseGender(string(c.Gender)); err != nil {
		return ErrGenderInvalid
	}
	if c.Phone == "" || c.AddressLine1 == "" || c.City == "" || c.Country == "" {
		return ErrFieldsRequired
	}
	return nil
}

// Patch carries the fields of a merge-patch request; nil means "leave the
// persisted value untouched". The user relation is replaced wholesale when
// its foreign key is supplied, never merged into.
type Patch struct {
	ID           *int64  `json:"id"`
	Gender       *Gender `json:"gender"`
	Phone        *string `json:"phone"`
	AddressLine1 *string `json:"address_line_1"`
	AddressLine2 *string `json:"address_line_2"`
	City         *string `json:"city"`
	Country      *string `json:"country"`
	UserID       *string `json:"user_id"`
}

func (p Patch) Apply(current CustomerDetails) CustomerDetails {
	merged := current
	if p.Gender != nil {
		merged.Gender = *p.Gender
	}
	if p.Phone != nil {
		merged.Phone = *p.Phone
	}
	if p.AddressLine1 != nil {
		merged.AddressLine1 = *p.AddressLine1
	}
	if p.AddressLine2 != nil {
		merged.AddressLine2 = p.AddressLine2
	}
	if p.City != nil {
		merged.City = *p.City
	}
	if p.Country != nil {
		merged.Country = *p.Country
	}
	if p.UserID != nil {
		merged.UserID = p.UserID
		merged.User = nil
	}
	return merged
}

// Columns is the ordered projection of the customer_details table: id first,
// declared scalars, then foreign keys.
func Columns() []relsql.Column {
	return []relsql.Column{
		{Name: "id"},
		{Name: "gender"},
		{Name: "phone"},
		{Name: "address_line_1"},
		{Name: "address_line_2"},
		{Name: "city"},
		{Name: "country"},
		{Name: "user_id"},
	}
}

func Projection(alias string) relsql.Projection {
	return relsql.Projection{Table: "customer_details", Alias: alias, Columns: Columns()}
}

// FromRecord extracts the customer scalar fields aliased under prefix from a
// flattened joined row. The user relation is attached by the caller.
func FromRecord(rec relsql.Record, prefix string) (*CustomerDetails, error) {
	var c CustomerDetails
	var err error
	if c.ID, err = rec.Int64(prefix + "_id"); err != nil {
		return nil, err
	}
	gender, err := rec.String(prefix + "_gender")
	if err != nil {
		return nil, err
	}
	if c.Gender, err = ParseGender(gender); err != nil {
		return nil, err
	}
	if c.Phone, err = rec.String(prefix + "_phone"); err != nil {
		return nil, err
	}
	if c.AddressLine1, err = rec.String(prefix + "_address_line_1"); err != nil {
		return nil, err
	}
	if c.AddressLine2, err = rec.StringPtr(prefix + "_address_line_2"); err != nil {
		return nil, err
	}
	if c.City, err = rec.String(prefix + "_city"); err != nil {
		return nil, err
	}
	if c.Country, err = rec.String(prefix + "_country"); err != nil {
		return nil, err
	}
	if c.UserID, err = rec.StringPtr(prefix + "_user_id"); err != nil {
		return nil, err
	}
	return &c, nil
}
