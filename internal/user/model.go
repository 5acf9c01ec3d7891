package user

import (
	"time"

	"boutique-backend/internal/relsql"
)

type User struct {
	ID           string    `json:"id,omitempty"`
	Login        string    `json:"login"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Columns is the projection other tables use when they eagerly join users
// (the password hash is never projected into joined rows).
func Columns() []relsql.Column {
	return []relsql.Column{
		{Name: "id"},
		{Name: "login"},
		{Name: "email"},
	}
}

// Projection aliases the users table under the given prefix.
func Projection(alias string) relsql.Projection {
	return relsql.Projection{Table: "users", Alias: alias, Columns: Columns()}
}

// FromRecord extracts the user fields aliased under prefix from a flattened
// joined row.
func FromRecord(rec relsql.Record, prefix string) (*User, error) {
	var u User
	var err error
	if u.ID, err = rec.String(prefix + "_id"); err != nil {
		return nil, err
	}
	if u.Login, err = rec.String(prefix + "_login"); err != nil {
		return nil, err
	}
	if u.Email, err = rec.String(prefix + "_email"); err != nil {
		return nil, err
	}
	return &u, nil
}
