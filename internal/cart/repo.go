package cart

import (
	"context"
	"errors"
	"time"

	"boutique-backend/internal/customer"
	"boutique-backend/internal/relsql"
)

var (
	ErrNotFound   = errors.New("shopping cart not found")
	ErrIDSet      = errors.New("a new shopping cart cannot already have an id")
	ErrIDRequired = errors.New("shopping cart id is required")
)

const customerAlias = "customer"

type Repository interface {
	Save(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error)
	Update(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error)
	FindByID(ctx context.Context, id int64) (*ShoppingCart, error)
	FindAll(ctx context.Context, page *relsql.Page) ([]ShoppingCart, error)
	FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]ShoppingCart, error)
	FindByCustomerDetails(ctx context.Context, customerDetailsID int64) ([]ShoppingCart, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

type PGRepo struct {
	db    relsql.Querier
	eager relsql.Query
	plain relsql.Query
}

func NewPGRepo(db relsql.Querier) *PGRepo {
	primary := Projection("e")
	return &PGRepo{
		db:    db,
		plain: relsql.Query{Primary: primary},
		eager: relsql.Query{
			Primary: primary,
			Joins: []relsql.Join{
				{Rel: customer.Projection(customerAlias), FK: "customer_details_id", PK: "id"},
			},
		},
	}
}

// process re-nests one flattened row: cart scalars under "e", then the
// customer relation under its own prefix. A null foreign key leaves the
// relation unset without error.
func process(rec relsql.Record) (*ShoppingCart, error) {
	c, err := FromRecord(rec, "e")
	if err != nil {
		return nil, err
	}
	if c.CustomerDetailsID != nil {
		cd, err := customer.FromRecord(rec, customerAlias)
		if err != nil {
			return nil, err
		}
		c.CustomerDetails = cd
	}
	return c, nil
}

func (r *PGRepo) Save(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error) {
	if c.ID != 0 {
		return nil, ErrIDSet
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	saved := *c
	err := r.db.QueryRow(ctx, `
		INSERT INTO shopping_cart (placed_date, status, total_price, payment_method, payment_reference, customer_details_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, c.PlacedDate, c.Status, c.TotalPrice.String(), c.PaymentMethod, c.PaymentReference, c.CustomerDetailsID).Scan(&saved.ID)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PGRepo) Update(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error) {
	if c.ID == 0 {
		return nil, ErrIDRequired
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// the resolved relation object refreshes the foreign key at call time
	if c.CustomerDetails != nil {
		id := c.CustomerDetails.ID
		c.CustomerDetailsID = &id
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE shopping_cart
		SET placed_date = $2, status = $3, total_price = $4, payment_method = $5, payment_reference = $6, customer_details_id = $7
		WHERE id = $1
	`, c.ID, c.PlacedDate, c.Status, c.TotalPrice.String(), c.PaymentMethod, c.PaymentReference, c.CustomerDetailsID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *PGRepo) FindByID(ctx context.Context, id int64) (*ShoppingCart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, r.eager.SelectByID(), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	rec, err := relsql.RecordFromRow(rows)
	if err != nil {
		return nil, err
	}
	return process(rec)
}

func (r *PGRepo) FindAll(ctx context.Context, page *relsql.Page) ([]ShoppingCart, error) {
	sql, args, err := r.plain.SelectAll(page)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, sql, args, func(rec relsql.Record) (*ShoppingCart, error) {
		return FromRecord(rec, "e")
	})
}

func (r *PGRepo) FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]ShoppingCart, error) {
	sql, args, err := r.eager.SelectAll(page)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, sql, args, process)
}

// FindByCustomerDetails resolves the carts back-reference of a customer by
// lookup; the cart rows themselves stay flat.
func (r *PGRepo) FindByCustomerDetails(ctx context.Context, customerDetailsID int64) ([]ShoppingCart, error) {
	sql, _, err := r.plain.SelectAll(nil)
	if err != nil {
		return nil, err
	}
	sql += " WHERE e.customer_details_id = $1"
	return r.queryMany(ctx, sql, []any{customerDetailsID}, func(rec relsql.Record) (*ShoppingCart, error) {
		return FromRecord(rec, "e")
	})
}

func (r *PGRepo) queryMany(ctx context.Context, sql string, args []any, mapRow func(relsql.Record) (*ShoppingCart, error)) ([]ShoppingCart, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShoppingCart
	for rows.Next() {
		rec, err := relsql.RecordFromRow(rows)
		if err != nil {
			return nil, err
		}
		c, err := mapRow(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PGRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shopping_cart WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM shopping_cart`).Scan(&n)
	return n, err
}

func (r *PGRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM shopping_cart WHERE id=$1`, id)
	return err
}
