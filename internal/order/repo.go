package order

import (
	"context"
	"errors"
	"time"

	"boutique-backend/internal/cart"
	"boutique-backend/internal/product"
	"boutique-backend/internal/relsql"
)

var (
	ErrNotFound   = errors.New("product order not found")
	ErrIDSet      = errors.New("a new product order cannot already have an id")
	ErrIDRequired = errors.New("product order id is required")
)

const (
	productAlias = "product"
	cartAlias    = "cart"
)

type Repository interface {
	Save(ctx context.Context, o *ProductOrder) (*ProductOrder, error)
	Update(ctx context.Context, o *ProductOrder) (*ProductOrder, error)
	FindByID(ctx context.Context, id int64) (*ProductOrder, error)
	FindAll(ctx context.Context, page *relsql.Page) ([]ProductOrder, error)
	FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]ProductOrder, error)
	FindByCart(ctx context.Context, cartID int64) ([]ProductOrder, error)
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
				{Rel: product.Projection(productAlias), FK: "product_id", PK: "id"},
				{Rel: cart.Projection(cartAlias), FK: "cart_id", PK: "id"},
			},
		},
	}
}

// process re-nests one flattened row: order scalars under "e", then each
// eager relation under its own prefix. A null foreign key leaves that
// relation unset without error.
func process(rec relsql.Record) (*ProductOrder, error) {
	o, err := FromRecord(rec, "e")
	if err != nil {
		return nil, err
	}
	if o.ProductID != nil {
		p, err := product.FromRecord(rec, productAlias)
		if err != nil {
			return nil, err
		}
		o.Product = p
	}
	if o.CartID != nil {
		c, err := cart.FromRecord(rec, cartAlias)
		if err != nil {
			return nil, err
		}
		o.Cart = c
	}
	return o, nil
}

func (r *PGRepo) Save(ctx context.Context, o *ProductOrder) (*ProductOrder, error) {
	if o.ID != 0 {
		return nil, ErrIDSet
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	saved := *o
	err := r.db.QueryRow(ctx, `
		INSERT INTO product_order (quantity, total_price, product_id, cart_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, o.Quantity, o.TotalPrice.String(), o.ProductID, o.CartID).Scan(&saved.ID)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PGRepo) Update(ctx context.Context, o *ProductOrder) (*ProductOrder, error) {
	if o.ID == 0 {
		return nil, ErrIDRequired
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// resolved relation objects refresh the foreign keys at call time
	if o.Product != nil {
		id := o.Product.ID
		o.ProductID = &id
	}
	if o.Cart != nil {
		id := o.Cart.ID
		o.CartID = &id
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE product_order
		SET quantity = $2, total_price = $3, product_id = $4, cart_id = $5
		WHERE id = $1
	`, o.ID, o.Quantity, o.TotalPrice.String(), o.ProductID, o.CartID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return o, nil
}

func (r *PGRepo) FindByID(ctx context.Context, id int64) (*ProductOrder, error) {
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

func (r *PGRepo) FindAll(ctx context.Context, page *relsql.Page) ([]ProductOrder, error) {
	sql, args, err := r.plain.SelectAll(page)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, sql, args, func(rec relsql.Record) (*ProductOrder, error) {
		return FromRecord(rec, "e")
	})
}

func (r *PGRepo) FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]ProductOrder, error) {
	sql, args, err := r.eager.SelectAll(page)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, sql, args, process)
}

// FindByCart resolves the orders back-reference of a shopping cart by
// lookup.
func (r *PGRepo) FindByCart(ctx context.Context, cartID int64) ([]ProductOrder, error) {
	sql, _, err := r.plain.SelectAll(nil)
	if err != nil {
		return nil, err
	}
	sql += " WHERE e.cart_id = $1"
	return r.queryMany(ctx, sql, []any{cartID}, func(rec relsql.Record) (*ProductOrder, error) {
		return FromRecord(rec, "e")
	})
}

func (r *PGRepo) queryMany(ctx context.Context, sql string, args []any, mapRow func(relsql.Record) (*ProductOrder, error)) ([]ProductOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductOrder
	for rows.Next() {
		rec, err := relsql.RecordFromRow(rows)
		if err != nil {
			return nil, err
		}
		o, err := mapRow(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM product_order WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product_order`).Scan(&n)
	return n, err
}

func (r *PGRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM product_order WHERE id=$1`, id)
	return err
}
