package category

import (
	"context"
	"errors"
	"time"

	"boutique-backend/internal/relsql"
)

var (
	ErrNotFound   = errors.New("product category not found")
	ErrIDSet      = errors.New("a new product category cannot already have an id")
	ErrIDRequired = errors.New("product category id is required")
)

type Repository interface {
	Save(ctx context.Context, c *ProductCategory) (*ProductCategory, error)
	Update(ctx context.Context, c *ProductCategory) (*ProductCategory, error)
	FindByID(ctx context.Context, id int64) (*ProductCategory, error)
	FindAll(ctx context.Context, page *relsql.Page) ([]ProductCategory, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id int64) error
}

type PGRepo struct {
	db    relsql.Querier
	query relsql.Query
}

func NewPGRepo(db relsql.Querier) *PGRepo {
	return &PGRepo{
		db:    db,
		query: relsql.Query{Primary: Projection("e")},
	}
}

func (r *PGRepo) Save(ctx context.Context, c *ProductCategory) (*ProductCategory, error) {
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
		INSERT INTO product_category (name, description)
		VALUES ($1,$2)
		RETURNING id
	`, c.Name, c.Description).Scan(&saved.ID)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PGRepo) Update(ctx context.Context, c *ProductCategory) (*ProductCategory, error) {
	if c.ID == 0 {
		return nil, ErrIDRequired
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE product_category
		SET name = $2, description = $3
		WHERE id = $1
	`, c.ID, c.Name, c.Description)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *PGRepo) FindByID(ctx context.Context, id int64) (*ProductCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, r.query.SelectByID(), id)
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
	return FromRecord(rec, "e")
}

func (r *PGRepo) FindAll(ctx context.Context, page *relsql.Page) ([]ProductCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sql, args, err := r.query.SelectAll(page)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductCategory
	for rows.Next() {
		rec, err := relsql.RecordFromRow(rows)
		if err != nil {
			return nil, err
		}
		c, err := FromRecord(rec, "e")
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
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM product_category WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product_category`).Scan(&n)
	return n, err
}

func (r *PGRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM product_category WHERE id=$1`, id)
	return err
}
