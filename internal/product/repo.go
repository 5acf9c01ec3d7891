package product

import (
	"context"
	"errors"
	"time"

	"boutique-backend/internal/category"
	"boutique-backend/internal/relsql"
)

var (
	ErrNotFound   = errors.New("product not found")
	ErrIDSet      = errors.New("a new product cannot already have an id")
	ErrIDRequired = errors.New("product id is required")
)

const categoryAlias = "category"

type Repository interface {
	Save(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) (*Product, error)
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context, page *relsql.Page) ([]Product, error)
	FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]Product, error)
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
				{Rel: category.Projection(categoryAlias), FK: "product_category_id", PK: "id"},
			},
		},
	}
}

func process(rec relsql.Record) (*Product, error) {
	p, err := FromRecord(rec, "e")
	if err != nil {
		return nil, err
	}
	if p.ProductCategoryID != nil {
		c, err := category.FromRecord(rec, categoryAlias)
		if err != nil {
			return nil, err
		}
		p.ProductCategory = c
	}
	return p, nil
}

func (r *PGRepo) Save(ctx context.Context, p *Product) (*Product, error) {
	if p.ID != 0 {
		return nil, ErrIDSet
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	saved := *p
	err := r.db.QueryRow(ctx, `
		INSERT INTO product (name, description, price, product_size, product_category_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, p.Name, p.Description, p.Price.String(), p.Size, p.ProductCategoryID).Scan(&saved.ID)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PGRepo) Update(ctx context.Context, p *Product) (*Product, error) {
	if p.ID == 0 {
		return nil, ErrIDRequired
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ProductCategory != nil {
		id := p.ProductCategory.ID
		p.ProductCategoryID = &id
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE product
		SET name = $2, description = $3, price = $4, product_size = $5, product_category_id = $6
		WHERE id = $1
	`, p.ID, p.Name, p.Description, p.Price.String(), p.Size, p.ProductCategoryID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p, nil
}

func (r *PGRepo) FindByID(ctx context.Context, id int64) (*Product, error) {
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

func (r *PGRepo) FindAll(ctx context.Context, page *relsql.Page) ([]Product, error) {
	sql, args, err := r.plain.SelectAll(page)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, sql, args, func(rec relsql.Record) (*Product, error) {
		return FromRecord(rec, "e")
	})
}

func (r *PGRepo) FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]Product, error) {
	sql, args, err := r.eager.SelectAll(page)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, sql, args, process)
}

func (r *PGRepo) queryMany(ctx context.Context, sql string, args []any, mapRow func(relsql.Record) (*Product, error)) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		rec, err := relsql.RecordFromRow(rows)
		if err != nil {
			return nil, err
		}
		p, err := mapRow(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM product WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product`).Scan(&n)
	return n, err
}

func (r *PGRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM product WHERE id=$1`, id)
	return err
}
