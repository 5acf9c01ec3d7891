package customer

import (
	"context"
	"errors"
	"time"

	"boutique-backend/internal/relsql"
	"boutique-backend/internal/user"
)

var (
	ErrNotFound   = errors.New("customer details not found")
	ErrIDSet      = errors.New("new customer details cannot already have an id")
	ErrIDRequired = errors.New("customer details id is required")
)

// userAlias prefixes the eagerly joined users table. Aliases stay lowercase:
// the driver reports result column names folded, and the mappers look fields
// up by exact name.
const userAlias = "usr"

type Repository interface {
	Save(ctx context.Context, c *CustomerDetails) (*CustomerDetails, error)
	Update(ctx context.Context, c *CustomerDetails) (*CustomerDetails, error)
	FindByID(ctx context.Context, id int64) (*CustomerDetails, error)
	FindAll(ctx context.Context, page *relsql.Page) ([]CustomerDetails, error)
	FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]CustomerDetails, error)
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
				{Rel: user.Projection(userAlias), FK: "user_id", PK: "id"},
			},
		},
	}
}

// process re-nests one flattened row: customer scalars under "e", then the
// user relation under its own prefix when the foreign key is set.
func process(rec relsql.Record) (*CustomerDetails, error) {
	c, err := FromRecord(rec, "e")
	if err != nil {
		return nil, err
	}
	if c.UserID != nil {
		u, err := user.FromRecord(rec, userAlias)
		if err != nil {
			return nil, err
		}
		c.User = u
	}
	return c, nil
}

func (r *PGRepo) Save(ctx context.Context, c *CustomerDetails) (*CustomerDetails, error) {
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
		INSERT INTO customer_details (gender, phone, address_line_1, address_line_2, city, country, user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, c.Gender, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.Country, c.UserID).Scan(&saved.ID)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PGRepo) Update(ctx context.Context, c *CustomerDetails) (*CustomerDetails, error) {
	if c.ID == 0 {
		return nil, ErrIDRequired
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// the resolved relation object refreshes the foreign key at call time
	if c.User != nil {
		id := c.User.ID
		c.UserID = &id
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE customer_details
		SET gender = $2, phone = $3, address_line_1 = $4, address_line_2 = $5, city = $6, country = $7, user_id = $8
		WHERE id = $1
	`, c.ID, c.Gender, c.Phone, c.AddressLine1, c.AddressLine2, c.City, c.Country, c.UserID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *PGRepo) FindByID(ctx context.Context, id int64) (*CustomerDetails, error) {
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

func (r *PGRepo) FindAll(ctx context.Context, page *relsql.Page) ([]CustomerDetails, error) {
	return r.findAll(ctx, r.plain, page, func(rec relsql.Record) (*CustomerDetails, error) {
		return FromRecord(rec, "e")
	})
}

func (r *PGRepo) FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]CustomerDetails, error) {
	return r.findAll(ctx, r.eager, page, process)
}

func (r *PGRepo) findAll(ctx context.Context, q relsql.Query, page *relsql.Page, mapRow func(relsql.Record) (*CustomerDetails, error)) ([]CustomerDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sql, args, err := q.SelectAll(page)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerDetails
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
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customer_details WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customer_details`).Scan(&n)
	return n, err
}

func (r *PGRepo) DeleteByID(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM customer_details WHERE id=$1`, id)
	return err
}
