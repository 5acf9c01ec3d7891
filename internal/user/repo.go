package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"boutique-backend/internal/relsql"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrAlreadyExist = errors.New("user already exists")
	ErrIDSet        = errors.New("a new user cannot already have an id")
	ErrIDRequired   = errors.New("user id is required")
)

type Repository interface {
	Save(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByLogin(ctx context.Context, login string) (*User, error)
	FindAll(ctx context.Context, page *relsql.Page) ([]User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteByID(ctx context.Context, id string) error
}

type PGRepo struct{ db relsql.Querier }

func NewPGRepo(db relsql.Querier) *PGRepo { return &PGRepo{db: db} }

const userFields = `id, login, email, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGRepo) Save(ctx context.Context, u *User) (*User, error) {
	if u.ID != "" {
		return nil, ErrIDSet
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	saved := *u
	saved.ID = uuid.NewString()
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (id, login, email, password_hash, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		RETURNING created_at, updated_at
	`, saved.ID, saved.Login, saved.Email, saved.PasswordHash).Scan(&saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		// UNIQUE on login/email
		return nil, ErrAlreadyExist
	}
	return &saved, nil
}

func (r *PGRepo) Update(ctx context.Context, u *User) (*User, error) {
	if u.ID == "" {
		return nil, ErrIDRequired
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET login = $2, email = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
	`, u.ID, u.Login, u.Email, u.PasswordHash)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, u.ID)
}

func (r *PGRepo) FindByID(ctx context.Context, id string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userFields+` FROM users WHERE id=$1`, id))
}

func (r *PGRepo) FindByLogin(ctx context.Context, login string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return scanUser(r.db.QueryRow(ctx, `SELECT `+userFields+` FROM users WHERE login=$1`, login))
}

func (r *PGRepo) FindAll(ctx context.Context, page *relsql.Page) ([]User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sql := `SELECT ` + userFields + ` FROM users`
	var args []any
	if page != nil {
		limit := page.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := page.Offset
		if offset < 0 {
			offset = 0
		}
		sql += ` ORDER BY login ASC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *PGRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *PGRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *PGRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	return err
}
