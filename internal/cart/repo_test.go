package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backend/internal/customer"
)

// fakeDB captures the statement handed to Exec.
type fakeDB struct {
	execSQL  string
	execArgs []any
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execSQL = sql
	f.execArgs = args
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func TestUpdate_ResolvedCustomerRefreshesForeignKey(t *testing.T) {
	db := &fakeDB{}
	repo := NewPGRepo(db)

	c := validCart()
	c.ID = 3
	stale := int64(5)
	c.CustomerDetailsID = &stale
	c.CustomerDetails = &customer.CustomerDetails{ID: 9}

	_, err := repo.Update(context.Background(), &c)
	require.NoError(t, err)

	// customer_details_id is bound as $7
	require.Len(t, db.execArgs, 7)
	bound, ok := db.execArgs[6].(*int64)
	require.True(t, ok)
	require.NotNil(t, bound)
	assert.Equal(t, int64(9), *bound, "the resolved customer wins over a stale foreign key")
}

func TestUpdate_BareForeignKeyIsKept(t *testing.T) {
	db := &fakeDB{}
	repo := NewPGRepo(db)

	c := validCart()
	c.ID = 3
	cdID := int64(5)
	c.CustomerDetailsID = &cdID

	_, err := repo.Update(context.Background(), &c)
	require.NoError(t, err)

	bound, ok := db.execArgs[6].(*int64)
	require.True(t, ok)
	require.NotNil(t, bound)
	assert.Equal(t, int64(5), *bound)
}
