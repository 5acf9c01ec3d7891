package order

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backend/internal/cart"
	"boutique-backend/internal/product"
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

func TestUpdate_ResolvedRelationsRefreshForeignKeys(t *testing.T) {
	db := &fakeDB{}
	repo := NewPGRepo(db)

	staleProduct, staleCart := int64(1), int64(2)
	o := &ProductOrder{
		ID:         4,
		Quantity:   1,
		TotalPrice: decimal.NewFromInt(10),
		ProductID:  &staleProduct,
		CartID:     &staleCart,
		Product:    &product.Product{ID: 11},
		Cart:       &cart.ShoppingCart{ID: 3},
	}

	_, err := repo.Update(context.Background(), o)
	require.NoError(t, err)

	// product_id and cart_id are bound as $4 and $5
	require.Len(t, db.execArgs, 5)
	productID, ok := db.execArgs[3].(*int64)
	require.True(t, ok)
	require.NotNil(t, productID)
	assert.Equal(t, int64(11), *productID, "the resolved product wins over a stale foreign key")

	cartID, ok := db.execArgs[4].(*int64)
	require.True(t, ok)
	require.NotNil(t, cartID)
	assert.Equal(t, int64(3), *cartID, "the resolved cart wins over a stale foreign key")
}

func TestUpdate_BareForeignKeysAreKept(t *testing.T) {
	db := &fakeDB{}
	repo := NewPGRepo(db)

	productID, cartID := int64(1), int64(2)
	o := &ProductOrder{
		ID:         4,
		Quantity:   1,
		TotalPrice: decimal.NewFromInt(10),
		ProductID:  &productID,
		CartID:     &cartID,
	}

	_, err := repo.Update(context.Background(), o)
	require.NoError(t, err)

	bound, ok := db.execArgs[3].(*int64)
	require.True(t, ok)
	assert.Equal(t, int64(1), *bound)
}
