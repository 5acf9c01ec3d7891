package cart

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique-backend/internal/relsql"
)

// stubRepo keeps a single cart in memory.
type stubRepo struct {
	stored      *ShoppingCart
	lastUpdated *ShoppingCart
	findCalls   int
}

func (s *stubRepo) Save(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error) {
	if c.ID != 0 {
		return nil, ErrIDSet
	}
	cp := *c
	cp.ID = 1
	s.stored = &cp
	return &cp, nil
}

func (s *stubRepo) Update(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error) {
	if s.stored == nil || s.stored.ID != c.ID {
		return nil, ErrNotFound
	}
	cp := *c
	s.stored = &cp
	s.lastUpdated = &cp
	return &cp, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*ShoppingCart, error) {
	s.findCalls++
	if s.stored == nil || s.stored.ID != id {
		return nil, ErrNotFound
	}
	cp := *s.stored
	return &cp, nil
}

func (s *stubRepo) FindAll(ctx context.Context, page *relsql.Page) ([]ShoppingCart, error) {
	if s.stored == nil {
		return nil, nil
	}
	return []ShoppingCart{*s.stored}, nil
}

func (s *stubRepo) FindAllWithEagerRelationships(ctx context.Context, page *relsql.Page) ([]ShoppingCart, error) {
	return s.FindAll(ctx, page)
}

func (s *stubRepo) FindByCustomerDetails(ctx context.Context, customerDetailsID int64) ([]ShoppingCart, error) {
	if s.stored != nil && s.stored.CustomerDetailsID != nil && *s.stored.CustomerDetailsID == customerDetailsID {
		return []ShoppingCart{*s.stored}, nil
	}
	return nil, nil
}

func (s *stubRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.stored != nil && s.stored.ID == id, nil
}

func (s *stubRepo) Count(ctx context.Context) (int64, error) {
	if s.stored == nil {
		return 0, nil
	}
	return 1, nil
}

func (s *stubRepo) DeleteByID(ctx context.Context, id int64) error {
	if s.stored != nil && s.stored.ID == id {
		s.stored = nil
	}
	return nil
}

func newTestService(t *testing.T) (*Service, *stubRepo) {
	t.Helper()
	repo := &stubRepo{}
	return NewService(repo, zerolog.Nop()), repo
}

func TestPartialUpdate_RequiresID(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.PartialUpdate(context.Background(), Patch{})
	assert.ErrorIs(t, err, ErrIDRequired)
	assert.Zero(t, repo.findCalls, "rejected before any store access")
}

func TestPartialUpdate_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	id := int64(42)
	_, err := svc.PartialUpdate(context.Background(), Patch{ID: &id})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPartialUpdate_MergesOntoPersistedState(t *testing.T) {
	svc, repo := newTestService(t)

	cdID := int64(7)
	saved, err := svc.Save(context.Background(), &ShoppingCart{
		PlacedDate:        time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		Status:            StatusCompleted,
		TotalPrice:        decimal.NewFromInt(0),
		PaymentMethod:     PaymentCreditCard,
		CustomerDetailsID: &cdID,
	})
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(1)
	merged, err := svc.PartialUpdate(context.Background(), Patch{ID: &saved.ID, TotalPrice: &newPrice})
	require.NoError(t, err)

	assert.True(t, merged.TotalPrice.Equal(newPrice))
	assert.Equal(t, StatusCompleted, merged.Status, "untouched fields keep the persisted values")
	require.NotNil(t, merged.CustomerDetailsID)
	assert.Equal(t, int64(7), *merged.CustomerDetailsID)

	require.NotNil(t, repo.lastUpdated, "the merged entity is persisted through update")
	assert.True(t, repo.lastUpdated.TotalPrice.Equal(newPrice))
}

func TestSave_RejectsPresetID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Save(context.Background(), &ShoppingCart{ID: 5})
	assert.ErrorIs(t, err, ErrIDSet)
}
