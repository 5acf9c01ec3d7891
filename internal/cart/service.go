package cart

import (
	"context"

	"github.com/rs/zerolog"

	"boutique-backend/internal/relsql"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("entity", "shoppingCart").Logger()}
}

func (s *Service) Save(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error) {
	s.log.Debug().Msg("request to save shopping cart")
	return s.repo.Save(ctx, c)
}

func (s *Service) Update(ctx context.Context, c *ShoppingCart) (*ShoppingCart, error) {
	s.log.Debug().Int64("id", c.ID).Msg("request to update shopping cart")
	return s.repo.Update(ctx, c)
}

// PartialUpdate loads the persisted cart, overlays the patch's non-nil
// fields and writes the merged entity back in one update. A patch without an
// identifier is rejected before any store access.
func (s *Service) PartialUpdate(ctx context.Context, patch Patch) (*ShoppingCart, error) {
	if patch.ID == nil || *patch.ID == 0 {
		return nil, ErrIDRequired
	}
	s.log.Debug().Int64("id", *patch.ID).Msg("request to partially update shopping cart")

	current, err := s.repo.FindByID(ctx, *patch.ID)
	if err != nil {
		return nil, err
	}
	merged := patch.Apply(*current)
	return s.repo.Update(ctx, &merged)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*ShoppingCart, error) {
	s.log.Debug().Int64("id", id).Msg("request to get shopping cart")
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, page *relsql.Page) ([]ShoppingCart, error) {
	s.log.Debug().Msg("request to get all shopping carts")
	return s.repo.FindAllWithEagerRelationships(ctx, page)
}

func (s *Service) FindByCustomerDetails(ctx context.Context, customerDetailsID int64) ([]ShoppingCart, error) {
	s.log.Debug().Int64("customerDetailsId", customerDetailsID).Msg("request to get carts of customer")
	return s.repo.FindByCustomerDetails(ctx, customerDetailsID)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("request to delete shopping cart")
	return s.repo.DeleteByID(ctx, id)
}
