package order

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
	return &Service{repo: repo, log: log.With().Str("entity", "productOrder").Logger()}
}

func (s *Service) Save(ctx context.Context, o *ProductOrder) (*ProductOrder, error) {
	s.log.Debug().Msg("request to save product order")
	return s.repo.Save(ctx, o)
}

func (s *Service) Update(ctx context.Context, o *ProductOrder) (*ProductOrder, error) {
	s.log.Debug().Int64("id", o.ID).Msg("request to update product order")
	return s.repo.Update(ctx, o)
}

// PartialUpdate loads the persisted order, overlays the patch's non-nil
// fields and writes the merged entity back in one update.
func (s *Service) PartialUpdate(ctx context.Context, patch Patch) (*ProductOrder, error) {
	if patch.ID == nil || *patch.ID == 0 {
		return nil, ErrIDRequired
	}
	s.log.Debug().Int64("id", *patch.ID).Msg("request to partially update product order")

	current, err := s.repo.FindByID(ctx, *patch.ID)
	if err != nil {
		return nil, err
	}
	merged := patch.Apply(*current)
	return s.repo.Update(ctx, &merged)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*ProductOrder, error) {
	s.log.Debug().Int64("id", id).Msg("request to get product order")
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, page *relsql.Page) ([]ProductOrder, error) {
	s.log.Debug().Msg("request to get all product orders")
	return s.repo.FindAllWithEagerRelationships(ctx, page)
}

func (s *Service) FindByCart(ctx context.Context, cartID int64) ([]ProductOrder, error) {
	s.log.Debug().Int64("cartId", cartID).Msg("request to get orders of cart")
	return s.repo.FindByCart(ctx, cartID)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("request to delete product order")
	return s.repo.DeleteByID(ctx, id)
}
