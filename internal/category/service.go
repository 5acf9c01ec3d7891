package category

import (
	"context"

	"github.com/rs/zerolog"

	"boutique-backend/internal/relsql"
)

// Service wraps the repository and owns the merge-patch semantics.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("entity", "productCategory").Logger()}
}

func (s *Service) Save(ctx context.Context, c *ProductCategory) (*ProductCategory, error) {
	s.log.Debug().Str("name", c.Name).Msg("request to save product category")
	return s.repo.Save(ctx, c)
}

func (s *Service) Update(ctx context.Context, c *ProductCategory) (*ProductCategory, error) {
	s.log.Debug().Int64("id", c.ID).Msg("request to update product category")
	return s.repo.Update(ctx, c)
}

// PartialUpdate loads the persisted row, overlays the patch's non-nil fields
// and writes the merged entity back in one update.
func (s *Service) PartialUpdate(ctx context.Context, patch Patch) (*ProductCategory, error) {
	if patch.ID == nil || *patch.ID == 0 {
		return nil, ErrIDRequired
	}
	s.log.Debug().Int64("id", *patch.ID).Msg("request to partially update product category")

	current, err := s.repo.FindByID(ctx, *patch.ID)
	if err != nil {
		return nil, err
	}
	merged := patch.Apply(*current)
	return s.repo.Update(ctx, &merged)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*ProductCategory, error) {
	s.log.Debug().Int64("id", id).Msg("request to get product category")
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, page *relsql.Page) ([]ProductCategory, error) {
	s.log.Debug().Msg("request to get all product categories")
	return s.repo.FindAll(ctx, page)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("request to delete product category")
	return s.repo.DeleteByID(ctx, id)
}
