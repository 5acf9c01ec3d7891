package product

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
	return &Service{repo: repo, log: log.With().Str("entity", "product").Logger()}
}

func (s *Service) Save(ctx context.Context, p *Product) (*Product, error) {
	s.log.Debug().Str("name", p.Name).Msg("request to save product")
	return s.repo.Save(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *Product) (*Product, error) {
	s.log.Debug().Int64("id", p.ID).Msg("request to update product")
	return s.repo.Update(ctx, p)
}

func (s *Service) PartialUpdate(ctx context.Context, patch Patch) (*Product, error) {
	if patch.ID == nil || *patch.ID == 0 {
		return nil, ErrIDRequired
	}
	s.log.Debug().Int64("id", *patch.ID).Msg("request to partially update product")

	current, err := s.repo.FindByID(ctx, *patch.ID)
	if err != nil {
		return nil, err
	}
	merged := patch.Apply(*current)
	return s.repo.Update(ctx, &merged)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*Product, error) {
	s.log.Debug().Int64("id", id).Msg("request to get product")
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, page *relsql.Page) ([]Product, error) {
	s.log.Debug().Msg("request to get all products")
	return s.repo.FindAllWithEagerRelationships(ctx, page)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("request to delete product")
	return s.repo.DeleteByID(ctx, id)
}
