package customer

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
	return &Service{repo: repo, log: log.With().Str("entity", "customerDetails").Logger()}
}

func (s *Service) Save(ctx context.Context, c *CustomerDetails) (*CustomerDetails, error) {
	s.log.Debug().Msg("request to save customer details")
	return s.repo.Save(ctx, c)
}

func (s *Service) Update(ctx context.Context, c *CustomerDetails) (*CustomerDetails, error) {
	s.log.Debug().Int64("id", c.ID).Msg("request to update customer details")
	return s.repo.Update(ctx, c)
}

// PartialUpdate merges the patch onto the persisted row and writes it back.
// The merge is shallow: relation fields are only replaced when their foreign
// key is supplied.
func (s *Service) PartialUpdate(ctx context.Context, patch Patch) (*CustomerDetails, error) {
	if patch.ID == nil || *patch.ID == 0 {
		return nil, ErrIDRequired
	}
	s.log.Debug().Int64("id", *patch.ID).Msg("request to partially update customer details")

	current, err := s.repo.FindByID(ctx, *patch.ID)
	if err != nil {
		return nil, err
	}
	merged := patch.Apply(*current)
	return s.repo.Update(ctx, &merged)
}

func (s *Service) FindByID(ctx context.Context, id int64) (*CustomerDetails, error) {
	s.log.Debug().Int64("id", id).Msg("request to get customer details")
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, page *relsql.Page) ([]CustomerDetails, error) {
	s.log.Debug().Msg("request to get all customer details")
	return s.repo.FindAllWithEagerRelationships(ctx, page)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.log.Debug().Int64("id", id).Msg("request to delete customer details")
	return s.repo.DeleteByID(ctx, id)
}
