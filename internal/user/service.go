package user

import (
	"context"

	"github.com/rs/zerolog"

	"boutique-backend/internal/relsql"
)

// Patch carries the fields of a merge-patch request; nil means "leave the
// persisted value untouched".
type Patch struct {
	ID       *string `json:"id"`
	Login    *string `json:"login"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Apply overlays the patch onto a copy of current. Password, when present,
// replaces the stored hash (the caller hashes it first via HashPassword).
func (p Patch) Apply(current User, passwordHash string) User {
	merged := current
	if p.Login != nil {
		merged.Login = *p.Login
	}
	if p.Email != nil {
		merged.Email = *p.Email
	}
	if p.Password != nil {
		merged.PasswordHash = passwordHash
	}
	return merged
}

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log.With().Str("entity", "user").Logger()}
}

func (s *Service) Save(ctx context.Context, u *User, password string) (*User, error) {
	s.log.Debug().Str("login", u.Login).Msg("request to save user")
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash
	return s.repo.Save(ctx, u)
}

func (s *Service) Update(ctx context.Context, u *User) (*User, error) {
	s.log.Debug().Str("id", u.ID).Msg("request to update user")
	return s.repo.Update(ctx, u)
}

func (s *Service) PartialUpdate(ctx context.Context, patch Patch) (*User, error) {
	if patch.ID == nil || *patch.ID == "" {
		return nil, ErrIDRequired
	}
	s.log.Debug().Str("id", *patch.ID).Msg("request to partially update user")

	current, err := s.repo.FindByID(ctx, *patch.ID)
	if err != nil {
		return nil, err
	}
	var hash string
	if patch.Password != nil {
		if hash, err = HashPassword(*patch.Password); err != nil {
			return nil, err
		}
	}
	merged := patch.Apply(*current, hash)
	return s.repo.Update(ctx, &merged)
}

func (s *Service) FindByID(ctx context.Context, id string) (*User, error) {
	s.log.Debug().Str("id", id).Msg("request to get user")
	return s.repo.FindByID(ctx, id)
}

func (s *Service) FindAll(ctx context.Context, page *relsql.Page) ([]User, error) {
	s.log.Debug().Msg("request to get all users")
	return s.repo.FindAll(ctx, page)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.log.Debug().Str("id", id).Msg("request to delete user")
	return s.repo.DeleteByID(ctx, id)
}
