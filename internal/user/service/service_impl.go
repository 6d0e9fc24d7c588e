package service

import (
	"context"
	"strings"

	"github.com/clearlead/decisio/internal/store"
	"github.com/clearlead/decisio/internal/user/domain"
)

type service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) domain.Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter domain.Filter) (store.Result[[]domain.User], error) {
	filter.Email = normalizeEmail(filter.Email)
	return s.repo.List(ctx, filter)
}

// FindByEmail is the login lookup. Email comparison is case-insensitive via
// normalization on both sides of the write/read path.
func (s *service) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidEmail
	}

	result, err := s.repo.List(ctx, domain.Filter{Email: email})
	if err != nil {
		return nil, err
	}
	if len(result.Value) == 0 {
		return nil, domain.ErrNotFound
	}
	user := result.Value[0]
	return &user, nil
}

func (s *service) Upsert(ctx context.Context, patch domain.Patch) (store.Result[domain.User], error) {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email == "" {
			return store.Result[domain.User]{}, domain.ErrInvalidEmail
		}
		patch.Email = &email
	} else if patch.ID == "" {
		return store.Result[domain.User]{}, domain.ErrInvalidEmail
	}

	if patch.Role != nil && !patch.Role.Valid() {
		return store.Result[domain.User]{}, domain.ErrInvalidRole
	}
	if patch.Plan != nil && !patch.Plan.Valid() {
		return store.Result[domain.User]{}, domain.ErrInvalidPlan
	}

	// New accounts default to an independent leader on the basic tier,
	// matching what the admin invite flow expects.
	if patch.ID == "" {
		if patch.Role == nil {
			role := domain.RoleIndependentLeader
			patch.Role = &role
		}
		if patch.Plan == nil {
			plan := domain.PlanBasic
			patch.Plan = &plan
		}
	}

	return s.repo.Upsert(ctx, patch)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidUser
	}
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
