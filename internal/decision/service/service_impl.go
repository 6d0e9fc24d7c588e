package service

import (
	"context"
	"strings"

	"github.com/clearlead/decisio/internal/decision/domain"
	"github.com/clearlead/decisio/internal/store"
)

type service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) domain.Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string) (store.Result[[]domain.Decision], error) {
	return s.repo.List(ctx, userID)
}

func (s *service) ListAdmin(ctx context.Context, companyID string) (store.Result[[]domain.Decision], error) {
	return s.repo.ListAdmin(ctx, companyID)
}

func (s *service) Get(ctx context.Context, id string) (*domain.Decision, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidDecision
	}
	return s.repo.Get(ctx, id)
}

func (s *service) Save(ctx context.Context, d domain.Decision) (store.Result[domain.Decision], error) {
	if strings.TrimSpace(d.Title) == "" {
		return store.Result[domain.Decision]{}, domain.ErrInvalidTitle
	}
	if len(d.Steps) == 0 {
		return store.Result[domain.Decision]{}, domain.ErrInvalidSteps
	}
	return s.repo.Save(ctx, d)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidDecision
	}
	return s.repo.Delete(ctx, id)
}
