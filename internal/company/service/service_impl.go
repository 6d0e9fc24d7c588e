package service

import (
	"context"
	"strings"

	"github.com/clearlead/decisio/internal/company/domain"
	"github.com/clearlead/decisio/internal/store"
	"github.com/gosimple/slug"
)

type service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) domain.Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) (store.Result[[]domain.Company], error) {
	return s.repo.List(ctx)
}

func (s *service) Upsert(ctx context.Context, patch domain.Patch) (store.Result[domain.Company], error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return store.Result[domain.Company]{}, domain.ErrInvalidName
		}
		patch.Name = &name
		companySlug := slug.Make(name)
		patch.Slug = &companySlug
	} else if patch.ID == "" {
		// A brand new company needs at least a name.
		return store.Result[domain.Company]{}, domain.ErrInvalidName
	}

	if patch.Country != nil {
		country := strings.TrimSpace(*patch.Country)
		if country == "" {
			return store.Result[domain.Company]{}, domain.ErrInvalidCountry
		}
		patch.Country = &country
	}

	return s.repo.Upsert(ctx, patch)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidCompany
	}
	return s.repo.Delete(ctx, id)
}
