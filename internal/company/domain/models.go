// Package domain contains the company entity and service contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/clearlead/decisio/internal/store"
)

// Company is a tenant. Created and edited by the super-admin role only.
type Company struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug,omitempty"`
	Country   string     `json:"country"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Patch lists exactly the fields an upsert may change. Absent fields keep
// their stored value.
type Patch struct {
	ID      string
	Name    *string
	Slug    *string
	Country *string
}

type Repository interface {
	List(ctx context.Context) (store.Result[[]Company], error)
	Upsert(ctx context.Context, patch Patch) (store.Result[Company], error)
	Delete(ctx context.Context, id string) error
}

type Service interface {
	List(ctx context.Context) (store.Result[[]Company], error)
	Upsert(ctx context.Context, patch Patch) (store.Result[Company], error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidCountry = errors.New("invalid_country")
	ErrInvalidCompany = errors.New("invalid_company")
)
