// Package domain contains the user account entity and service contracts.
package domain

import (
	"context"
	"errors"

	"github.com/clearlead/decisio/internal/store"
)

// Role gates navigation and administration surfaces.
type Role string

const (
	RoleSuperAdmin        Role = "SUPER_ADMIN"
	RoleCompanyAdmin      Role = "COMPANY_ADMIN"
	RoleLeader            Role = "LEADER"
	RoleIndependentLeader Role = "INDEPENDENT_LEADER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleLeader, RoleIndependentLeader:
		return true
	default:
		return false
	}
}

// Plan is the subscription tier of an account.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanBasic   Plan = "BASIC"
	PlanPro     Plan = "PRO"
	PlanPremium Plan = "PREMIUM"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanFree, PlanBasic, PlanPro, PlanPremium:
		return true
	default:
		return false
	}
}

// User is an account. Email is a soft uniqueness key used for login lookup;
// it is not enforced at the storage level.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	CompanyID      string `json:"company_id,omitempty"`
	Plan           Plan   `json:"plan"`
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	DOB            string `json:"dob,omitempty"`
	Identification string `json:"identification,omitempty"`
	Position       string `json:"position,omitempty"`
	Team           string `json:"team,omitempty"`
}

// Filter narrows List by exact match. Zero values mean "any".
type Filter struct {
	CompanyID string
	Role      Role
	Email     string
}

// Patch lists exactly the fields an upsert may change.
type Patch struct {
	ID             string
	Email          *string
	Role           *Role
	CompanyID      *string
	Plan           *Plan
	Name           *string
	Surname        *string
	DOB            *string
	Identification *string
	Position       *string
	Team           *string
}

type Repository interface {
	List(ctx context.Context, filter Filter) (store.Result[[]User], error)
	Upsert(ctx context.Context, patch Patch) (store.Result[User], error)
	Delete(ctx context.Context, id string) error
}

type Service interface {
	List(ctx context.Context, filter Filter) (store.Result[[]User], error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Upsert(ctx context.Context, patch Patch) (store.Result[User], error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidRole  = errors.New("invalid_role")
	ErrInvalidPlan  = errors.New("invalid_plan")
	ErrInvalidUser  = errors.New("invalid_user")
	ErrNotFound     = errors.New("user_not_found")
)
