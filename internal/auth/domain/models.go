// Package domain holds the sign-in contracts. Authentication is
// email-only: the platform trusts the address and issues an opaque bearer
// token for the browser to carry. There are no passwords anywhere.
package domain

import (
	"context"
	"errors"

	userdomain "github.com/clearlead/decisio/internal/user/domain"
)

// Credentials is what the login form submits.
type Credentials struct {
	Email string `json:"email"`
}

// Registration is the sign-up payload. New accounts become independent
// leaders on the free plan unless the caller says otherwise.
type Registration struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// Token is an opaque bearer credential bound to one account.
type Token struct {
	Value string          `json:"token"`
	User  userdomain.User `json:"user"`
}

type Service interface {
	Login(ctx context.Context, creds Credentials) (*Token, error)
	Register(ctx context.Context, reg Registration) (*Token, error)
	// Authenticate resolves a bearer token to its account.
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
	Logout(ctx context.Context, token string) error
	// ChangePlan moves the token's account to another subscription tier.
	ChangePlan(ctx context.Context, token string, plan userdomain.Plan) (*userdomain.User, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrEmailTaken         = errors.New("email_taken")
)
