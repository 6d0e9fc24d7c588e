package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/clearlead/decisio/internal/auth/domain"
	"github.com/clearlead/decisio/internal/cache"
	userdomain "github.com/clearlead/decisio/internal/user/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenTTL keeps tokens alive for one working day. Sessions are cheap to
// re-establish, there is no password to retype.
const tokenTTL = 24 * time.Hour

type service struct {
	users  userdomain.Service
	tokens cache.Cache[string, string]
	log    *zap.Logger
}

func NewService(users userdomain.Service, log *zap.Logger) domain.Service {
	return &service{
		users:  users,
		tokens: cache.NewTTLCache[string, string](),
		log:    log,
	}
}

func (s *service) Login(ctx context.Context, creds domain.Credentials) (*domain.Token, error) {
	email := normalizeEmail(creds.Email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, userdomain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return s.issue(*user), nil
}

func (s *service) Register(ctx context.Context, reg domain.Registration) (*domain.Token, error) {
	email := normalizeEmail(reg.Email)
	if email == "" {
		return nil, userdomain.ErrInvalidEmail
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	}

	role := userdomain.RoleIndependentLeader
	plan := userdomain.PlanFree
	res, err := s.users.Upsert(ctx, userdomain.Patch{
		Email:   &email,
		Role:    &role,
		Plan:    &plan,
		Name:    &reg.Name,
		Surname: &reg.Surname,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("account registered", zap.String("user_id", res.Value.ID))
	return s.issue(res.Value), nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	email, ok := s.tokens.Get(token)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, userdomain.ErrNotFound) {
		// Account deleted out from under the token.
		s.tokens.Delete(token)
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Logout(_ context.Context, token string) error {
	s.tokens.Delete(token)
	return nil
}

func (s *service) ChangePlan(ctx context.Context, token string, plan userdomain.Plan) (*userdomain.User, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !plan.Valid() {
		return nil, userdomain.ErrInvalidPlan
	}

	res, err := s.users.Upsert(ctx, userdomain.Patch{ID: user.ID, Plan: &plan})
	if err != nil {
		return nil, err
	}
	updated := res.Value
	return &updated, nil
}

func (s *service) issue(user userdomain.User) *domain.Token {
	token := uuid.NewString()
	s.tokens.Set(token, user.Email, tokenTTL)
	return &domain.Token{Value: token, User: user}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
