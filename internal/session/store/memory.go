// Package store provides the session stores. Sessions are short-lived and
// expendable: losing one costs the user an in-progress exercise, never a
// saved decision.
package store

import (
	"context"
	"time"

	"github.com/clearlead/decisio/internal/cache"
	"github.com/clearlead/decisio/internal/session/domain"
)

// sessionTTL bounds how long an abandoned exercise lingers.
const sessionTTL = 24 * time.Hour

type memoryStore struct {
	cache cache.Cache[string, *domain.Session]
}

// NewMemory is the default store for single-instance deployments.
func NewMemory() domain.Store {
	return &memoryStore{cache: cache.NewTTLCache[string, *domain.Session]()}
}

func (m *memoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) Put(_ context.Context, s *domain.Session) error {
	m.cache.Set(s.ID, s, sessionTTL)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}
