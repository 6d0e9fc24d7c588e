package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/clearlead/decisio/internal/config"
	"github.com/clearlead/decisio/internal/session/domain"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	rdb *redis.Client
}

// NewRedis backs sessions with redis so multiple instances can share them.
func NewRedis(cfg config.Config) domain.Store {
	return &redisStore{rdb: redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})}
}

func key(id string) string { return "session:" + id }

func (r *redisStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *redisStore) Put(ctx context.Context, s *domain.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key(s.ID), raw, sessionTTL).Err()
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, key(id)).Err()
}

// New picks the redis store when an address is configured, memory otherwise.
func New(cfg config.Config) domain.Store {
	if cfg.Redis.Addr != "" {
		return NewRedis(cfg)
	}
	return NewMemory()
}
