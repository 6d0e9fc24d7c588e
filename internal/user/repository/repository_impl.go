package repository

import (
	"context"

	"github.com/clearlead/decisio/internal/cloudstore"
	"github.com/clearlead/decisio/internal/localstore"
	obsmetrics "github.com/clearlead/decisio/internal/observability/metrics"
	"github.com/clearlead/decisio/internal/store"
	"github.com/clearlead/decisio/internal/user/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const remoteTable = "users"

type repository struct {
	cloud   *cloudstore.Client
	local   *localstore.Store
	metrics *obsmetrics.HTTPMetrics
	log     *zap.Logger
}

// NewRepository builds the resilient user repository.
func NewRepository(cloud *cloudstore.Client, local *localstore.Store, metrics *obsmetrics.HTTPMetrics, log *zap.Logger) domain.Repository {
	return &repository{cloud: cloud, local: local, metrics: metrics, log: log}
}

func (r *repository) List(ctx context.Context, filter domain.Filter) (store.Result[[]domain.User], error) {
	q := cloudstore.NewQuery()
	if filter.CompanyID != "" {
		q.Eq("company_id", filter.CompanyID)
	}
	if filter.Role != "" {
		q.Eq("role", string(filter.Role))
	}
	if filter.Email != "" {
		q.Eq("email", filter.Email)
	}

	rows, err := r.cloud.Select(ctx, remoteTable, q)
	if err == nil {
		return store.Remote(fromRows(rows)), nil
	}
	r.fallback("list users", err)

	var kept []localstore.Record
	for _, row := range r.local.Get(ctx, localstore.TableUsers) {
		if matches(row, filter) {
			kept = append(kept, row)
		}
	}
	return store.Local(fromRows(kept)), nil
}

func (r *repository) Upsert(ctx context.Context, patch domain.Patch) (store.Result[domain.User], error) {
	if patch.ID == "" {
		patch.ID = uuid.NewString()
	}
	row := toRow(patch)

	canonical, err := r.cloud.Insert(ctx, remoteTable, row)
	if err == nil {
		if canonical == nil {
			canonical = row
		}
		return store.Remote(fromRow(canonical)), nil
	}
	r.fallback("upsert user", err)

	merged, err := r.local.Upsert(ctx, localstore.TableUsers, row)
	if err != nil {
		return store.Result[domain.User]{}, err
	}
	return store.Local(fromRow(merged)), nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.cloud.Delete(ctx, remoteTable, id); err != nil {
		r.fallback("delete user", err)
	}
	return r.local.Delete(ctx, localstore.TableUsers, id)
}

func (r *repository) fallback(op string, err error) {
	r.metrics.RecordLocalFallback()
	if kind, ok := cloudstore.ErrKind(err); ok && kind == cloudstore.KindAuthRejected {
		r.log.Warn("cloud blocked, using local store", zap.String("op", op))
		return
	}
	r.log.Debug("cloud unavailable, using local store", zap.String("op", op), zap.Error(err))
}
