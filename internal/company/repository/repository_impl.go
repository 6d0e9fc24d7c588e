package repository

import (
	"context"

	"github.com/clearlead/decisio/internal/cloudstore"
	"github.com/clearlead/decisio/internal/company/domain"
	"github.com/clearlead/decisio/internal/localstore"
	obsmetrics "github.com/clearlead/decisio/internal/observability/metrics"
	"github.com/clearlead/decisio/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const remoteTable = "companies"

type repository struct {
	cloud   *cloudstore.Client
	local   *localstore.Store
	metrics *obsmetrics.HTTPMetrics
	log     *zap.Logger
}

// NewRepository builds the resilient company repository: remote first,
// local store on any remote failure.
func NewRepository(cloud *cloudstore.Client, local *localstore.Store, metrics *obsmetrics.HTTPMetrics, log *zap.Logger) domain.Repository {
	return &repository{cloud: cloud, local: local, metrics: metrics, log: log}
}

func (r *repository) List(ctx context.Context) (store.Result[[]domain.Company], error) {
	rows, err := r.cloud.Select(ctx, remoteTable, cloudstore.NewQuery().OrderAsc("name"))
	if err == nil {
		return store.Remote(fromRows(rows)), nil
	}
	r.fallback("list companies", err)

	return store.Local(fromRows(r.local.Get(ctx, localstore.TableCompanies))), nil
}

func (r *repository) Upsert(ctx context.Context, patch domain.Patch) (store.Result[domain.Company], error) {
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
	r.fallback("upsert company", err)

	merged, err := r.local.Upsert(ctx, localstore.TableCompanies, row)
	if err != nil {
		return store.Result[domain.Company]{}, err
	}
	return store.Local(fromRow(merged)), nil
}

// Delete converges locally no matter what the remote call did, so a
// local-only deletion can never resurface as a ghost entry.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.cloud.Delete(ctx, remoteTable, id); err != nil {
		r.fallback("delete company", err)
	}
	return r.local.Delete(ctx, localstore.TableCompanies, id)
}

func (r *repository) fallback(op string, err error) {
	r.metrics.RecordLocalFallback()
	if kind, ok := cloudstore.ErrKind(err); ok && kind == cloudstore.KindAuthRejected {
		r.log.Warn("cloud blocked, using local store", zap.String("op", op))
		return
	}
	r.log.Debug("cloud unavailable, using local store", zap.String("op", op), zap.Error(err))
}
