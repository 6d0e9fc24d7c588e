package repository

import (
	"context"

	"github.com/clearlead/decisio/internal/cloudstore"
	"github.com/clearlead/decisio/internal/decision/domain"
	"github.com/clearlead/decisio/internal/localstore"
	obsmetrics "github.com/clearlead/decisio/internal/observability/metrics"
	"github.com/clearlead/decisio/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const remoteTable = "decisions"

type repository struct {
	cloud   *cloudstore.Client
	local   *localstore.Store
	metrics *obsmetrics.HTTPMetrics
	log     *zap.Logger
}

// NewRepository builds the resilient decision repository. Unlike the other
// tables, successful remote writes are always mirrored into the local store
// so history survives the cloud disappearing later.
func NewRepository(cloud *cloudstore.Client, local *localstore.Store, metrics *obsmetrics.HTTPMetrics, log *zap.Logger) domain.Repository {
	return &repository{cloud: cloud, local: local, metrics: metrics, log: log}
}

func (r *repository) List(ctx context.Context, userID string) (store.Result[[]domain.Decision], error) {
	q := cloudstore.NewQuery().OrderDesc("created_at")
	if userID != "" {
		q.Eq("user_id", userID)
	}

	rows, err := r.cloud.Select(ctx, remoteTable, q)
	if err == nil {
		return store.Remote(fromRows(rows)), nil
	}
	r.fallback("list decisions", err)

	// Local rows are already most-recent-first: saves prepend.
	var kept []localstore.Record
	for _, row := range r.local.Get(ctx, localstore.TableDecisions) {
		if userID == "" || stringField(row, "user_id") == userID {
			kept = append(kept, row)
		}
	}
	return store.Local(fromRows(kept)), nil
}

func (r *repository) ListAdmin(ctx context.Context, companyID string) (store.Result[[]domain.Decision], error) {
	q := cloudstore.NewQuery().
		Select("*,users(name,surname,company_id)").
		OrderDesc("created_at")

	rows, err := r.cloud.Select(ctx, remoteTable, q)
	if err == nil {
		decisions := make([]domain.Decision, 0, len(rows))
		for _, row := range rows {
			if companyID != "" && embeddedCompanyID(row) != companyID {
				continue
			}
			decisions = append(decisions, fromRow(row))
		}
		return store.Remote(decisions), nil
	}
	r.fallback("list admin decisions", err)

	// The local store has no user relation to join; return everything, as
	// the degraded admin view does.
	return store.Local(fromRows(r.local.Get(ctx, localstore.TableDecisions))), nil
}

func (r *repository) Get(ctx context.Context, id string) (*domain.Decision, error) {
	rows, err := r.cloud.Select(ctx, remoteTable, cloudstore.NewQuery().Eq("id", id))
	if err == nil && len(rows) > 0 {
		d := fromRow(rows[0])
		return &d, nil
	}
	if err != nil {
		r.fallback("get decision", err)
	}

	for _, row := range r.local.Get(ctx, localstore.TableDecisions) {
		if stringField(row, "id") == id {
			d := fromRow(row)
			return &d, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *repository) Save(ctx context.Context, d domain.Decision) (store.Result[domain.Decision], error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	canonical, err := r.cloud.Insert(ctx, remoteTable, insertPayload(d))
	if err == nil {
		saved := d
		if canonical != nil {
			saved = fromRow(canonical)
		}
		// Local mirror always, for speed and survivability.
		if _, mirrorErr := r.local.Add(ctx, localstore.TableDecisions, toRow(saved)); mirrorErr != nil {
			r.log.Warn("decision saved to cloud but local mirror failed", zap.Error(mirrorErr))
		}
		return store.Remote(saved), nil
	}
	r.fallback("save decision", err)

	if _, err := r.local.Add(ctx, localstore.TableDecisions, toRow(d)); err != nil {
		return store.Result[domain.Decision]{}, err
	}
	return store.Local(d), nil
}

// Delete removes the record locally whether or not the remote call
// succeeded, so a deleted decision can never reappear from the mirror.
func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.cloud.Delete(ctx, remoteTable, id); err != nil {
		r.fallback("delete decision", err)
	}
	return r.local.Delete(ctx, localstore.TableDecisions, id)
}

func (r *repository) fallback(op string, err error) {
	r.metrics.RecordLocalFallback()
	if kind, ok := cloudstore.ErrKind(err); ok && kind == cloudstore.KindAuthRejected {
		r.log.Warn("cloud blocked, using local store", zap.String("op", op))
		return
	}
	r.log.Debug("cloud unavailable, using local store", zap.String("op", op), zap.Error(err))
}
