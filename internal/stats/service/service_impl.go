package service

import (
	"context"
	"math"

	"github.com/clearlead/decisio/internal/cloudstore"
	"github.com/clearlead/decisio/internal/localstore"
	obsmetrics "github.com/clearlead/decisio/internal/observability/metrics"
	"github.com/clearlead/decisio/internal/stats/domain"
	"github.com/clearlead/decisio/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type service struct {
	cloud   *cloudstore.Client
	local   *localstore.Store
	metrics *obsmetrics.HTTPMetrics
	log     *zap.Logger
}

func NewService(cloud *cloudstore.Client, local *localstore.Store, metrics *obsmetrics.HTTPMetrics, log *zap.Logger) domain.Service {
	return &service{cloud: cloud, local: local, metrics: metrics, log: log}
}

// SystemStats issues the user count and the decision score fetch
// concurrently and joins both. Partial success is treated as total
// failure: either both remote calls land or the whole aggregation is
// recomputed from the local store.
func (s *service) SystemStats(ctx context.Context) (store.Result[domain.SystemStats], error) {
	var (
		totalUsers     int
		totalDecisions int
		decisions      []cloudstore.Row
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, total, err := s.cloud.SelectWithCount(gctx, "users", cloudstore.NewQuery().Select("id"))
		if err != nil {
			return err
		}
		totalUsers = total
		return nil
	})
	g.Go(func() error {
		// The exact count survives server-side row limits; the average is
		// still computed over the returned page.
		rows, total, err := s.cloud.SelectWithCount(gctx, "decisions", cloudstore.NewQuery().Select("id,final_report"))
		if err != nil {
			return err
		}
		decisions = rows
		totalDecisions = total
		return nil
	})

	if err := g.Wait(); err != nil {
		s.metrics.RecordLocalFallback()
		s.log.Debug("remote aggregation failed, recomputing locally", zap.Error(err))
		return store.Local(s.localStats(ctx)), nil
	}

	return store.Remote(domain.SystemStats{
		TotalUsers:     totalUsers,
		TotalDecisions: totalDecisions,
		AvgScore:       averageScore(decisions),
	}), nil
}

func (s *service) localStats(ctx context.Context) domain.SystemStats {
	users := s.local.Get(ctx, localstore.TableUsers)
	decisions := s.local.Get(ctx, localstore.TableDecisions)

	totalUsers := len(users)
	if totalUsers == 0 {
		// At minimum the person looking at the dashboard exists.
		totalUsers = 1
	}
	return domain.SystemStats{
		TotalUsers:     totalUsers,
		TotalDecisions: len(decisions),
		AvgScore:       averageScore(decisions),
	}
}

// isScoreRecorded decides whether a decision's overall score counts
// toward the average. A score of exactly zero is treated as "never
// scored" rather than a genuine minimum, so zero-scored records are
// excluded from both numerator and denominator.
func isScoreRecorded(score float64) bool {
	return score > 0
}

func averageScore(rows []cloudstore.Row) float64 {
	var sum float64
	var n int
	for _, row := range rows {
		score := overallScore(row)
		if !isScoreRecorded(score) {
			continue
		}
		sum += score
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum / float64(n))
}

func overallScore(row cloudstore.Row) float64 {
	report, ok := row["final_report"].(map[string]any)
	if !ok {
		return 0
	}
	score, _ := report["overallScore"].(float64)
	return score
}
