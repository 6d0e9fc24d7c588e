// Package domain holds the aggregated platform statistics contract.
package domain

import (
	"context"

	"github.com/clearlead/decisio/internal/store"
)

// SystemStats is the platform summary shown on the super-admin dashboard.
type SystemStats struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalDecisions int     `json:"totalDecisions"`
	AvgScore       float64 `json:"avgScore"`
}

type Service interface {
	SystemStats(ctx context.Context) (store.Result[SystemStats], error)
}
