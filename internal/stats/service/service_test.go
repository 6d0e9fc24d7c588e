package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clearlead/decisio/internal/cloudstore"
	"github.com/clearlead/decisio/internal/localstore"
	obsmetrics "github.com/clearlead/decisio/internal/observability/metrics"
	"github.com/clearlead/decisio/internal/store"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newLocalStore(t *testing.T) *localstore.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	local, err := localstore.New(db, zap.NewNop())
	require.NoError(t, err)
	return local
}

func TestSystemStats_ZeroScoresExcludedFromAverage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/rest/v1/users"):
			w.Header().Set("Content-Range", "0-2/3")
			w.Write([]byte(`[{"id":"u1"},{"id":"u2"},{"id":"u3"}]`))
		case strings.HasPrefix(r.URL.Path, "/rest/v1/decisions"):
			w.Write([]byte(`[
				{"id":"d1","final_report":{"overallScore":0}},
				{"id":"d2","final_report":{"overallScore":80}},
				{"id":"d3","final_report":{"overallScore":0}},
				{"id":"d4","final_report":{"overallScore":60}}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	cloud := cloudstore.New(cloudstore.Options{BaseURL: srv.URL, APIKey: "sk"}, zap.NewNop())
	svc := NewService(cloud, newLocalStore(t), obsmetrics.NewHTTPMetrics(), zap.NewNop())

	res, err := svc.SystemStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, store.SourceRemote, res.Source)
	assert.Equal(t, 3, res.Value.TotalUsers)
	assert.Equal(t, 4, res.Value.TotalDecisions)
	// Zeroes drop out of numerator and denominator: (80+60)/2, not /4.
	assert.Equal(t, float64(70), res.Value.AvgScore)
}

func TestSystemStats_PartialRemoteFailureFallsBackEntirely(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/rest/v1/users") {
			w.Write([]byte(`[{"id":"u1"}]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	t.Cleanup(srv.Close)

	cloud := cloudstore.New(cloudstore.Options{BaseURL: srv.URL, APIKey: "sk"}, zap.NewNop())
	local := newLocalStore(t)
	ctx := context.Background()

	_, err := local.Add(ctx, localstore.TableDecisions, localstore.Record{
		"id":           "d1",
		"final_report": map[string]any{"overallScore": float64(90)},
	})
	require.NoError(t, err)

	svc := NewService(cloud, local, obsmetrics.NewHTTPMetrics(), zap.NewNop())
	res, err := svc.SystemStats(ctx)
	require.NoError(t, err)

	// One remote call succeeded, the other failed: the whole aggregation
	// must come from the local store.
	assert.Equal(t, store.SourceLocal, res.Source)
	assert.Equal(t, 1, res.Value.TotalDecisions)
	assert.Equal(t, float64(90), res.Value.AvgScore)
}

func TestSystemStats_LocalEmptyUserTableReportsOne(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	cloud := cloudstore.New(cloudstore.Options{BaseURL: srv.URL, APIKey: "sk"}, zap.NewNop())

	svc := NewService(cloud, newLocalStore(t), obsmetrics.NewHTTPMetrics(), zap.NewNop())
	res, err := svc.SystemStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, store.SourceLocal, res.Source)
	assert.Equal(t, 1, res.Value.TotalUsers)
	assert.Equal(t, 0, res.Value.TotalDecisions)
	assert.Equal(t, float64(0), res.Value.AvgScore)
}

func TestIsScoreRecorded(t *testing.T) {
	assert.False(t, isScoreRecorded(0))
	assert.True(t, isScoreRecorded(0.5))
	assert.True(t, isScoreRecorded(100))
}

func TestSystemStats_DecisionTotalUsesExactCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/rest/v1/users"):
			w.Header().Set("Content-Range", "0-0/12")
			w.Write([]byte(`[{"id":"u1"}]`))
		case strings.HasPrefix(r.URL.Path, "/rest/v1/decisions"):
			assert.Contains(t, r.Header.Values("Prefer"), "count=exact")
			// Server-side row limit: two rows of a much larger table.
			w.Header().Set("Content-Range", "0-1/250")
			w.Write([]byte(`[
				{"id":"d1","final_report":{"overallScore":80}},
				{"id":"d2","final_report":{"overallScore":60}}
			]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	cloud := cloudstore.New(cloudstore.Options{BaseURL: srv.URL, APIKey: "sk"}, zap.NewNop())
	svc := NewService(cloud, newLocalStore(t), obsmetrics.NewHTTPMetrics(), zap.NewNop())

	res, err := svc.SystemStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 12, res.Value.TotalUsers)
	assert.Equal(t, 250, res.Value.TotalDecisions)
	assert.Equal(t, float64(70), res.Value.AvgScore)
}
