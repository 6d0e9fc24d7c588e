package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clearlead/decisio/internal/cloudstore"
	"github.com/clearlead/decisio/internal/company/domain"
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

// deadCloud returns a client whose every call fails with a network error.
func deadCloud(t *testing.T) *cloudstore.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	return cloudstore.New(cloudstore.Options{BaseURL: srv.URL, APIKey: "sk"}, zap.NewNop())
}

func strptr(s string) *string { return &s }

func TestFallbackTransparency_AllOpsBehaveLocally(t *testing.T) {
	local := newLocalStore(t)
	repo := NewRepository(deadCloud(t), local, obsmetrics.NewHTTPMetrics(), zap.NewNop())
	ctx := context.Background()

	res, err := repo.Upsert(ctx, domain.Patch{Name: strptr("Acme"), Country: strptr("US")})
	require.NoError(t, err)
	assert.Equal(t, store.SourceLocal, res.Source)
	assert.NotEmpty(t, res.Value.ID)
	assert.Equal(t, "Acme", res.Value.Name)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.SourceLocal, list.Source)
	require.Len(t, list.Value, 1)
	assert.Equal(t, res.Value.ID, list.Value[0].ID)

	require.NoError(t, repo.Delete(ctx, res.Value.ID))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Value)
}

func TestUpsert_PartialUpdateKeepsOtherFields(t *testing.T) {
	local := newLocalStore(t)
	repo := NewRepository(deadCloud(t), local, obsmetrics.NewHTTPMetrics(), zap.NewNop())
	ctx := context.Background()

	created, err := repo.Upsert(ctx, domain.Patch{Name: strptr("Acme"), Country: strptr("US")})
	require.NoError(t, err)

	updated, err := repo.Upsert(ctx, domain.Patch{ID: created.Value.ID, Name: strptr("Acme Corp")})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", updated.Value.Name)
	assert.Equal(t, "US", updated.Value.Country)
}

func TestUpsert_RemoteCanonicalWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"server-id","name":"Acme","country":"US"}]`))
	}))
	t.Cleanup(srv.Close)
	cloud := cloudstore.New(cloudstore.Options{BaseURL: srv.URL, APIKey: "sk"}, zap.NewNop())

	repo := NewRepository(cloud, newLocalStore(t), obsmetrics.NewHTTPMetrics(), zap.NewNop())

	res, err := repo.Upsert(context.Background(), domain.Patch{Name: strptr("Acme"), Country: strptr("US")})
	require.NoError(t, err)
	assert.Equal(t, store.SourceRemote, res.Source)
	assert.Equal(t, "server-id", res.Value.ID)
}

func TestDelete_ConvergesLocallyEvenWhenRemoteSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)
	cloud := cloudstore.New(cloudstore.Options{BaseURL: srv.URL, APIKey: "sk"}, zap.NewNop())

	local := newLocalStore(t)
	repo := NewRepository(cloud, local, obsmetrics.NewHTTPMetrics(), zap.NewNop())
	ctx := context.Background()

	// Seed the local mirror directly, as an earlier offline save would.
	_, err := local.Upsert(ctx, localstore.TableCompanies, localstore.Record{"id": "c1", "name": "Acme"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "c1"))
	assert.Empty(t, local.Get(ctx, localstore.TableCompanies))
}

func TestFallback_CountsTowardLocalFallbackMetric(t *testing.T) {
	metrics := obsmetrics.NewHTTPMetrics()
	repo := NewRepository(deadCloud(t), newLocalStore(t), metrics, zap.NewNop())
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, domain.Patch{Name: strptr("Acme")})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "decisio_local_fallback_total 2")
}
