package cloudstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clearlead/decisio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(Options{BaseURL: srv.URL, APIKey: "sk-test"}, zap.NewNop())
	return client, srv
}

func TestSelect_SendsCredentialsAndQuery(t *testing.T) {
	var gotPath, gotKey, gotPrefer string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		gotKey = r.Header.Get("apikey")
		gotPrefer = r.Header.Get("Prefer")
		w.Write([]byte(`[{"id":"c1","name":"Acme"}]`))
	})

	rows, err := client.Select(context.Background(), "companies", NewQuery().OrderAsc("name"))
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/companies?select=%2A&order=name.asc", gotPath)
	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, "return=representation", gotPrefer)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0]["name"])
}

func TestSelect_EmptyBodyYieldsNoRows(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rows, err := client.Select(context.Background(), "decisions", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSelectWithCount_ReadsContentRange(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Values("Prefer"), "count=exact")
		w.Header().Set("Content-Range", "0-24/3573")
		w.Write([]byte(`[{"id":"u1"}]`))
	})

	_, total, err := client.SelectWithCount(context.Background(), "users", NewQuery().Select("id"))
	require.NoError(t, err)
	assert.Equal(t, 3573, total)
}

func TestInsert_FirstReturnedRowIsCanonical(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`[{"id":"server-id","title":"Hire a CTO"}]`))
	})

	row, err := client.Insert(context.Background(), "decisions", Row{"title": "Hire a CTO"})
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "server-id", row["id"])
}

func TestInsert_EmptyBodyYieldsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	row, err := client.Insert(context.Background(), "decisions", Row{"title": "x"})
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestErrorTaxonomy_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	})

	_, err := client.Select(context.Background(), "users", nil)
	require.Error(t, err)

	kind, ok := ErrKind(err)
	require.True(t, ok)
	assert.Equal(t, KindServer, kind)
}

func TestErrorTaxonomy_AuthRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Forbidden use of secret API key in browser"}`))
	})

	_, err := client.Select(context.Background(), "users", nil)
	require.Error(t, err)

	kind, ok := ErrKind(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthRejected, kind)
}

func TestErrorTaxonomy_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(Options{BaseURL: srv.URL, APIKey: "sk-test"}, zap.NewNop())
	_, err := client.Select(context.Background(), "users", nil)
	require.Error(t, err)

	kind, ok := ErrKind(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, kind)
}

func TestErrorTaxonomy_MalformedJSONIsNetwork(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.Select(context.Background(), "users", nil)
	require.Error(t, err)

	kind, ok := ErrKind(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, kind)
}

func TestOffline_UnconfiguredBackendFailsFast(t *testing.T) {
	client := NewFromConfig(config.Config{}, zap.NewNop())

	_, err := client.Select(context.Background(), "users", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, errNotConfigured)

	kind, ok := ErrKind(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, kind)
}
