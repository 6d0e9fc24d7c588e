// Package cloudstore is the REST client for the hosted tabular backend.
// It does no retries and configures no timeout of its own: the repository
// layer treats every failure as a trigger to fall back, not to retry.
package cloudstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/clearlead/decisio/internal/config"
	"go.uber.org/zap"
)

// errNotConfigured short-circuits every call when no backend is set, so
// repositories settle locally without waiting on a doomed dial.
var errNotConfigured = errors.New("cloud backend not configured")

// Row is one record as the backend stores it (snake_case field names).
type Row = map[string]any

type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	apiKey     string
	offline    bool
	httpClient *http.Client
	log        *zap.Logger
}

func New(opts Options, log *zap.Logger) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		apiKey:     strings.TrimSpace(opts.APIKey),
		httpClient: hc,
		log:        log,
	}
}

func NewFromConfig(cfg config.Config, log *zap.Logger) *Client {
	client := New(Options{BaseURL: cfg.Cloud.BaseURL, APIKey: cfg.Cloud.APIKey}, log)
	if !cfg.CloudConfigured() {
		log.Info("no cloud backend configured, all table operations settle locally")
		client.offline = true
	}
	return client
}

// Select fetches rows matching the query.
func (c *Client) Select(ctx context.Context, table string, q *Query) ([]Row, error) {
	rows, _, err := c.doSelect(ctx, table, q, false)
	return rows, err
}

// SelectWithCount additionally requests an exact total via the
// content-range response header.
func (c *Client) SelectWithCount(ctx context.Context, table string, q *Query) ([]Row, int, error) {
	return c.doSelect(ctx, table, q, true)
}

func (c *Client) doSelect(ctx context.Context, table string, q *Query, count bool) ([]Row, int, error) {
	if q == nil {
		q = NewQuery()
	}
	var extra http.Header
	if count {
		extra = http.Header{"Prefer": []string{"count=exact"}}
	}
	body, header, err := c.request(ctx, http.MethodGet, table+"?"+q.Encode(), nil, extra)
	if err != nil {
		return nil, 0, err
	}

	var rows []Row
	if len(body) > 0 {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, 0, networkError(err)
		}
	}

	total := len(rows)
	if count {
		if n, ok := parseContentRangeTotal(header.Get("Content-Range")); ok {
			total = n
		}
	}
	return rows, total, nil
}

// Insert posts a row and returns the canonical representation the backend
// wrote, which becomes authoritative over the submitted payload.
func (c *Client) Insert(ctx context.Context, table string, row Row) (Row, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return nil, networkError(err)
	}
	body, _, err := c.request(ctx, http.MethodPost, table, payload, nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}

	var rows []Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, networkError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Delete removes rows with the given id.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	q := NewQuery().Eq("id", id)
	_, _, err := c.request(ctx, http.MethodDelete, table+"?"+q.Encode(), nil, nil)
	return err
}

func (c *Client) request(ctx context.Context, method, path string, payload []byte, extra http.Header) ([]byte, http.Header, error) {
	if c.offline {
		return nil, nil, networkError(errNotConfigured)
	}
	url := c.baseURL + "/rest/v1/" + path

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, nil, networkError(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, vs := range extra {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cerr := classify(resp.StatusCode, errorMessage(body))
		if cerr.Kind == KindAuthRejected {
			c.log.Warn("cloud backend rejected the api key, local store takes over")
		}
		return nil, nil, cerr
	}

	return body, resp.Header, nil
}

func errorMessage(body []byte) string {
	var env struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err == nil && strings.TrimSpace(env.Message) != "" {
		return env.Message
	}
	return strings.TrimSpace(string(body))
}

// parseContentRangeTotal reads the total from a "0-24/3573" style header.
func parseContentRangeTotal(value string) (int, bool) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}
