// Package insight is the HTTP client for the scoring oracle: the external
// model that grades each exercise step and writes the closing report. It is
// treated as a black box that may be slow or fail; every error is
// recoverable by the user retrying.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clearlead/decisio/internal/config"
	"github.com/clearlead/decisio/internal/decision/domain"
)

// Oracle is what the session orchestrator depends on. Tests swap in fakes.
type Oracle interface {
	ScoreStep(ctx context.Context, stepName, title, input string, prior []domain.Step, lang string) (*domain.StepInsights, error)
	FinalReport(ctx context.Context, title string, steps []domain.Step, lang string) (*domain.FinalReport, error)
}

type Options struct {
	BaseURL     string
	APIKey      string
	StepModel   string
	ReportModel string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

type Client struct {
	baseURL     string
	apiKey      string
	stepModel   string
	reportModel string
	timeout     time.Duration
	httpClient  *http.Client
}

func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		apiKey:      strings.TrimSpace(opts.APIKey),
		stepModel:   strings.TrimSpace(opts.StepModel),
		reportModel: strings.TrimSpace(opts.ReportModel),
		timeout:     timeout,
		httpClient:  hc,
	}
}

func NewFromConfig(cfg config.Config) Oracle {
	return New(Options{
		BaseURL:     cfg.Oracle.BaseURL,
		APIKey:      cfg.Oracle.APIKey,
		StepModel:   cfg.Oracle.StepModel,
		ReportModel: cfg.Oracle.ReportModel,
		Timeout:     cfg.Oracle.Timeout,
	})
}

// ScoreStep grades one step's input in the context of the whole exercise.
// The flash-tier model handles per-step feedback.
func (c *Client) ScoreStep(ctx context.Context, stepName, title, input string, prior []domain.Step, lang string) (*domain.StepInsights, error) {
	var out domain.StepInsights
	err := c.generate(ctx, c.stepModel, stepPrompt(stepName, title, input, prior, lang), stepSchema, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FinalReport audits the full step sequence. The pro-tier model writes it.
func (c *Client) FinalReport(ctx context.Context, title string, steps []domain.Step, lang string) (*domain.FinalReport, error) {
	var out domain.FinalReport
	err := c.generate(ctx, c.reportModel, reportPrompt(title, steps, lang), reportSchema, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) generate(ctx context.Context, model, prompt string, rs *schema, out any) error {
	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   rs,
		},
	})
	if err != nil {
		return err
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + "/v1beta/models/" + url.PathEscape(model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseHTTPError(resp.StatusCode, raw)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return err
	}
	return json.Unmarshal([]byte(gr.text()), out)
}
