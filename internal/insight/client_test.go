package insight

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clearlead/decisio/internal/decision/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateBody(t *testing.T, payload any) []byte {
	t.Helper()
	text, err := json.Marshal(payload)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": string(text)}}}},
		},
	})
	require.NoError(t, err)
	return body
}

func TestScoreStep_ParsesStructuredFeedback(t *testing.T) {
	var gotPath string
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotReq))
		w.Write(candidateBody(t, map[string]any{
			"score":             75,
			"insights":          "sharp framing",
			"biasCheck":         []string{"anchoring"},
			"criticalQuestions": []string{"who disagrees?", "what is the cost of waiting?"},
		}))
	}))
	t.Cleanup(srv.Close)

	client := New(Options{
		BaseURL:   srv.URL,
		APIKey:    "key",
		StepModel: "gemini-3-flash-preview",
	})

	insights, err := client.ScoreStep(context.Background(), "Situation Analysis", "Hire a CTO", "we need leadership", nil, "en")
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", gotPath)
	require.NotNil(t, gotReq.GenerationConfig)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMIMEType)
	require.Len(t, gotReq.Contents, 1)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "Hire a CTO")
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "English")

	assert.Equal(t, float64(75), insights.Score)
	assert.Equal(t, "sharp framing", insights.Insights)
	assert.Equal(t, []string{"anchoring"}, insights.BiasCheck)
	assert.Len(t, insights.CriticalQuestions, 2)
}

func TestFinalReport_UsesReportModelAndSpanish(t *testing.T) {
	var gotPath string
	var gotReq generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotReq))
		w.Write(candidateBody(t, map[string]any{
			"overallScore": 82,
			"style":        "Analítico",
			"alignment":    "Fuerte",
			"riskSummary":  "Aceptable",
			"coachingTip":  "Confía en el proceso",
		}))
	}))
	t.Cleanup(srv.Close)

	client := New(Options{
		BaseURL:     srv.URL,
		APIKey:      "key",
		ReportModel: "gemini-3-pro-preview",
	})

	report, err := client.FinalReport(context.Background(), "Contratar un CTO", []domain.Step{{ID: "define", Input: "x"}}, "es")
	require.NoError(t, err)

	assert.Equal(t, "/v1beta/models/gemini-3-pro-preview:generateContent", gotPath)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, "Spanish")
	assert.Equal(t, float64(82), report.OverallScore)
	assert.Equal(t, "Analítico", report.Style)
}

func TestGenerate_HTTPErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	t.Cleanup(srv.Close)

	client := New(Options{BaseURL: srv.URL, APIKey: "key", StepModel: "m"})

	_, err := client.ScoreStep(context.Background(), "step", "title", "input", nil, "en")
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
	assert.Equal(t, "model overloaded", httpErr.Message)
}

func TestGenerate_UnparsableCandidateFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not json"}]}}]}`))
	}))
	t.Cleanup(srv.Close)

	client := New(Options{BaseURL: srv.URL, APIKey: "key", StepModel: "m"})

	_, err := client.ScoreStep(context.Background(), "step", "title", "input", nil, "en")
	assert.Error(t, err)
}
