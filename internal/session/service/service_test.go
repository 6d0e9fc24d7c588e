package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/clearlead/decisio/internal/clock"
	decisiondomain "github.com/clearlead/decisio/internal/decision/domain"
	"github.com/clearlead/decisio/internal/session/domain"
	sessionstore "github.com/clearlead/decisio/internal/session/store"
	"github.com/clearlead/decisio/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOracle struct {
	stepScore   float64
	reportScore float64
	failStep    bool
	failReport  bool
	stepCalls   int
	reportCalls int
}

func (f *fakeOracle) ScoreStep(_ context.Context, stepName, title, input string, prior []decisiondomain.Step, _ string) (*decisiondomain.StepInsights, error) {
	f.stepCalls++
	if f.failStep {
		return nil, errors.New("oracle: status=503 message=overloaded")
	}
	return &decisiondomain.StepInsights{
		Score:             f.stepScore,
		Insights:          "solid reasoning on " + stepName,
		BiasCheck:         []string{"confirmation bias"},
		CriticalQuestions: []string{"what would change your mind?"},
	}, nil
}

func (f *fakeOracle) FinalReport(_ context.Context, title string, steps []decisiondomain.Step, _ string) (*decisiondomain.FinalReport, error) {
	f.reportCalls++
	if f.failReport {
		return nil, errors.New("oracle: status=503 message=overloaded")
	}
	return &decisiondomain.FinalReport{
		OverallScore: f.reportScore,
		Style:        "Analytical",
		Alignment:    "Strong",
		RiskSummary:  "Acceptable",
		CoachingTip:  "Trust the process",
	}, nil
}

type fakeDecisions struct {
	saved  []decisiondomain.Decision
	source store.Source
	fail   bool
}

func (f *fakeDecisions) List(context.Context, string) (store.Result[[]decisiondomain.Decision], error) {
	return store.Result[[]decisiondomain.Decision]{}, nil
}

func (f *fakeDecisions) ListAdmin(context.Context, string) (store.Result[[]decisiondomain.Decision], error) {
	return store.Result[[]decisiondomain.Decision]{}, nil
}

func (f *fakeDecisions) Get(context.Context, string) (*decisiondomain.Decision, error) {
	return nil, decisiondomain.ErrNotFound
}

func (f *fakeDecisions) Save(_ context.Context, d decisiondomain.Decision) (store.Result[decisiondomain.Decision], error) {
	if f.fail {
		return store.Result[decisiondomain.Decision]{}, errors.New("storage down")
	}
	d.ID = "d-1"
	f.saved = append(f.saved, d)
	return store.Result[decisiondomain.Decision]{Value: d, Source: f.source}, nil
}

func (f *fakeDecisions) Delete(context.Context, string) error { return nil }

func newTestService(t *testing.T, oracle *fakeOracle, decisions *fakeDecisions, clk clock.Clock) domain.Service {
	t.Helper()
	svc, err := NewService(sessionstore.NewMemory(), oracle, decisions, clk, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func runAllSteps(t *testing.T, svc domain.Service, id string) *domain.Session {
	t.Helper()
	ctx := context.Background()

	sess, err := svc.Get(ctx, id)
	require.NoError(t, err)

	for range sess.Steps {
		sess, err = svc.SubmitInput(ctx, id, "we weighed the options carefully")
		require.NoError(t, err)
		require.Equal(t, domain.StateFeedbackShown, sess.State)

		sess, err = svc.Advance(ctx, id)
		require.NoError(t, err)
	}
	return sess
}

func TestSession_EndToEnd(t *testing.T) {
	oracle := &fakeOracle{stepScore: 75, reportScore: 82}
	decisions := &fakeDecisions{source: store.SourceRemote}
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, oracle, decisions, clock.NewFakeClock(start))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCollectingTitle, sess.State)
	require.Len(t, sess.Steps, 5)

	sess, err = svc.SetTitle(ctx, sess.ID, "Hire a CTO")
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingInput, sess.State)

	sess = runAllSteps(t, svc, sess.ID)

	assert.Equal(t, domain.StateCompleted, sess.State)
	assert.True(t, sess.Synced)
	require.NotNil(t, sess.Decision)
	require.NotNil(t, sess.Decision.FinalReport)
	assert.Equal(t, float64(82), sess.Decision.FinalReport.OverallScore)
	assert.Len(t, sess.Decision.Steps, 5)
	for _, step := range sess.Decision.Steps {
		require.NotNil(t, step.Insights)
		assert.Equal(t, float64(75), step.Insights.Score)
	}
	assert.False(t, sess.Decision.CreatedAt.Before(start))

	require.Len(t, decisions.saved, 1)
	assert.Equal(t, "Hire a CTO", decisions.saved[0].Title)
	assert.Equal(t, 5, oracle.stepCalls)
	assert.Equal(t, 1, oracle.reportCalls)
}

func TestSession_OracleFailureRevertsToAwaitingInput(t *testing.T) {
	oracle := &fakeOracle{failStep: true}
	svc := newTestService(t, oracle, &fakeDecisions{source: store.SourceRemote}, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)
	sess, err = svc.SetTitle(ctx, sess.ID, "Open a new office")
	require.NoError(t, err)

	sess, err = svc.SubmitInput(ctx, sess.ID, "some input")
	require.ErrorIs(t, err, domain.ErrOracleFailure)
	assert.Equal(t, domain.StateAwaitingInput, sess.State)
	assert.Nil(t, sess.CurrentStep().Insights)
	assert.Empty(t, sess.CurrentStep().Input)

	// Manual retry succeeds once the oracle recovers.
	oracle.failStep = false
	sess, err = svc.SubmitInput(ctx, sess.ID, "some input")
	require.NoError(t, err)
	assert.Equal(t, domain.StateFeedbackShown, sess.State)
}

func TestSession_ReportFailureKeepsLastStepRetryable(t *testing.T) {
	oracle := &fakeOracle{stepScore: 60, failReport: true}
	svc := newTestService(t, oracle, &fakeDecisions{source: store.SourceRemote}, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)
	sess, err = svc.SetTitle(ctx, sess.ID, "Restructure the team")
	require.NoError(t, err)

	for i := 0; i < len(sess.Steps)-1; i++ {
		_, err = svc.SubmitInput(ctx, sess.ID, "input")
		require.NoError(t, err)
		_, err = svc.Advance(ctx, sess.ID)
		require.NoError(t, err)
	}
	_, err = svc.SubmitInput(ctx, sess.ID, "final input")
	require.NoError(t, err)

	sess, err = svc.Advance(ctx, sess.ID)
	require.ErrorIs(t, err, domain.ErrOracleFailure)
	assert.Equal(t, domain.StateFeedbackShown, sess.State)

	oracle.failReport = false
	sess, err = svc.Advance(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, sess.State)
}

func TestSession_CompletesUnsyncedWhenPersistenceFails(t *testing.T) {
	oracle := &fakeOracle{stepScore: 70, reportScore: 75}
	decisions := &fakeDecisions{fail: true}
	svc := newTestService(t, oracle, decisions, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)
	_, err = svc.SetTitle(ctx, sess.ID, "Acquire a competitor")
	require.NoError(t, err)

	sess = runAllSteps(t, svc, sess.ID)

	// The user still gets the report; it just never reached storage.
	assert.Equal(t, domain.StateCompleted, sess.State)
	assert.False(t, sess.Synced)
	require.NotNil(t, sess.Decision)
	assert.Equal(t, float64(75), sess.Decision.FinalReport.OverallScore)
}

func TestSession_LocalSaveCompletesUnsynced(t *testing.T) {
	oracle := &fakeOracle{stepScore: 70, reportScore: 75}
	decisions := &fakeDecisions{source: store.SourceLocal}
	svc := newTestService(t, oracle, decisions, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)
	_, err = svc.SetTitle(ctx, sess.ID, "Change pricing model")
	require.NoError(t, err)

	sess = runAllSteps(t, svc, sess.ID)

	assert.Equal(t, domain.StateCompleted, sess.State)
	assert.False(t, sess.Synced)
	require.Len(t, decisions.saved, 1)
}

func TestSession_CompletedIsImmutable(t *testing.T) {
	oracle := &fakeOracle{stepScore: 70, reportScore: 88}
	clk := clock.NewFakeClock(time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC))
	svc := newTestService(t, oracle, &fakeDecisions{source: store.SourceRemote}, clk)
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)
	_, err = svc.SetTitle(ctx, sess.ID, "Hire a CTO")
	require.NoError(t, err)

	done := runAllSteps(t, svc, sess.ID)
	require.Equal(t, domain.StateCompleted, done.State)
	before, err := json.Marshal(done)
	require.NoError(t, err)

	// Every mutating call is rejected once the exercise is complete.
	_, err = svc.SetTitle(ctx, sess.ID, "Rename it")
	assert.ErrorIs(t, err, domain.ErrWrongState)
	_, err = svc.SubmitInput(ctx, sess.ID, "late input")
	assert.ErrorIs(t, err, domain.ErrWrongState)
	_, err = svc.Advance(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrWrongState)

	// A later read returns the steps and report exactly as completed.
	clk.Advance(48 * time.Hour)
	got, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	after, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, float64(88), got.Decision.FinalReport.OverallScore)
}

func TestSession_ResetFromAnyState(t *testing.T) {
	oracle := &fakeOracle{stepScore: 70, reportScore: 75}
	svc := newTestService(t, oracle, &fakeDecisions{source: store.SourceRemote}, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "es")
	require.NoError(t, err)
	_, err = svc.SetTitle(ctx, sess.ID, "Lanzar nuevo producto")
	require.NoError(t, err)
	_, err = svc.SubmitInput(ctx, sess.ID, "entrada")
	require.NoError(t, err)

	sess, err = svc.Reset(ctx, sess.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StateCollectingTitle, sess.State)
	assert.Empty(t, sess.Title)
	assert.Equal(t, 0, sess.StepIndex)
	assert.Equal(t, "es", sess.Language)
	for _, step := range sess.Steps {
		assert.Empty(t, step.Input)
		assert.Nil(t, step.Insights)
	}
}

func TestSession_TitleRequired(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, &fakeDecisions{source: store.SourceRemote}, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)

	_, err = svc.SetTitle(ctx, sess.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.SubmitInput(ctx, sess.ID, "input before title")
	assert.ErrorIs(t, err, domain.ErrWrongState)
}

func TestSession_InputRequired(t *testing.T) {
	svc := newTestService(t, &fakeOracle{}, &fakeDecisions{source: store.SourceRemote}, clock.NewFakeClock(time.Now()))
	ctx := context.Background()

	sess, err := svc.Start(ctx, "u-1", "en")
	require.NoError(t, err)
	_, err = svc.SetTitle(ctx, sess.ID, "Pick a vendor")
	require.NoError(t, err)

	_, err = svc.SubmitInput(ctx, sess.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
