package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/clearlead/decisio/internal/catalog"
	"github.com/clearlead/decisio/internal/clock"
	decisiondomain "github.com/clearlead/decisio/internal/decision/domain"
	"github.com/clearlead/decisio/internal/insight"
	"github.com/clearlead/decisio/internal/session/domain"
	"github.com/clearlead/decisio/internal/store"
	"go.uber.org/zap"
)

type service struct {
	sessions  domain.Store
	oracle    insight.Oracle
	decisions decisiondomain.Service
	clock     clock.Clock
	node      *snowflake.Node
	log       *zap.Logger
}

func NewService(sessions domain.Store, oracle insight.Oracle, decisions decisiondomain.Service, clk clock.Clock, log *zap.Logger) (domain.Service, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &service{
		sessions:  sessions,
		oracle:    oracle,
		decisions: decisions,
		clock:     clk,
		node:      node,
		log:       log,
	}, nil
}

func (s *service) Start(ctx context.Context, userID, lang string) (*domain.Session, error) {
	if lang != catalog.LangES {
		lang = catalog.LangEN
	}
	sess := &domain.Session{
		ID:        s.node.Generate().String(),
		UserID:    userID,
		Language:  lang,
		State:     domain.StateCollectingTitle,
		Steps:     freshSteps(lang),
		StartedAt: s.clock.Now(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) Get(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

func (s *service) SetTitle(ctx context.Context, id, title string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State != domain.StateCollectingTitle {
		return nil, domain.ErrWrongState
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrInvalidTitle
	}

	sess.Title = title
	sess.StepIndex = 0
	sess.State = domain.StateAwaitingInput
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SubmitInput records the step input and blocks on the oracle. A failed
// oracle call leaves the step exactly as it was: re-editable, nothing
// persisted, retried only by the user submitting again.
func (s *service) SubmitInput(ctx context.Context, id, input string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State != domain.StateAwaitingInput {
		return nil, domain.ErrWrongState
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrInvalidInput
	}

	step := sess.CurrentStep()
	if step == nil {
		return nil, domain.ErrWrongState
	}

	sess.State = domain.StateAwaitingFeedback
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}

	prior := sess.Steps[:sess.StepIndex]
	insights, err := s.oracle.ScoreStep(ctx, step.Name, sess.Title, input, prior, sess.Language)
	if err != nil {
		s.log.Warn("oracle step scoring failed",
			zap.String("session_id", sess.ID),
			zap.String("step", step.ID),
			zap.Error(err))
		sess.State = domain.StateAwaitingInput
		if perr := s.sessions.Put(ctx, sess); perr != nil {
			return nil, perr
		}
		return sess, domain.ErrOracleFailure
	}

	step.Input = input
	step.Insights = insights
	sess.State = domain.StateFeedbackShown
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) Advance(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State != domain.StateFeedbackShown {
		return nil, domain.ErrWrongState
	}

	if !sess.LastStep() {
		sess.StepIndex++
		sess.State = domain.StateAwaitingInput
		if err := s.sessions.Put(ctx, sess); err != nil {
			return nil, err
		}
		return sess, nil
	}
	return s.finalize(ctx, sess)
}

// finalize asks the oracle for the closing report, persists the decision
// and declares the session completed. Completion is reached even when
// persistence fails; the user always sees their report, with Synced
// telling whether it made it to the cloud.
func (s *service) finalize(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	sess.State = domain.StateFinalizing
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}

	report, err := s.oracle.FinalReport(ctx, sess.Title, sess.Steps, sess.Language)
	if err != nil {
		s.log.Warn("oracle final report failed",
			zap.String("session_id", sess.ID),
			zap.Error(err))
		sess.State = domain.StateFeedbackShown
		if perr := s.sessions.Put(ctx, sess); perr != nil {
			return nil, perr
		}
		return sess, domain.ErrOracleFailure
	}

	decision := decisiondomain.Decision{
		UserID:      sess.UserID,
		Title:       sess.Title,
		Steps:       sess.Steps,
		FinalReport: report,
		CreatedAt:   s.clock.Now(),
	}

	res, err := s.decisions.Save(ctx, decision)
	if err != nil {
		s.log.Error("decision persistence failed, completing session unsaved",
			zap.String("session_id", sess.ID),
			zap.Error(err))
		sess.Decision = &decision
		sess.Synced = false
	} else {
		saved := res.Value
		sess.Decision = &saved
		sess.Synced = res.Source == store.SourceRemote
	}

	sess.State = domain.StateCompleted
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) Reset(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Title = ""
	sess.StepIndex = 0
	sess.Steps = freshSteps(sess.Language)
	sess.Decision = nil
	sess.Synced = false
	sess.State = domain.StateCollectingTitle
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func freshSteps(lang string) []decisiondomain.Step {
	defs := catalog.Steps(lang)
	steps := make([]decisiondomain.Step, 0, len(defs))
	for _, d := range defs {
		steps = append(steps, decisiondomain.Step{ID: d.ID, Name: d.Name, Description: d.Description})
	}
	return steps
}
