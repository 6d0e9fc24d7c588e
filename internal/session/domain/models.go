// Package domain models an in-progress decision exercise. A session is
// server-side state keyed by an opaque id; everything in it is
// JSON-serializable so the memory and redis stores are interchangeable.
package domain

import (
	"context"
	"errors"
	"time"

	decisiondomain "github.com/clearlead/decisio/internal/decision/domain"
)

// State is the orchestrator's position in the exercise.
type State string

const (
	// StateCollectingTitle is the entry state: no title yet, no steps begun.
	StateCollectingTitle State = "collecting-title"
	// StateAwaitingInput means the current step has no input yet, or the
	// oracle failed and the step is re-editable.
	StateAwaitingInput State = "awaiting-input"
	// StateAwaitingFeedback means input was submitted and the oracle call
	// is in flight.
	StateAwaitingFeedback State = "awaiting-feedback"
	// StateFeedbackShown means the current step has its insights; the user
	// decides when to move on.
	StateFeedbackShown State = "feedback-shown"
	// StateFinalizing covers the closing report and the persistence write.
	StateFinalizing State = "finalizing"
	// StateCompleted is terminal. The session carries the saved decision
	// and whether it reached the cloud.
	StateCompleted State = "completed"
)

// Session is one user's walk through the exercise.
type Session struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	Language  string                `json:"language"`
	State     State                 `json:"state"`
	Title     string                `json:"title"`
	StepIndex int                   `json:"stepIndex"`
	Steps     []decisiondomain.Step `json:"steps"`

	// Set on completion only.
	Decision *decisiondomain.Decision `json:"decision,omitempty"`
	// Synced is true when the finished decision reached the cloud store.
	// False means it was kept, but only locally.
	Synced bool `json:"synced"`

	StartedAt time.Time `json:"startedAt"`
}

// CurrentStep returns the step the session is working on, nil once past the
// last one or before the title is set.
func (s *Session) CurrentStep() *decisiondomain.Step {
	if s.StepIndex < 0 || s.StepIndex >= len(s.Steps) {
		return nil
	}
	return &s.Steps[s.StepIndex]
}

func (s *Session) LastStep() bool {
	return s.StepIndex == len(s.Steps)-1
}

// Store persists sessions between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Service drives the exercise state machine.
type Service interface {
	// Start opens a fresh session in the collecting-title state.
	Start(ctx context.Context, userID, lang string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	// SetTitle moves collecting-title to the first step's awaiting-input.
	SetTitle(ctx context.Context, id, title string) (*Session, error)
	// SubmitInput records the current step's input and asks the oracle for
	// feedback. On oracle failure the step reverts to awaiting-input.
	SubmitInput(ctx context.Context, id, input string) (*Session, error)
	// Advance moves feedback-shown to the next step, or into finalizing and
	// completion when the last step's feedback is in.
	Advance(ctx context.Context, id string) (*Session, error)
	// Reset returns any session to collecting-title with all inputs and
	// insights cleared.
	Reset(ctx context.Context, id string) (*Session, error)
}

var (
	ErrNotFound      = errors.New("session_not_found")
	ErrInvalidTitle  = errors.New("session_invalid_title")
	ErrInvalidInput  = errors.New("session_invalid_input")
	ErrWrongState    = errors.New("session_wrong_state")
	ErrOracleFailure = errors.New("session_oracle_failure")
)
