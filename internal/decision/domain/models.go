// Package domain contains the saved decision entity and service contracts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/clearlead/decisio/internal/store"
)

// StepInsights is the oracle's feedback for one step. Scores come from an
// external model and are untrusted input; nothing here validates the range.
type StepInsights struct {
	Score             float64  `json:"score"`
	Insights          string   `json:"insights"`
	BiasCheck         []string `json:"biasCheck"`
	CriticalQuestions []string `json:"criticalQuestions"`
}

// Step is one stage of the exercise. The nested JSON keeps its camelCase
// keys in both stores; only top-level columns are snake_case.
type Step struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Input       string        `json:"input"`
	Insights    *StepInsights `json:"insights,omitempty"`
}

// FinalReport is the oracle's closing audit of the whole exercise.
type FinalReport struct {
	OverallScore float64 `json:"overallScore"`
	Style        string  `json:"style"`
	Alignment    string  `json:"alignment"`
	RiskSummary  string  `json:"riskSummary"`
	CoachingTip  string  `json:"coachingTip"`
}

// Decision is the persisted output of one completed session. It is written
// exactly once and immutable afterwards, except for deletion.
type Decision struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	UserName    string       `json:"userName,omitempty"`
	Title       string       `json:"title"`
	Steps       []Step       `json:"steps"`
	FinalReport *FinalReport `json:"finalReport,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type Repository interface {
	// List returns decisions in reverse-chronological order, optionally
	// narrowed to one user.
	List(ctx context.Context, userID string) (store.Result[[]Decision], error)
	// ListAdmin joins the owning user's name for admin display, optionally
	// narrowed to one company.
	ListAdmin(ctx context.Context, companyID string) (store.Result[[]Decision], error)
	Get(ctx context.Context, id string) (*Decision, error)
	Save(ctx context.Context, decision Decision) (store.Result[Decision], error)
	Delete(ctx context.Context, id string) error
}

type Service interface {
	List(ctx context.Context, userID string) (store.Result[[]Decision], error)
	ListAdmin(ctx context.Context, companyID string) (store.Result[[]Decision], error)
	Get(ctx context.Context, id string) (*Decision, error)
	Save(ctx context.Context, decision Decision) (store.Result[Decision], error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidTitle    = errors.New("invalid_title")
	ErrInvalidSteps    = errors.New("invalid_steps")
	ErrInvalidDecision = errors.New("invalid_decision")
	ErrNotFound        = errors.New("decision_not_found")
)
