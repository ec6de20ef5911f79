package search

import (
	"context"

	"github.com/vytor/ghlookup/internal/models"
)

// Status is the coarse UI state of a view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is a snapshot of a pipeline. Profile and Err are never both set.
// While Loading, the previous outcome stays visible.
type State struct {
	Status     Status
	Query      string
	Profile    *models.Profile
	Err        error
	Generation uint64
}

// HasProfile reports whether a profile is displayed.
func (s State) HasProfile() bool { return s.Profile != nil }

// HasError reports whether the lookup error is displayed.
func (s State) HasError() bool { return s.Err != nil }

// settled derives the resting status from what is displayed.
func (s State) settled() Status {
	switch {
	case s.Profile != nil:
		return StatusSuccess
	case s.Err != nil:
		return StatusFailure
	default:
		return StatusIdle
	}
}

// Fetcher resolves an active query into a profile.
type Fetcher interface {
	FetchUser(ctx context.Context, username string) (*models.Profile, error)
}

type triggerKey struct{}

// WithTrigger records what promoted the query (see models.Trigger*).
func WithTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, triggerKey{}, trigger)
}

// TriggerFromContext returns the trigger stored by WithTrigger, or "".
func TriggerFromContext(ctx context.Context) string {
	t, _ := ctx.Value(triggerKey{}).(string)
	return t
}
