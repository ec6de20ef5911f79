package search

import (
	"context"
	"sync"

	"github.com/vytor/ghlookup/internal/models"
)

// SubmitInput only promotes the pending buffer when Submit is called. The
// submit control and the Enter key both end up in Submit.
type SubmitInput struct {
	pipeline *Pipeline

	mu      sync.Mutex
	pending string
}

func NewSubmitInput(pipeline *Pipeline) *SubmitInput {
	return &SubmitInput{pipeline: pipeline}
}

// Input records a keystroke without touching the active query.
func (s *SubmitInput) Input(text string) {
	s.mu.Lock()
	s.pending = text
	s.mu.Unlock()
}

// Pending returns the text typed so far.
func (s *SubmitInput) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Submit promotes the pending text to the active query and waits for the
// outcome. trigger is recorded on the context (models.TriggerClick, ...).
func (s *SubmitInput) Submit(ctx context.Context, trigger string) State {
	query := s.Pending()
	if trigger == "" {
		trigger = models.TriggerClick
	}
	return s.pipeline.Activate(WithTrigger(ctx, trigger), query)
}

// HandleKey submits on an Enter key release and ignores every other event.
func (s *SubmitInput) HandleKey(ctx context.Context, ev KeyEvent) (State, bool) {
	if !ev.IsEnterRelease() {
		return State{}, false
	}
	return s.Submit(ctx, models.TriggerEnter), true
}

// Mount subscribes the Enter handler to bus. Release the subscription when
// the view goes away.
func (s *SubmitInput) Mount(ctx context.Context, bus *KeyBus) *Subscription {
	return bus.Subscribe(func(ev KeyEvent) {
		s.HandleKey(ctx, ev)
	})
}
