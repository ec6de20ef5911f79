package search

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/ghlookup/internal/models"
)

// LiveInput promotes the pending buffer to the active query after the input
// has been quiet for the debounce interval.
type LiveInput struct {
	ctx       context.Context
	pipeline  *Pipeline
	debouncer *Debouncer

	mu      sync.Mutex
	pending string
	closed  bool
}

// LiveOption configures a LiveInput.
type LiveOption func(*liveOptions)

type liveOptions struct {
	clock Clock
}

// WithClock replaces the system clock, mainly for tests.
func WithClock(c Clock) LiveOption {
	return func(o *liveOptions) { o.clock = c }
}

// NewLiveInput binds a live input to pipeline. Fetches run under ctx, so
// cancelling it aborts any in-flight request.
func NewLiveInput(ctx context.Context, pipeline *Pipeline, delay time.Duration, opts ...LiveOption) *LiveInput {
	o := liveOptions{clock: SystemClock}
	for _, opt := range opts {
		opt(&o)
	}

	l := &LiveInput{
		ctx:      WithTrigger(ctx, models.TriggerLive),
		pipeline: pipeline,
	}
	l.debouncer = NewDebouncer(delay, o.clock, l.promote)
	return l
}

// Input records a keystroke. An empty value clears the displayed profile at
// once and still goes through the debouncer.
func (l *LiveInput) Input(text string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.pending = text
	l.mu.Unlock()

	if text == "" {
		l.pipeline.Clear()
	}
	l.debouncer.Push(text)
}

// setPending records text without scheduling a promotion.
func (l *LiveInput) setPending(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.pending = text
	}
}

// Pending returns the text typed so far.
func (l *LiveInput) Pending() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Close cancels the pending promotion. Later input is ignored.
func (l *LiveInput) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.debouncer.Stop()
}

func (l *LiveInput) promote(value string) {
	l.pipeline.Activate(l.ctx, value)
}
