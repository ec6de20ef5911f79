package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
)

// errEmptyProfile is reported when a fetcher returns neither a profile nor an error.
var errEmptyProfile = errors.New("fetcher returned no profile")

// Pipeline turns active-query changes into fetches and owns the resulting
// state. Each activation takes a new generation; a completion whose
// generation is no longer current is discarded, so a slow response for an
// old query can never overwrite a newer outcome.
type Pipeline struct {
	fetcher   Fetcher
	mu        sync.Mutex
	state     State
	gen       uint64
	listeners handlerList[State]
}

func NewPipeline(fetcher Fetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

// State returns the current snapshot.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers fn for every state transition, delivered in order.
// fn runs with the pipeline locked: it must not block and must not call
// back into the pipeline.
func (p *Pipeline) Subscribe(fn func(State)) *Subscription {
	return p.listeners.add(fn)
}

// Activate makes query the active query and, when it is non-empty and not
// already shown or loading, fetches it. It blocks until the fetch completes
// and returns the state at that point.
func (p *Pipeline) Activate(ctx context.Context, query string) State {
	query = strings.TrimSpace(query)
	log := logger.FromContext(ctx).WithPrefix("pipeline")

	p.mu.Lock()
	if query == "" {
		if p.state.Query != "" {
			p.gen++
			p.state.Query = ""
			p.state.Generation = p.gen
			p.state.Status = p.state.settled()
			p.emitLocked()
		}
		st := p.state
		p.mu.Unlock()
		return st
	}

	if query == p.state.Query && (p.state.Status == StatusLoading || p.state.Status == StatusSuccess) {
		st := p.state
		p.mu.Unlock()
		log.Debug("query %q already active, skipping fetch", query)
		return st
	}

	p.gen++
	gen := p.gen
	p.state.Query = query
	p.state.Status = StatusLoading
	p.state.Generation = gen
	p.emitLocked()
	p.mu.Unlock()

	log.Debug("fetching %q (generation %d)", query, gen)
	profile, err := p.fetcher.FetchUser(ctx, query)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		log.Debug("discarding stale response for %q (generation %d, current %d)", query, gen, p.gen)
		return p.state
	}
	if ctx.Err() != nil {
		// The view went away mid-flight; nobody is waiting for this outcome.
		log.Debug("discarding response for %q: %v", query, ctx.Err())
		p.state.Query = ""
		p.state.Status = p.state.settled()
		p.emitLocked()
		return p.state
	}

	if err == nil && profile == nil {
		err = errEmptyProfile
	}
	if err != nil {
		log.Debug("lookup of %q failed: %v", query, err)
		p.apply(nil, err)
	} else {
		p.apply(profile, nil)
	}
	return p.state
}

// Clear removes the displayed profile and forgets the active query. Any
// in-flight fetch becomes stale. The error flag is left as is.
func (p *Pipeline) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gen++
	p.state.Query = ""
	p.state.Profile = nil
	p.state.Generation = p.gen
	p.state.Status = p.state.settled()
	p.emitLocked()
}

func (p *Pipeline) apply(profile *models.Profile, err error) {
	if err != nil {
		p.state.Profile = nil
		p.state.Err = err
		p.state.Status = StatusFailure
	} else {
		p.state.Profile = profile
		p.state.Err = nil
		p.state.Status = StatusSuccess
	}
	p.emitLocked()
}

func (p *Pipeline) emitLocked() {
	st := p.state
	for _, fn := range p.listeners.snapshot() {
		fn(st)
	}
}
