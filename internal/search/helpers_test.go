package search_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vytor/ghlookup/internal/errors"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/search"
)

// fakeClock fires timers only when Advance moves past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) search.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Advance moves time forward and runs due callbacks synchronously, in order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

// stubFetcher knows a fixed set of users; everything else fails.
type stubFetcher struct {
	mu       sync.Mutex
	users    map[string]*models.Profile
	calls    []string
	triggers []string
	// gates, when set for a username, block the fetch until closed.
	gates map[string]chan struct{}
}

func newStubFetcher(logins ...string) *stubFetcher {
	f := &stubFetcher{users: map[string]*models.Profile{}, gates: map[string]chan struct{}{}}
	for _, login := range logins {
		f.users[login] = &models.Profile{Login: login, PublicRepos: len(login)}
	}
	return f
}

func (f *stubFetcher) gate(username string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[username] = ch
	return ch
}

func (f *stubFetcher) FetchUser(ctx context.Context, username string) (*models.Profile, error) {
	f.mu.Lock()
	f.calls = append(f.calls, username)
	f.triggers = append(f.triggers, search.TriggerFromContext(ctx))
	gate := f.gates[username]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, errors.NewLookupFailedError(username, ctx.Err())
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.users[username]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, errors.NewLookupFailedError(username, nil)
}

func (f *stubFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *stubFetcher) Triggers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.triggers...)
}

// stateRecorder collects every emitted state.
type stateRecorder struct {
	mu     sync.Mutex
	states []search.State
}

func (r *stateRecorder) record(s search.State) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *stateRecorder) statuses() []search.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]search.Status, len(r.states))
	for i, s := range r.states {
		out[i] = s.Status
	}
	return out
}
