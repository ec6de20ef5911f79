package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
)

// Mode selects how typed text becomes the active query.
type Mode string

const (
	ModeLive   Mode = "live"
	ModeSubmit Mode = "submit"
)

// ParseMode accepts "live" or "submit" in any case.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLive:
		return ModeLive, true
	case ModeSubmit:
		return ModeSubmit, true
	default:
		return "", false
	}
}

// ViewConfig configures a mounted view.
type ViewConfig struct {
	Mode     Mode
	Debounce time.Duration
	Clock    Clock
	// Keys is the key source to subscribe to; a private bus is used when nil.
	Keys *KeyBus
	// OnState receives every state transition. It must not block.
	OnState func(State)
}

// View is one mounted search form: a pipeline plus the input policy of its
// mode. Everything it registers is released by Unmount.
type View struct {
	ID   string
	Mode Mode

	ctx      context.Context
	cancel   context.CancelFunc
	pipeline *Pipeline
	live     *LiveInput
	submit   *SubmitInput
	keys     *KeyBus

	subs   []*Subscription
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
	log    *logger.Logger
}

// Mount creates a view bound to fetcher. Cancelling ctx has the same effect
// on in-flight requests as Unmount.
func Mount(ctx context.Context, fetcher Fetcher, cfg ViewConfig) *View {
	if cfg.Mode == "" {
		cfg.Mode = ModeLive
	}
	if cfg.Keys == nil {
		cfg.Keys = NewKeyBus()
	}

	id := uuid.NewString()
	log := logger.FromContext(ctx).WithPrefix("view").WithFields(map[string]any{
		"view_id": id,
		"mode":    string(cfg.Mode),
	})
	ctx, cancel := context.WithCancel(logger.NewContext(ctx, log))

	v := &View{
		ID:       id,
		Mode:     cfg.Mode,
		ctx:      ctx,
		cancel:   cancel,
		pipeline: NewPipeline(fetcher),
		keys:     cfg.Keys,
		log:      log,
	}

	if cfg.OnState != nil {
		v.subs = append(v.subs, v.pipeline.Subscribe(cfg.OnState))
	}

	switch cfg.Mode {
	case ModeSubmit:
		v.submit = NewSubmitInput(v.pipeline)
		v.subs = append(v.subs, v.submit.Mount(ctx, v.keys))
	default:
		opts := []LiveOption{}
		if cfg.Clock != nil {
			opts = append(opts, WithClock(cfg.Clock))
		}
		v.live = NewLiveInput(ctx, v.pipeline, cfg.Debounce, opts...)
	}

	log.Debug("view mounted")
	return v
}

// State returns the current pipeline snapshot.
func (v *View) State() State {
	return v.pipeline.State()
}

// Pending returns the text typed so far.
func (v *View) Pending() string {
	if v.live != nil {
		return v.live.Pending()
	}
	return v.submit.Pending()
}

// Input forwards a keystroke to the mode's input policy.
func (v *View) Input(text string) {
	if v.ctx.Err() != nil {
		return
	}
	if v.live != nil {
		v.live.Input(text)
		return
	}
	v.submit.Input(text)
}

// Submit handles a click on the submit control. In live mode the control
// has no action and Submit returns false.
func (v *View) Submit() bool {
	if v.submit == nil || v.ctx.Err() != nil {
		return false
	}
	v.async(func() { v.submit.Submit(v.ctx, models.TriggerClick) })
	return true
}

// Seed makes query the active query at once, the way the page form submits
// it. A page that arrives with a server-rendered result seeds its socket view
// so the view starts from that query instead of from Idle.
func (v *View) Seed(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" || v.ctx.Err() != nil {
		return false
	}
	if v.live != nil {
		v.live.setPending(query)
	} else {
		v.submit.Input(query)
	}
	v.async(func() { v.pipeline.Activate(WithTrigger(v.ctx, models.TriggerForm), query) })
	return true
}

// Key forwards a key event to the view's key bus.
func (v *View) Key(ev KeyEvent) {
	if v.ctx.Err() != nil {
		return
	}
	v.async(func() { v.keys.Dispatch(ev) })
}

// Wait blocks until submissions started so far have finished.
func (v *View) Wait() {
	v.wg.Wait()
}

// Unmount cancels pending timers and in-flight requests and releases every
// subscription. It is idempotent.
func (v *View) Unmount() {
	v.once.Do(func() {
		v.mu.Lock()
		v.closed = true
		v.mu.Unlock()

		v.cancel()
		if v.live != nil {
			v.live.Close()
		}
		v.wg.Wait()
		for _, s := range v.subs {
			s.Release()
		}
		v.log.Debug("view unmounted")
	})
}

func (v *View) async(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		fn()
	}()
}
