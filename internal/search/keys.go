package search

// Key event types.
const (
	KeyDown = "keydown"
	KeyUp   = "keyup"
)

// KeyEnter is the key name browsers report for the Enter key.
const KeyEnter = "Enter"

// KeyEvent is a key press forwarded from the browser.
type KeyEvent struct {
	Type string `json:"event"`
	Key  string `json:"key"`
}

// IsEnterRelease reports whether ev is the release of the Enter key.
func (ev KeyEvent) IsEnterRelease() bool {
	return ev.Type == KeyUp && ev.Key == KeyEnter
}

// KeyBus fans key events of one view out to its subscribers. Handlers are
// registered for the lifetime of a mount and released on unmount.
type KeyBus struct {
	handlers handlerList[KeyEvent]
}

func NewKeyBus() *KeyBus {
	return &KeyBus{}
}

// Subscribe registers fn until the returned Subscription is released.
func (b *KeyBus) Subscribe(fn func(KeyEvent)) *Subscription {
	return b.handlers.add(fn)
}

// Dispatch delivers ev to every current subscriber.
func (b *KeyBus) Dispatch(ev KeyEvent) {
	for _, fn := range b.handlers.snapshot() {
		fn(ev)
	}
}

// Len returns the number of live subscriptions.
func (b *KeyBus) Len() int {
	return b.handlers.len()
}
