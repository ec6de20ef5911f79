package models

import "time"

// Lookup triggers.
const (
	TriggerLive  = "live"
	TriggerClick = "click"
	TriggerEnter = "enter"
	TriggerAPI   = "api"
	TriggerForm  = "form"
)

// Lookup is one recorded profile lookup.
type Lookup struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Found      bool      `json:"found"`
	Trigger    string    `json:"trigger"`
	LookedUpAt time.Time `json:"looked_up_at"`
}

// LookupFilter narrows a history listing. Zero values mean "any".
type LookupFilter struct {
	Username string
	Found    *bool
	Limit    int
	Offset   int
}

// History page sizes.
const (
	DefaultLookupLimit = 50
	MaxLookupLimit     = 500
)

// EffectiveLimit is the page size a listing with this filter returns.
func (f LookupFilter) EffectiveLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultLookupLimit
	case f.Limit > MaxLookupLimit:
		return MaxLookupLimit
	default:
		return f.Limit
	}
}
