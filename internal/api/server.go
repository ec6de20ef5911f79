package api

import (
	"context"
	"html/template"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vytor/ghlookup/internal/search"
	"github.com/vytor/ghlookup/internal/services"
	"github.com/vytor/ghlookup/internal/theme"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	LookupService  services.LookupService
	HistoryService services.HistoryService
	DB             Pinger
	Templates      *template.Template
	Palette        theme.Palette
	RateLimiter    *RateLimiter

	// Mode is the search variant served when a page or socket does not ask
	// for one.
	Mode     search.Mode
	Debounce time.Duration
	Upgrader websocket.Upgrader
}

type pageData map[string]any
