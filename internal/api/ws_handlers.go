package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vytor/ghlookup/internal/errors"
	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/search"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 4096
)

// Client to server message types.
const (
	msgInput  = "input"
	msgSubmit = "submit"
	msgKey    = "key"
)

type clientMessage struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Event string `json:"event,omitempty"`
	Key   string `json:"key,omitempty"`
}

type stateMessage struct {
	Type   string `json:"type"`
	Status string `json:"status"`
	Query  string `json:"query"`
	HTML   string `json:"html"`
}

// stateMailbox keeps only the newest state. put never blocks, so it is safe
// to call from pipeline listeners.
type stateMailbox struct {
	mu     sync.Mutex
	latest search.State
	ready  chan struct{}
}

func newStateMailbox() *stateMailbox {
	return &stateMailbox{ready: make(chan struct{}, 1)}
}

func (m *stateMailbox) put(st search.State) {
	m.mu.Lock()
	m.latest = st
	m.mu.Unlock()
	select {
	case m.ready <- struct{}{}:
	default:
	}
}

func (m *stateMailbox) take() search.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

// handleSearchSocket mounts one search view for the lifetime of the
// connection.
func (s *Server) handleSearchSocket(w http.ResponseWriter, r *http.Request) {
	mode := s.Mode
	if raw := r.URL.Query().Get("mode"); raw != "" {
		m, ok := search.ParseMode(raw)
		if !ok {
			handleError(w, r, errors.NewValidationError("mode", "must be live or submit"))
			return
		}
		mode = m
	}

	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.FromContext(r.Context()).Warn("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	box := newStateMailbox()
	view := search.Mount(ctx, s.LookupService, search.ViewConfig{
		Mode:     mode,
		Debounce: s.Debounce,
		OnState:  box.put,
	})
	log := logger.FromContext(ctx).WithFields(map[string]any{"view_id": view.ID, "mode": string(mode)})
	log.Info("search view connected")

	// A page rendered from ?username= already shows its outcome; the view
	// resolves the same query instead of announcing Idle over it.
	if !view.Seed(r.URL.Query().Get("username")) {
		box.put(view.State())
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeStates(ctx, conn, box, log)
		// A failed write ends the session; unblock the reader.
		conn.Close()
	}()

	s.readMessages(conn, view, log)

	view.Unmount()
	cancel()
	<-writerDone
	log.Info("search view disconnected")
}

func (s *Server) readMessages(conn *websocket.Conn, view *search.View, log *logger.Logger) {
	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Warn("websocket read failed: %v", err)
			}
			return
		}

		switch msg.Type {
		case msgInput:
			view.Input(msg.Value)
		case msgSubmit:
			view.Submit()
		case msgKey:
			view.Key(search.KeyEvent{Type: msg.Event, Key: msg.Key})
		default:
			log.Debug("ignoring message type %q", msg.Type)
		}
	}
}

func (s *Server) writeStates(ctx context.Context, conn *websocket.Conn, box *stateMailbox, log *logger.Logger) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("websocket ping failed: %v", err)
				return
			}
		case <-box.ready:
			st := box.take()
			html, err := renderResult(s.Templates, newResultView(st))
			if err != nil {
				log.Error("failed to render result: %v", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(stateMessage{
				Type:   "state",
				Status: st.Status.String(),
				Query:  st.Query,
				HTML:   html,
			}); err != nil {
				log.Debug("websocket write failed: %v", err)
				return
			}
		}
	}
}
