package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/ghlookup/internal/logger"
)

// handleHealth reports liveness - always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns 200 when the history database answers, 503 otherwise.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.Ping(ctx); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Database unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func (s *Server) handleThemeCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write([]byte(s.Palette.CSS()))
	w.Write([]byte(baseCSS))
}

const baseCSS = `
body { margin: 0; background: var(--color-bg); color: var(--color-400); font-family: system-ui, sans-serif; }
.container { max-width: 42rem; margin: 3rem auto; padding: 0 1rem; }
form { display: flex; gap: .5rem; }
input { flex: 1; padding: .6rem; background: var(--color-100); color: inherit; border: 1px solid var(--color-200); border-radius: .4rem; }
button { padding: .6rem 1rem; background: var(--color-300); color: var(--color-bg); border: 0; border-radius: .4rem; cursor: pointer; }
.profile, .error { margin-top: 1.5rem; padding: 1.5rem; background: var(--color-100); border-radius: .6rem; }
.avatar { border-radius: 50%; }
.login { color: var(--color-300); }
.counts { display: flex; justify-content: space-around; background: var(--color-bg); border-radius: .4rem; padding: 1rem; }
.details { list-style: none; padding: 0; }
`
