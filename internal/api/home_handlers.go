package api

import (
	"net/http"
	"strings"

	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/search"
)

// handleHome renders the search page. A username query parameter is the
// no-script path: it is submitted like a button click and the page comes
// back with the outcome already rendered.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	mode := s.pageMode(r)
	username := strings.TrimSpace(r.URL.Query().Get("username"))

	st := search.State{}
	if username != "" {
		log.Debug("form lookup: username=%s", username)
		in := search.NewSubmitInput(search.NewPipeline(s.LookupService))
		in.Input(username)
		st = in.Submit(r.Context(), models.TriggerForm)
	}

	s.render(w, r, "layout", pageData{
		"mode":  string(mode),
		"query": username,
		// The socket view picks this query up so the rendered panel survives.
		"rendered": username,
		"result":   newResultView(st),
	})
}

func (s *Server) pageMode(r *http.Request) search.Mode {
	if m, ok := search.ParseMode(r.URL.Query().Get("mode")); ok {
		return m
	}
	if s.Mode != "" {
		return s.Mode
	}
	return search.ModeLive
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
