package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/ghlookup/internal/errors"
	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/search"
)

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(chi.URLParam(r, "username"))
	log := logger.FromContext(r.Context()).WithField("username", username)
	if username == "" {
		handleError(w, r, errors.NewValidationError("username", "cannot be empty"))
		return
	}

	ctx := search.WithTrigger(r.Context(), models.TriggerAPI)
	profile, err := s.LookupService.FetchUser(ctx, username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("profile served")
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.HistoryService == nil {
		handleError(w, r, errors.NewNotFoundError("history", "lookups"))
		return
	}

	filter, err := parseLookupFilter(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	page, err := s.HistoryService.Recent(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, page)
}

func (s *Server) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	if s.HistoryService == nil {
		handleError(w, r, errors.NewNotFoundError("history", "lookups"))
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		handleError(w, r, errors.NewBadRequestError("invalid lookup id"))
		return
	}

	lookup, err := s.HistoryService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, lookup)
}

func parseLookupFilter(r *http.Request) (models.LookupFilter, error) {
	q := r.URL.Query()
	filter := models.LookupFilter{Username: strings.TrimSpace(q.Get("username"))}

	if v := q.Get("found"); v != "" {
		found, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.NewBadRequestError("found must be true or false")
		}
		filter.Found = &found
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"limit", &filter.Limit}, {"offset", &filter.Offset}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errors.NewBadRequestError(p.name + " must be a non-negative integer")
		}
		*p.dst = n
	}
	return filter, nil
}
