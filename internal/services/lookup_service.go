package services

import (
	"context"
	"strings"
	"time"

	"github.com/vytor/ghlookup/internal/errors"
	"github.com/vytor/ghlookup/internal/github"
	"github.com/vytor/ghlookup/internal/jobs"
	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/search"
)

// LookupService resolves usernames to profiles and records each lookup.
// It satisfies search.Fetcher so views can use it directly.
type LookupService interface {
	FetchUser(ctx context.Context, username string) (*models.Profile, error)
}

type lookupService struct {
	fetcher github.UserFetcher
	queue   jobs.JobQueue
	now     func() time.Time
}

var _ search.Fetcher = (*lookupService)(nil)

// NewLookupService creates a new LookupService. A nil queue disables history.
func NewLookupService(fetcher github.UserFetcher, queue jobs.JobQueue) LookupService {
	return &lookupService{fetcher: fetcher, queue: queue, now: time.Now}
}

func (s *lookupService) FetchUser(ctx context.Context, username string) (*models.Profile, error) {
	username = strings.TrimSpace(username)
	trigger := search.TriggerFromContext(ctx)
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"username": username,
		"trigger":  trigger,
	})

	if username == "" {
		return nil, errors.NewValidationError("username", "cannot be empty")
	}

	log.Debug("looking up profile")
	profile, err := s.fetcher.FetchUser(ctx, username)
	if err != nil {
		log.Debug("lookup failed: %v", err)
	}

	// A cancelled lookup belongs to a view that is gone; nothing to record.
	if ctx.Err() == nil {
		s.record(log, models.Lookup{
			Username:   username,
			Found:      err == nil && profile != nil,
			Trigger:    trigger,
			LookedUpAt: s.now(),
		})
	}
	return profile, err
}

func (s *lookupService) record(log *logger.Logger, lookup models.Lookup) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueLookup(lookup); err != nil {
		log.Warn("history not recorded: %v", err)
	}
}
