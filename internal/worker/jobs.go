package worker

import (
	"context"

	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/repository"
)

// RecordLookupJob persists one lookup to the history table.
type RecordLookupJob struct {
	Repo   repository.LookupRepository
	Lookup models.Lookup
}

func (j *RecordLookupJob) Name() string { return "record_lookup" }

func (j *RecordLookupJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"username": j.Lookup.Username,
		"found":    j.Lookup.Found,
	})
	id, err := j.Repo.Insert(ctx, j.Lookup)
	if err != nil {
		log.Error("failed to record lookup: %v", err)
		return err
	}
	log.Debug("lookup recorded: id=%d", id)
	return nil
}
