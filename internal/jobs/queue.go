package jobs

import "github.com/vytor/ghlookup/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueLookup(lookup models.Lookup) error
}
