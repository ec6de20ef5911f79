package jobs

import (
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/repository"
	"github.com/vytor/ghlookup/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	historyPool *worker.Pool
	lookupRepo  repository.LookupRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(historyPool *worker.Pool, lookupRepo repository.LookupRepository) JobQueue {
	return &WorkerQueue{
		historyPool: historyPool,
		lookupRepo:  lookupRepo,
	}
}

func (q *WorkerQueue) EnqueueLookup(lookup models.Lookup) error {
	return q.historyPool.Submit(&worker.RecordLookupJob{
		Repo:   q.lookupRepo,
		Lookup: lookup,
	})
}
