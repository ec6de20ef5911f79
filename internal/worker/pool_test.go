package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/testutil/mocks"
	"github.com/vytor/ghlookup/internal/worker"
)

type funcJob struct {
	run func(context.Context) error
}

func (j *funcJob) Name() string                  { return "func" }
func (j *funcJob) Run(ctx context.Context) error { return j.run(ctx) }

func TestPool_RunsAndDrainsOnStop(t *testing.T) {
	p := worker.NewPool(2, 16)
	p.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(&funcJob{run: func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}
	p.Stop()

	assert.Equal(t, int32(10), ran.Load())
}

func TestPool_SubmitNeverBlocks(t *testing.T) {
	p := worker.NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	p.Start(context.Background())

	blocker := &funcJob{run: func(context.Context) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}}
	require.NoError(t, p.Submit(blocker))
	<-started
	require.NoError(t, p.Submit(blocker))

	assert.ErrorIs(t, p.Submit(blocker), worker.ErrQueueFull)

	close(release)
	p.Stop()
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(&funcJob{run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestPool_FailingJobDoesNotStopWorker(t *testing.T) {
	p := worker.NewPool(1, 4)
	p.Start(context.Background())

	var ran atomic.Int32
	require.NoError(t, p.Submit(&funcJob{run: func(context.Context) error { return errors.New("boom") }}))
	require.NoError(t, p.Submit(&funcJob{run: func(context.Context) error {
		ran.Add(1)
		return nil
	}}))
	p.Stop()

	assert.Equal(t, int32(1), ran.Load())
}

func TestRecordLookupJob(t *testing.T) {
	repo := new(mocks.MockLookupRepository)
	lookup := models.Lookup{Username: "octocat", Found: true, Trigger: models.TriggerLive}
	repo.On("Insert", mock.Anything, lookup).Return(int64(1), nil)

	job := &worker.RecordLookupJob{Repo: repo, Lookup: lookup}

	assert.Equal(t, "record_lookup", job.Name())
	assert.NoError(t, job.Run(context.Background()))
	repo.AssertExpectations(t)
}
