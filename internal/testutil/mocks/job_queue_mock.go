package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/ghlookup/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueLookup(lookup models.Lookup) error {
	args := m.Called(lookup)
	return args.Error(0)
}
