package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ghlookup/internal/models"
)

// MockLookupRepository is a mock implementation of repository.LookupRepository
type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) Get(ctx context.Context, id int64) (*models.Lookup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lookup), args.Error(1)
}

func (m *MockLookupRepository) Insert(ctx context.Context, lookup models.Lookup) (int64, error) {
	args := m.Called(ctx, lookup)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLookupRepository) List(ctx context.Context, filter models.LookupFilter) ([]models.Lookup, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lookup), args.Error(1)
}

func (m *MockLookupRepository) Count(ctx context.Context, filter models.LookupFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
