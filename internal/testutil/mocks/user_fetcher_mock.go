package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/ghlookup/internal/models"
)

// MockUserFetcher is a mock implementation of github.UserFetcher
type MockUserFetcher struct {
	mock.Mock
}

func (m *MockUserFetcher) FetchUser(ctx context.Context, username string) (*models.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
