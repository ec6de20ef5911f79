package github

import (
	"context"

	"github.com/vytor/ghlookup/internal/models"
)

// UserFetcher looks up a single GitHub profile by username.
type UserFetcher interface {
	FetchUser(ctx context.Context, username string) (*models.Profile, error)
}

// Ensure the concrete clients implement the interface
var (
	_ UserFetcher = (*Client)(nil)
	_ UserFetcher = (*CachingClient)(nil)
)
