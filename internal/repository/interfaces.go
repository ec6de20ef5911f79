package repository

import (
	"context"

	"github.com/vytor/ghlookup/internal/models"
)

// LookupRepository handles lookup history data access
type LookupRepository interface {
	Get(ctx context.Context, id int64) (*models.Lookup, error)
	Insert(ctx context.Context, lookup models.Lookup) (int64, error)
	List(ctx context.Context, filter models.LookupFilter) ([]models.Lookup, error)
	Count(ctx context.Context, filter models.LookupFilter) (int, error)
}
