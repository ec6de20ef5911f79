package services

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/vytor/ghlookup/internal/errors"
	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/repository"
)

// HistoryPage is one page of recorded lookups.
type HistoryPage struct {
	Lookups []models.Lookup `json:"lookups"`
	Total   int             `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

// HistoryService handles lookup history queries
type HistoryService interface {
	Recent(ctx context.Context, filter models.LookupFilter) (*HistoryPage, error)
	Get(ctx context.Context, id int64) (*models.Lookup, error)
}

type historyService struct {
	lookupRepo repository.LookupRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(lookupRepo repository.LookupRepository) HistoryService {
	return &historyService{lookupRepo: lookupRepo}
}

func (s *historyService) Recent(ctx context.Context, filter models.LookupFilter) (*HistoryPage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing history: username=%s, limit=%d, offset=%d", filter.Username, filter.Limit, filter.Offset)

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, errors.NewValidationError("limit/offset", "must not be negative")
	}

	lookups, err := s.lookupRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	total, err := s.lookupRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count history: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &HistoryPage{
		Lookups: lookups,
		Total:   total,
		Limit:   filter.EffectiveLimit(),
		Offset:  filter.Offset,
	}, nil
}

func (s *historyService) Get(ctx context.Context, id int64) (*models.Lookup, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting lookup: id=%d", id)

	lookup, err := s.lookupRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("lookup", id)
		}
		log.Error("failed to get lookup: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return lookup, nil
}
