package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/ghlookup/internal/logger"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/repository"
)

var lookupColumns = []string{"id", "username", "found", "trigger_source", "looked_up_at"}

type lookupRepository struct {
	db *sql.DB
}

// NewLookupRepository creates a new LookupRepository implementation
func NewLookupRepository(db *sql.DB) repository.LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) Get(ctx context.Context, id int64) (*models.Lookup, error) {
	log := logger.FromContext(ctx).WithPrefix("lookup_repo")
	log.Debug("getting lookup: id=%d", id)

	query, args, err := sqlBuilder.Select(lookupColumns...).From("lookups").Where("id = ?", id).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	l, err := scanLookup(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("lookup not found: id=%d", id)
		} else {
			log.Error("failed to get lookup: %v", err)
		}
		return nil, err
	}
	return &l, nil
}

func (r *lookupRepository) Insert(ctx context.Context, l models.Lookup) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("lookup_repo")
	log.Debug("inserting lookup: username=%s, found=%t, trigger=%s", l.Username, l.Found, l.Trigger)

	if l.LookedUpAt.IsZero() {
		l.LookedUpAt = time.Now()
	}

	query, args, err := sqlBuilder.Insert("lookups").
		Columns("username", "found", "trigger_source", "looked_up_at").
		Values(l.Username, boolToInt(l.Found), l.Trigger, l.LookedUpAt.UTC()).
		ToSql()
	if err != nil {
		log.Error("failed to build insert: %v", err)
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert lookup: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to read lookup id: %v", err)
		return 0, err
	}
	log.Debug("lookup inserted: id=%d", id)
	return id, nil
}

// List returns lookups newest first.
func (r *lookupRepository) List(ctx context.Context, filter models.LookupFilter) ([]models.Lookup, error) {
	log := logger.FromContext(ctx).WithPrefix("lookup_repo")
	log.Debug("listing lookups: username=%s, limit=%d, offset=%d", filter.Username, filter.Limit, filter.Offset)

	limit, offset := pagination(filter)
	query, args, err := applyLookupFilter(sqlBuilder.Select(lookupColumns...).From("lookups"), filter).
		OrderBy("looked_up_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list lookups: %v", err)
		return nil, err
	}
	defer rows.Close()

	lookups := []models.Lookup{}
	for rows.Next() {
		l, err := scanLookup(rows)
		if err != nil {
			log.Error("failed to scan lookup row: %v", err)
			return nil, err
		}
		lookups = append(lookups, l)
	}
	log.Debug("found %d lookups", len(lookups))
	return lookups, rows.Err()
}

func (r *lookupRepository) Count(ctx context.Context, filter models.LookupFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("lookup_repo")

	query, args, err := applyLookupFilter(sqlBuilder.Select("COUNT(*)").From("lookups"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Error("failed to count lookups: %v", err)
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLookup(row rowScanner) (models.Lookup, error) {
	var (
		l     models.Lookup
		found int
	)
	if err := row.Scan(&l.ID, &l.Username, &found, &l.Trigger, &l.LookedUpAt); err != nil {
		return models.Lookup{}, err
	}
	l.Found = found != 0
	return l, nil
}
