package sqlite

import (
	"github.com/Masterminds/squirrel"
	"github.com/vytor/ghlookup/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// applyLookupFilter adds the WHERE clauses shared by List and Count.
func applyLookupFilter(query squirrel.SelectBuilder, filter models.LookupFilter) squirrel.SelectBuilder {
	if filter.Username != "" {
		query = query.Where("username = ? COLLATE NOCASE", filter.Username)
	}
	if filter.Found != nil {
		query = query.Where(squirrel.Eq{"found": boolToInt(*filter.Found)})
	}
	return query
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func pagination(filter models.LookupFilter) (uint64, uint64) {
	limit := filter.EffectiveLimit()
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	return uint64(limit), uint64(offset)
}
