package persistence

import (
	"strings"

	"github.com/shop/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortable is the set of columns a listing may be ordered by. Anything else
// in Filter.OrderBy falls back to the default column.
type sortable struct {
	columns  map[string]struct{}
	fallback string
}

func sortableBy(fallback string, columns ...string) sortable {
	s := sortable{columns: make(map[string]struct{}, len(columns)+1), fallback: fallback}
	s.columns[fallback] = struct{}{}
	for _, c := range columns {
		s.columns[c] = struct{}{}
	}
	return s
}

var (
	userSorts   = sortableBy("created_at", "updated_at", "email", "full_name")
	couponSorts = sortableBy("created_at", "code", "valid_until", "total")
	orderSorts  = sortableBy("created_at", "updated_at", "total_price", "current_status")
	postSorts   = sortableBy("created_at", "view_count", "title")
)

func (s sortable) column(name string) string {
	name = strings.TrimSpace(name)
	if _, ok := s.columns[name]; ok {
		return name
	}
	return s.fallback
}

// by orders on the current table; newest first unless OrderDir is "asc"
func (s sortable) by(filter shared.Filter) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: s.column(filter.OrderBy)},
		Desc:   descending(filter.OrderDir),
	}
}

func descending(dir string) bool {
	return !strings.EqualFold(strings.TrimSpace(dir), "asc")
}

// paginate applies offset and limit; a non-positive page size means no limit
func paginate(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.PageSize <= 0 {
		return query
	}
	return query.Offset(filter.Offset()).Limit(filter.PageSize)
}

// likePattern escapes LIKE wildcards in a user search term
func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(replacer.Replace(strings.TrimSpace(search))) + "%"
}
