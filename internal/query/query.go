// Package query builds the filtered, sorted, paginated list queries from
// untrusted request parameters. Query shape may only vary through the
// closed per-entity sort maps; every user-supplied value travels as a
// bound parameter, never as query text.
package query

import (
	"strings"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is the page size when the caller does not provide one.
	DefaultLimit = 10
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// SortMap is a closed enumeration from request sort keys to fixed column
// expressions. Keys absent from the map fall back to the default.
type SortMap struct {
	Columns      map[string]string
	DefaultKey   string
	DefaultOrder string
}

// UserSort is the allow-list for the admin user listing.
var UserSort = SortMap{
	Columns: map[string]string{
		"name":       "name",
		"email":      "email",
		"address":    "address",
		"role":       "role",
		"created_at": "created_at",
	},
	DefaultKey:   "created_at",
	DefaultOrder: "DESC",
}

// AdminStoreSort is the allow-list for the admin store listing. "rating"
// resolves to the aggregate computed by the listing query, not a column.
var AdminStoreSort = SortMap{
	Columns: map[string]string{
		"name":       "stores.name",
		"email":      "stores.email",
		"address":    "stores.address",
		"rating":     "average_rating",
		"created_at": "stores.created_at",
	},
	DefaultKey:   "created_at",
	DefaultOrder: "DESC",
}

// BrowseStoreSort is the allow-list for the end-user store browse, which
// defaults to name ascending.
var BrowseStoreSort = SortMap{
	Columns: map[string]string{
		"name":    "stores.name",
		"address": "stores.address",
		"rating":  "average_rating",
	},
	DefaultKey:   "name",
	DefaultOrder: "ASC",
}

// ListParams are the normalized list controls derived from a request.
type ListParams struct {
	SortColumn string
	SortOrder  string
	Page       int
	Limit      int
}

// Offset returns the number of rows to skip for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause returns the ORDER BY expression. Both parts come from the
// closed sort map, never from request input.
func (p ListParams) OrderClause() string {
	return p.SortColumn + " " + p.SortOrder
}

// Normalize resolves raw sort/page/limit request values against a sort
// map. Unknown sort keys silently fall back to the default column, an
// availability-over-strictness choice; direction falls back to the
// map's default unless explicitly ASC or DESC.
func Normalize(m SortMap, sortBy, sortOrder string, page, limit int) ListParams {
	column, ok := m.Columns[sortBy]
	if !ok {
		column = m.Columns[m.DefaultKey]
	}

	order := m.DefaultOrder
	switch strings.ToUpper(sortOrder) {
	case "ASC":
		order = "ASC"
	case "DESC":
		order = "DESC"
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return ListParams{
		SortColumn: column,
		SortOrder:  order,
		Page:       page,
		Limit:      limit,
	}
}

// Like applies a substring filter on a fixed column when the value is
// non-empty. The pattern is always a bound parameter.
func Like(db *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return db
	}
	return db.Where(column+" LIKE ?", "%"+value+"%")
}

// Equals applies an exact-match filter on a fixed column when the value
// is non-empty.
func Equals(db *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return db
	}
	return db.Where(column+" = ?", value)
}

// Pagination is the response envelope for list endpoints.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
}

// Paginate computes the envelope for a total row count. A page beyond
// range yields an empty item list upstream, never an error.
func (p ListParams) Paginate(total int64) Pagination {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Pagination{
		CurrentPage: p.Page,
		TotalPages:  totalPages,
		Total:       total,
		Limit:       p.Limit,
	}
}
