package store

import (
	"strconv"
	"strings"
)

// Sort directions accepted on list reads. Anything other than the
// "desc" token sorts ascending.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	defaultPage  int64 = 1
	defaultLimit int64 = 5
)

// ListRequest carries the raw pagination/search/sort parameters of a
// collection read, exactly as they arrived on the wire.
type ListRequest struct {
	Page   string
	Limit  string
	Search string
	SortBy string
	Order  string
}

// Query is the normalized, store-agnostic descriptor of a collection
// read. Search is already lower-cased; SortBy has been validated against
// the collection's allow-list; Skip is derived, never parsed.
type Query struct {
	Page   int64
	Limit  int64
	Search string
	SortBy string
	Order  string
}

// Skip returns the cursor offset for the page.
func (q *Query) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// Descending reports whether the sort direction is descending.
func (q *Query) Descending() bool {
	return q.Order == OrderDesc
}

// normalize substitutes defaults for omitted parameters and validates
// the rest. Rejections happen here, before anything reaches the record
// store. The normalized tuple is also what the cache key is derived
// from, so two spellings of the same logical query converge.
func (r *ListRequest) normalize(sortFields []string, defaultSort string) (*Query, error) {
	q := &Query{
		Page:   defaultPage,
		Limit:  defaultLimit,
		SortBy: defaultSort,
		Order:  OrderAsc,
	}

	if r.Page != "" {
		page, err := strconv.ParseInt(r.Page, 10, 64)
		if err != nil || page < 1 {
			return nil, newValidationError("Invalid page or limit value")
		}
		q.Page = page
	}
	if r.Limit != "" {
		limit, err := strconv.ParseInt(r.Limit, 10, 64)
		if err != nil || limit < 1 {
			return nil, newValidationError("Invalid page or limit value")
		}
		q.Limit = limit
	}

	q.Search = strings.ToLower(strings.TrimSpace(r.Search))

	if r.SortBy != "" {
		q.SortBy = r.SortBy
	}
	valid := false
	for _, f := range sortFields {
		if q.SortBy == f {
			valid = true
			break
		}
	}
	if !valid {
		return nil, newValidationError("Invalid sortBy field. Valid fields are: %s", strings.Join(sortFields, ", "))
	}

	if strings.EqualFold(r.Order, OrderDesc) {
		q.Order = OrderDesc
	}
	return q, nil
}

// totalPages computes ceil(total/limit) for a positive limit.
func totalPages(total, limit int64) int64 {
	return (total + limit - 1) / limit
}

// parseOptionalID parses an optional exact-match filter parameter.
func parseOptionalID(raw, name string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, newValidationError("Invalid %s value", name)
	}
	return &id, nil
}
