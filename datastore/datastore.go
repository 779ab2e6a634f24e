// Package datastore holds options shared by the gorm-backed stores.
package datastore

// ListOptions is a limit and an offset for paginated queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultLimit caps unbounded list queries. Audit and job listings are
// paginated in the dashboard, so a missing limit means "one page worth",
// not "everything".
const DefaultLimit = 250

// ParseListOptions normalizes raw query values. A zero limit gets the
// default, a negative limit disables the cap, a negative offset resets
// to the start.
func ParseListOptions(limit, offset int) ListOptions {
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 0:
		limit = -1
		offset = 0
	}
	if offset < 0 {
		offset = 0
	}
	return ListOptions{Limit: limit, Offset: offset}
}
