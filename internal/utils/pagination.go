package utils

import "strconv"

// Cursor pagination limits shared by the browse endpoints.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageMeta describes the pagination envelope returned alongside list data.
type PageMeta struct {
	Limit           int    `json:"limit"`
	InPage          int    `json:"in_page"`
	HasNextPage     bool   `json:"has_next_page"`
	HasPreviousPage bool   `json:"has_previous_page"`
	NextCursor      string `json:"next_cursor,omitempty"`
}

// ParsePageParams normalizes raw limit/cursor query values. Limits are
// clamped to [1, MaxPageLimit] with DefaultPageLimit when absent or
// malformed.
func ParsePageParams(rawLimit, cursor string) (int, string) {
	limit := DefaultPageLimit
	if rawLimit != "" {
		if n, err := strconv.Atoi(rawLimit); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return limit, cursor
}

// BuildPageMeta derives the envelope for a page. Callers fetch limit+1 rows
// to detect a next page and pass hasNext accordingly; nextCursor is the id
// of the last item in the trimmed page.
func BuildPageMeta(inPage, limit int, cursor, nextCursor string, hasNext bool) PageMeta {
	m := PageMeta{
		Limit:           limit,
		InPage:          inPage,
		HasNextPage:     hasNext,
		HasPreviousPage: cursor != "",
	}
	if hasNext && inPage > 0 {
		m.NextCursor = nextCursor
	}
	return m
}
