package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// PagedQuery encapsulates paging and search preferences shared by list endpoints.
type PagedQuery struct {
	Page   int
	Limit  int
	Search string
}

// Page is one window of a listed collection.
type Page[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// FromValues reads page, limit and q (or search) from URL query parameters. Malformed numbers
// fall back to the defaults.
func FromValues(values url.Values) PagedQuery {
	q := PagedQuery{
		Page:   atoi(values.Get("page")),
		Limit:  atoi(values.Get("limit")),
		Search: values.Get("q"),
	}
	if strings.TrimSpace(q.Search) == "" {
		q.Search = values.Get("search")
	}
	return q.Normalize()
}

// Normalize returns a sanitized copy applying defaults and bounds.
func (q PagedQuery) Normalize() PagedQuery {
	normalized := q
	if normalized.Page <= 0 {
		normalized.Page = 1
	}
	if normalized.Limit <= 0 {
		normalized.Limit = DefaultLimit
	}
	if normalized.Limit > MaxLimit {
		normalized.Limit = MaxLimit
	}
	normalized.Search = strings.TrimSpace(normalized.Search)
	return normalized
}

// Metadata converts the query into string metadata, as attached to list responses and logs.
func (q PagedQuery) Metadata() map[string]string {
	normalized := q.Normalize()
	metadata := map[string]string{
		"page":  strconv.Itoa(normalized.Page),
		"limit": strconv.Itoa(normalized.Limit),
	}
	if normalized.Search != "" {
		metadata["search"] = normalized.Search
	}
	return metadata
}

// Apply filters items by the search term (case-insensitive match against any of the fields
// returned by keys) and slices the requested page.
func Apply[T any](items []T, q PagedQuery, keys func(T) []string) Page[T] {
	q = q.Normalize()
	filtered := items
	if q.Search != "" && keys != nil {
		needle := strings.ToLower(q.Search)
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			if matches(keys(item), needle) {
				filtered = append(filtered, item)
			}
		}
	}

	total := len(filtered)
	pages := (total + q.Limit - 1) / q.Limit
	start := total
	if q.Page-1 < pages {
		start = (q.Page - 1) * q.Limit
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	window := make([]T, end-start)
	copy(window, filtered[start:end])
	return Page[T]{
		Items: window,
		Page:  q.Page,
		Limit: q.Limit,
		Total: total,
		Pages: pages,
	}
}

func matches(fields []string, needle string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func atoi(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}
