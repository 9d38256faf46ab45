package station

import (
	"fmt"
	"strings"
)

// SearchResult is the outcome of a location search.
type SearchResult struct {
	// Results holds the matching records in catalog order, or the whole
	// catalog when nothing matched.
	Results []Record

	// Message is the user-facing notice for a search without matches.
	// Empty when the search matched at least one record.
	Message string
}

// Matched reports whether the search found at least one record.
func (r SearchResult) Matched() bool {
	return r.Message == ""
}

// NotFoundMessage formats the notice shown when a query matches nothing.
// The query is embedded as typed, without escaping.
func NotFoundMessage(query string) string {
	return fmt.Sprintf(`Search "%s" not found`, query)
}

// Search filters records by a case-insensitive substring match of query
// against the address. An empty query matches every record. When nothing
// matches, the full list is returned together with a not-found message.
func Search(query string, records []Record) SearchResult {
	needle := strings.ToLower(query)

	matches := make([]Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Address), needle) {
			matches = append(matches, r)
		}
	}

	if len(matches) == 0 {
		all := make([]Record, len(records))
		copy(all, records)
		return SearchResult{
			Results: all,
			Message: NotFoundMessage(query),
		}
	}

	return SearchResult{Results: matches}
}
