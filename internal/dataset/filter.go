// Package dataset holds the shared collection helpers the dashboard views are
// built on: conjunctive filtering of fetched collections, derived statistics,
// chart coordinate mapping and CSV document building. Everything in here is
// pure; inputs are never mutated.
package dataset

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Record is the minimal field surface a collection item exposes for filtering.
// Which concrete field backs each accessor is decided per view (e.g. a project
// filters on its start date, an attendance event on its event date).
type Record interface {
	SearchText() string
	FilterStatus() string
	FilterCategory() string
	FilterDate() time.Time
}

// Filter is a set of independent, optional constraints. Empty fields impose no
// constraint; provided fields must all match (conjunctive AND). Dates are
// inclusive "2006-01-02" bounds; a malformed date bound matches nothing rather
// than producing an error.
type Filter struct {
	Text     string `form:"q"`
	Status   string `form:"status"`
	Category string `form:"category"`
	DateFrom string `form:"from"`
	DateTo   string `form:"to"`
}

// IsZero reports whether the filter imposes no constraint at all.
func (f Filter) IsZero() bool {
	return f.Text == "" && f.Status == "" && f.Category == "" && f.DateFrom == "" && f.DateTo == ""
}

// Apply returns the items matching every provided filter field, preserving
// their relative order. Apply(items, Filter{}) returns a copy of items.
func Apply[T Record](items []T, f Filter) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Matches(it, f) {
			out = append(out, it)
		}
	}
	return out
}

// Matches reports whether a single record satisfies the filter.
func Matches(r Record, f Filter) bool {
	if f.Text != "" && !strings.Contains(strings.ToLower(r.SearchText()), strings.ToLower(f.Text)) {
		return false
	}
	if f.Status != "" && r.FilterStatus() != f.Status {
		return false
	}
	if f.Category != "" && r.FilterCategory() != f.Category {
		return false
	}
	if f.DateFrom != "" {
		from, err := time.Parse(dateLayout, f.DateFrom)
		if err != nil {
			return false
		}
		if r.FilterDate().Before(from) {
			return false
		}
	}
	if f.DateTo != "" {
		to, err := time.Parse(dateLayout, f.DateTo)
		if err != nil {
			return false
		}
		// Inclusive upper bound: anything before the end of that day matches.
		if !r.FilterDate().Before(to.AddDate(0, 0, 1)) {
			return false
		}
	}
	return true
}
