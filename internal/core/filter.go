package core

import (
	"strings"
	"time"
)

// CategoryQueryPrefix marks a free-text query as a category search.
const CategoryQueryPrefix = "kat:"

// FilterText filters by free text. A query prefixed with "kat:" matches
// the remainder case-insensitively against the category; otherwise the
// query matches case-insensitively against the description. An empty
// query returns the input unchanged.
func FilterText(txs []Transaction, query string) []Transaction {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return txs
	}

	var out []Transaction
	if rest, ok := strings.CutPrefix(query, CategoryQueryPrefix); ok {
		for _, t := range txs {
			if strings.Contains(strings.ToLower(string(t.Category)), rest) {
				out = append(out, t)
			}
		}
		return out
	}
	for _, t := range txs {
		if strings.Contains(strings.ToLower(t.Description), query) {
			out = append(out, t)
		}
	}
	return out
}

// DefaultRange returns January 1 through December 31 of now's year, the
// range used when the caller supplies none.
func DefaultRange(now time.Time) (Date, Date) {
	return NewDate(now.Year(), 1, 1), NewDate(now.Year(), 12, 31)
}

// FilterDateRange keeps transactions whose date falls within [from, to],
// inclusive on both ends.
func FilterDateRange(txs []Transaction, from, to Date) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if t.Date.Before(from.Time) || t.Date.After(to.Time) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterDirection keeps transactions with the given direction.
// DirectionAll disables the filter.
func FilterDirection(txs []Transaction, dir Direction) []Transaction {
	if dir == DirectionAll || dir == "" {
		return txs
	}
	var out []Transaction
	for _, t := range txs {
		if t.Direction == dir {
			out = append(out, t)
		}
	}
	return out
}
