// Package search ranks merchants by name against a short query without a
// network round trip.
package search

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultLimit is the maximum number of matches Search returns.
const DefaultLimit = 5

// Record is one searchable merchant.
type Record struct {
	ID            string
	Name          string
	Slug          string
	SecondaryText string
}

// Match is one ranked search hit.
type Match struct {
	ID   string
	Name string
	Slug string
}

// Match weights, highest first.
const (
	weightSecondary = 1
	weightContains  = 2
	weightPrefix    = 3
)

type entry struct {
	rec       Record
	name      string // lowercased
	secondary string // lowercased
}

// Index is an immutable, in-memory merchant index.
type Index struct {
	entries []entry
	limit   int
}

type Option func(*Index)

// WithLimit caps the number of matches. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(ix *Index) {
		if n > 0 {
			ix.limit = n
		}
	}
}

// New builds an index over a copy of records.
func New(records []Record, opts ...Option) *Index {
	ix := &Index{
		entries: make([]entry, 0, len(records)),
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ix)
		}
	}
	for _, r := range records {
		ix.entries = append(ix.entries, entry{
			rec:       r,
			name:      strings.ToLower(r.Name),
			secondary: strings.ToLower(r.SecondaryText),
		})
	}
	return ix
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Search returns up to the configured limit of matches for query, best
// first. Matching is a case-insensitive substring test on the name and the
// secondary text. Name-prefix hits rank above name-substring hits, which
// rank above secondary-text hits; ties are ordered by name.
func (ix *Index) Search(query string) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || ix == nil {
		return []Match{}
	}

	type scored struct {
		e      *entry
		weight int
	}
	var hits []scored
	for i := range ix.entries {
		e := &ix.entries[i]
		if w := weigh(e, q); w > 0 {
			hits = append(hits, scored{e: e, weight: w})
		}
	}

	slices.SortFunc(hits, func(a, b scored) int {
		if c := cmp.Compare(b.weight, a.weight); c != 0 {
			return c
		}
		if c := cmp.Compare(a.e.name, b.e.name); c != 0 {
			return c
		}
		if c := cmp.Compare(a.e.rec.Name, b.e.rec.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.e.rec.ID, b.e.rec.ID)
	})

	out := make([]Match, 0, min(len(hits), ix.limit))
	for _, h := range hits[:min(len(hits), ix.limit)] {
		out = append(out, Match{ID: h.e.rec.ID, Name: h.e.rec.Name, Slug: h.e.rec.Slug})
	}
	return out
}

func weigh(e *entry, q string) int {
	switch {
	case strings.HasPrefix(e.name, q):
		return weightPrefix
	case strings.Contains(e.name, q):
		return weightContains
	case strings.Contains(e.secondary, q):
		return weightSecondary
	default:
		return 0
	}
}
