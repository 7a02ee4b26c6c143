// Package search matches free text against the component catalog.
package search

import (
	"strings"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
)

// Suggester proposes catalog components for a description by keyword
// presence. It holds no mutable state.
type Suggester struct {
	catalog *catalog.Catalog
}

// NewSuggester creates a suggester over c
func NewSuggester(c *catalog.Catalog) *Suggester {
	return &Suggester{catalog: c}
}

// Suggest returns, in catalog declaration order, the name of every component
// with at least one keyword contained in description. Components without
// keywords are never returned. Matching is case-insensitive substring
// presence; there is no ranking.
func (s *Suggester) Suggest(description string) []string {
	lower := strings.ToLower(description)
	out := newOrderedSet()
	if lower == "" {
		return out.items()
	}
	for _, e := range s.catalog.Entries() {
		for _, kw := range e.Keywords {
			if kw != "" && strings.Contains(lower, kw) {
				out.add(e.Name)
				break
			}
		}
	}
	return out.items()
}

// orderedSet keeps first-insertion order and drops repeats
type orderedSet struct {
	seen  map[string]bool
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.order = append(s.order, v)
}

func (s *orderedSet) items() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
