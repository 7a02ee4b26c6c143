package search

import (
	"strings"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

// Filter narrows catalog exploration. Zero values match everything.
type Filter struct {
	Category types.Category
	Query    string
}

// Explore returns the catalog entries accepted by f, in declaration order.
// Category is an exact match; Query is a case-insensitive substring test over
// name, description and use cases. The query is used as given, whitespace
// included.
func Explore(c *catalog.Catalog, f Filter) []types.ComponentDescriptor {
	query := strings.ToLower(f.Query)

	var out []types.ComponentDescriptor
	for _, e := range c.Entries() {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesQuery(e types.ComponentDescriptor, query string) bool {
	if strings.Contains(strings.ToLower(e.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), query) {
		return true
	}
	for _, uc := range e.UseCases {
		if strings.Contains(strings.ToLower(uc), query) {
			return true
		}
	}
	return false
}
