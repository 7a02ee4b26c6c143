// Package catalog holds the read-only registry of Reablocks component
// descriptors. A Catalog is built once and never mutated, so it is safe for
// any number of concurrent readers.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Catalog is an ordered, name-indexed set of component descriptors
type Catalog struct {
	entries []types.ComponentDescriptor
	index   map[string]int
}

type catalogFile struct {
	Components []types.ComponentDescriptor `yaml:"components"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog embedded in the binary. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embeddedCatalog)
	})
	return defaultCatalog, defaultErr
}

// Load reads a catalog from a YAML file on disk
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(file.Components)
}

// New builds a catalog from entries, keeping their order. Names must be
// unique and non-empty, categories must belong to the closed set.
func New(entries []types.ComponentDescriptor) (*Catalog, error) {
	c := &Catalog{
		entries: make([]types.ComponentDescriptor, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("component %d: name is required", i)
		}
		if _, dup := c.index[e.Name]; dup {
			return nil, fmt.Errorf("component %q declared twice", e.Name)
		}
		if !e.Category.Valid() {
			return nil, fmt.Errorf("component %q: unknown category %q", e.Name, e.Category)
		}
		e = clone(e)
		for j, kw := range e.Keywords {
			e.Keywords[j] = strings.ToLower(kw)
		}
		c.index[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Get looks up a component by its exact name
func (c *Catalog) Get(name string) (types.ComponentDescriptor, bool) {
	i, ok := c.index[name]
	if !ok {
		return types.ComponentDescriptor{}, false
	}
	return clone(c.entries[i]), true
}

// Names returns every component name in declaration order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns copies of the descriptors in declaration order
func (c *Catalog) Entries() []types.ComponentDescriptor {
	out := make([]types.ComponentDescriptor, len(c.entries))
	for i, e := range c.entries {
		out[i] = clone(e)
	}
	return out
}

// clone copies every slice of e so the result shares no memory with the
// catalog
func clone(e types.ComponentDescriptor) types.ComponentDescriptor {
	e.Props = slices.Clone(e.Props)
	e.Variants = slices.Clone(e.Variants)
	e.Examples = slices.Clone(e.Examples)
	e.UseCases = slices.Clone(e.UseCases)
	e.RelatedComponents = slices.Clone(e.RelatedComponents)
	e.Keywords = slices.Clone(e.Keywords)
	return e
}

// Len returns the number of components
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Group is a category with its components
type Group struct {
	Category   types.Category
	Components []types.ComponentDescriptor
}

// Grouped buckets entries by category. Categories appear in the order they
// are first seen while walking the entries.
func (c *Catalog) Grouped() []Group {
	var groups []Group
	pos := make(map[types.Category]int)
	for _, e := range c.entries {
		i, ok := pos[e.Category]
		if !ok {
			i = len(groups)
			pos[e.Category] = i
			groups = append(groups, Group{Category: e.Category})
		}
		groups[i].Components = append(groups[i].Components, clone(e))
	}
	return groups
}
