// Package report formats pipeline and catalog results as Markdown text.
package report

import (
	"embed"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/generator"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

//go:embed templates/*.md templates/tutorials/*.md
var templateFS embed.FS

const (
	tplGeneration    = "generation"
	tplExploration   = "exploration"
	tplAnswer        = "answer"
	tplDocumentation = "documentation"
	tplListing       = "listing"
	tplTutorials     = "tutorials"
)

// Renderer holds the parsed report templates. Templates are read-only after
// New, so a Renderer can be shared between goroutines.
type Renderer struct {
	templates map[string]*pongo2.Template
	tutorials map[string]string
}

// New parses the embedded templates
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*pongo2.Template),
		tutorials: make(map[string]string),
	}
	for _, name := range []string{tplGeneration, tplExploration, tplAnswer, tplDocumentation, tplListing, tplTutorials} {
		data, err := templateFS.ReadFile("templates/" + name + ".md")
		if err != nil {
			return nil, fmt.Errorf("read %s template: %w", name, err)
		}
		tpl, err := pongo2.FromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.templates[name] = tpl
	}
	for _, s := range tutorialSections {
		data, err := templateFS.ReadFile("templates/tutorials/" + s.Key + ".md")
		if err != nil {
			return nil, fmt.Errorf("read %s tutorial: %w", s.Key, err)
		}
		r.tutorials[s.Key] = strings.TrimRight(string(data), "\n")
	}
	return r, nil
}

func (r *Renderer) execute(name string, ctx pongo2.Context) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}

// =============================================================================
// GENERATION
// =============================================================================

// Generation reports a pipeline result with the code in a fenced block
func (r *Renderer) Generation(res generator.Result) (string, error) {
	return r.execute(tplGeneration, pongo2.Context{
		"request":     res.Request,
		"suggested":   res.Suggested,
		"composition": res.Composition,
		"styling":     stylingLines(res.Request.Styling),
	})
}

func stylingLines(h types.StylingHints) []string {
	var out []string
	if h.Theme != "" {
		out = append(out, "theme "+h.Theme)
	}
	if h.Spacing != "" {
		out = append(out, "spacing "+h.Spacing)
	}
	if h.ColorScheme != "" {
		out = append(out, "color scheme "+h.ColorScheme)
	}
	return out
}

// =============================================================================
// CATALOG
// =============================================================================

// Exploration lists the entries matched by an explore query
func (r *Renderer) Exploration(entries []types.ComponentDescriptor, category types.Category, query string) (string, error) {
	var filters []string
	if category != "" {
		filters = append(filters, "category: "+string(category))
	}
	if query != "" {
		filters = append(filters, fmt.Sprintf("search: %q", query))
	}
	return r.execute(tplExploration, pongo2.Context{
		"components": entries,
		"filters":    filters,
	})
}

// Answer profiles the components suggested for a question, or falls back to
// a fixed starter list when there are none.
func (r *Renderer) Answer(question string, entries []types.ComponentDescriptor) (string, error) {
	return r.execute(tplAnswer, pongo2.Context{
		"question":   question,
		"components": entries,
	})
}

// Documentation renders the full reference of one component
func (r *Renderer) Documentation(c types.ComponentDescriptor) (string, error) {
	return r.execute(tplDocumentation, pongo2.Context{"c": c})
}

// NotFound lists every valid key, comma-joined, in the order given
func (r *Renderer) NotFound(name string, available []string) string {
	return fmt.Sprintf("Component %q not found. Available components: %s\n", name, strings.Join(available, ", "))
}

// Listing renders all components grouped by category
func (r *Renderer) Listing(groups []catalog.Group) (string, error) {
	total := 0
	for _, g := range groups {
		total += len(g.Components)
	}
	return r.execute(tplListing, pongo2.Context{
		"groups": groups,
		"total":  total,
	})
}

// =============================================================================
// TUTORIALS
// =============================================================================

// Tutorial kinds and skill levels accepted by Tutorials
const (
	TutorialAll      = "all"
	TutorialBasic    = "basic"
	TutorialPatterns = "patterns"
	TutorialAdvanced = "advanced"

	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

type tutorialSection struct {
	Key        string
	Title      string
	Difficulty string
	Body       string
}

var tutorialSections = []tutorialSection{
	{Key: TutorialBasic, Title: "Getting Started", Difficulty: LevelBeginner},
	{Key: TutorialPatterns, Title: "Common Patterns", Difficulty: LevelIntermediate},
	{Key: TutorialAdvanced, Title: "Advanced Techniques", Difficulty: LevelAdvanced},
}

// Tutorials renders the static tutorial sections selected by kind. The level
// only marks the section of matching difficulty; it never filters.
func (r *Renderer) Tutorials(kind, level string) (string, error) {
	if kind == "" {
		kind = TutorialAll
	}
	if level == "" {
		level = LevelBeginner
	}

	var sections []tutorialSection
	for _, s := range tutorialSections {
		if kind != TutorialAll && kind != s.Key {
			continue
		}
		s.Body = r.tutorials[s.Key]
		sections = append(sections, s)
	}
	return r.execute(tplTutorials, pongo2.Context{
		"sections": sections,
		"level":    level,
	})
}
