// Package compose turns a classified generation request into Reablocks source
// code by picking one of four fixed templates.
package compose

import (
	"embed"
	"fmt"
	"strings"

	"github.com/saeedalam/reablocks-mcp/internal/intent"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

//go:embed templates/*.tsx
var templateFS embed.FS

// componentsToken is replaced by the comma-joined candidate list in the
// generic template.
const componentsToken = "__COMPONENTS__"

// ImportSource is the module named in the generated import declaration
const ImportSource = "reablocks"

// Essentials are always part of the candidate set, after the suggestions
var Essentials = []string{"Button", "Card", "Stack"}

// Template identifies one of the fixed rendering strategies
type Template string

const (
	TemplateForm      Template = "form"
	TemplateTable     Template = "table"
	TemplateDashboard Template = "dashboard"
	TemplateGeneric   Template = "generic"
)

// Layout is a cosmetic arrangement hint reported alongside the code
type Layout string

const (
	LayoutGrid  Layout = "grid"
	LayoutStack Layout = "stack"
	LayoutFlex  Layout = "flex"
)

// selection is checked top to bottom; the first requirement present wins
var selection = []struct {
	requirement string
	template    Template
}{
	{intent.LabelForm, TemplateForm},
	{intent.LabelTable, TemplateTable},
	{intent.LabelDashboard, TemplateDashboard},
}

// Composition is the output of Compose
type Composition struct {
	Components []string
	Layout     Layout
	Template   Template
	Code       string
}

// Composer renders the fixed templates. The zero value is not usable; call
// New.
type Composer struct {
	bodies map[Template]string
}

// New loads the embedded template bodies
func New() (*Composer, error) {
	c := &Composer{bodies: make(map[Template]string, 4)}
	for _, t := range []Template{TemplateForm, TemplateTable, TemplateDashboard, TemplateGeneric} {
		data, err := templateFS.ReadFile("templates/" + string(t) + ".tsx")
		if err != nil {
			return nil, fmt.Errorf("load %s template: %w", t, err)
		}
		c.bodies[t] = strings.TrimRight(string(data), "\n")
	}
	return c, nil
}

// Compose selects a template for req and prefixes it with an import
// declaration naming every candidate component. Template bodies are static;
// only the import line and the generic template's component list depend on
// the input.
func (c *Composer) Compose(req types.GenerationRequest, suggested []string) Composition {
	components := Candidates(suggested)
	tmpl := SelectTemplate(req)

	body := c.bodies[tmpl]
	if tmpl == TemplateGeneric {
		body = strings.ReplaceAll(body, componentsToken, strings.Join(components, ", "))
	}

	return Composition{
		Components: components,
		Layout:     LayoutHint(req),
		Template:   tmpl,
		Code:       ImportLine(components) + "\n\n" + body,
	}
}

// Candidates merges suggested with the essentials, dropping repeats while
// keeping suggested first.
func Candidates(suggested []string) []string {
	out := make([]string, 0, len(suggested)+len(Essentials))
	seen := make(map[string]bool, len(suggested)+len(Essentials))
	for _, list := range [][]string{suggested, Essentials} {
		for _, name := range list {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// SelectTemplate applies the fixed form > table > dashboard > generic
// priority to the request requirements. The request type is not consulted.
func SelectTemplate(req types.GenerationRequest) Template {
	for _, s := range selection {
		if req.HasRequirement(s.requirement) {
			return s.template
		}
	}
	return TemplateGeneric
}

// LayoutHint derives the arrangement hint from the raw description
func LayoutHint(req types.GenerationRequest) Layout {
	lower := strings.ToLower(req.Description)
	switch {
	case strings.Contains(lower, "grid") || req.Type == types.RequestDashboard:
		return LayoutGrid
	case strings.Contains(lower, "vertical") || strings.Contains(lower, "stack"):
		return LayoutStack
	default:
		return LayoutFlex
	}
}

// ImportLine renders names literally, without validation
func ImportLine(names []string) string {
	return fmt.Sprintf("import { %s } from '%s';", strings.Join(names, ", "), ImportSource)
}
