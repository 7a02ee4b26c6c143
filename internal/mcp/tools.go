package mcp

import (
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/saeedalam/reablocks-mcp/internal/generator"
	"github.com/saeedalam/reablocks-mcp/internal/report"
	"github.com/saeedalam/reablocks-mcp/internal/search"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

// Tool names
const (
	ToolGenerate      = "generate_intelligent_dashboard"
	ToolExplore       = "explore_reablocks_components"
	ToolAsk           = "ask_about_components"
	ToolDocumentation = "get_component_documentation"
	ToolListAll       = "list_all_components"
	ToolTutorials     = "get_examples_and_tutorials"
)

func categoryNames() []string {
	out := make([]string, len(types.Categories))
	for i, c := range types.Categories {
		out[i] = string(c)
	}
	return out
}

func (s *Server) registerTools() {
	// Generation
	s.register(mcplib.NewTool(ToolGenerate,
		mcplib.WithDescription("Generate Reablocks code from a natural language description of a UI fragment"),
		mcplib.WithString("description", mcplib.Required(),
			mcplib.Description("What the interface should contain, e.g. 'analytics dashboard with a user table'")),
		mcplib.WithArray("requirements",
			mcplib.Description("Extra intent labels such as form, table, dashboard"),
			mcplib.Items(map[string]any{"type": "string"})),
		mcplib.WithObject("styling",
			mcplib.Description("Optional styling preferences"),
			mcplib.Properties(map[string]any{
				"theme":       map[string]any{"type": "string", "enum": []string{"light", "dark", "auto"}},
				"spacing":     map[string]any{"type": "string", "enum": []string{"compact", "normal", "spacious"}},
				"colorScheme": map[string]any{"type": "string"},
			})),
	), s.handleGenerate)

	// Catalog
	s.register(mcplib.NewTool(ToolExplore,
		mcplib.WithDescription("Browse Reablocks components by category or search text"),
		mcplib.WithString("category",
			mcplib.Description("Restrict to one category"),
			mcplib.Enum(categoryNames()...)),
		mcplib.WithString("search",
			mcplib.Description("Case-insensitive text matched against name, description and use cases")),
	), s.handleExplore)

	s.register(mcplib.NewTool(ToolAsk,
		mcplib.WithDescription("Ask which Reablocks components fit a need"),
		mcplib.WithString("question", mcplib.Required(),
			mcplib.Description("Question about components, e.g. 'how do I show a confirmation popup?'")),
	), s.handleAsk)

	s.register(mcplib.NewTool(ToolDocumentation,
		mcplib.WithDescription("Full documentation for one Reablocks component"),
		mcplib.WithString("componentName", mcplib.Required(),
			mcplib.Description("Exact component name, e.g. Button")),
	), s.handleDocumentation)

	s.register(mcplib.NewTool(ToolListAll,
		mcplib.WithDescription("List every Reablocks component grouped by category"),
	), s.handleListAll)

	// Learning
	s.register(mcplib.NewTool(ToolTutorials,
		mcplib.WithDescription("Examples and tutorials for Reablocks"),
		mcplib.WithString("type",
			mcplib.Description("Which tutorial sections to include"),
			mcplib.Enum(report.TutorialAll, report.TutorialBasic, report.TutorialPatterns, report.TutorialAdvanced)),
		mcplib.WithString("skill_level",
			mcplib.Description("Marks the section suited to this level"),
			mcplib.Enum(report.LevelBeginner, report.LevelIntermediate, report.LevelAdvanced)),
	), s.handleTutorials)
}

// --- Tool Handlers ---

func (s *Server) handleGenerate(pl *pipeline, args json.RawMessage) (string, error) {
	var p struct {
		Description  string             `json:"description" validate:"required"`
		Requirements []string           `json:"requirements"`
		Styling      types.StylingHints `json:"styling"`
	}
	if err := s.decode(args, &p); err != nil {
		return "", err
	}

	res := pl.generator.Generate(generator.Input{
		Description:  p.Description,
		Requirements: p.Requirements,
		Styling:      p.Styling,
	})
	return s.renderer.Generation(res)
}

func (s *Server) handleExplore(pl *pipeline, args json.RawMessage) (string, error) {
	var p struct {
		Category string `json:"category" validate:"omitempty,oneof=elements form layout overlay data feedback"`
		Search   string `json:"search"`
	}
	if err := s.decode(args, &p); err != nil {
		return "", err
	}

	category := types.Category(p.Category)
	entries := search.Explore(pl.catalog, search.Filter{Category: category, Query: p.Search})
	return s.renderer.Exploration(entries, category, p.Search)
}

func (s *Server) handleAsk(pl *pipeline, args json.RawMessage) (string, error) {
	var p struct {
		Question string `json:"question" validate:"required"`
	}
	if err := s.decode(args, &p); err != nil {
		return "", err
	}

	var entries []types.ComponentDescriptor
	for _, name := range pl.generator.Suggest(p.Question) {
		if e, ok := pl.catalog.Get(name); ok {
			entries = append(entries, e)
		}
	}
	return s.renderer.Answer(p.Question, entries)
}

func (s *Server) handleDocumentation(pl *pipeline, args json.RawMessage) (string, error) {
	var p struct {
		ComponentName string `json:"componentName" validate:"required"`
	}
	if err := s.decode(args, &p); err != nil {
		return "", err
	}

	e, ok := pl.catalog.Get(p.ComponentName)
	if !ok {
		return s.renderer.NotFound(p.ComponentName, pl.catalog.Names()), nil
	}
	return s.renderer.Documentation(e)
}

func (s *Server) handleListAll(pl *pipeline, args json.RawMessage) (string, error) {
	return s.renderer.Listing(pl.catalog.Grouped())
}

func (s *Server) handleTutorials(pl *pipeline, args json.RawMessage) (string, error) {
	var p struct {
		Type       string `json:"type" validate:"omitempty,oneof=all basic patterns advanced"`
		SkillLevel string `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	}
	if err := s.decode(args, &p); err != nil {
		return "", err
	}
	return s.renderer.Tutorials(p.Type, p.SkillLevel)
}
