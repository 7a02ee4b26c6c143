// Package generator runs the classify, suggest and compose pipeline.
package generator

import (
	"fmt"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/compose"
	"github.com/saeedalam/reablocks-mcp/internal/intent"
	"github.com/saeedalam/reablocks-mcp/internal/search"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

// Input is a single generation call
type Input struct {
	Description  string
	Requirements []string // caller supplied, appended after detected ones
	Styling      types.StylingHints
}

// Result carries every intermediate value of the pipeline
type Result struct {
	Request     types.GenerationRequest
	Suggested   []string
	Composition compose.Composition
}

// Generator is safe for concurrent use; it holds only immutable state.
type Generator struct {
	suggester *search.Suggester
	composer  *compose.Composer
}

// New creates a generator over the given catalog
func New(c *catalog.Catalog) (*Generator, error) {
	composer, err := compose.New()
	if err != nil {
		return nil, fmt.Errorf("init composer: %w", err)
	}
	return &Generator{
		suggester: search.NewSuggester(c),
		composer:  composer,
	}, nil
}

// Generate classifies the description, merges caller requirements, suggests
// components and renders the code.
func (g *Generator) Generate(in Input) Result {
	req := intent.Classify(in.Description).Request(in.Description, in.Styling)
	for _, extra := range in.Requirements {
		if extra != "" && !req.HasRequirement(extra) {
			req.Requirements = append(req.Requirements, extra)
		}
	}

	suggested := g.suggester.Suggest(in.Description)
	return Result{
		Request:     req,
		Suggested:   suggested,
		Composition: g.composer.Compose(req, suggested),
	}
}

// Suggest exposes the keyword suggester used by the pipeline
func (g *Generator) Suggest(text string) []string {
	return g.suggester.Suggest(text)
}
