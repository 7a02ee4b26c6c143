package generator

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/compose"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	g, err := New(c)
	require.NoError(t, err)
	return g
}

func TestGenerateLoginForm(t *testing.T) {
	g := newGenerator(t)
	res := g.Generate(Input{Description: "Create a login form with email, password fields, and validation"})

	assert.Contains(t, res.Request.Requirements, "form")
	assert.Equal(t, types.RequestForm, res.Request.Type)
	assert.Equal(t, []string{"Input"}, res.Suggested)
	assert.Equal(t, compose.TemplateForm, res.Composition.Template)

	code := res.Composition.Code
	assert.Contains(t, code, "import { Input, Button, Card, Stack } from 'reablocks';")
	assert.Contains(t, code, "key: 'name'")
	assert.Contains(t, code, "key: 'email'")
	assert.Contains(t, code, "key: 'message'")
	assert.NotContains(t, code, "password")
}

func TestGenerateMergesCallerRequirements(t *testing.T) {
	g := newGenerator(t)
	res := g.Generate(Input{
		Description:  "sales dashboard",
		Requirements: []string{"dashboard", "table", "", "table"},
	})

	assert.Equal(t, []string{"dashboard", "table"}, res.Request.Requirements)
	// Type comes from classification only.
	assert.Equal(t, types.RequestDashboard, res.Request.Type)
	assert.Equal(t, compose.TemplateTable, res.Composition.Template)
}

func TestGenerateCarriesStyling(t *testing.T) {
	g := newGenerator(t)
	styling := types.StylingHints{Theme: "dark", Spacing: "compact", ColorScheme: "blue"}
	res := g.Generate(Input{Description: "a card", Styling: styling})

	assert.Equal(t, styling, res.Request.Styling)
	assert.Equal(t, compose.TemplateGeneric, res.Composition.Template)
	assert.Equal(t, compose.LayoutFlex, res.Composition.Layout)
}

func TestGenerateIsIdempotent(t *testing.T) {
	g := newGenerator(t)
	descriptions := []string{
		"",
		"analytics dashboard with a grid of cards",
		"navigation form",
		"user table with edit buttons",
		"modal dialog with a dropdown and a toast",
	}
	for _, d := range descriptions {
		a := g.Generate(Input{Description: d})
		b := g.Generate(Input{Description: d})
		assert.Equal(t, a.Composition.Code, b.Composition.Code, d)
		assert.Equal(t, a, b, d)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t)

	g := newGenerator(t)
	want := g.Generate(Input{Description: "dashboard with a table of users"}).Composition.Code

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Generate(Input{Description: "dashboard with a table of users"}).Composition.Code
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, fmt.Sprintf("goroutine %d", i))
	}
}
