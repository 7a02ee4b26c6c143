package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/config"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	s, err := NewServer(config.DefaultConfig().Server, c, nil)
	require.NoError(t, err)
	return s
}

func mcpTestTool(name string) mcplib.Tool {
	return mcplib.NewTool(name, mcplib.WithDescription("test tool"))
}

func call(t *testing.T, s *Server, name string, args interface{}) (string, bool) {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return s.Call(context.Background(), name, raw)
}

// =============================================================================
// REGISTRATION
// =============================================================================

func TestToolsRegisteredInOrder(t *testing.T) {
	s := setupTestServer(t)

	var names []string
	for _, tool := range s.Tools() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, tool.Name)
	}
	assert.Equal(t, []string{
		ToolGenerate,
		ToolExplore,
		ToolAsk,
		ToolDocumentation,
		ToolListAll,
		ToolTutorials,
	}, names)
}

func TestToolSchemas(t *testing.T) {
	s := setupTestServer(t)
	tools := s.Tools()

	assert.Equal(t, []string{"description"}, tools[0].InputSchema.Required)
	assert.Contains(t, tools[0].InputSchema.Properties, "styling")
	assert.Contains(t, tools[0].InputSchema.Properties, "requirements")
	assert.Equal(t, []string{"question"}, tools[2].InputSchema.Required)
	assert.Equal(t, []string{"componentName"}, tools[3].InputSchema.Required)
	assert.Empty(t, tools[4].InputSchema.Required)
}

// =============================================================================
// TOOLS
// =============================================================================

func TestGenerateTool(t *testing.T) {
	s := setupTestServer(t)

	out, isErr := call(t, s, ToolGenerate, map[string]interface{}{
		"description": "Create a login form with email, password fields, and validation",
		"styling":     map[string]string{"theme": "dark", "spacing": "compact"},
	})
	require.False(t, isErr, out)
	assert.Contains(t, out, "**Detected type:** form")
	assert.Contains(t, out, "**Detected components:** Input")
	assert.Contains(t, out, "import { Input, Button, Card, Stack } from 'reablocks';")
	assert.Contains(t, out, "export const ContactForm")
	assert.Contains(t, out, "**Styling:** theme dark, spacing compact")
}

func TestGenerateToolIsDeterministic(t *testing.T) {
	s := setupTestServer(t)
	args := map[string]interface{}{"description": "analytics dashboard with a grid of cards"}

	first, isErr := call(t, s, ToolGenerate, args)
	require.False(t, isErr)
	second, _ := call(t, s, ToolGenerate, args)
	assert.Equal(t, first, second)
}

func TestGenerateToolValidation(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name string
		args interface{}
		want string
	}{
		{"missing description", map[string]interface{}{}, "description is required"},
		{"bad theme", map[string]interface{}{"description": "x", "styling": map[string]string{"theme": "neon"}}, "theme must be one of: light, dark, auto"},
		{"bad spacing", map[string]interface{}{"description": "x", "styling": map[string]string{"spacing": "huge"}}, "spacing must be one of: compact, normal, spacious"},
		{"wrong type", map[string]interface{}{"description": 42}, "invalid arguments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, isErr := call(t, s, ToolGenerate, tt.args)
			assert.True(t, isErr)
			assert.True(t, strings.HasPrefix(out, "Error: "), out)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestExploreTool(t *testing.T) {
	s := setupTestServer(t)

	out, isErr := call(t, s, ToolExplore, map[string]string{"category": "overlay"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "## Dialog")
	assert.NotContains(t, out, "## Button")

	out, isErr = call(t, s, ToolExplore, map[string]string{"search": "FORMS"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "## Button")
	assert.Contains(t, out, "## Input")

	out, isErr = call(t, s, ToolExplore, map[string]string{"category": "charts"})
	assert.True(t, isErr)
	assert.Contains(t, out, "category must be one of")
}

func TestAskTool(t *testing.T) {
	s := setupTestServer(t)

	out, isErr := call(t, s, ToolAsk, map[string]string{"question": "How do I show a modal with a dropdown?"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "## Dialog (overlay)")
	assert.Contains(t, out, "## Select (form)")
	assert.Less(t, strings.Index(out, "## Dialog"), strings.Index(out, "## Select"))

	out, isErr = call(t, s, ToolAsk, map[string]string{"question": "what should I use?"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "good starting set")
}

func TestDocumentationTool(t *testing.T) {
	s := setupTestServer(t)

	out, isErr := call(t, s, ToolDocumentation, map[string]string{"componentName": "Select"})
	require.False(t, isErr, out)
	assert.True(t, strings.HasPrefix(out, "# Select\n"))

	out, isErr = call(t, s, ToolDocumentation, map[string]string{"componentName": "NoSuchWidget"})
	assert.False(t, isErr, "not found is a designed response")
	assert.Contains(t, out, "Button, Input, Card, Dialog, Stack, Select, DataSize, Notification")
}

func TestListAllTool(t *testing.T) {
	s := setupTestServer(t)

	out, isErr := s.Call(context.Background(), ToolListAll, nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, "8 components in 6 categories.")
	assert.Less(t, strings.Index(out, "## elements"), strings.Index(out, "## feedback"))
}

func TestTutorialsTool(t *testing.T) {
	s := setupTestServer(t)

	out, isErr := call(t, s, ToolTutorials, map[string]string{})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Getting Started ⭐")

	out, isErr = call(t, s, ToolTutorials, map[string]string{"type": "advanced", "skill_level": "advanced"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Advanced Techniques ⭐")
	assert.NotContains(t, out, "Getting Started")

	out, isErr = call(t, s, ToolTutorials, map[string]string{"skill_level": "guru"})
	assert.True(t, isErr)
	assert.Contains(t, out, "skill_level must be one of")
}

// =============================================================================
// BOUNDARY
// =============================================================================

func TestUnknownTool(t *testing.T) {
	s := setupTestServer(t)
	out, isErr := s.Call(context.Background(), "delete_everything", nil)
	assert.True(t, isErr)
	assert.Equal(t, `Error: tool "delete_everything" not found`, out)
}

func TestPanicBecomesText(t *testing.T) {
	s := setupTestServer(t)
	s.register(mcpTestTool("explode"), func(*pipeline, json.RawMessage) (string, error) {
		panic("boom")
	})

	out, isErr := s.Call(context.Background(), "explode", nil)
	assert.True(t, isErr)
	assert.Contains(t, out, "Error: internal failure in explode: boom")
}

func TestCancelledContext(t *testing.T) {
	s := setupTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, isErr := s.Call(ctx, ToolListAll, nil)
	assert.True(t, isErr)
	assert.Contains(t, out, "context canceled")
}

func TestSessionCounts(t *testing.T) {
	s := setupTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Call(context.Background(), ToolListAll, nil)
		}()
	}
	wg.Wait()
	s.Call(context.Background(), "missing", nil)

	summary := s.Session().Summary()
	assert.Equal(t, 21, summary.ToolCalls)
	assert.Equal(t, 1, summary.Failures)
	require.Len(t, summary.ByTool, 2)
	assert.Equal(t, ToolListAll, summary.ByTool[0].Tool)
	assert.Equal(t, 20, summary.ByTool[0].Calls)
	assert.Equal(t, "missing", summary.ByTool[1].Tool)
	assert.Equal(t, 1, summary.ByTool[1].Failures)
}

func TestProtocolRoundTrip(t *testing.T) {
	s := setupTestServer(t)
	ms := s.MCPServer()
	ctx := context.Background()

	initResp := ms.HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	raw, err := json.Marshal(initResp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"reablocks-mcp"`)

	list := ms.HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	raw, err = json.Marshal(list)
	require.NoError(t, err)
	for _, tool := range s.Tools() {
		assert.Contains(t, string(raw), `"`+tool.Name+`"`)
	}

	res := ms.HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_component_documentation","arguments":{"componentName":"NoSuchWidget"}}}`))
	raw, err = json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Button, Input, Card, Dialog, Stack, Select, DataSize, Notification")

	res = ms.HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"ask_about_components","arguments":{}}}`))
	raw, err = json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"isError":true`)
	assert.Contains(t, string(raw), "question is required")
}

func TestSetCatalogSwapsPipeline(t *testing.T) {
	s := setupTestServer(t)

	small, err := catalog.New([]types.ComponentDescriptor{
		{Name: "Badge", Category: types.CategoryElements, Keywords: []string{"badge"}},
	})
	require.NoError(t, err)
	require.NoError(t, s.SetCatalog(small))
	assert.Same(t, small, s.Catalog())

	out, isErr := s.Call(context.Background(), ToolListAll, nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, "1 components in 1 categories.")

	out, isErr = call(t, s, ToolGenerate, map[string]string{"description": "a badge"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "**Detected components:** Badge")
}
