package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/config"
	"github.com/saeedalam/reablocks-mcp/internal/generator"
	"github.com/saeedalam/reablocks-mcp/internal/report"
)

// toolHandler handles a tool call against one pipeline snapshot and returns
// its text content
type toolHandler func(p *pipeline, args json.RawMessage) (string, error)

type tool struct {
	definition mcplib.Tool
	handler    toolHandler
}

// pipeline pairs a catalog with the generator built over it
type pipeline struct {
	catalog   *catalog.Catalog
	generator *generator.Generator
}

// Server exposes the catalog and generation pipeline as MCP tools
type Server struct {
	cfg      config.ServerConfig
	current  atomic.Pointer[pipeline]
	renderer *report.Renderer
	validate *validator.Validate
	logger   *zap.Logger
	tools    []tool
	index    map[string]int
	session  *SessionTracker
}

// NewServer creates a new MCP server over the given catalog
func NewServer(cfg config.ServerConfig, c *catalog.Catalog, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := report.New()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		renderer: renderer,
		validate: newValidator(),
		logger:   logger,
		index:    make(map[string]int),
		session:  newSessionTracker(),
	}
	if err := s.SetCatalog(c); err != nil {
		return nil, err
	}

	s.registerTools()

	return s, nil
}

// SetCatalog swaps the catalog served by every subsequent tool call. Calls
// already running finish against the catalog they started with.
func (s *Server) SetCatalog(c *catalog.Catalog) error {
	gen, err := generator.New(c)
	if err != nil {
		return err
	}
	s.current.Store(&pipeline{catalog: c, generator: gen})
	return nil
}

// Catalog returns the catalog currently being served
func (s *Server) Catalog() *catalog.Catalog {
	return s.current.Load().catalog
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) register(definition mcplib.Tool, handler toolHandler) {
	s.index[definition.Name] = len(s.tools)
	s.tools = append(s.tools, tool{definition: definition, handler: handler})
}

// Tools returns the tool definitions in registration order
func (s *Server) Tools() []mcplib.Tool {
	out := make([]mcplib.Tool, len(s.tools))
	for i, t := range s.tools {
		out[i] = t.definition
	}
	return out
}

// Session returns the tool call tracker
func (s *Server) Session() *SessionTracker {
	return s.session
}

// Call runs the named tool. It never fails the caller: unknown tools,
// handler errors and panics all come back as text with isError set.
func (s *Server) Call(ctx context.Context, name string, args json.RawMessage) (text string, isError bool) {
	callID := uuid.NewString()
	log := s.logger.With(zap.String("tool", name), zap.String("call_id", callID))
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Tool panicked", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			text, isError = fmt.Sprintf("Error: internal failure in %s: %v", name, r), true
		}
		s.session.record(name, isError)
		log.Debug("Tool finished", zap.Duration("elapsed", time.Since(start)), zap.Bool("is_error", isError))
	}()

	i, ok := s.index[name]
	if !ok {
		log.Warn("Unknown tool")
		return fmt.Sprintf("Error: tool %q not found", name), true
	}
	if err := ctx.Err(); err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}

	log.Debug("Tool called", zap.Int("args_bytes", len(args)))
	out, err := s.tools[i].handler(s.current.Load(), args)
	if err != nil {
		log.Info("Tool failed", zap.Error(err))
		return fmt.Sprintf("Error: %v", err), true
	}
	return out, false
}

// MCPServer builds the protocol server with every tool registered
func (s *Server) MCPServer() *server.MCPServer {
	ms := server.NewMCPServer(
		s.cfg.Name,
		s.cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions(s.cfg.Instructions),
	)
	for _, t := range s.tools {
		ms.AddTool(t.definition, s.protocolHandler(t.definition.Name))
	}
	return ms
}

func (s *Server) protocolHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcplib.NewToolResultError(fmt.Sprintf("Error: invalid arguments: %v", err)), nil
		}
		text, isError := s.Call(ctx, name, args)
		if isError {
			return mcplib.NewToolResultError(text), nil
		}
		return mcplib.NewToolResultText(text), nil
	}
}

// Run serves MCP over the given streams until ctx is done or in closes
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.MCPServer())
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	s.logger.Info("MCP server listening on stdio",
		zap.String("name", s.cfg.Name),
		zap.String("version", s.cfg.Version),
		zap.Int("tools", len(s.tools)),
		zap.Int("components", s.Catalog().Len()))

	err := stdio.Listen(ctx, in, out)

	summary := s.session.Summary()
	s.logger.Info("MCP server stopped",
		zap.Int("tool_calls", summary.ToolCalls),
		zap.Int("failures", summary.Failures),
		zap.Duration("uptime", time.Since(summary.StartedAt)))

	if err != nil && ctx.Err() == nil && err != io.EOF {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}

// decode unmarshals tool arguments into p and validates them
func (s *Server) decode(args json.RawMessage, p interface{}) error {
	if len(args) > 0 {
		if err := json.Unmarshal(args, p); err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
	}
	if err := s.validate.Struct(p); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
