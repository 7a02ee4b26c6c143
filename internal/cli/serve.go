package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/mcp"
	"github.com/saeedalam/reablocks-mcp/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for IDE integration",
	Long: `Start the MCP (Model Context Protocol) server.

This allows IDE agents like Claude Desktop, Cursor, or other MCP-compatible
tools to generate Reablocks code and browse the component catalog.

The server communicates via stdio (standard input/output) using JSON-RPC.
Logs are written to stderr. With catalog.path and catalog.reload_interval
set in the config, edits to the catalog file are picked up while serving.

Examples:
  reablocks-mcp serve
  reablocks-mcp serve --config reablocks.yaml --verbose`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}

	logger.Info("Starting reablocks-mcp",
		zap.String("version", buildVersion),
		zap.String("commit", buildCommit),
		zap.String("built", buildDate))

	server, err := mcp.NewServer(serverIdentity(cfg), c, logger)
	if err != nil {
		return err
	}

	if cfg.Catalog.Path != "" && cfg.Catalog.ReloadInterval > 0 {
		reloader, err := worker.NewReloader(cfg.Catalog.Path, cfg.Catalog.ReloadInterval, func(c *catalog.Catalog) {
			if err := server.SetCatalog(c); err != nil {
				logger.Error("Failed to apply reloaded catalog", zap.Error(err))
			}
		}, logger)
		if err != nil {
			return err
		}
		if err := reloader.Start(); err != nil {
			return err
		}
		defer reloader.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Blocks until stdin closes or a signal arrives
	return server.Run(ctx, os.Stdin, os.Stdout)
}
