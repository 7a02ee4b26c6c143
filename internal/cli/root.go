package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/config"
	"github.com/saeedalam/reablocks-mcp/internal/logging"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reablocks-mcp",
	Short: "Reablocks component assistant over MCP",
	Long: `reablocks-mcp - Reablocks UI code generation for AI assistants

Turns natural language descriptions of UI fragments into Reablocks code and
answers questions about the component catalog. IDE agents talk to it over
the Model Context Protocol; the same pipeline is available from the shell.

Quick Start:
  reablocks-mcp serve                          Start MCP server on stdio
  reablocks-mcp generate "login form"          Generate code locally
  reablocks-mcp components Button              Show component docs
  reablocks-mcp catalog export --db out.db     Export the catalog`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = os.Getenv(config.EnvConfigPath)
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger.Debug("Configuration loaded",
			zap.String("config", path),
			zap.String("catalog", cfg.Catalog.Path))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(componentsCmd)
	rootCmd.AddCommand(catalogCmd)
	// versionCmd is registered in version.go
}

// loadCatalog returns the catalog named by the config, or the embedded one
func loadCatalog() (*catalog.Catalog, error) {
	if cfg != nil && cfg.Catalog.Path != "" {
		c, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded external catalog",
			zap.String("path", cfg.Catalog.Path),
			zap.Int("components", c.Len()))
		return c, nil
	}
	return catalog.Default()
}
