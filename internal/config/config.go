package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load
const (
	EnvConfigPath = "REABLOCKS_MCP_CONFIG"
	EnvLogLevel   = "REABLOCKS_MCP_LOG_LEVEL"
	EnvCatalog    = "REABLOCKS_MCP_CATALOG"
)

// Config holds all reablocks-mcp configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// ServerConfig configures the MCP server identity.
type ServerConfig struct {
	Name         string `yaml:"name"`
	Version      string `yaml:"version"`
	Instructions string `yaml:"instructions"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// CatalogConfig points at an optional external catalog file.
type CatalogConfig struct {
	Path           string        `yaml:"path"`            // empty means the embedded catalog
	ReloadInterval time.Duration `yaml:"reload_interval"` // poll Path while serving; 0 disables
}

const defaultInstructions = `Reablocks component assistant.
Use generate_intelligent_dashboard to turn a UI description into Reablocks code,
explore_reablocks_components and list_all_components to browse the catalog,
get_component_documentation for the props of a single component.`

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:         "reablocks-mcp",
			Version:      "1.0.0",
			Instructions: defaultInstructions,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
			// defaults
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv(EnvCatalog); path != "" {
		c.Catalog.Path = path
	}
}

// Validate rejects unknown logging settings.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q (want debug, info, warn or error)", c.Logging.Level)
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q (want console or json)", c.Logging.Format)
	}

	if c.Catalog.ReloadInterval < 0 {
		return fmt.Errorf("invalid catalog.reload_interval %s (must not be negative)", c.Catalog.ReloadInterval)
	}

	if strings.TrimSpace(c.Server.Name) == "" {
		return fmt.Errorf("server.name is required")
	}
	return nil
}
