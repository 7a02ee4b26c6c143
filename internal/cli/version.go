package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saeedalam/reablocks-mcp/internal/config"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// SetVersionInfo sets the build version info from ldflags
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

// serverIdentity returns the identity advertised in the MCP initialize
// response. Release builds report their own version unless the config
// replaces the default one.
func serverIdentity(c *config.Config) config.ServerConfig {
	server := c.Server
	if buildVersion != "dev" && server.Version == config.DefaultConfig().Server.Version {
		server.Version = buildVersion
	}
	return server
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of reablocks-mcp",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "reablocks-mcp %s (commit: %s, built: %s)\n", buildVersion, buildCommit, buildDate)

		server := serverIdentity(cfg)
		fmt.Fprintf(out, "MCP server: %s %s\n", server.Name, server.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
