package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/internal/storage"
)

var (
	exportDB   string
	exportYAML string
	exportJSON string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with the component catalog",
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog for external tooling",
	Long: `Write the active catalog to a SQLite database, a YAML file or a JSON
file. The YAML output can be edited and used as catalog.path in the config.

Examples:
  reablocks-mcp catalog export --db components.db
  reablocks-mcp catalog export --yaml catalog.yaml --json catalog.json`,
	Args: cobra.NoArgs,
	RunE: runCatalogExport,
}

func init() {
	catalogExportCmd.Flags().StringVar(&exportDB, "db", "", "SQLite database path")
	catalogExportCmd.Flags().StringVar(&exportYAML, "yaml", "", "YAML file path")
	catalogExportCmd.Flags().StringVar(&exportJSON, "json", "", "JSON file path")
	catalogCmd.AddCommand(catalogExportCmd)
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	if exportDB == "" && exportYAML == "" && exportJSON == "" {
		return fmt.Errorf("nothing to export: pass --db, --yaml or --json")
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}

	var written []string
	if exportDB != "" {
		if err := exportSQLite(exportDB, c); err != nil {
			return err
		}
		written = append(written, exportDB)
	}
	if exportYAML != "" {
		if err := storage.WriteCatalogYAML(exportYAML, c); err != nil {
			return err
		}
		written = append(written, exportYAML)
	}
	if exportJSON != "" {
		if err := storage.WriteCatalogJSON(exportJSON, c); err != nil {
			return err
		}
		written = append(written, exportJSON)
	}

	for _, p := range written {
		logger.Debug("Catalog exported", zap.String("path", p))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d components to %s\n", c.Len(), strings.Join(baseNames(written), ", "))
	return nil
}

func exportSQLite(path string, c *catalog.Catalog) (err error) {
	db, err := storage.OpenCatalogDB(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return db.ExportCatalog(c)
}

func baseNames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
