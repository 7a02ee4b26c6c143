package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saeedalam/reablocks-mcp/internal/report"
)

var componentsPretty bool

var componentsCmd = &cobra.Command{
	Use:   "components [name]",
	Short: "List components or show one component's documentation",
	Long: `Without arguments, list every component grouped by category.
With a name, print that component's full documentation.

Examples:
  reablocks-mcp components
  reablocks-mcp components Dialog`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComponents,
}

func init() {
	componentsCmd.Flags().BoolVar(&componentsPretty, "pretty", false, "Render the output for the terminal")
}

func runComponents(cmd *cobra.Command, args []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	renderer, err := report.New()
	if err != nil {
		return err
	}

	var out string
	if len(args) == 0 {
		out, err = renderer.Listing(c.Grouped())
	} else {
		e, ok := c.Get(args[0])
		if !ok {
			return fmt.Errorf("%s", renderer.NotFound(args[0], c.Names()))
		}
		out, err = renderer.Documentation(e)
	}
	if err != nil {
		return err
	}
	return printMarkdown(cmd, out, componentsPretty)
}
