package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saeedalam/reablocks-mcp/internal/generator"
	"github.com/saeedalam/reablocks-mcp/internal/report"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

var (
	genRequirements []string
	genTheme        string
	genSpacing      string
	genColorScheme  string
	genPretty       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate Reablocks code from a description",
	Long: `Run the generation pipeline locally and print the report.

The description is classified into a request type, matched against the
component catalog and composed into a TSX template. Without an argument
the description is asked for interactively.

Examples:
  reablocks-mcp generate "analytics dashboard with a user table"
  reablocks-mcp generate "signup form" --theme dark --spacing compact
  reablocks-mcp generate --pretty`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceVarP(&genRequirements, "requirement", "r", nil, "Extra requirement label (repeatable)")
	generateCmd.Flags().StringVar(&genTheme, "theme", "", "Theme hint: light, dark or auto")
	generateCmd.Flags().StringVar(&genSpacing, "spacing", "", "Spacing hint: compact, normal or spacious")
	generateCmd.Flags().StringVar(&genColorScheme, "color-scheme", "", "Color scheme hint")
	generateCmd.Flags().BoolVar(&genPretty, "pretty", false, "Render the report for the terminal")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var description string
	if len(args) > 0 {
		description = args[0]
	} else {
		var err error
		description, err = askDescription()
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}

	styling, err := stylingFlags()
	if err != nil {
		return err
	}

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	gen, err := generator.New(c)
	if err != nil {
		return err
	}
	renderer, err := report.New()
	if err != nil {
		return err
	}

	res := gen.Generate(generator.Input{
		Description:  description,
		Requirements: genRequirements,
		Styling:      styling,
	})
	logger.Debug("Generated",
		zap.String("type", string(res.Request.Type)),
		zap.String("template", string(res.Composition.Template)),
		zap.Strings("components", res.Composition.Components))

	out, err := renderer.Generation(res)
	if err != nil {
		return err
	}
	return printMarkdown(cmd, out, genPretty)
}

func askDescription() (string, error) {
	var out string
	prompt := &survey.Input{
		Message: "Describe the UI you want:",
		Help:    "e.g. analytics dashboard with a user table",
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", fmt.Errorf("cancelled")
		}
		return "", err
	}
	return out, nil
}

func stylingFlags() (types.StylingHints, error) {
	h := types.StylingHints{
		Theme:       strings.ToLower(genTheme),
		Spacing:     strings.ToLower(genSpacing),
		ColorScheme: genColorScheme,
	}
	switch h.Theme {
	case "", "light", "dark", "auto":
	default:
		return h, fmt.Errorf("invalid --theme %q (want light, dark or auto)", genTheme)
	}
	switch h.Spacing {
	case "", "compact", "normal", "spacious":
	default:
		return h, fmt.Errorf("invalid --spacing %q (want compact, normal or spacious)", genSpacing)
	}
	return h, nil
}

// printMarkdown writes md to the command output, rendered for a terminal when pretty is set
func printMarkdown(cmd *cobra.Command, md string, pretty bool) error {
	if pretty {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("terminal renderer: %w", err)
		}
		rendered, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		md = rendered
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), md)
	return err
}
