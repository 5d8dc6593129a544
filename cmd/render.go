package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/copybtn/internal/site"
)

var renderCmd = &cobra.Command{
	Use:   "render [docs-dir] [output-dir]",
	Short: "Render Markdown into highlighted HTML pages with copy buttons",
	Long:  `Converts every Markdown file under the docs directory into a highlighted HTML page, with a copy button on each code block.`,
	Args:  cobra.MaximumNArgs(2),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().String("title", "", "site title (defaults to the working directory name)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	docsDir, outputDir := cfg.DocsDir, cfg.OutputDir
	if len(args) > 0 {
		docsDir = args[0]
	}
	if len(args) > 1 {
		outputDir = args[1]
	}
	if _, err := os.Stat(docsDir); os.IsNotExist(err) {
		return fmt.Errorf("docs directory not found at %s", docsDir)
	}

	// Derive the title from the working directory.
	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = "Documentation"
		if wd, wdErr := os.Getwd(); wdErr == nil && filepath.Base(wd) != "." {
			title = filepath.Base(wd)
		}
	}

	generator := site.NewGenerator(docsDir, outputDir, title)
	generator.Style = cfg.Style
	generator.Options = injectorOptions(cfg, logger)
	generator.Logger = logger
	pageCount, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("rendering site: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Static site generated: %s (%d pages)\n", outputDir, pageCount)
	return nil
}
