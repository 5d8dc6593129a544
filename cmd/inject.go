package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/copybtn/internal/progress"
	"github.com/ziadkadry99/copybtn/internal/site"
)

var injectCmd = &cobra.Command{
	Use:   "inject [site-dir]",
	Short: "Add copy buttons to every page of a built site",
	Long: `Rewrites every HTML page under the site directory: a copy button is
inserted in front of each matching code block, and the page is linked to
copy-button.js and copy-button.css, which are written to the site root.
Pages that already load copy-button.js are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInject,
}

func init() {
	injectCmd.Flags().Bool("dry-run", false, "report what would change without writing")
	rootCmd.AddCommand(injectCmd)
}

func runInject(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	root := cfg.SiteDir
	if len(args) == 1 {
		root = args[0]
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	p := &site.Processor{
		Root:     root,
		Include:  cfg.Include,
		Exclude:  cfg.Exclude,
		Options:  injectorOptions(cfg, logger),
		Reporter: progress.NewReporter("Injecting copy buttons"),
		DryRun:   dryRun,
		Logger:   logger,
	}
	stats, err := p.Run()
	if err != nil {
		return fmt.Errorf("injecting copy buttons: %w", err)
	}

	verb := "Injected"
	if dryRun {
		verb = "Would inject"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d buttons into %d of %d pages (%d already processed)\n",
		verb, stats.Buttons, stats.Changed, stats.Scanned, stats.Skipped)
	return nil
}
