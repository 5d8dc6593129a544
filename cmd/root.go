package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "copybtn",
	Short: "Copy-to-clipboard buttons for highlighted code blocks",
	Long: `copybtn adds a copy button in front of every syntax-highlighted code
block of a rendered HTML site. It can post-process an existing build,
render Markdown into highlighted pages, and copy a block straight to
the system clipboard from the terminal.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".copybtn.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
