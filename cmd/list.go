package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <page.html>",
	Short: "List the code blocks of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		in, buttons, err := loadPage(args[0], injectorOptions(cfg, newLogger(cfg)))
		if err != nil {
			return err
		}
		if len(buttons) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No code blocks matching %q\n", cfg.Selector)
			return nil
		}
		for _, b := range buttons {
			text, ok := in.Text(b)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  (no text node)\n", b.ID)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", b.ID, firstLine(text, 72))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// firstLine returns the first non-empty line of s, cut to limit runes.
func firstLine(s string, limit int) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if r := []rune(line); len(r) > limit {
			return string(r[:limit-3]) + "..."
		}
		return line
	}
	return ""
}
