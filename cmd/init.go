package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/copybtn/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize copybtn configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure copybtn for your site and generates a .copybtn.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(cfgFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgFile)
		}

		defaults, _ := cmd.Flags().GetBool("defaults")
		if defaults {
			if err := config.DefaultConfig().Save(cfgFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", cfgFile)
			return nil
		}

		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	initCmd.Flags().Bool("defaults", false, "write the default configuration without prompting")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
