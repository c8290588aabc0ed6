package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spachava753/arthas-copy/internal/commands"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage arthas-copy configuration",
}

var configLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the configuration and print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig()
		if err != nil {
			return err
		}
		return commands.ConfigLint(cmd.Context(), commands.ConfigLintOptions{
			Config: cfg,
			Path:   path,
			Writer: cmd.OutOrStdout(),
		})
	},
}

func init() {
	configCmd.AddCommand(configLintCmd)
	rootCmd.AddCommand(configCmd)
}
