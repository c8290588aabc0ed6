package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spachava753/arthas-copy/internal/arthas"
	"github.com/spachava753/arthas-copy/internal/commands"
	"github.com/spachava753/arthas-copy/internal/editor"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>[:line[:column]]",
	Short: "Explain how the method under the cursor is resolved",
	Long: `Run every resolution strategy at the cursor and print what each one found,
followed by the reference the watch command would use.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, _, err := commandOptions(cmd, arthas.ModeWatch)
		if err != nil {
			return err
		}
		opts.Path, opts.Cursor, err = location(cmd, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		styled := out == os.Stdout && editor.NewMessenger().Styled
		return commands.Resolve(cmd.Context(), commands.ResolveOptions{
			CommandOptions: opts,
			Writer:         out,
			Renderer:       editor.NewRenderer(styled),
		})
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
