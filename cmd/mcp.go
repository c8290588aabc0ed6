package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spachava753/arthas-copy/internal/arthas"
	mcpinternal "github.com/spachava753/arthas-copy/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
	Long:  `Expose Arthas command building to MCP clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve Arthas command tools over stdio",
	Long: `Start an MCP server on stdin/stdout. Every command mode becomes a tool
named arthas_<mode>_command that takes a file, line and column and returns
the command text. Nothing is copied to the clipboard.`,
	Example: `  arthas-copy mcp serve
  arthas-copy mcp serve --config ./arthas-copy.yaml --backend treesitter`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, _, err := commandOptions(cmd, arthas.ModeWatch)
		if err != nil {
			return err
		}
		opts.Mode = ""

		server, err := mcpinternal.NewServer(mcpinternal.ServerOptions{
			Modes:   opts.Formatter.Modes(),
			Command: opts,
		})
		if err != nil {
			return err
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
