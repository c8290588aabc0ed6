package cmd

import (
	"github.com/spf13/cobra"

	"github.com/spachava753/arthas-copy/internal/arthas"
	"github.com/spachava753/arthas-copy/internal/clipboard"
	"github.com/spachava753/arthas-copy/internal/commands"
	"github.com/spachava753/arthas-copy/internal/editor"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>[:line[:column]]",
	Short: "Copy the Arthas watch command for the method under the cursor",
	Example: `  arthas-copy watch src/main/java/com/example/OrderService.java:42:17
  arthas-copy watch --line 42 --column 17 --print OrderService.java`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCopy(cmd, arthas.ModeWatch, args)
	},
}

var jadCmd = &cobra.Command{
	Use:   "jad <file>",
	Short: "Copy the Arthas jad command for the class declared in a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCopy(cmd, arthas.ModeJad, args)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <mode> <file>[:line[:column]]",
	Short: "Copy the command built by a configured template",
	Long: `Copy the command built by a template from the templates section of the
configuration, for example:

  templates:
    trace: "trace {{.FullClassName}} {{.MethodName}} -n 5"

The built-in watch and jad modes are accepted too.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCopy(cmd, args[0], args[1:])
	},
}

// quietNotifier drops information messages so the printed command is the
// only output.
type quietNotifier struct {
	editor.Notifier
}

func (quietNotifier) Info(string) {}

func runCopy(cmd *cobra.Command, mode string, args []string) error {
	opts, cfg, err := commandOptions(cmd, mode)
	if err != nil {
		return err
	}
	opts.Path, opts.Cursor, err = location(cmd, args)
	if err != nil {
		return err
	}

	var notifier editor.Notifier = messenger(cmd)
	var writer clipboard.Writer = clipboard.System{}
	if printOnly || !cfg.ClipboardEnabled() {
		writer = clipboard.Stream{W: cmd.OutOrStdout()}
		notifier = quietNotifier{notifier}
	}

	return commands.Copy(cmd.Context(), commands.CopyOptions{
		CommandOptions: opts,
		Clipboard:      writer,
		Notifier:       notifier,
	})
}

func init() {
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(jadCmd)
	rootCmd.AddCommand(runCmd)
}
