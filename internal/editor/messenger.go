package editor

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Notifier shows one-line messages to the user.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#16a085", Dark: "#1abc9c"})
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#c0392b", Dark: "#e74c3c"})
)

// Messenger writes information messages to one stream and errors to another.
type Messenger struct {
	Out    io.Writer
	Err    io.Writer
	Styled bool
}

// NewMessenger returns a messenger for the process' stdout and stderr,
// styled only when stdout is a terminal and NO_COLOR is unset.
func NewMessenger() *Messenger {
	return &Messenger{
		Out:    os.Stdout,
		Err:    os.Stderr,
		Styled: IsTTY() && !termenv.EnvNoColor(),
	}
}

// IsTTY returns true if stdout is connected to a terminal
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Info shows an information message.
func (m *Messenger) Info(msg string) {
	if m.Styled {
		msg = infoStyle.Render(msg)
	}
	fmt.Fprintln(m.Out, msg)
}

// Error shows an error message.
func (m *Messenger) Error(msg string) {
	if m.Styled {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(m.Err, msg)
}
