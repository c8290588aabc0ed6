// Package clipboard writes generated commands to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
)

// Writer receives the text of one successful invocation.
type Writer interface {
	WriteText(text string) error
}

// System writes to the operating system clipboard.
type System struct{}

// WriteText implements Writer.
func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available (install xclip, xsel or wl-clipboard)")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Stream writes the text followed by a newline, for --print and pipes.
type Stream struct {
	W io.Writer
}

// WriteText implements Writer.
func (s Stream) WriteText(text string) error {
	_, err := fmt.Fprintln(s.W, text)
	return err
}

// Recorder keeps every write in memory.
type Recorder struct {
	Writes []string
	Err    error
}

// WriteText implements Writer.
func (r *Recorder) WriteText(text string) error {
	if r.Err != nil {
		return r.Err
	}
	r.Writes = append(r.Writes, text)
	return nil
}
