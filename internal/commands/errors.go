package commands

import (
	"errors"
	"fmt"

	"github.com/spachava753/arthas-copy/internal/editor"
	"github.com/spachava753/arthas-copy/internal/lsp"
)

// User facing messages.
const (
	msgNoActiveEditor     = "No active editor"
	msgNotJava            = "Not a Java file"
	msgCannotRecognize    = "Cannot recognize method. Please make sure the cursor is inside a method or on a method name, and " + lsp.ServerDisplayName + " is installed"
	msgCannotRecognizeCls = "Cannot recognize class name. Please make sure this is a valid Java class file"
	msgServerNotInstalled = lsp.ServerDisplayName + " is not installed. Please install it first"
)

var (
	// ErrMethodNotRecognized means no strategy produced a method reference.
	ErrMethodNotRecognized = errors.New("method not recognized")
	// ErrClassNotRecognized means the document declares no package and class.
	ErrClassNotRecognized = errors.New("class name not recognized")
)

// UserMessage returns the single message shown for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, editor.ErrNoActiveEditor):
		return msgNoActiveEditor
	case errors.Is(err, editor.ErrNotJava):
		return msgNotJava
	case errors.Is(err, lsp.ErrServerNotInstalled):
		return msgServerNotInstalled
	case errors.Is(err, ErrMethodNotRecognized):
		return msgCannotRecognize
	case errors.Is(err, ErrClassNotRecognized):
		return msgCannotRecognizeCls
	}
	return fmt.Sprintf("Error: %v", err)
}

// reportedError marks an error whose message was already shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user, so callers
// must not print it again.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
