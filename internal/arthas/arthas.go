// Package arthas formats Arthas diagnostic commands for a resolved method.
package arthas

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/spachava753/arthas-copy/internal/resolver"
)

// Built-in modes.
const (
	ModeWatch = "watch"
	ModeJad   = "jad"
)

// ErrUnknownMode is returned for a mode that is neither built in nor a
// configured template.
var ErrUnknownMode = errors.New("unknown command mode")

var modeNameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// Watch returns the watch command observing parameters, return value and
// thrown exception of ref.
func Watch(ref resolver.MethodReference) string {
	return fmt.Sprintf("watch %s %s '{params,returnObj,throwExp}'  -n 5  -x 3", ref.FullClassName, ref.MethodName)
}

// Jad returns the command decompiling class.
func Jad(class string) string {
	return "jad " + class
}

// Formatter renders the built-in modes and user templates.
type Formatter struct {
	templates map[string]*template.Template
	sources   map[string]string
}

// NewFormatter parses the user templates, keyed by mode name. Templates see
// .FullClassName and .MethodName plus the sprig function set.
func NewFormatter(templates map[string]string) (*Formatter, error) {
	f := &Formatter{
		templates: make(map[string]*template.Template, len(templates)),
		sources:   make(map[string]string, len(templates)),
	}
	for name, src := range templates {
		if name == ModeWatch || name == ModeJad {
			return nil, fmt.Errorf("template %q: built-in commands cannot be overridden", name)
		}
		if !modeNameRe.MatchString(name) {
			return nil, fmt.Errorf("template %q: name must be lowercase letters, digits, '-' or '_'", name)
		}
		tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		f.templates[name] = tmpl
		f.sources[name] = src
	}
	return f, nil
}

// Modes lists the built-in modes followed by the template names in order.
func (f *Formatter) Modes() []string {
	names := make([]string, 0, len(f.templates))
	for name := range f.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{ModeWatch, ModeJad}, names...)
}

// Has reports whether mode can be formatted.
func (f *Formatter) Has(mode string) bool {
	if mode == ModeWatch || mode == ModeJad {
		return true
	}
	_, ok := f.templates[mode]
	return ok
}

// NeedsMethod reports whether mode uses the method name. Modes that only
// need the class skip method resolution.
func (f *Formatter) NeedsMethod(mode string) bool {
	switch mode {
	case ModeWatch:
		return true
	case ModeJad:
		return false
	}
	return strings.Contains(f.sources[mode], ".MethodName")
}

// Format renders mode for ref. For modes that do not need a method,
// ref.MethodName may be empty.
func (f *Formatter) Format(mode string, ref resolver.MethodReference) (string, error) {
	switch mode {
	case ModeWatch:
		return Watch(ref), nil
	case ModeJad:
		return Jad(ref.FullClassName), nil
	}

	tmpl, ok := f.templates[mode]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ref); err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", mode, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
