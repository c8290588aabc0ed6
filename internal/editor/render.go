package editor

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

// Renderer turns markdown into terminal output.
type Renderer interface {
	Render(in string) (string, error)
}

// PlainTextRenderer returns content as-is. Used when output is not a
// terminal or glamour cannot be set up.
type PlainTextRenderer struct{}

// Render returns the input unchanged
func (p *PlainTextRenderer) Render(in string) (string, error) {
	return in, nil
}

func baseStyle() ansi.StyleConfig {
	style := styles.LightStyleConfig
	if termenv.HasDarkBackground() {
		style = styles.DarkStyleConfig
	}
	style.Document.BlockPrefix = ""
	return style
}

// NewRenderer returns a glamour renderer when styled is set, plain text
// otherwise.
func NewRenderer(styled bool) Renderer {
	if !styled {
		return &PlainTextRenderer{}
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(baseStyle()),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return &PlainTextRenderer{}
	}
	return renderer
}
