package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spachava753/arthas-copy/internal/arthas"
	"github.com/spachava753/arthas-copy/internal/editor"
	"github.com/spachava753/arthas-copy/internal/resolver"
)

// ResolveOptions contains parameters for the resolve report
type ResolveOptions struct {
	CommandOptions
	// Writer receives the rendered report
	Writer io.Writer
	// Renderer turns the markdown report into terminal output. Nil writes
	// markdown.
	Renderer editor.Renderer
}

// Resolve runs every strategy at the cursor and writes a report of each
// attempt. It fails with ErrMethodNotRecognized when none succeeded, after
// writing the report.
func Resolve(ctx context.Context, opts ResolveOptions) error {
	doc, err := loadJava(opts.Path)
	if err != nil {
		return err
	}

	var res resolver.Result
	err = withResolver(ctx, opts.CommandOptions, doc, func(r *resolver.Resolver) {
		res = r.Explain(ctx, doc, opts.Cursor.Position())
	})
	if err != nil {
		return err
	}

	report := buildReport(doc, opts.Cursor, res)
	renderer := opts.Renderer
	if renderer == nil {
		renderer = &editor.PlainTextRenderer{}
	}
	out, err := renderer.Render(report)
	if err != nil {
		out = report
	}
	if _, err := io.WriteString(opts.Writer, out); err != nil {
		return err
	}

	if !res.OK() {
		return ErrMethodNotRecognized
	}
	return nil
}

func buildReport(doc *editor.Document, cur editor.Cursor, res resolver.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Method resolution\n\n")
	fmt.Fprintf(&b, "`%s` line %d, column %d\n\n", doc.Path, cur.Line, cur.Column)
	fmt.Fprintf(&b, "> %s\n\n", strings.TrimSpace(doc.LineAt(int(cur.Position().Line))))

	b.WriteString("| Strategy | Result | Time |\n|---|---|---|\n")
	for _, a := range res.Attempts {
		result := "no result"
		switch {
		case a.OK:
			result = "`" + a.Reference.String() + "`"
		case a.Err != nil:
			result = "no result: " + tableCell(a.Err.Error())
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", a.Strategy, result, a.Elapsed.Round(time.Millisecond))
	}
	b.WriteString("\n")

	if !res.OK() {
		b.WriteString("**No strategy recognized a method.**\n")
		return b.String()
	}
	fmt.Fprintf(&b, "**Resolved** `%s` via %s\n\n", res.Reference.String(), res.Strategy)
	fmt.Fprintf(&b, "```\n%s\n```\n", arthas.Watch(res.Reference))
	return b.String()
}

const maxCellRunes = 160

// tableCell fits s into one markdown table cell. Truncation counts runes
// and happens before escaping so no rune or escape is split.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runes := []rune(s); len(runes) > maxCellRunes {
		s = string(runes[:maxCellRunes]) + "…"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
