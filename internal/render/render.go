// Package render turns a ComprehensiveWorkSummary into terminal text,
// markdown or JSON. Renderers are pure consumers: all numbers come from
// the analytics block computed once upstream.
package render

import (
	"io"

	"github.com/gitpulse/gitpulse/internal/analytics"
)

// Format names accepted by the report command.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Renderer writes one representation of a summary.
type Renderer interface {
	Render(w io.Writer, cws analytics.ComprehensiveWorkSummary) error
}

// For returns the renderer for a format name, defaulting to text.
func For(format string) Renderer {
	switch format {
	case FormatMarkdown:
		return &Markdown{}
	case FormatJSON:
		return &JSON{}
	default:
		return &Text{}
	}
}
