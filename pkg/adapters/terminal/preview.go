package terminal

import (
	"io"
	"strings"

	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/muesli/termenv"
)

// PreviewRenderer renders previews for a terminal, highlighting the
// placeholder value in bold when the output supports it.
type PreviewRenderer struct {
	output *termenv.Output
}

// NewPreviewRenderer creates a renderer that detects the color profile of w.
func NewPreviewRenderer(w io.Writer) *PreviewRenderer {
	return &PreviewRenderer{output: termenv.NewOutput(w)}
}

// NewPlainPreviewRenderer creates a renderer that never emits escape sequences.
func NewPlainPreviewRenderer(w io.Writer) *PreviewRenderer {
	return &PreviewRenderer{output: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
}

// RenderPreview implements ports.PreviewRenderer.
// Control characters are stripped so a value cannot drive the terminal.
func (r *PreviewRenderer) RenderPreview(p domain.Preview) string {
	var b strings.Builder
	b.WriteString(r.output.String("argument").Bold().Italic().String())
	b.WriteString(": ")
	b.WriteString(StripControl(p.Argument))
	b.WriteString("\n")
	b.WriteString(r.output.String("command preview").Bold().Italic().String())
	b.WriteString(": ")
	for _, seg := range p.Segments {
		text := StripControl(seg.Text)
		if seg.Highlight {
			text = r.output.String(text).Bold().String()
		}
		b.WriteString(text)
	}
	return b.String()
}
