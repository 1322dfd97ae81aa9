package tui

import (
	"html"
	"strings"

	"github.com/aretw0/runcmd/pkg/domain"
)

// HTMLPreviewRenderer renders previews as the HTML fragment editor popups
// display. The substituted value is wrapped in <b>.
type HTMLPreviewRenderer struct{}

// RenderPreview implements ports.PreviewRenderer.
func (HTMLPreviewRenderer) RenderPreview(p domain.Preview) string {
	var b strings.Builder
	b.WriteString("<b><i>argument</i></b>: ")
	b.WriteString(html.EscapeString(p.Argument))
	b.WriteString("<br><b><i>command preview</i></b>: ")
	for _, seg := range p.Segments {
		text := html.EscapeString(seg.Text)
		if seg.Highlight {
			b.WriteString("<b>")
			b.WriteString(text)
			b.WriteString("</b>")
			continue
		}
		b.WriteString(text)
	}
	return b.String()
}
