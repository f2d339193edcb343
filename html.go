package docsite

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTMLWriter writes markup and keeps the first error, so a component can
// emit a run of fragments and check Err once at the end.
type HTMLWriter struct {
	w   io.Writer
	err error
}

// NewHTMLWriter returns an HTMLWriter writing to w.
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: w}
}

// Raw writes s unescaped.
func (h *HTMLWriter) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s HTML-escaped.
func (h *HTMLWriter) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (h *HTMLWriter) Attr(name, value string) {
	h.Raw(` ` + name + `="` + templ.EscapeString(value) + `"`)
}

// Render renders c into the same writer.
func (h *HTMLWriter) Render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// Err returns the first error seen.
func (h *HTMLWriter) Err() error {
	return h.err
}
