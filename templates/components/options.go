package components

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

// Option is one entry of a <select>
type Option struct {
	Value string
	Label string
}

// Labels come from user-editable location names, so every tag is stripped and the rest escaped
var labelPolicy = bluemonday.StrictPolicy()

// SanitizeLabel returns label as safe HTML text
func SanitizeLabel(label string) string {
	return labelPolicy.Sanitize(label)
}

// SelectOptions renders a placeholder <option> followed by options, for HTMX swaps into a <select>
func SelectOptions(placeholder string, options []Option) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<option value="">`)
		b.WriteString(templ.EscapeString(placeholder))
		b.WriteString(`</option>`)
		for _, o := range options {
			b.WriteString(`<option value="`)
			b.WriteString(templ.EscapeString(o.Value))
			b.WriteString(`">`)
			b.WriteString(SanitizeLabel(o.Label))
			b.WriteString(`</option>`)
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}
