// Package render projects a masterplan's section tree into its textual
// output formats. All renderers are pure: they never mutate the
// masterplan and produce the same output for the same input.
package render

import (
	"github.com/producthouse/producthouse/internal/domain"
)

// dateLayout is the layout used for the "Updated" stamp in rendered
// headers. Fixed so rendering stays deterministic across locales.
const dateLayout = "2006-01-02"

// Render produces the masterplan in the requested format. Unknown
// format names fail with an UnsupportedFormatError.
func Render(m *domain.Masterplan, format domain.Format) (string, error) {
	switch format {
	case domain.FormatMarkdown:
		return renderMarkdown(m), nil
	case domain.FormatPDF:
		return renderPDF(m), nil
	case domain.FormatConfluence:
		return renderConfluence(m), nil
	case domain.FormatJira:
		return renderJira(m), nil
	default:
		return "", &domain.UnsupportedFormatError{Format: string(format)}
	}
}

// RenderAll renders every requested format into a fresh map. An empty
// format list yields an empty map, not an error.
func RenderAll(m *domain.Masterplan, formats []domain.Format) (map[domain.Format]string, error) {
	out := make(map[domain.Format]string, len(formats))
	for _, f := range formats {
		text, err := Render(m, f)
		if err != nil {
			return nil, err
		}
		out[f] = text
	}
	return out, nil
}
