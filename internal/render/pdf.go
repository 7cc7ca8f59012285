package render

import (
	"fmt"
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
)

// renderPDF produces a self-contained HTML document intended for
// client-side PDF conversion. Section ids double as anchor targets for
// the table of contents.
func renderPDF(m *domain.Masterplan) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", m.Title)
	b.WriteString(`<style>
body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
h1 { color: #333; }
.metadata { color: #666; font-style: italic; margin-bottom: 20px; }
.toc { background-color: #f5f5f5; padding: 15px; margin-bottom: 30px; }
.section { margin-bottom: 30px; }
.section-title { border-bottom: 1px solid #ddd; padding-bottom: 5px; }
</style>
`)
	b.WriteString("</head>\n<body>\n")

	fmt.Fprintf(&b, "<h1>%s</h1>\n", m.Title)
	fmt.Fprintf(&b, "<div class=\"metadata\">Version %s - Updated: %s</div>\n", m.Version, m.UpdatedAt.Format(dateLayout))

	b.WriteString("<div class=\"toc\">\n<h2>Table of Contents</h2>\n<ul>\n")
	for _, s := range m.Sections {
		indent := strings.Repeat("&nbsp;&nbsp;", s.Level-1)
		fmt.Fprintf(&b, "<li>%s<a href=\"#%s\">%s</a></li>\n", indent, s.ID, s.Title)
	}
	b.WriteString("</ul>\n</div>\n")

	for _, s := range m.Sections {
		// The document title already occupies h1, so sections start at h2.
		h := s.Level + 1
		b.WriteString("<div class=\"section\">\n")
		fmt.Fprintf(&b, "<h%d id=\"%s\" class=\"section-title\">%s</h%d>\n", h, s.ID, s.Title, h)
		fmt.Fprintf(&b, "<div class=\"section-content\">%s</div>\n", strings.ReplaceAll(s.Content, "\n", "<br>"))
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}
