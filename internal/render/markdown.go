package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
)

var slugSpaces = regexp.MustCompile(`\s+`)

// slugify converts a section title into a Markdown anchor fragment:
// lowercased, runs of whitespace replaced with hyphens.
func slugify(title string) string {
	return slugSpaces.ReplaceAllString(strings.ToLower(title), "-")
}

func renderMarkdown(m *domain.Masterplan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.Title)
	fmt.Fprintf(&b, "*Version %s - Updated: %s*\n\n", m.Version, m.UpdatedAt.Format(dateLayout))

	b.WriteString("## Table of Contents\n\n")
	for _, s := range m.Sections {
		indent := strings.Repeat("  ", s.Level-1)
		fmt.Fprintf(&b, "%s- [%s](#%s)\n", indent, s.Title, slugify(s.Title))
	}
	b.WriteString("\n")

	for _, s := range m.Sections {
		fmt.Fprintf(&b, "%s %s\n\n%s\n\n", strings.Repeat("#", s.Level), s.Title, s.Content)
	}

	return b.String()
}
