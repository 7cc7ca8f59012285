package render

import (
	"fmt"
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
)

// renderConfluence produces Confluence wiki markup. The {toc} macro is
// left for Confluence itself to expand.
func renderConfluence(m *domain.Masterplan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "h1. %s\n\n", m.Title)
	fmt.Fprintf(&b, "_Version %s - Updated: %s_\n\n", m.Version, m.UpdatedAt.Format(dateLayout))
	b.WriteString("{toc}\n\n")

	for _, s := range m.Sections {
		// h1 is taken by the document title.
		fmt.Fprintf(&b, "h%d. %s\n\n%s\n\n", s.Level+1, s.Title, s.Content)
	}

	return b.String()
}
