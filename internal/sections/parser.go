// Package sections parses Markdown-style text into ordered masterplan
// sections.
package sections

import (
	"fmt"
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
)

// Parse scans raw text for Markdown heading markers and returns one
// section per heading, in source order. A heading line is one or more
// '#' characters followed by a space; its level is the number of '#'
// characters. Body lines accumulate into the content of the most recent
// heading, joined by newlines. Lines before the first heading are
// discarded. Text with no headings yields an empty slice, which callers
// must treat as a valid degenerate result.
//
// Sections receive synthetic sequential ids (section-1, section-2, ...).
// Callers that re-parse edited text and need stable ids must correlate
// sections themselves.
func Parse(raw string) []domain.Section {
	var (
		parsed  []domain.Section
		current *domain.Section
		buffer  []string
	)

	flush := func() {
		if current == nil {
			return
		}
		// Trailing blank lines before the next heading are layout;
		// blank lines at the start of a body are content and stay.
		current.Content = strings.TrimRight(strings.Join(buffer, "\n"), "\n")
		parsed = append(parsed, *current)
		buffer = buffer[:0]
	}

	for _, line := range strings.Split(raw, "\n") {
		level, title, ok := parseHeading(line)
		if !ok {
			if current != nil {
				buffer = append(buffer, line)
			}
			continue
		}
		flush()
		current = &domain.Section{
			ID:    fmt.Sprintf("section-%d", len(parsed)+1),
			Title: title,
			Level: level,
		}
	}
	flush()

	return parsed
}

// parseHeading reports whether line is a Markdown heading and, if so,
// its depth and title.
func parseHeading(line string) (level int, title string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level >= len(line) || line[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(line[level+1:]), true
}
