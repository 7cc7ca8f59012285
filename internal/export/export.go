// Package export turns a masterplan's rendered formats into downloadable
// files with the right MIME type and extension.
package export

import (
	"regexp"
	"strings"

	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/render"
)

// File is a downloadable export of one masterplan format. The pdf format
// exports as HTML destined for client-side PDF conversion, not a PDF
// byte stream.
type File struct {
	Content  string
	MIMEType string
	Filename string
}

var formatMeta = map[domain.Format]struct {
	mime string
	ext  string
}{
	domain.FormatMarkdown:   {"text/markdown", ".md"},
	domain.FormatPDF:        {"text/html", ".html"},
	domain.FormatConfluence: {"text/plain", ".confluence"},
	domain.FormatJira:       {"text/plain", ".jira"},
}

// BuildFile assembles the export file for one format. The stored
// rendering is used when present; otherwise the format is rendered on
// demand, so plans generated with a subset of formats still export in
// any of them.
func BuildFile(m *domain.Masterplan, format domain.Format) (*File, error) {
	meta, ok := formatMeta[format]
	if !ok {
		return nil, &domain.UnsupportedFormatError{Format: string(format)}
	}

	content, ok := m.Formats[format]
	if !ok {
		rendered, err := render.Render(m, format)
		if err != nil {
			return nil, err
		}
		content = rendered
	}

	return &File{
		Content:  content,
		MIMEType: meta.mime,
		Filename: filenameSlug(m.Title) + meta.ext,
	}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func filenameSlug(title string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "masterplan"
	}
	return slug
}
