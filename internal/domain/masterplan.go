package domain

import "time"

// Format identifies one of the supported masterplan output formats.
type Format string

const (
	FormatMarkdown   Format = "markdown"
	FormatPDF        Format = "pdf"
	FormatConfluence Format = "confluence"
	FormatJira       Format = "jira"
)

// AllFormats lists every supported output format.
var AllFormats = []Format{FormatMarkdown, FormatPDF, FormatConfluence, FormatJira}

// ParseFormat validates a format name. Unknown names return an
// UnsupportedFormatError.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatMarkdown, FormatPDF, FormatConfluence, FormatJira:
		return Format(name), nil
	}
	return "", &UnsupportedFormatError{Format: name}
}

// Section is a titled, leveled block of masterplan content. Order within
// the parent masterplan is significant; parent/child relationships are
// implicit from level deltas.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Level   int    `json:"level"`
	Content string `json:"content"`
}

// Masterplan is a structured, versioned product-specification document
// generated from a conversation.
type Masterplan struct {
	ID             string            `json:"id"`
	ConversationID string            `json:"conversationId"`
	Title          string            `json:"title"`
	Version        string            `json:"version"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Sections       []Section         `json:"sections"`
	Formats        map[Format]string `json:"formats"`
}

// SectionByID returns the section with the given id, or nil.
func (m *Masterplan) SectionByID(id string) *Section {
	for i := range m.Sections {
		if m.Sections[i].ID == id {
			return &m.Sections[i]
		}
	}
	return nil
}

// CloneSections returns a deep copy of the masterplan's section list.
// Callers that edit sections must work on a copy so the stored document
// only changes through an explicit version commit.
func (m *Masterplan) CloneSections() []Section {
	out := make([]Section, len(m.Sections))
	copy(out, m.Sections)
	return out
}
