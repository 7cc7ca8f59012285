package testutil

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/producthouse/producthouse/internal/domain"
)

// Masterplan options
type MasterplanOption func(*domain.Masterplan)

func WithVersion(v string) MasterplanOption {
	return func(m *domain.Masterplan) {
		m.Version = v
	}
}

func WithConversationID(id string) MasterplanOption {
	return func(m *domain.Masterplan) {
		m.ConversationID = id
	}
}

func WithSections(sections ...domain.Section) MasterplanOption {
	return func(m *domain.Masterplan) {
		m.Sections = sections
	}
}

func WithFormats(formats map[domain.Format]string) MasterplanOption {
	return func(m *domain.Masterplan) {
		m.Formats = formats
	}
}

func WithCreatedAt(t time.Time) MasterplanOption {
	return func(m *domain.Masterplan) {
		m.CreatedAt = t
		m.UpdatedAt = t
	}
}

// NewTestMasterplan builds a masterplan with two sections and a rendered
// markdown format, enough for most persistence and service tests.
func NewTestMasterplan(title string, opts ...MasterplanOption) *domain.Masterplan {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Masterplan{
		ID:             uuid.New().String(),
		ConversationID: uuid.New().String(),
		Title:          title,
		Version:        "1.0",
		CreatedAt:      now,
		UpdatedAt:      now,
		Sections: []domain.Section{
			{ID: "section-1", Title: "Overview", Level: 1, Content: "The big picture."},
			{ID: "section-2", Title: "Core Features", Level: 2, Content: "- Feature one\n- Feature two"},
		},
		Formats: map[domain.Format]string{
			domain.FormatMarkdown: fmt.Sprintf("# %s\n", title),
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TestSection builds a section with a deterministic id derived from its
// position, matching the ids the parser assigns.
func TestSection(position int, title string, level int, content string) domain.Section {
	return domain.Section{
		ID:      fmt.Sprintf("section-%d", position),
		Title:   title,
		Level:   level,
		Content: content,
	}
}

// Version options
type VersionOption func(*domain.Version)

func WithChanges(changes ...domain.SectionChange) VersionOption {
	return func(v *domain.Version) {
		v.Changes = changes
	}
}

func WithVersionCreatedAt(t time.Time) VersionOption {
	return func(v *domain.Version) {
		v.CreatedAt = t
	}
}

func NewTestVersion(masterplanID, version string, opts ...VersionOption) *domain.Version {
	old := "previous content"
	v := &domain.Version{
		ID:           uuid.New().String(),
		MasterplanID: masterplanID,
		Version:      version,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
		UserID:       "user-1",
		UserName:     "Test User",
		Changes: []domain.SectionChange{
			{SectionID: "section-1", OldContent: &old, NewContent: "updated content"},
		},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Comment options
type CommentOption func(*domain.Comment)

func WithCategory(c domain.CommentCategory) CommentOption {
	return func(cm *domain.Comment) {
		cm.Category = c
	}
}

func WithCommentUser(id, name string) CommentOption {
	return func(cm *domain.Comment) {
		cm.UserID = id
		cm.UserName = name
	}
}

func NewTestComment(masterplanID, sectionID, content string, opts ...CommentOption) *domain.Comment {
	c := &domain.Comment{
		ID:           uuid.New().String(),
		MasterplanID: masterplanID,
		SectionID:    sectionID,
		UserID:       "user-1",
		UserName:     "Test User",
		Content:      content,
		Category:     domain.CategoryClarification,
		Mentions:     domain.ExtractMentions(content),
		Timestamp:    time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
