// Package service orchestrates masterplan generation, versioning, review
// and comments on top of the repositories and the completion client.
package service

import (
	"context"

	"github.com/producthouse/producthouse/internal/collab"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/export"
	"github.com/producthouse/producthouse/internal/llm"
)

// GenerateRequest describes one masterplan generation from a
// conversation transcript.
type GenerateRequest struct {
	ConversationID string
	Messages       []llm.Message
	Title          string
	TemplateID     string          // empty uses the default template
	Formats        []domain.Format // empty renders all formats
}

type MasterplanService interface {
	// Generate asks the completion service for a Markdown masterplan,
	// parses it into sections, renders the requested formats and
	// persists the result at version 1.0.
	Generate(ctx context.Context, req GenerateRequest) (*domain.Masterplan, error)

	GetByID(ctx context.Context, id string) (*domain.Masterplan, error)
	List(ctx context.Context) ([]*domain.Masterplan, error)
	ListByConversation(ctx context.Context, conversationID string) ([]*domain.Masterplan, error)
	Delete(ctx context.Context, id string) error

	// Export builds the downloadable file for one format.
	Export(ctx context.Context, id string, format domain.Format) (*export.File, error)
}

// VersionDetail pairs a stored version with display-only line diffs of
// its changes.
type VersionDetail struct {
	Version  *domain.Version
	Previews []collab.ChangePreview
}

type CollabService interface {
	// SaveVersion commits edited sections as a new minor version. The
	// section update, format regeneration and version record are one
	// transaction; on conflict or failure the prior state remains
	// authoritative.
	SaveVersion(ctx context.Context, user domain.User, masterplanID string, sections []domain.Section) (*domain.Masterplan, *domain.Version, error)

	ListVersions(ctx context.Context, masterplanID string) ([]*domain.Version, error)
	GetVersion(ctx context.Context, versionID string) (*VersionDetail, error)

	// RestoreVersion re-applies a past version's section contents as a
	// fresh version on top of the current document.
	RestoreVersion(ctx context.Context, user domain.User, masterplanID, versionID string) (*domain.Masterplan, error)

	// RefineSection sends one section plus an instruction to the
	// completion service and commits the rewritten content as a new
	// version.
	RefineSection(ctx context.Context, user domain.User, masterplanID, sectionID, instruction string) (*domain.Masterplan, error)

	// RequestReview asks the completion service to review the whole
	// document and returns the parsed suggestions as a session the
	// caller can toggle and apply.
	RequestReview(ctx context.Context, masterplanID, prompt string) (*collab.ReviewSession, error)

	// ApplyReview commits a session's selected suggestions as a new
	// version.
	ApplyReview(ctx context.Context, user domain.User, session *collab.ReviewSession) (*domain.Masterplan, error)
}

type CommentService interface {
	Add(ctx context.Context, user domain.User, masterplanID, sectionID, content string, category domain.CommentCategory) (*domain.Comment, error)
	ListByMasterplan(ctx context.Context, masterplanID string) ([]*domain.Comment, error)
	ListBySection(ctx context.Context, masterplanID, sectionID string) ([]*domain.Comment, error)
	Update(ctx context.Context, user domain.User, commentID, content string, category domain.CommentCategory) (*domain.Comment, error)
	Delete(ctx context.Context, user domain.User, commentID string) (bool, error)
}
