// Package repository persists masterplans, their version history and
// comments in SQLite.
package repository

import (
	"context"

	"github.com/producthouse/producthouse/internal/domain"
)

type MasterplanRepo interface {
	Create(ctx context.Context, m *domain.Masterplan) error
	GetByID(ctx context.Context, id string) (*domain.Masterplan, error)
	List(ctx context.Context) ([]*domain.Masterplan, error)
	ListByConversation(ctx context.Context, conversationID string) ([]*domain.Masterplan, error)

	// UpdateDocument persists new sections, formats, version and
	// updated-at for an existing masterplan. The write is guarded by a
	// compare-and-swap on expectedVersion: if the stored version no
	// longer matches, a VersionConflictError is returned and nothing
	// changes.
	UpdateDocument(ctx context.Context, m *domain.Masterplan, expectedVersion string) error

	Delete(ctx context.Context, id string) error
}

type VersionRepo interface {
	Create(ctx context.Context, v *domain.Version) error
	GetByID(ctx context.Context, id string) (*domain.Version, error)
	ListByMasterplan(ctx context.Context, masterplanID string) ([]*domain.Version, error)
}

type CommentRepo interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByMasterplan(ctx context.Context, masterplanID string) ([]*domain.Comment, error)
	ListBySection(ctx context.Context, masterplanID, sectionID string) ([]*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) error

	// Delete removes a comment and reports whether it existed. Deleting
	// an absent comment is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
