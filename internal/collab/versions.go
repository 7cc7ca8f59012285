// Package collab implements the pure parts of the version and review
// engine: section diffing, restore application, and parsing of batch
// review suggestions. Persistence of the results is the service layer's
// concern.
package collab

import (
	"github.com/producthouse/producthouse/internal/domain"
)

// VersionPolicy controls version-creation behavior.
type VersionPolicy struct {
	// RecordEmpty appends a version record even when a save produced no
	// section changes, keeping every explicit save observable in the
	// history. When false, no-op saves are suppressed.
	RecordEmpty bool
}

// DefaultVersionPolicy records empty saves.
func DefaultVersionPolicy() VersionPolicy {
	return VersionPolicy{RecordEmpty: true}
}

// ComputeChanges diffs updated sections against current ones by section
// id. A section id present only in updated is an addition (no
// OldContent); an id present only in current is a removal (empty
// NewContent). Matching ids with differing content yield a content
// change. Unchanged sections produce no entry.
func ComputeChanges(current, updated []domain.Section) []domain.SectionChange {
	currentByID := make(map[string]domain.Section, len(current))
	for _, s := range current {
		currentByID[s.ID] = s
	}
	updatedIDs := make(map[string]bool, len(updated))

	var changes []domain.SectionChange
	for _, s := range updated {
		updatedIDs[s.ID] = true
		old, ok := currentByID[s.ID]
		if !ok {
			changes = append(changes, domain.SectionChange{
				SectionID:  s.ID,
				NewContent: s.Content,
			})
			continue
		}
		if old.Content != s.Content {
			oldContent := old.Content
			changes = append(changes, domain.SectionChange{
				SectionID:  s.ID,
				OldContent: &oldContent,
				NewContent: s.Content,
			})
		}
	}

	for _, s := range current {
		if updatedIDs[s.ID] {
			continue
		}
		oldContent := s.Content
		changes = append(changes, domain.SectionChange{
			SectionID:  s.ID,
			OldContent: &oldContent,
			NewContent: "",
		})
	}

	return changes
}

// ApplyChanges sets each changed section's content to the change's
// NewContent, returning a new section slice. Restoring to a version
// means restoring the state right after that version was saved, so only
// NewContent is ever applied. Changes referencing unknown section ids
// are skipped.
func ApplyChanges(sections []domain.Section, changes []domain.SectionChange) []domain.Section {
	restored := make([]domain.Section, len(sections))
	copy(restored, sections)

	index := make(map[string]int, len(restored))
	for i, s := range restored {
		index[s.ID] = i
	}

	for _, ch := range changes {
		if i, ok := index[ch.SectionID]; ok {
			restored[i].Content = ch.NewContent
		}
	}
	return restored
}
