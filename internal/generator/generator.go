// Package generator assembles masterplan entities from raw AI-generated
// Markdown.
package generator

import (
	"time"

	"github.com/google/uuid"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/render"
	"github.com/producthouse/producthouse/internal/sections"
)

// DefaultTitle is used when a generation request names no title.
const DefaultTitle = "Product Masterplan"

// GenerateFromMarkdown parses raw Markdown into sections and builds a
// fully-rendered masterplan at version 1.0. It does not persist
// anything; storage is the caller's concern. Renderer failures
// propagate unchanged.
func GenerateFromMarkdown(raw, conversationID, title string, formats []domain.Format) (*domain.Masterplan, error) {
	if title == "" {
		title = DefaultTitle
	}

	now := time.Now().UTC()
	mp := &domain.Masterplan{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Title:          title,
		Version:        "1.0",
		CreatedAt:      now,
		UpdatedAt:      now,
		Sections:       sections.Parse(raw),
	}

	rendered, err := render.RenderAll(mp, formats)
	if err != nil {
		return nil, err
	}
	mp.Formats = rendered

	return mp, nil
}
