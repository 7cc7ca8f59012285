package service

import (
	"context"

	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/export"
	"github.com/producthouse/producthouse/internal/generator"
	"github.com/producthouse/producthouse/internal/llm"
	"github.com/producthouse/producthouse/internal/repository"
)

type masterplanService struct {
	masterplans repository.MasterplanRepo
	completions llm.Client
}

func NewMasterplanService(masterplans repository.MasterplanRepo, completions llm.Client) MasterplanService {
	return &masterplanService{masterplans: masterplans, completions: completions}
}

func (s *masterplanService) Generate(ctx context.Context, req GenerateRequest) (*domain.Masterplan, error) {
	if len(req.Messages) == 0 {
		return nil, &domain.ValidationError{Field: "messages", Reason: "must be a non-empty array"}
	}

	systemPrompt := ""
	if req.TemplateID != "" {
		tpl, err := domain.TemplateByID(req.TemplateID)
		if err != nil {
			return nil, err
		}
		systemPrompt = tpl.SystemPrompt
	}

	raw, err := s.completions.GenerateMasterplan(ctx, req.Messages, systemPrompt)
	if err != nil {
		return nil, err
	}

	formats := req.Formats
	if len(formats) == 0 {
		formats = domain.AllFormats
	}

	mp, err := generator.GenerateFromMarkdown(raw, req.ConversationID, req.Title, formats)
	if err != nil {
		return nil, err
	}

	if err := s.masterplans.Create(ctx, mp); err != nil {
		return nil, err
	}
	return mp, nil
}

func (s *masterplanService) GetByID(ctx context.Context, id string) (*domain.Masterplan, error) {
	return s.masterplans.GetByID(ctx, id)
}

func (s *masterplanService) List(ctx context.Context) ([]*domain.Masterplan, error) {
	return s.masterplans.List(ctx)
}

func (s *masterplanService) ListByConversation(ctx context.Context, conversationID string) ([]*domain.Masterplan, error) {
	return s.masterplans.ListByConversation(ctx, conversationID)
}

func (s *masterplanService) Delete(ctx context.Context, id string) error {
	return s.masterplans.Delete(ctx, id)
}

func (s *masterplanService) Export(ctx context.Context, id string, format domain.Format) (*export.File, error) {
	mp, err := s.masterplans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return export.BuildFile(mp, format)
}
