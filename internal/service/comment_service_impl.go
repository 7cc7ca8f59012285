package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/repository"
)

type commentService struct {
	masterplans repository.MasterplanRepo
	comments    repository.CommentRepo
}

func NewCommentService(masterplans repository.MasterplanRepo, comments repository.CommentRepo) CommentService {
	return &commentService{masterplans: masterplans, comments: comments}
}

func (s *commentService) Add(ctx context.Context, user domain.User, masterplanID, sectionID, content string, category domain.CommentCategory) (*domain.Comment, error) {
	if !user.Resolved() {
		return nil, &domain.AuthorizationError{Action: "commenting"}
	}
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if !domain.ValidCommentCategory(category) {
		return nil, &domain.ValidationError{Field: "category", Reason: "unknown category"}
	}

	mp, err := s.masterplans.GetByID(ctx, masterplanID)
	if err != nil {
		return nil, err
	}
	if mp.SectionByID(sectionID) == nil {
		return nil, &domain.NotFoundError{Kind: "section", ID: sectionID}
	}

	c := &domain.Comment{
		ID:           uuid.New().String(),
		MasterplanID: masterplanID,
		SectionID:    sectionID,
		UserID:       user.ID,
		UserName:     user.Name,
		Content:      content,
		Category:     category,
		Mentions:     domain.ExtractMentions(content),
		Timestamp:    time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) ListByMasterplan(ctx context.Context, masterplanID string) ([]*domain.Comment, error) {
	return s.comments.ListByMasterplan(ctx, masterplanID)
}

func (s *commentService) ListBySection(ctx context.Context, masterplanID, sectionID string) ([]*domain.Comment, error) {
	return s.comments.ListBySection(ctx, masterplanID, sectionID)
}

func (s *commentService) Update(ctx context.Context, user domain.User, commentID, content string, category domain.CommentCategory) (*domain.Comment, error) {
	if !user.Resolved() {
		return nil, &domain.AuthorizationError{Action: "editing a comment"}
	}
	if content == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if !domain.ValidCommentCategory(category) {
		return nil, &domain.ValidationError{Field: "category", Reason: "unknown category"}
	}

	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	c.Content = content
	c.Category = category
	c.Mentions = domain.ExtractMentions(content)
	if err := s.comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commentService) Delete(ctx context.Context, user domain.User, commentID string) (bool, error) {
	if !user.Resolved() {
		return false, &domain.AuthorizationError{Action: "deleting a comment"}
	}
	return s.comments.Delete(ctx, commentID)
}
