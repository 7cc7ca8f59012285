package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/producthouse/producthouse/internal/domain"
)

type commentRequest struct {
	SectionID string `json:"sectionId,omitempty"`
	Content   string `json:"content"`
	Category  string `json:"category"`
}

func (s *Server) handleAddComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}

	comment, err := s.comments.Add(c.Request().Context(), currentUser(c),
		c.Param("id"), req.SectionID, req.Content, domain.CommentCategory(req.Category))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (s *Server) handleListComments(c echo.Context) error {
	ctx := c.Request().Context()
	masterplanID := c.Param("id")

	var (
		list []*domain.Comment
		err  error
	)
	if sectionID := c.QueryParam("sectionId"); sectionID != "" {
		list, err = s.comments.ListBySection(ctx, masterplanID, sectionID)
	} else {
		list, err = s.comments.ListByMasterplan(ctx, masterplanID)
	}
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*domain.Comment{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleUpdateComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}

	comment, err := s.comments.Update(c.Request().Context(), currentUser(c),
		c.Param("id"), req.Content, domain.CommentCategory(req.Category))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, comment)
}

func (s *Server) handleDeleteComment(c echo.Context) error {
	if _, err := s.comments.Delete(c.Request().Context(), currentUser(c), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
