package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/producthouse/producthouse/internal/collab"
	"github.com/producthouse/producthouse/internal/domain"
)

type saveVersionRequest struct {
	Sections []domain.Section `json:"sections"`
}

type saveVersionResponse struct {
	Masterplan *domain.Masterplan `json:"masterplan"`
	Version    *domain.Version    `json:"version,omitempty"`
}

func (s *Server) handleSaveVersion(c echo.Context) error {
	var req saveVersionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}
	if req.Sections == nil {
		return writeError(c, &domain.ValidationError{Field: "sections", Reason: "must be an array"})
	}

	mp, v, err := s.collab.SaveVersion(c.Request().Context(), currentUser(c), c.Param("id"), req.Sections)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, saveVersionResponse{Masterplan: mp, Version: v})
}

func (s *Server) handleListVersions(c echo.Context) error {
	list, err := s.collab.ListVersions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*domain.Version{}
	}
	return c.JSON(http.StatusOK, list)
}

type versionDetailResponse struct {
	Version  *domain.Version        `json:"version"`
	Previews []collab.ChangePreview `json:"previews"`
}

func (s *Server) handleGetVersion(c echo.Context) error {
	detail, err := s.collab.GetVersion(c.Request().Context(), c.Param("versionId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, versionDetailResponse{
		Version:  detail.Version,
		Previews: detail.Previews,
	})
}

func (s *Server) handleRestoreVersion(c echo.Context) error {
	mp, err := s.collab.RestoreVersion(c.Request().Context(), currentUser(c), c.Param("id"), c.Param("versionId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mp)
}

type refineRequest struct {
	SectionID   string `json:"sectionId"`
	Instruction string `json:"instruction"`
}

func (s *Server) handleRefineSection(c echo.Context) error {
	var req refineRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}

	mp, err := s.collab.RefineSection(c.Request().Context(), currentUser(c), c.Param("id"), req.SectionID, req.Instruction)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mp)
}

type reviewRequest struct {
	Prompt string `json:"prompt,omitempty"`
}

func (s *Server) handleRequestReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}

	session, err := s.collab.RequestReview(c.Request().Context(), c.Param("id"), req.Prompt)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, session)
}

type applyReviewRequest struct {
	Session collab.ReviewSession `json:"session"`
}

func (s *Server) handleApplyReview(c echo.Context) error {
	var req applyReviewRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}
	if req.Session.MasterplanID != c.Param("id") {
		return writeError(c, &domain.ValidationError{Field: "session.masterplanId", Reason: "does not match the requested masterplan"})
	}

	mp, err := s.collab.ApplyReview(c.Request().Context(), currentUser(c), &req.Session)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mp)
}
