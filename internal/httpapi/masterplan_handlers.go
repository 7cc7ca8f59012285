package httpapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/llm"
	"github.com/producthouse/producthouse/internal/service"
)

type completeRequest struct {
	Messages    []llm.Message `json:"messages"`
	System      string        `json:"system,omitempty"`
	MaxTokens   int           `json:"maxTokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

type completeResponse struct {
	Content    string `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stopReason"`
}

func (s *Server) handleComplete(c echo.Context) error {
	var req completeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}
	if len(req.Messages) == 0 {
		return writeError(c, &domain.ValidationError{Field: "messages", Reason: "must be a non-empty array"})
	}

	resp, err := s.completions.Complete(c.Request().Context(), llm.CompleteRequest{
		Messages:    req.Messages,
		System:      req.System,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, completeResponse{
		Content:    resp.Content,
		Model:      resp.Model,
		StopReason: resp.StopReason,
	})
}

type generateRequest struct {
	ConversationID string        `json:"conversationId"`
	Messages       []llm.Message `json:"messages"`
	Title          string        `json:"title,omitempty"`
	TemplateID     string        `json:"templateId,omitempty"`
	Formats        []string      `json:"formats,omitempty"`
}

func (s *Server) handleGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, &domain.ValidationError{Reason: "invalid request body"})
	}

	formats := make([]domain.Format, 0, len(req.Formats))
	for _, name := range req.Formats {
		f, err := domain.ParseFormat(name)
		if err != nil {
			return writeError(c, err)
		}
		formats = append(formats, f)
	}

	mp, err := s.masterplans.Generate(c.Request().Context(), service.GenerateRequest{
		ConversationID: req.ConversationID,
		Messages:       req.Messages,
		Title:          req.Title,
		TemplateID:     req.TemplateID,
		Formats:        formats,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, mp)
}

func (s *Server) handleListMasterplans(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		list []*domain.Masterplan
		err  error
	)
	if conversationID := c.QueryParam("conversationId"); conversationID != "" {
		list, err = s.masterplans.ListByConversation(ctx, conversationID)
	} else {
		list, err = s.masterplans.List(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}
	if list == nil {
		list = []*domain.Masterplan{}
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetMasterplan(c echo.Context) error {
	mp, err := s.masterplans.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, mp)
}

func (s *Server) handleDeleteMasterplan(c echo.Context) error {
	if err := s.masterplans.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleExport(c echo.Context) error {
	format, err := domain.ParseFormat(c.Param("format"))
	if err != nil {
		return writeError(c, err)
	}

	file, err := s.masterplans.Export(c.Request().Context(), c.Param("id"), format)
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, file.Filename))
	return c.Blob(http.StatusOK, file.MIMEType, []byte(file.Content))
}
