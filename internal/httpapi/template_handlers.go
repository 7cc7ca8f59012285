package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/producthouse/producthouse/internal/domain"
)

func (s *Server) handleListTemplates(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Templates())
}

func (s *Server) handleGetTemplate(c echo.Context) error {
	tpl, err := domain.TemplateByID(c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, tpl)
}
