package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/producthouse/producthouse/internal/domain"
	"github.com/producthouse/producthouse/internal/llm"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the domain error taxonomy to HTTP statuses. errors.As
// runs here and nowhere else; inner layers only wrap.
func writeError(c echo.Context, err error) error {
	var (
		notFound    *domain.NotFoundError
		unsupported *domain.UnsupportedFormatError
		validation  *domain.ValidationError
		authz       *domain.AuthorizationError
		conflict    *domain.VersionConflictError
		upstream    *llm.UpstreamServiceError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &unsupported), errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &authz):
		status = http.StatusUnauthorized
	case errors.As(err, &conflict):
		status = http.StatusConflict
	case errors.As(err, &upstream):
		status = http.StatusBadGateway
	}

	return c.JSON(status, errorResponse{Error: err.Error()})
}
