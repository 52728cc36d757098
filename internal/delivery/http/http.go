package http

import (
	"context"
	"errors"
	"net/http"
	"sentiment-trading/internal/analysis"
	"sentiment-trading/internal/dto"
	"sentiment-trading/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	h.SetupIngest(base)
	h.SetupPatterns(base)
}

// errorResponse maps the error taxonomy onto HTTP statuses: boundary
// validation failures are the client's fault, everything else is internal.
func errorResponse(err error) *dto.BaseResponse {
	if errors.Is(err, analysis.ErrValidation) {
		return dto.NewBadRequestResponse(err.Error())
	}
	return dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
}
