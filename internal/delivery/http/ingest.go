package http

import (
	"net/http"
	"sentiment-trading/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupIngest(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.POST("/sentiments", h.IngestSentiments)
		v1.POST("/prices", h.IngestPrices)
	}
}

func (h *HttpAPIHandler) IngestSentiments(c echo.Context) error {
	var req dto.IngestSentimentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	received, err := h.service.IngestService.IngestSentiments(c.Request().Context(), req)
	if err != nil {
		response := errorResponse(err)
		return c.JSON(response.Code, response)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Sentiments ingested", dto.IngestResponse{Received: received}))
}

func (h *HttpAPIHandler) IngestPrices(c echo.Context) error {
	var req dto.IngestPriceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	received, err := h.service.IngestService.IngestPrices(c.Request().Context(), req)
	if err != nil {
		response := errorResponse(err)
		return c.JSON(response.Code, response)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Prices ingested", dto.IngestResponse{Received: received}))
}
