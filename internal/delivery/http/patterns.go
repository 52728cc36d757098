package http

import (
	"net/http"
	"sentiment-trading/internal/dto"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPatterns(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.POST("/analyze", h.Analyze)
		v1.GET("/patterns", h.ListRecentPatterns)
		v1.GET("/patterns/:symbol/latest", h.GetLatestPattern)
	}
}

func (h *HttpAPIHandler) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	results := h.service.PatternService.AnalyzeMany(c.Request().Context(), req.Symbols, time.Now(), req.WindowDays)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Analysis completed", results))
}

func (h *HttpAPIHandler) GetLatestPattern(c echo.Context) error {
	symbol := c.Param("symbol")

	pattern, err := h.service.PatternService.GetLatest(c.Request().Context(), symbol)
	if err != nil {
		response := errorResponse(err)
		return c.JSON(response.Code, response)
	}
	if pattern == nil {
		return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "No analysis found for symbol", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Latest pattern", pattern))
}

func (h *HttpAPIHandler) ListRecentPatterns(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("limit must be an integer"))
		}
		limit = parsed
	}

	patterns, err := h.service.PatternService.ListRecent(c.Request().Context(), c.QueryParam("symbol"), limit)
	if err != nil {
		response := errorResponse(err)
		return c.JSON(response.Code, response)
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Recent patterns", patterns))
}
