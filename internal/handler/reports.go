package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/service"
)

// ReportsHandler accepts abuse reports and exposes the moderation queue.
type ReportsHandler struct {
	Reports *service.ReportService
	log     zerolog.Logger
}

func NewReportsHandler(reports *service.ReportService, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{Reports: reports, log: log}
}

// Create accepts a report from anyone; when the caller is authenticated the
// reporter id is recorded.
func (h *ReportsHandler) Create(c echo.Context) error {
	var req service.ReportInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if uid := userID(c); uid != "" {
		req.ReporterUserID = &uid
	}
	v, err := h.Reports.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, v)
}

// ListOpen serves the moderation queue, oldest first. Role-gated upstream.
func (h *ReportsHandler) ListOpen(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	out, err := h.Reports.ListOpen(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
