package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/service"
)

// FilesHandler issues presigned uploads and takes the moderation callback.
type FilesHandler struct {
	Files *service.FilesService
	log   zerolog.Logger
}

func NewFilesHandler(files *service.FilesService, log zerolog.Logger) *FilesHandler {
	return &FilesHandler{Files: files, log: log}
}

func (h *FilesHandler) Presign(c echo.Context) error {
	var req service.PresignInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res, err := h.Files.Presign(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Callback records a moderation verdict. Role-gated upstream.
func (h *FilesHandler) Callback(c echo.Context) error {
	var req service.UploadCallbackInput
	if err := c.Bind(&req); err != nil || req.MediaID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "media_id and status required"})
	}
	v, err := h.Files.Callback(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}
