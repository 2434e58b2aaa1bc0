package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/repository"
	"github.com/playerbase/player-api/internal/service"
	"github.com/playerbase/player-api/internal/utils"
)

// MeHandler serves the authenticated user's own profile and gallery.
type MeHandler struct {
	Profiles *service.ProfileService
	log      zerolog.Logger
}

func NewMeHandler(profiles *service.ProfileService, log zerolog.Logger) *MeHandler {
	return &MeHandler{Profiles: profiles, log: log}
}

func (h *MeHandler) Get(c echo.Context) error {
	v, err := h.Profiles.Get(c.Request().Context(), userID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MeHandler) Update(c echo.Context) error {
	var req service.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	v, err := h.Profiles.Update(c.Request().Context(), userID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MeHandler) ListMedia(c echo.Context) error {
	limit, cursor := utils.ParsePageParams(c.QueryParam("limit"), c.QueryParam("cursor"))
	page, err := h.Profiles.Media(c.Request().Context(), userID(c), repository.MediaFilters{
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
		Limit:  limit,
		Cursor: cursor,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *MeHandler) CreateMedia(c echo.Context) error {
	var req service.CreateMediaInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Type == "" || req.URL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type and url required"})
	}
	v, err := h.Profiles.CreateMedia(c.Request().Context(), userID(c), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *MeHandler) UpdateMedia(c echo.Context) error {
	var req service.UpdateMediaInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	v, err := h.Profiles.UpdateMedia(c.Request().Context(), userID(c), c.Param("media_id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MeHandler) DeleteMedia(c echo.Context) error {
	if err := h.Profiles.DeleteMedia(c.Request().Context(), userID(c), c.Param("media_id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type avatarReq struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type avatarConfirmReq struct {
	Key string `json:"key"`
}

func (h *MeHandler) PresignAvatar(c echo.Context) error {
	var req avatarReq
	if err := c.Bind(&req); err != nil || req.FileName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file_name and content_type required"})
	}
	v, err := h.Profiles.PresignAvatar(c.Request().Context(), userID(c), req.FileName, req.ContentType)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *MeHandler) ConfirmAvatar(c echo.Context) error {
	var req avatarConfirmReq
	if err := c.Bind(&req); err != nil || req.Key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key required"})
	}
	v, err := h.Profiles.ConfirmAvatar(c.Request().Context(), userID(c), req.Key)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}
