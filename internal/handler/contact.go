package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/service"
)

// ContactHandler records visitors reaching out to players.
type ContactHandler struct {
	Contact *service.ContactService
	log     zerolog.Logger
}

func NewContactHandler(contact *service.ContactService, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{Contact: contact, log: log}
}

func (h *ContactHandler) Create(c echo.Context) error {
	var req service.ContactInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" || req.Channel == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and channel required"})
	}
	if ip := c.RealIP(); ip != "" {
		req.RequesterIP = &ip
	}
	if ua := c.Request().UserAgent(); ua != "" {
		req.UserAgent = &ua
	}
	v, err := h.Contact.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, v)
}
