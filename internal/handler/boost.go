package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/service"
)

// BoostHandler sells visibility boosts and lists the caller's purchases.
type BoostHandler struct {
	Boosts *service.BoostService
	log    zerolog.Logger
}

func NewBoostHandler(boosts *service.BoostService, log zerolog.Logger) *BoostHandler {
	return &BoostHandler{Boosts: boosts, log: log}
}

type checkoutReq struct {
	Plan string `json:"plan"`
}

func (h *BoostHandler) Plans(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"data": h.Boosts.Plans()})
}

func (h *BoostHandler) Checkout(c echo.Context) error {
	var req checkoutReq
	if err := c.Bind(&req); err != nil || req.Plan == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "plan required"})
	}
	res, err := h.Boosts.Checkout(c.Request().Context(), userID(c), req.Plan)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *BoostHandler) List(c echo.Context) error {
	out, err := h.Boosts.List(c.Request().Context(), userID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}
