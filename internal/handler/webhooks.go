package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/service"
)

// WebhooksHandler takes payment-provider notifications. The provider
// retries on non-2xx, so everything that is not a transient failure is
// acknowledged with 200.
type WebhooksHandler struct {
	Boosts *service.BoostService
	log    zerolog.Logger
}

func NewWebhooksHandler(boosts *service.BoostService, log zerolog.Logger) *WebhooksHandler {
	return &WebhooksHandler{Boosts: boosts, log: log}
}

type mpNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// MercadoPago handles both notification shapes the provider sends: a JSON
// body with type/data.id and the legacy topic/id query params.
func (h *WebhooksHandler) MercadoPago(c echo.Context) error {
	var n mpNotification
	_ = c.Bind(&n)

	kind := n.Type
	paymentID := n.Data.ID
	if kind == "" {
		kind = c.QueryParam("topic")
	}
	if paymentID == "" {
		paymentID = c.QueryParam("id")
	}
	if kind != "payment" || paymentID == "" {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}

	if err := h.Boosts.HandlePaymentUpdate(c.Request().Context(), paymentID); err != nil {
		h.log.Error().Err(err).Str("payment_id", paymentID).Msg("payment webhook failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
