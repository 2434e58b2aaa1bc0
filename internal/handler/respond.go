// Package handler wires HTTP requests to the service layer. Handlers bind
// and sanity-check input, call one service method, and translate typed
// service errors into status codes. Anything untyped is a 500 with a
// generic body; the detail goes to the log, never to the client.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/service"
)

func respondError(c echo.Context, log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrBadRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if ce, ok := service.AsConflict(err); ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": ce.Error(), "field": ce.Field})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// userID reads the authenticated user id the auth middleware stored.
func userID(c echo.Context) string {
	s, _ := c.Get("user_id").(string)
	return s
}

func sessionID(c echo.Context) string {
	s, _ := c.Get("session_id").(string)
	return s
}
