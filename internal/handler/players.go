package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/repository"
	"github.com/playerbase/player-api/internal/service"
	"github.com/playerbase/player-api/internal/utils"
)

// PlayersHandler serves the public browse surface.
type PlayersHandler struct {
	Players *service.PlayersService
	log     zerolog.Logger
}

func NewPlayersHandler(players *service.PlayersService, log zerolog.Logger) *PlayersHandler {
	return &PlayersHandler{Players: players, log: log}
}

// List handles both GET /v1/players and GET /v1/players/search; the only
// difference is which query params clients tend to send.
func (h *PlayersHandler) List(c echo.Context) error {
	limit, cursor := utils.ParsePageParams(c.QueryParam("limit"), c.QueryParam("cursor"))
	q := repository.ProfileSearchQuery{
		Q:      c.QueryParam("q"),
		State:  strings.ToUpper(c.QueryParam("state")),
		City:   c.QueryParam("city"),
		Limit:  limit,
		Cursor: cursor,
	}
	if tags := c.QueryParam("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.Tags = append(q.Tags, t)
			}
		}
	}
	page, err := h.Players.List(c.Request().Context(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *PlayersHandler) Trending(c echo.Context) error {
	limit, _ := utils.ParsePageParams(c.QueryParam("limit"), "")
	page, err := h.Players.Trending(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *PlayersHandler) ByUsername(c echo.Context) error {
	v, err := h.Players.ByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *PlayersHandler) Media(c echo.Context) error {
	limit, cursor := utils.ParsePageParams(c.QueryParam("limit"), c.QueryParam("cursor"))
	page, err := h.Players.MediaByUsername(c.Request().Context(), c.Param("username"),
		repository.MediaFilters{
			Type:   c.QueryParam("type"),
			Limit:  limit,
			Cursor: cursor,
		})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}
