package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerbase/player-api/internal/service"
	"github.com/playerbase/player-api/internal/utils"
)

// BrowseHandler serves the tag and location drill-down endpoints.
type BrowseHandler struct {
	Tags      *service.TagsService
	Locations *service.LocationsService
	log       zerolog.Logger
}

func NewBrowseHandler(tags *service.TagsService, locations *service.LocationsService, log zerolog.Logger) *BrowseHandler {
	return &BrowseHandler{Tags: tags, Locations: locations, log: log}
}

func (h *BrowseHandler) ListTags(c echo.Context) error {
	out, err := h.Tags.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func (h *BrowseHandler) PlayersByTag(c echo.Context) error {
	limit, cursor := utils.ParsePageParams(c.QueryParam("limit"), c.QueryParam("cursor"))
	page, err := h.Tags.PlayersByTag(c.Request().Context(), c.Param("slug"), limit, cursor)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *BrowseHandler) States(c echo.Context) error {
	out, err := h.Locations.States(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func (h *BrowseHandler) Cities(c echo.Context) error {
	out, err := h.Locations.Cities(c.Request().Context(), c.Param("state"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": out})
}

func (h *BrowseHandler) PlayersByLocation(c echo.Context) error {
	limit, cursor := utils.ParsePageParams(c.QueryParam("limit"), c.QueryParam("cursor"))
	page, err := h.Locations.Players(c.Request().Context(),
		c.Param("state"), c.Param("city"), limit, cursor)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, page)
}
