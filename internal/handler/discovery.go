package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/geo"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/search"
)

// DiscoveryHandler serves the public class search endpoint.
type DiscoveryHandler struct {
	Engine *search.Engine
}

func NewDiscoveryHandler(e *search.Engine) *DiscoveryHandler {
	return &DiscoveryHandler{Engine: e}
}

// Search handles GET /v1/classes. All filters are optional query
// params; coordinates accepts either "lat,lon" or a JSON array
// "[lat,lon]". Distance is in kilometres and only takes effect when
// coordinates are present.
func (h *DiscoveryHandler) Search(c echo.Context) error {
	crit := search.Criteria{
		Search: strings.TrimSpace(c.QueryParam("search")),
		SortBy: strings.TrimSpace(c.QueryParam("sortBy")),
	}

	crit.Page = 1
	if v := c.QueryParam("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return badRequest(c, "invalid page")
		}
		crit.Page = n
	}
	crit.PageSize = 20
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return badRequest(c, "invalid limit")
		}
		if n > 100 {
			n = 100
		}
		crit.PageSize = n
	}

	if v := c.QueryParam("minPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "invalid minPrice")
		}
		crit.MinPrice = &p
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return badRequest(c, "invalid maxPrice")
		}
		crit.MaxPrice = &p
	}
	if v := c.QueryParam("category"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return badRequest(c, "invalid category")
		}
		crit.CategoryID = id
	}

	if v := c.QueryParam("coordinates"); v != "" {
		pt, err := geo.ParseCoordinates(v)
		if err != nil {
			return badRequest(c, "invalid coordinates, expected [latitude, longitude]")
		}
		crit.UserCoordinates = pt
	}
	if v := c.QueryParam("distance"); v != "" {
		km, err := strconv.ParseFloat(v, 64)
		if err != nil || km < 0 {
			return badRequest(c, "invalid distance")
		}
		if crit.UserCoordinates == nil {
			return badRequest(c, "distance requires coordinates")
		}
		crit.MaxDistanceKm = &km
	}

	switch crit.SortBy {
	case search.SortDefault, search.SortPrice, search.SortRating:
	default:
		return badRequest(c, "invalid sortBy, expected price or rating")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Engine.Search(ctx, crit)
	if err != nil {
		if errors.Is(err, search.ErrInvalidPagination) {
			return badRequest(c, "invalid pagination")
		}
		return internalError(c, "search failed")
	}
	return c.JSON(http.StatusOK, res)
}
