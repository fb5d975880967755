package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/apierr"
)

// fail renders an API error. Anything that is not an *apierr.Error is logged
// and reported as a generic 500 so internals never leak to clients.
func fail(c echo.Context, err error) error {
	var e *apierr.Error
	if errors.As(err, &e) {
		return c.JSON(e.Status, e)
	}
	c.Logger().Error(err)
	e = apierr.Internal("internal server error")
	return c.JSON(e.Status, e)
}

type listMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type listEnvelope struct {
	Data any      `json:"data"`
	Meta listMeta `json:"meta"`
}

func listJSON(c echo.Context, data any, total, limit, offset int) error {
	return c.JSON(http.StatusOK, listEnvelope{Data: data, Meta: listMeta{Total: total, Limit: limit, Offset: offset}})
}

// pathID parses the :id route parameter. Zero is never a valid row id.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apierr.BadRequest("invalid id")
	}
	return id, nil
}

// pageParams reads limit/offset with the shared bounds: limit 1..100
// defaulting to 20, offset >= 0.
func pageParams(c echo.Context) (limit, offset int) {
	limit = 20
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 100 {
			limit = n
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func queryUint(c echo.Context, name string) uint64 {
	if raw := c.QueryParam(name); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
