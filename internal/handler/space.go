package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/apierr"
	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/repository"
)

// SpaceHandler serves the public space catalogue and the admin CRUD on it.
type SpaceHandler struct {
	Spaces *repository.SpaceRepo
}

func NewSpaceHandler(s *repository.SpaceRepo) *SpaceHandler {
	return &SpaceHandler{Spaces: s}
}

type createSpaceReq struct {
	Name      string   `json:"name" validate:"required"`
	Building  string   `json:"building" validate:"required"`
	Floor     string   `json:"floor"`
	Location  *string  `json:"location"`
	Capacity  int      `json:"capacity" validate:"required,min=1"`
	ImageURL  *string  `json:"image_url"`
	Status    string   `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
	Utilities []string `json:"utilities"`
}

type updateSpaceReq struct {
	Name      *string   `json:"name"`
	Building  *string   `json:"building"`
	Floor     *string   `json:"floor"`
	Location  *string   `json:"location"`
	Capacity  *int      `json:"capacity" validate:"omitempty,min=1"`
	ImageURL  *string   `json:"image_url"`
	Status    *string   `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
	Utilities *[]string `json:"utilities"`
}

// List is the public space search. Utilities filter uses AND semantics: a
// space must carry every requested key.
func (h *SpaceHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	q := repository.SpaceQuery{
		Q:        strings.TrimSpace(c.QueryParam("q")),
		Building: strings.TrimSpace(c.QueryParam("building")),
		Status:   strings.TrimSpace(c.QueryParam("status")),
		Limit:    limit,
		Offset:   offset,
	}
	if raw := strings.TrimSpace(c.QueryParam("floor")); raw != "" {
		q.Floor = raw
	}
	if raw := c.QueryParam("capacityMin"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.CapacityMin = n
		}
	}
	if raw := c.QueryParam("capacityMax"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.CapacityMax = n
		}
	}
	if raw := strings.TrimSpace(c.QueryParam("utilities")); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				q.Utilities = append(q.Utilities, k)
			}
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	spaces, total, err := h.Spaces.List(ctx, q)
	if err != nil {
		return fail(c, err)
	}
	return listJSON(c, spaces, int(total), limit, offset)
}

func (h *SpaceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sp, err := h.Spaces.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("space not found"))
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *SpaceHandler) Create(c echo.Context) error {
	var req createSpaceReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}
	if req.Status == "" {
		req.Status = model.SpaceActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sp := &model.Space{
		Name:     strings.TrimSpace(req.Name),
		Building: strings.TrimSpace(req.Building),
		Floor:    strings.TrimSpace(req.Floor),
		Location: req.Location,
		Capacity: req.Capacity,
		ImageURL: req.ImageURL,
		Status:   req.Status,
	}
	id, err := h.Spaces.Create(ctx, sp, req.Utilities)
	if err != nil {
		return fail(c, err)
	}
	created, err := h.Spaces.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update patches a space. A utilities field, when present, replaces the
// key-set wholesale.
func (h *SpaceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var req updateSpaceReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	upd := repository.SpaceUpdate{
		Name:      req.Name,
		Building:  req.Building,
		Floor:     req.Floor,
		Location:  req.Location,
		Capacity:  req.Capacity,
		ImageURL:  req.ImageURL,
		Status:    req.Status,
		Utilities: req.Utilities,
	}
	if err := h.Spaces.Update(ctx, id, upd); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("space not found"))
		}
		return fail(c, err)
	}
	sp, err := h.Spaces.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *SpaceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Spaces.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("space not found"))
		}
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
