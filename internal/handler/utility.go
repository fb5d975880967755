package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/apierr"
	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/repository"
)

// UtilityHandler manages the amenity catalogue. The key of a utility is
// immutable after creation; the update DTO deliberately has no key field.
// Deleting a utility removes it and its join rows but runs no clean-up of
// historic references beyond that.
type UtilityHandler struct {
	Utilities *repository.UtilityRepo
}

func NewUtilityHandler(u *repository.UtilityRepo) *UtilityHandler {
	return &UtilityHandler{Utilities: u}
}

type createUtilityReq struct {
	Key         string  `json:"key" validate:"required,lowercase"`
	Label       string  `json:"label" validate:"required"`
	Description *string `json:"description"`
}

type updateUtilityReq struct {
	Label       *string `json:"label"`
	Description *string `json:"description"`
}

// List returns all utilities ordered by label as a plain array.
func (h *UtilityHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Utilities.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *UtilityHandler) Create(c echo.Context) error {
	var req createUtilityReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := &model.Utility{
		Key:         strings.TrimSpace(req.Key),
		Label:       strings.TrimSpace(req.Label),
		Description: req.Description,
	}
	id, err := h.Utilities.Create(ctx, u)
	if err != nil {
		if err == repository.ErrUtilityKeyExists {
			return fail(c, apierr.Conflict("utility key already exists"))
		}
		return fail(c, err)
	}
	u.ID = id
	return c.JSON(http.StatusCreated, u)
}

func (h *UtilityHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var req updateUtilityReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Utilities.Update(ctx, id, req.Label, req.Description); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("utility not found"))
		}
		return fail(c, err)
	}
	u, err := h.Utilities.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UtilityHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Utilities.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("utility not found"))
		}
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
