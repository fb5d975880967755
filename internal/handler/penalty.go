package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/apierr"
	"github.com/studyspace/study-space-api/internal/middleware"
	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/repository"
)

// PenaltyHandler is admin-only; routes are registered behind RequireRole.
type PenaltyHandler struct {
	Penalties *repository.PenaltyRepo
	Bookings  *repository.BookingRepo
	Users     *repository.UserRepo
}

func NewPenaltyHandler(p *repository.PenaltyRepo, b *repository.BookingRepo, u *repository.UserRepo) *PenaltyHandler {
	return &PenaltyHandler{Penalties: p, Bookings: b, Users: u}
}

type createPenaltyReq struct {
	UserID    uint64  `json:"user_id" validate:"required"`
	BookingID *uint64 `json:"booking_id"`
	Reason    string  `json:"reason" validate:"required"`
	Points    int     `json:"points" validate:"required,min=1,max=50"`
}

type patchPenaltyReq struct {
	Status string `json:"status" validate:"required,oneof=active resolved expired"`
}

func (h *PenaltyHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	q := repository.PenaltyQuery{
		Q:      strings.TrimSpace(c.QueryParam("q")),
		Status: strings.TrimSpace(c.QueryParam("status")),
		UserID: queryUint(c, "userId"),
		Limit:  limit,
		Offset: offset,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Penalties.List(ctx, q)
	if err != nil {
		return fail(c, err)
	}
	return listJSON(c, rows, int(total), limit, offset)
}

func (h *PenaltyHandler) Create(c echo.Context) error {
	admin, _ := middleware.CurrentUser(c)
	var req createPenaltyReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("user not found"))
		}
		return fail(c, err)
	}
	if req.BookingID != nil {
		if _, err := h.Bookings.GetByID(ctx, *req.BookingID); err != nil {
			if err == sql.ErrNoRows {
				return fail(c, apierr.NotFound("booking not found"))
			}
			return fail(c, err)
		}
	}

	p := &model.Penalty{
		UserID:    req.UserID,
		BookingID: req.BookingID,
		Reason:    strings.TrimSpace(req.Reason),
		Points:    req.Points,
		Status:    model.PenaltyActive,
		CreatedBy: &admin.ID,
	}
	id, err := h.Penalties.Create(ctx, p)
	if err != nil {
		return fail(c, err)
	}
	created, err := h.Penalties.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Patch updates the status only. Resolving an already-resolved penalty is a
// no-op that still returns the row.
func (h *PenaltyHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var req patchPenaltyReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Penalties.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("penalty not found"))
		}
		return fail(c, err)
	}
	if p.Status != req.Status {
		if err := h.Penalties.UpdateStatus(ctx, id, req.Status); err != nil {
			return fail(c, err)
		}
		p.Status = req.Status
	}
	return c.JSON(http.StatusOK, p)
}
