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

// AdminUserHandler exposes the user administration endpoints.
type AdminUserHandler struct {
	Users     *repository.UserRepo
	Bookings  *repository.BookingRepo
	Penalties *repository.PenaltyRepo
	Ratings   *repository.RatingRepo
}

func NewAdminUserHandler(u *repository.UserRepo, b *repository.BookingRepo, p *repository.PenaltyRepo, r *repository.RatingRepo) *AdminUserHandler {
	return &AdminUserHandler{Users: u, Bookings: b, Penalties: p, Ratings: r}
}

type patchUserReq struct {
	Role   *string `json:"role" validate:"omitempty,oneof=student admin"`
	Status *string `json:"status" validate:"omitempty,oneof=active suspended"`
}

// userSummaryResp aggregates everything the admin user detail page shows.
type userSummaryResp struct {
	User      model.User                 `json:"user"`
	Bookings  []model.BookingHistoryItem `json:"bookings"`
	Penalties []model.Penalty            `json:"penalties"`
	Ratings   []model.Rating             `json:"ratings"`
}

func (h *AdminUserHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	q := repository.UserQuery{
		Q:      strings.TrimSpace(c.QueryParam("q")),
		Status: strings.TrimSpace(c.QueryParam("status")),
		Limit:  limit,
		Offset: offset,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Users.List(ctx, q)
	if err != nil {
		return fail(c, err)
	}
	return listJSON(c, rows, int(total), limit, offset)
}

func (h *AdminUserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("user not found"))
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Patch changes role and/or status. Admins cannot modify their own account,
// which keeps at least one working admin around.
func (h *AdminUserHandler) Patch(c echo.Context) error {
	admin, _ := middleware.CurrentUser(c)
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	if id == admin.ID {
		return fail(c, apierr.Forbidden("cannot modify your own account"))
	}
	var req patchUserReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}
	if req.Role == nil && req.Status == nil {
		return fail(c, apierr.BadRequest("nothing to update"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("user not found"))
		}
		return fail(c, err)
	}
	if err := h.Users.AdminUpdate(ctx, id, req.Role, req.Status); err != nil {
		return fail(c, err)
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// Summary returns the user row plus their recent finished bookings,
// penalties and ratings in one response.
func (h *AdminUserHandler) Summary(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("user not found"))
		}
		return fail(c, err)
	}
	history, err := h.Bookings.HistoryByUser(ctx, id, 50)
	if err != nil {
		return fail(c, err)
	}
	penalties, err := h.Penalties.ListByUser(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	ratings, err := h.Ratings.ListByUser(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, userSummaryResp{
		User:      u,
		Bookings:  history,
		Penalties: penalties,
		Ratings:   ratings,
	})
}
