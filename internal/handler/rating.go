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

// RatingHandler is admin-only. A rating optionally references a booking,
// which must belong to the rated user, be completed, and carry at most one
// rating.
type RatingHandler struct {
	Ratings  *repository.RatingRepo
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

func NewRatingHandler(r *repository.RatingRepo, b *repository.BookingRepo, u *repository.UserRepo) *RatingHandler {
	return &RatingHandler{Ratings: r, Bookings: b, Users: u}
}

type createRatingReq struct {
	RatedUserID uint64  `json:"rated_user_id" validate:"required"`
	BookingID   *uint64 `json:"booking_id"`
	Rating      int     `json:"rating" validate:"required,min=1,max=5"`
	Comment     *string `json:"comment"`
}

type patchRatingReq struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

func (h *RatingHandler) List(c echo.Context) error {
	limit, offset := pageParams(c)
	q := repository.RatingQuery{
		Q:           strings.TrimSpace(c.QueryParam("q")),
		RatedUserID: queryUint(c, "ratedUserId"),
		Limit:       limit,
		Offset:      offset,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Ratings.List(ctx, q)
	if err != nil {
		return fail(c, err)
	}
	return listJSON(c, rows, int(total), limit, offset)
}

func (h *RatingHandler) Create(c echo.Context) error {
	admin, _ := middleware.CurrentUser(c)
	var req createRatingReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.RatedUserID); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("user not found"))
		}
		return fail(c, err)
	}
	if req.BookingID != nil {
		b, err := h.Bookings.GetByID(ctx, *req.BookingID)
		if err != nil {
			if err == sql.ErrNoRows {
				return fail(c, apierr.NotFound("booking not found"))
			}
			return fail(c, err)
		}
		if b.UserID != req.RatedUserID {
			return fail(c, apierr.BadRequest("booking does not belong to rated user"))
		}
		if b.Status != model.BookingCompleted {
			return fail(c, apierr.Conflict("only completed bookings can be rated"))
		}
		taken, err := h.Ratings.ExistsForBooking(ctx, *req.BookingID)
		if err != nil {
			return fail(c, err)
		}
		if taken {
			return fail(c, apierr.Conflict("booking already rated"))
		}
	}

	rt := &model.Rating{
		RatedUserID: req.RatedUserID,
		BookingID:   req.BookingID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedBy:   &admin.ID,
	}
	id, err := h.Ratings.Create(ctx, rt)
	if err != nil {
		return fail(c, err)
	}
	created, err := h.Ratings.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *RatingHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var req patchRatingReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Ratings.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("rating not found"))
		}
		return fail(c, err)
	}
	if err := h.Ratings.Update(ctx, id, req.Rating, req.Comment); err != nil {
		return fail(c, err)
	}
	rt, err := h.Ratings.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rt)
}

func (h *RatingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Ratings.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("rating not found"))
		}
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
