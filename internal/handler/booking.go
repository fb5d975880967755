package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/apierr"
	"github.com/studyspace/study-space-api/internal/iot"
	"github.com/studyspace/study-space-api/internal/middleware"
	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/queue"
	"github.com/studyspace/study-space-api/internal/repository"
	"github.com/studyspace/study-space-api/internal/service"
)

// BookingHandler implements the booking lifecycle: request, review,
// check-in/out and the door relay. Door sessions and broker events are
// best-effort; a dead controller or broker never fails a booking call.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Spaces   *repository.SpaceRepo
	Door     *iot.Client
}

func NewBookingHandler(b *repository.BookingRepo, s *repository.SpaceRepo, door *iot.Client) *BookingHandler {
	return &BookingHandler{Bookings: b, Spaces: s, Door: door}
}

type createBookingReq struct {
	SpaceID     uint64 `json:"space_id" validate:"required"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	Attendees   int    `json:"attendees" validate:"required,min=1"`
	Purpose     string `json:"purpose"`
}

type patchBookingReq struct {
	Status             string  `json:"status" validate:"required,oneof=pending approved rejected cancelled completed no_show"`
	CancellationReason *string `json:"cancellation_reason"`
}

// List returns the caller's bookings. Students are always scoped to their
// own rows; admins see everything unless they narrow by userId.
func (h *BookingHandler) List(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, apierr.Unauthorized("missing token"))
	}
	limit, offset := pageParams(c)
	q := repository.BookingQuery{
		Status: strings.TrimSpace(c.QueryParam("status")),
		Limit:  limit,
		Offset: offset,
	}
	q.SpaceID = queryUint(c, "spaceId")

	if u.Role == model.RoleAdmin {
		q.UserID = queryUint(c, "userId")
		if c.QueryParam("my") == "true" {
			q.UserID = u.ID
		}
	} else {
		q.UserID = u.ID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Bookings.List(ctx, q)
	if err != nil {
		return fail(c, err)
	}
	return listJSON(c, rows, int(total), limit, offset)
}

func (h *BookingHandler) Get(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, apierr.Unauthorized("missing token"))
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("booking not found"))
		}
		return fail(c, err)
	}
	if u.Role != model.RoleAdmin && b.UserID != u.ID {
		return fail(c, apierr.Forbidden("not your booking"))
	}
	return c.JSON(http.StatusOK, b)
}

// Create validates the slot and stores a pending booking, then requests an
// IoT door session for it. Session failures only log; the booking stands.
func (h *BookingHandler) Create(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, apierr.Unauthorized("missing token"))
	}
	var req createBookingReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}
	if repository.SlotDuration(req.StartTime, req.EndTime) <= 0 {
		return fail(c, apierr.BadRequest("end_time must be after start_time"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sp, err := h.Spaces.GetByID(ctx, req.SpaceID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("space not found"))
		}
		return fail(c, err)
	}
	if sp.Status != model.SpaceActive {
		return fail(c, apierr.Conflict("space is not available for booking"))
	}
	if req.Attendees > sp.Capacity {
		return fail(c, apierr.BadRequest("attendees exceed space capacity"))
	}

	overlap, err := h.Bookings.HasOverlap(ctx, req.SpaceID, req.BookingDate, req.StartTime, req.EndTime)
	if err != nil {
		return fail(c, err)
	}
	if overlap {
		return fail(c, apierr.Conflict("space already booked for this time slot"))
	}

	b := &model.Booking{
		UserID:      u.ID,
		SpaceID:     req.SpaceID,
		BookingDate: req.BookingDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      model.BookingPending,
		Attendees:   req.Attendees,
		Purpose:     strings.TrimSpace(req.Purpose),
	}
	id, err := h.Bookings.Create(ctx, b)
	if err != nil {
		return fail(c, err)
	}

	if sid, err := h.Door.CreateSession(ctx, id, req.SpaceID, req.BookingDate, req.StartTime, req.EndTime); err != nil {
		log.Printf("booking %d: door session create failed: %v", id, err)
	} else if err := h.Bookings.SetIoTSession(ctx, id, sid); err != nil {
		log.Printf("booking %d: store door session failed: %v", id, err)
	}

	created, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	go h.publishEvent(queue.EventBookingCreated, created, u.ID)
	return c.JSON(http.StatusCreated, created)
}

// Patch moves a booking through its lifecycle. Students may only cancel
// their own pending bookings; admins may set any status. Approve/reject
// stamp the deciding admin, cancel stamps time and reason.
func (h *BookingHandler) Patch(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, apierr.Unauthorized("missing token"))
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	var req patchBookingReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("booking not found"))
		}
		return fail(c, err)
	}

	if u.Role != model.RoleAdmin {
		if b.UserID != u.ID {
			return fail(c, apierr.Forbidden("not your booking"))
		}
		if req.Status != model.BookingCancelled {
			return fail(c, apierr.Forbidden("students may only cancel bookings"))
		}
		if b.Status != model.BookingPending {
			return fail(c, apierr.Conflict("only pending bookings can be cancelled"))
		}
	}

	now := time.Now().UTC()
	switch req.Status {
	case model.BookingApproved, model.BookingRejected:
		b.ApprovedBy = &u.ID
		b.ApprovedAt = &now
	case model.BookingCancelled:
		b.CancelledAt = &now
		b.CancellationReason = req.CancellationReason
	}
	b.Status = req.Status

	if err := h.Bookings.UpdateState(ctx, &b); err != nil {
		return fail(c, err)
	}

	// Terminal states no longer need a door session.
	if terminalStatus(req.Status) && b.IoTSessionID != nil {
		_ = h.Door.DeleteSession(ctx, *b.IoTSessionID)
	}

	fresh, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	go h.publishEvent(queue.EventBookingStatus, fresh, u.ID)
	return c.JSON(http.StatusOK, fresh)
}

func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("booking not found"))
		}
		return fail(c, err)
	}
	if b.IoTSessionID != nil {
		_ = h.Door.DeleteSession(ctx, *b.IoTSessionID)
	}
	if err := h.Bookings.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("booking not found"))
		}
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckIn marks arrival. Only an approved booking can be checked in, once.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	return h.attendance(c, true)
}

// CheckOut marks departure after a check-in and completes the booking.
func (h *BookingHandler) CheckOut(c echo.Context) error {
	return h.attendance(c, false)
}

func (h *BookingHandler) attendance(c echo.Context, in bool) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, apierr.Unauthorized("missing token"))
	}
	id, err := pathID(c)
	if err != nil {
		return fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.NotFound("booking not found"))
		}
		return fail(c, err)
	}
	if u.Role != model.RoleAdmin && b.UserID != u.ID {
		return fail(c, apierr.Forbidden("not your booking"))
	}

	now := time.Now().UTC()
	if in {
		if b.Status != model.BookingApproved {
			return fail(c, apierr.Conflict("only approved bookings can check in"))
		}
		if b.CheckInAt != nil {
			return fail(c, apierr.Conflict("already checked in"))
		}
		b.CheckInAt = &now
	} else {
		if b.CheckInAt == nil {
			return fail(c, apierr.Conflict("check in before checking out"))
		}
		if b.CheckOutAt != nil {
			return fail(c, apierr.Conflict("already checked out"))
		}
		b.CheckOutAt = &now
		b.Status = model.BookingCompleted
	}

	if err := h.Bookings.UpdateState(ctx, &b); err != nil {
		return fail(c, err)
	}
	if !in && b.IoTSessionID != nil {
		_ = h.Door.DeleteSession(ctx, *b.IoTSessionID)
	}

	fresh, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	if !in {
		go h.publishEvent(queue.EventBookingStatus, fresh, u.ID)
	}
	return c.JSON(http.StatusOK, fresh)
}

func terminalStatus(s string) bool {
	switch s {
	case model.BookingRejected, model.BookingCancelled, model.BookingCompleted, model.BookingNoShow:
		return true
	}
	return false
}

func (h *BookingHandler) publishEvent(kind string, b model.Booking, actorID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	spaceName := ""
	if b.Space != nil {
		spaceName = b.Space.Name
	}
	_ = service.PublishBookingEvent(ctx, queue.BookingEvent{
		Kind:        kind,
		BookingID:   b.ID,
		UserID:      b.UserID,
		SpaceID:     b.SpaceID,
		SpaceName:   spaceName,
		BookingDate: b.BookingDate,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
}
