package handler

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yeqown/go-qrcode"

	"github.com/studyspace/study-space-api/internal/apierr"
	"github.com/studyspace/study-space-api/internal/iot"
	"github.com/studyspace/study-space-api/internal/middleware"
	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/repository"
)

// DoorHandler relays unlock requests to the door controller and renders the
// door-session QR for a booking.
type DoorHandler struct {
	Bookings *repository.BookingRepo
	Door     *iot.Client
}

func NewDoorHandler(b *repository.BookingRepo, door *iot.Client) *DoorHandler {
	return &DoorHandler{Bookings: b, Door: door}
}

// load fetches the booking and enforces owner-or-admin access plus approved
// status; the door only opens for reviewed bookings.
func (h *DoorHandler) load(c echo.Context) (model.Booking, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return model.Booking{}, apierr.Unauthorized("missing token")
	}
	id, err := pathID(c)
	if err != nil {
		return model.Booking{}, err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Booking{}, apierr.NotFound("booking not found")
		}
		return model.Booking{}, err
	}
	if u.Role != model.RoleAdmin && b.UserID != u.ID {
		return model.Booking{}, apierr.Forbidden("not your booking")
	}
	if b.Status != model.BookingApproved {
		return model.Booking{}, apierr.Conflict("booking is not approved")
	}
	return b, nil
}

// Open asks the controller to unlock the space's door for the booking's
// session.
func (h *DoorHandler) Open(c echo.Context) error {
	b, err := h.load(c)
	if err != nil {
		return fail(c, err)
	}
	if b.IoTSessionID == nil {
		return fail(c, apierr.Conflict("booking has no door session"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Door.OpenDoor(ctx, *b.IoTSessionID); err != nil {
		c.Logger().Errorf("open door for booking %d failed: %v", b.ID, err)
		return fail(c, apierr.Internal("door controller unavailable"))
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "open"})
}

// QR renders the booking's door-session payload as a QR image so the user
// can present it at a wall reader.
func (h *DoorHandler) QR(c echo.Context) error {
	b, err := h.load(c)
	if err != nil {
		return fail(c, err)
	}
	if b.IoTSessionID == nil {
		return fail(c, apierr.Conflict("booking has no door session"))
	}

	payload := fmt.Sprintf("door-session:%s:booking:%d", *b.IoTSessionID, b.ID)
	qrc, err := qrcode.New(payload)
	if err != nil {
		return fail(c, err)
	}
	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		return fail(c, err)
	}
	return c.Blob(http.StatusOK, "image/jpeg", buf.Bytes())
}
