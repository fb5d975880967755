package client

import (
	"context"
	"fmt"
	"strconv"
)

// BookingsService wraps the booking lifecycle endpoints.
type BookingsService struct {
	c *Client
}

// BookingFilter narrows the booking listing. UserID and My are honored by
// the server for admins only; students always see their own rows.
type BookingFilter struct {
	Status  string
	SpaceID uint64
	UserID  uint64
	My      bool
	Limit   int
	Offset  int
}

func (f BookingFilter) params() Params {
	p := Params{"status": f.Status}
	if f.SpaceID > 0 {
		p["spaceId"] = strconv.FormatUint(f.SpaceID, 10)
	}
	if f.UserID > 0 {
		p["userId"] = strconv.FormatUint(f.UserID, 10)
	}
	if f.My {
		p["my"] = "true"
	}
	if f.Limit > 0 {
		p["limit"] = strconv.Itoa(f.Limit)
	}
	if f.Offset > 0 {
		p["offset"] = strconv.Itoa(f.Offset)
	}
	return p
}

type CreateBookingRequest struct {
	SpaceID     uint64 `json:"space_id"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Attendees   int    `json:"attendees"`
	Purpose     string `json:"purpose,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
}

func (s *BookingsService) List(ctx context.Context, f BookingFilter) (Page[Booking], error) {
	var out Page[Booking]
	err := s.c.get(ctx, "/bookings", f.params(), &out)
	return out, err
}

func (s *BookingsService) Get(ctx context.Context, id uint64) (Booking, error) {
	var out Booking
	err := s.c.get(ctx, fmt.Sprintf("/bookings/%d", id), nil, &out)
	return out, err
}

func (s *BookingsService) Create(ctx context.Context, req CreateBookingRequest) (Booking, error) {
	var out Booking
	err := s.c.post(ctx, "/bookings", req, &out)
	return out, err
}

func (s *BookingsService) UpdateStatus(ctx context.Context, id uint64, req UpdateBookingStatusRequest) (Booking, error) {
	var out Booking
	err := s.c.patch(ctx, fmt.Sprintf("/bookings/%d", id), req, &out)
	return out, err
}

// Cancel is shorthand for the one transition students may perform.
func (s *BookingsService) Cancel(ctx context.Context, id uint64, reason *string) (Booking, error) {
	return s.UpdateStatus(ctx, id, UpdateBookingStatusRequest{Status: "cancelled", CancellationReason: reason})
}

func (s *BookingsService) Delete(ctx context.Context, id uint64) error {
	return s.c.delete(ctx, fmt.Sprintf("/bookings/%d", id))
}

func (s *BookingsService) CheckIn(ctx context.Context, id uint64) (Booking, error) {
	var out Booking
	err := s.c.post(ctx, fmt.Sprintf("/bookings/%d/check-in", id), nil, &out)
	return out, err
}

func (s *BookingsService) CheckOut(ctx context.Context, id uint64) (Booking, error) {
	var out Booking
	err := s.c.post(ctx, fmt.Sprintf("/bookings/%d/check-out", id), nil, &out)
	return out, err
}

// OpenDoor relays an unlock request for an approved booking.
func (s *BookingsService) OpenDoor(ctx context.Context, id uint64) error {
	return s.c.post(ctx, fmt.Sprintf("/bookings/%d/open-door", id), nil, nil)
}

// QR fetches the booking's door-session QR image bytes.
func (s *BookingsService) QR(ctx context.Context, id uint64) ([]byte, error) {
	var raw []byte
	err := s.c.get(ctx, fmt.Sprintf("/bookings/%d/qr", id), nil, &raw)
	return raw, err
}
