package model

import "time"

// Booking lifecycle statuses.  Transitions are enforced in the handler
// layer: students may only move their own pending bookings to cancelled,
// admins may set any status.  Check-out moves an approved, checked-in
// booking to completed.
const (
    BookingPending   = "pending"
    BookingApproved  = "approved"
    BookingRejected  = "rejected"
    BookingCancelled = "cancelled"
    BookingCompleted = "completed"
    BookingNoShow    = "no_show"
)

// Booking records a user's reservation request for a space over a
// date/time range.  BookingDate is formatted as "2006-01-02" and the two
// times as "15:04"; the repository formats them in SQL so the wire shape
// is stable regardless of driver time handling.
//
// Fields:
//  ID                 – primary key identifier.
//  UserID             – user who requested the booking.
//  SpaceID            – space being booked.
//  BookingDate        – calendar date of the reservation.
//  StartTime, EndTime – slot boundaries, end strictly after start.
//  Status             – lifecycle status (see constants above).
//  Attendees          – expected head count, >= 1 and <= space capacity.
//  Purpose            – free-text reason for the booking.
//  RequestedAt        – creation timestamp.
//  ApprovedBy         – admin who approved/rejected (nullable).
//  ApprovedAt         – when the approve/reject decision was made.
//  CancelledAt        – when the booking was cancelled.
//  CancellationReason – optional reason supplied on cancellation.
//  CheckInAt          – when the user checked in.
//  CheckOutAt         – when the user checked out.
//  IoTSessionID       – door-controller session bound to this booking.
//  Space, User        – embedded summaries for list/detail responses.
type Booking struct {
    ID                 uint64       `json:"id"`
    UserID             uint64       `json:"user_id"`
    SpaceID            uint64       `json:"space_id"`
    BookingDate        string       `json:"booking_date"`
    StartTime          string       `json:"start_time"`
    EndTime            string       `json:"end_time"`
    Status             string       `json:"status"`
    Attendees          int          `json:"attendees"`
    Purpose            string       `json:"purpose"`
    RequestedAt        time.Time    `json:"requested_at"`
    ApprovedBy         *uint64      `json:"approved_by"`
    ApprovedAt         *time.Time   `json:"approved_at"`
    CancelledAt        *time.Time   `json:"cancelled_at"`
    CancellationReason *string      `json:"cancellation_reason"`
    CheckInAt          *time.Time   `json:"check_in_at"`
    CheckOutAt         *time.Time   `json:"check_out_at"`
    IoTSessionID       *string      `json:"iot_session_id"`
    Space              *Space       `json:"space,omitempty"`
    User               *UserSummary `json:"user,omitempty"`
}

// BookingHistoryItem is the condensed row used in the admin user summary.
type BookingHistoryItem struct {
    ID        uint64 `json:"id"`
    SpaceName string `json:"space_name"`
    Date      string `json:"date"`
    Time      string `json:"time"`
    Status    string `json:"status"`
}
