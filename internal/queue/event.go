// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds published to the booking.events queue.
const (
	EventBookingCreated = "booking.created"
	EventBookingStatus  = "booking.status"
)

// BookingEvent is published when a booking is created or changes status.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingEvent struct {
	Kind        string `json:"kind"`
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	SpaceID     uint64 `json:"space_id"`
	SpaceName   string `json:"space_name"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	ActorID     uint64 `json:"actor_id"`
	OccurredAt  string `json:"occurred_at"`
}
