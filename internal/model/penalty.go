package model

import "time"

// Penalty statuses.  Only active penalties can be resolved; expired is set
// by an out-of-band process and is terminal like resolved.
const (
    PenaltyActive   = "active"
    PenaltyResolved = "resolved"
    PenaltyExpired  = "expired"
)

// Penalty is an administrative demerit applied to a user, optionally tied
// to a completed booking.  Points are bounded to 1..50.
type Penalty struct {
    ID        uint64    `json:"id"`
    UserID    uint64    `json:"user_id"`
    BookingID *uint64   `json:"booking_id"`
    Reason    string    `json:"reason"`
    Points    int       `json:"points"`
    Status    string    `json:"status"`
    CreatedAt time.Time `json:"created_at"`
    CreatedBy *uint64   `json:"created_by"`
}
