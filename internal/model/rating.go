package model

import "time"

// Rating is an administrative 1..5 score applied to a user, optionally tied
// to a completed booking.  At most one rating may reference a given booking.
type Rating struct {
    ID          uint64    `json:"id"`
    RatedUserID uint64    `json:"rated_user_id"`
    BookingID   *uint64   `json:"booking_id"`
    Rating      int       `json:"rating"`
    Comment     *string   `json:"comment"`
    CreatedAt   time.Time `json:"created_at"`
    CreatedBy   *uint64   `json:"created_by"`
}
