package client

import "time"

// Wire types mirroring the API's JSON shapes. The client keeps its own
// copies so importing programs are not coupled to server internals.

type User struct {
	ID              uint64     `json:"id"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	FullName        string     `json:"full_name"`
	FirstName       *string    `json:"first_name"`
	LastName        *string    `json:"last_name"`
	StudentID       *string    `json:"student_id"`
	Department      *string    `json:"department"`
	YearOfStudy     *int       `json:"year_of_study"`
	Phone           *string    `json:"phone"`
	ProfileImageURL *string    `json:"profile_image_url"`
	JoinedAt        *time.Time `json:"joined_at"`
}

// UserRow is the admin listing shape with aggregate columns.
type UserRow struct {
	ID              uint64   `json:"id"`
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	StudentID       *string  `json:"student_id"`
	Department      *string  `json:"department"`
	ProfileImageURL *string  `json:"profile_image_url"`
	Status          string   `json:"status"`
	TotalBookings   int      `json:"total_bookings"`
	AverageRating   *float64 `json:"average_rating,omitempty"`
}

type Space struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Building  string    `json:"building"`
	Floor     string    `json:"floor"`
	Location  *string   `json:"location"`
	Capacity  int       `json:"capacity"`
	ImageURL  *string   `json:"image_url"`
	Status    string    `json:"status"`
	Utilities []string  `json:"utilities"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Utility struct {
	ID          uint64  `json:"id"`
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Description *string `json:"description"`
}

type Booking struct {
	ID                 uint64     `json:"id"`
	UserID             uint64     `json:"user_id"`
	SpaceID            uint64     `json:"space_id"`
	BookingDate        string     `json:"booking_date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	Status             string     `json:"status"`
	Attendees          int        `json:"attendees"`
	Purpose            string     `json:"purpose"`
	RequestedAt        time.Time  `json:"requested_at"`
	ApprovedBy         *uint64    `json:"approved_by"`
	ApprovedAt         *time.Time `json:"approved_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	CancellationReason *string    `json:"cancellation_reason"`
	CheckInAt          *time.Time `json:"check_in_at"`
	CheckOutAt         *time.Time `json:"check_out_at"`
	IoTSessionID       *string    `json:"iot_session_id"`
	Space              *Space     `json:"space,omitempty"`
	User               *UserRow   `json:"user,omitempty"`
}

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

type Rating struct {
	ID          uint64    `json:"id"`
	RatedUserID uint64    `json:"rated_user_id"`
	BookingID   *uint64   `json:"booking_id"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   *uint64   `json:"created_by"`
}

type BookingHistoryItem struct {
	ID        uint64 `json:"id"`
	SpaceName string `json:"space_name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

// UserSummary is the admin user detail aggregate.
type UserSummary struct {
	User      User                 `json:"user"`
	Bookings  []BookingHistoryItem `json:"bookings"`
	Penalties []Penalty            `json:"penalties"`
	Ratings   []Rating             `json:"ratings"`
}

// Meta is the pagination block of every list envelope.
type Meta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Page couples one page of rows with its meta block.
type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
