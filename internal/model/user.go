package model

import "time"

// Roles assigned to accounts.  Students book spaces; admins manage the
// catalogue, approve bookings and issue penalties/ratings.
const (
    RoleStudent = "student"
    RoleAdmin   = "admin"
)

// Account statuses.  Suspended accounts keep their data but cannot
// authenticate or act.
const (
    UserActive    = "active"
    UserSuspended = "suspended"
)

// User represents an application user record as stored in the `users`
// table.  PasswordHash never leaves the server; the json tag suppresses it
// in every response that embeds a User.
//
// Fields:
//  ID              – primary key identifier of the user.
//  Role            – "student" or "admin".
//  Status          – "active" or "suspended".
//  Email           – unique email address, stored lower-cased.
//  PasswordHash    – bcrypt hashed password.
//  FullName        – display name, required.
//  FirstName       – optional given name.
//  LastName        – optional family name.
//  StudentID       – optional campus identifier, unique when present.
//  Department      – optional department name.
//  YearOfStudy     – optional year (1..7).
//  Phone           – optional phone number.
//  ProfileImageURL – optional avatar URL.
//  JoinedAt        – timestamp of registration.
type User struct {
    ID              uint64    `json:"id"`
    Role            string    `json:"role"`
    Status          string    `json:"status"`
    Email           string    `json:"email"`
    PasswordHash    string    `json:"-"`
    FullName        string    `json:"full_name"`
    FirstName       *string   `json:"first_name"`
    LastName        *string   `json:"last_name"`
    StudentID       *string   `json:"student_id"`
    Department      *string   `json:"department"`
    YearOfStudy     *int      `json:"year_of_study"`
    Phone           *string   `json:"phone"`
    ProfileImageURL *string   `json:"profile_image_url"`
    JoinedAt        time.Time `json:"joined_at"`
}

// UserSummary is the lightweight user shape used in lists and embedded in
// booking responses.  TotalBookings and AverageRating are computed by the
// repository, not stored.
type UserSummary struct {
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
