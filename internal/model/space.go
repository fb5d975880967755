package model

import "time"

// Space availability statuses.  Only active spaces accept new bookings.
const (
    SpaceActive      = "active"
    SpaceInactive    = "inactive"
    SpaceMaintenance = "maintenance"
)

// Space is a bookable room.  Utilities holds the keys of the amenities
// attached through the space_utilities join table; spaces reference
// utilities by key, never by row identity.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the room.
//  Building  – building the room is in.
//  Floor     – floor label (free text, e.g. "2" or "G").
//  Location  – optional extra directions.
//  Capacity  – maximum occupancy, always >= 1.
//  ImageURL  – optional photo URL.
//  Status    – "active", "inactive" or "maintenance".
//  Utilities – amenity keys (e.g. "wifi", "projector").
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
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

// Utility is a named amenity attachable to spaces by key.  The key is
// immutable once created; only label and description may change.
type Utility struct {
    ID          uint64  `json:"id"`
    Key         string  `json:"key"`
    Label       string  `json:"label"`
    Description *string `json:"description"`
}
