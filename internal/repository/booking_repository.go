package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/studyspace/study-space-api/internal/model"
)

// BookingRepo provides data access to the bookings table.  Dates and slot
// times are formatted in SQL (DATE_FORMAT / TIME_FORMAT) so the model carries
// stable "2006-01-02" and "15:04" strings; the remaining timestamps rely on
// parseTime=true.
type BookingRepo struct{ db *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingQuery defines filters & pagination for listing bookings.  UserID=0
// means "all users" and is only reachable by admins; handlers force it to
// the caller's own ID for students.
type BookingQuery struct {
	UserID  uint64
	SpaceID uint64
	Status  string
	Limit   int
	Offset  int
}

const bookingSelect = `SELECT
		b.id, b.user_id, b.space_id,
		DATE_FORMAT(b.booking_date, '%Y-%m-%d'),
		TIME_FORMAT(b.start_time, '%H:%i'),
		TIME_FORMAT(b.end_time, '%H:%i'),
		b.status, b.attendees, b.purpose, b.requested_at,
		b.approved_by, b.approved_at, b.cancelled_at, b.cancellation_reason,
		b.check_in_at, b.check_out_at, b.iot_session_id,
		s.id, s.name, s.building, s.floor, s.location, s.capacity,
		s.image_url, s.status, s.created_at, s.updated_at,
		u.id, u.full_name, u.email, u.student_id, u.department,
		u.profile_image_url, u.status,
		(SELECT COUNT(*) FROM bookings b2 WHERE b2.user_id = u.id)
	FROM bookings b
	JOIN spaces s ON s.id = b.space_id
	JOIN users u  ON u.id = b.user_id`

func scanBooking(sc interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	var sp model.Space
	var us model.UserSummary
	err := sc.Scan(
		&b.ID, &b.UserID, &b.SpaceID,
		&b.BookingDate, &b.StartTime, &b.EndTime,
		&b.Status, &b.Attendees, &b.Purpose, &b.RequestedAt,
		&b.ApprovedBy, &b.ApprovedAt, &b.CancelledAt, &b.CancellationReason,
		&b.CheckInAt, &b.CheckOutAt, &b.IoTSessionID,
		&sp.ID, &sp.Name, &sp.Building, &sp.Floor, &sp.Location, &sp.Capacity,
		&sp.ImageURL, &sp.Status, &sp.CreatedAt, &sp.UpdatedAt,
		&us.ID, &us.FullName, &us.Email, &us.StudentID, &us.Department,
		&us.ProfileImageURL, &us.Status, &us.TotalBookings,
	)
	if err != nil {
		return model.Booking{}, err
	}
	b.Space = &sp
	b.User = &us
	return b, nil
}

// List returns one page of bookings (most recent slot first) with embedded
// space and user summaries, plus the total match count.
func (r *BookingRepo) List(ctx context.Context, q BookingQuery) ([]model.Booking, int64, error) {
	where := []string{}
	args := []any{}

	if q.UserID > 0 {
		where = append(where, "b.user_id = ?")
		args = append(args, q.UserID)
	}
	if q.SpaceID > 0 {
		where = append(where, "b.space_id = ?")
		args = append(args, q.SpaceID)
	}
	if q.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, q.Status)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings b WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := bookingSelect + " WHERE " + cond +
		" ORDER BY b.booking_date DESC, b.start_time DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Booking, 0, q.Limit)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	spaces := make([]*model.Space, 0, len(out))
	for i := range out {
		spaces = append(spaces, out[i].Space)
	}
	if err := attachUtilities(ctx, r.db, spaces); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a single booking with embedded space and user.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+" WHERE b.id=? LIMIT 1", id))
	if err != nil {
		return model.Booking{}, err
	}
	if err := attachUtilities(ctx, r.db, []*model.Space{b.Space}); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// HasOverlap reports whether any pending or approved booking of the space on
// the given date overlaps the [start, end) slot.  Times are "15:04" strings.
func (r *BookingRepo) HasOverlap(ctx context.Context, spaceID uint64, date, start, end string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE space_id = ? AND booking_date = ?
		   AND status IN ('pending','approved')
		   AND start_time < ? AND end_time > ?`,
		spaceID, date, end, start).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a pending booking and returns its ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookings (user_id, space_id, booking_date, start_time, end_time, status, attendees, purpose)
		 VALUES (?,?,?,?,?,?,?,?)`,
		b.UserID, b.SpaceID, b.BookingDate, b.StartTime, b.EndTime, b.Status, b.Attendees, b.Purpose)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateState writes the mutable lifecycle fields of a booking in one
// statement.  Callers load the row, mutate status and the matching stamps,
// then persist through here; the immutable request fields never change.
func (r *BookingRepo) UpdateState(ctx context.Context, b *model.Booking) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status=?, approved_by=?, approved_at=?, cancelled_at=?,
			cancellation_reason=?, check_in_at=?, check_out_at=?, iot_session_id=?
		 WHERE id=?`,
		b.Status, b.ApprovedBy, b.ApprovedAt, b.CancelledAt,
		b.CancellationReason, b.CheckInAt, b.CheckOutAt, b.IoTSessionID, b.ID)
	return err
}

// SetIoTSession stores the door-controller session bound to a booking.
func (r *BookingRepo) SetIoTSession(ctx context.Context, id uint64, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET iot_session_id=? WHERE id=?", sessionID, id)
	return err
}

// Delete removes a booking.  Returns sql.ErrNoRows when nothing was deleted.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// HistoryByUser returns the user's finished bookings (completed, cancelled
// or no-show) as condensed history rows, most recent date first.
func (r *BookingRepo) HistoryByUser(ctx context.Context, userID uint64, limit int) ([]model.BookingHistoryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, s.name,
			DATE_FORMAT(b.booking_date, '%Y-%m-%d'),
			CONCAT(TIME_FORMAT(b.start_time, '%H:%i'), ' - ', TIME_FORMAT(b.end_time, '%H:%i')),
			b.status
		 FROM bookings b
		 JOIN spaces s ON s.id = b.space_id
		 WHERE b.user_id = ? AND b.status IN ('completed','cancelled','no_show')
		 ORDER BY b.booking_date DESC
		 LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingHistoryItem{}
	for rows.Next() {
		var it model.BookingHistoryItem
		if err := rows.Scan(&it.ID, &it.SpaceName, &it.Date, &it.Time, &it.Status); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// SlotDuration converts a "15:04" slot pair into a duration.  Zero means the
// slot is malformed or not forward in time; callers treat that as invalid.
func SlotDuration(start, end string) time.Duration {
	st, err1 := time.Parse("15:04", start)
	en, err2 := time.Parse("15:04", end)
	if err1 != nil || err2 != nil || !en.After(st) {
		return 0
	}
	return en.Sub(st)
}
