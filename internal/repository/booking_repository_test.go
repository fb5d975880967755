package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspace/study-space-api/internal/model"
)

func newMockBookingRepo(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func TestHasOverlap(t *testing.T) {
	repo, mock := newMockBookingRepo(t)

	// The slot comparison is start_time < requested end AND
	// end_time > requested start, so the args arrive as (end, start).
	mock.ExpectQuery("(?s)SELECT COUNT\\(\\*\\) FROM bookings.+start_time < \\? AND end_time > \\?").
		WithArgs(uint64(3), "2026-09-10", "12:00", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	overlap, err := repo.HasOverlap(context.Background(), 3, "2026-09-10", "10:00", "12:00")
	require.NoError(t, err)
	assert.True(t, overlap)
}

func TestHasOverlapNone(t *testing.T) {
	repo, mock := newMockBookingRepo(t)

	mock.ExpectQuery("(?s)SELECT COUNT\\(\\*\\) FROM bookings").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	overlap, err := repo.HasOverlap(context.Background(), 3, "2026-09-10", "10:00", "12:00")
	require.NoError(t, err)
	assert.False(t, overlap)
}

func TestBookingCreate(t *testing.T) {
	repo, mock := newMockBookingRepo(t)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(uint64(1), uint64(3), "2026-09-10", "10:00", "12:00", model.BookingPending, 4, "study group").
		WillReturnResult(sqlmock.NewResult(11, 1))

	b := &model.Booking{
		UserID: 1, SpaceID: 3,
		BookingDate: "2026-09-10", StartTime: "10:00", EndTime: "12:00",
		Status: model.BookingPending, Attendees: 4, Purpose: "study group",
	}
	id, err := repo.Create(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), id)
}

func TestBookingDeleteMissing(t *testing.T) {
	repo, mock := newMockBookingRepo(t)

	mock.ExpectExec("DELETE FROM bookings WHERE id=").
		WithArgs(uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestHistoryByUser(t *testing.T) {
	repo, mock := newMockBookingRepo(t)

	mock.ExpectQuery("(?s)SELECT b.id, s.name.+FROM bookings b.+LIMIT \\?").
		WithArgs(uint64(7), 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date", "time", "status"}).
			AddRow(2, "Quiet Room", "2026-08-20", "10:00 - 12:00", "completed").
			AddRow(1, "Media Lab", "2026-08-18", "14:00 - 15:00", "cancelled"))

	items, err := repo.HistoryByUser(context.Background(), 7, 50)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Quiet Room", items[0].SpaceName)
	assert.Equal(t, "cancelled", items[1].Status)
}

func TestSlotDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, SlotDuration("10:00", "12:00"))
	assert.Equal(t, 90*time.Minute, SlotDuration("09:30", "11:00"))
	assert.Zero(t, SlotDuration("12:00", "10:00"))
	assert.Zero(t, SlotDuration("10:00", "10:00"))
	assert.Zero(t, SlotDuration("bogus", "10:00"))
}
