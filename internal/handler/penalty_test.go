package handler

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/repository"
)

func newPenaltyTest(t *testing.T) (*PenaltyHandler, sqlmock.Sqlmock, *echo.Echo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	e := echo.New()
	e.Validator = NewValidator()
	h := NewPenaltyHandler(
		repository.NewPenaltyRepo(db),
		repository.NewBookingRepo(db),
		repository.NewUserRepo(db),
	)
	return h, mock, e
}

func penaltyRow(id uint64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "booking_id", "reason", "points", "status", "created_at", "created_by",
	}).AddRow(id, 4, nil, "no show", 10, status, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), 1)
}

func TestResolvePenalty(t *testing.T) {
	h, mock, e := newPenaltyTest(t)

	mock.ExpectQuery("SELECT id, user_id, booking_id, reason, points, status, created_at, created_by FROM user_penalties WHERE id=").
		WithArgs(uint64(7)).WillReturnRows(penaltyRow(7, "active"))
	mock.ExpectExec("UPDATE user_penalties SET status=").
		WithArgs("resolved", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := bookingCtx(e, http.MethodPatch, "/penalties/7", `{"status":"resolved"}`, model.User{ID: 1, Role: model.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Patch(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"resolved"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolvePenaltyAlreadyResolved(t *testing.T) {
	h, mock, e := newPenaltyTest(t)

	// No UPDATE is issued when the status already matches.
	mock.ExpectQuery("SELECT id, user_id, booking_id, reason, points, status, created_at, created_by FROM user_penalties WHERE id=").
		WithArgs(uint64(7)).WillReturnRows(penaltyRow(7, "resolved"))

	c, rec := bookingCtx(e, http.MethodPatch, "/penalties/7", `{"status":"resolved"}`, model.User{ID: 1, Role: model.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("7")
	require.NoError(t, h.Patch(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"resolved"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePenaltyPointsOutOfRange(t *testing.T) {
	h, _, e := newPenaltyTest(t)

	c, rec := bookingCtx(e, http.MethodPost, "/penalties",
		`{"user_id":4,"reason":"damage","points":75}`, model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePenaltyUserMissing(t *testing.T) {
	h, mock, e := newPenaltyTest(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(99)).WillReturnError(sql.ErrNoRows)

	c, rec := bookingCtx(e, http.MethodPost, "/penalties",
		`{"user_id":99,"reason":"damage","points":5}`, model.User{ID: 1, Role: model.RoleAdmin})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
