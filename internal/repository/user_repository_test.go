package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspace/study-space-api/internal/model"
)

func newMockUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "role", "status", "email", "password_hash", "full_name", "first_name",
		"last_name", "student_id", "department", "year_of_study", "phone",
		"profile_image_url", "joined_at",
	})
}

func TestUserCreate(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(5, 1))

	u := &model.User{Email: "  Jane@Example.COM ", Role: model.RoleStudent, Status: model.UserActive, FullName: "Jane Doe"}
	id, err := repo.Create(context.Background(), u, "password123", 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@example.com' for key 'users.uq_users_email'"))

	u := &model.User{Email: "jane@example.com", FullName: "Jane Doe"}
	_, err := repo.Create(context.Background(), u, "password123", 4)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserCreateDuplicateStudentID(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'S123' for key 'users.uq_users_student_id'"))

	sid := "S123"
	u := &model.User{Email: "jane@example.com", FullName: "Jane Doe", StudentID: &sid}
	_, err := repo.Create(context.Background(), u, "password123", 4)
	assert.ErrorIs(t, err, ErrStudentIDExists)
}

func TestUserGetByID(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	joined := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WithArgs(uint64(7)).
		WillReturnRows(userRows().AddRow(
			7, "student", "active", "jane@example.com", "hash", "Jane Doe",
			nil, nil, nil, nil, nil, nil, nil, joined))

	u, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", u.FullName)
	assert.Equal(t, model.RoleStudent, u.Role)
	assert.Nil(t, u.StudentID)
}

func TestUserGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(userRows())

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserAdminUpdateNoFields(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	// No SET clauses means no statement at all.
	err := repo.AdminUpdate(context.Background(), 1, nil, nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserList(t *testing.T) {
	repo, mock := newMockUserRepo(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	avg := 4.5
	mock.ExpectQuery("(?s)SELECT.+total_bookings.+FROM users u").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "email", "student_id", "department",
			"profile_image_url", "status", "total_bookings", "average_rating",
		}).
			AddRow(1, "Jane Doe", "jane@example.com", nil, nil, nil, "active", 3, avg).
			AddRow(2, "John Roe", "john@example.com", nil, nil, nil, "active", 0, nil))

	rows, total, err := repo.List(context.Background(), UserQuery{Limit: 20, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].TotalBookings)
	require.NotNil(t, rows[0].AverageRating)
	assert.InDelta(t, 4.5, *rows[0].AverageRating, 0.001)
	assert.Nil(t, rows[1].AverageRating)
}
