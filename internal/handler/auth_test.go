package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspace/study-space-api/internal/config"
	"github.com/studyspace/study-space-api/internal/repository"
	"github.com/studyspace/study-space-api/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		Env:          "test",
		Port:         "8080",
		JWTSecret:    "unit-test-secret",
		AccessTTLMin: 15,
		BcryptCost:   4,
	}
}

func newAuthTest(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, *echo.Echo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	e := echo.New()
	e.Validator = NewValidator()
	return NewAuthHandler(testConfig(), repository.NewUserRepo(db)), mock, e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "role", "status", "email", "password_hash", "full_name", "first_name",
		"last_name", "student_id", "department", "year_of_study", "phone",
		"profile_image_url", "joined_at",
	})
}

func TestLoginInvalidCredentials(t *testing.T) {
	h, mock, e := newAuthTest(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(authUserRows())

	c, rec := postJSON(e, "/auth/login", `{"email":"nobody@example.com","password":"whatever"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, e := newAuthTest(t)

	hash, err := utils.HashPassword("correct-password", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(authUserRows().AddRow(
			1, "student", "active", "jane@example.com", hash, "Jane Doe",
			nil, nil, nil, nil, nil, nil, nil, time.Now()))

	c, rec := postJSON(e, "/auth/login", `{"email":"jane@example.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestLoginSuspended(t *testing.T) {
	h, mock, e := newAuthTest(t)

	hash, err := utils.HashPassword("correct-password", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(authUserRows().AddRow(
			1, "student", "suspended", "jane@example.com", hash, "Jane Doe",
			nil, nil, nil, nil, nil, nil, nil, time.Now()))

	c, rec := postJSON(e, "/auth/login", `{"email":"jane@example.com","password":"correct-password"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_SUSPENDED")
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	h, mock, e := newAuthTest(t)

	hash, err := utils.HashPassword("correct-password", 4)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email=").
		WillReturnRows(authUserRows().AddRow(
			9, "student", "active", "jane@example.com", hash, "Jane Doe",
			nil, nil, nil, nil, nil, nil, nil, time.Now()))

	c, rec := postJSON(e, "/auth/login", `{"email":"jane@example.com","password":"correct-password"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       uint64 `json:"id"`
			FullName string `json:"full_name"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(9), resp.User.ID)
	assert.Equal(t, "Jane Doe", resp.User.FullName)

	uid, err := utils.ParseAccessToken("unit-test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), uid)

	// The password hash must never appear in responses.
	assert.NotContains(t, rec.Body.String(), hash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, e := newAuthTest(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'jane@example.com' for key 'users.uq_users_email'"))

	c, rec := postJSON(e, "/auth/register",
		`{"email":"jane@example.com","password":"password123","full_name":"Jane Doe"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_EXISTS")
}

func TestRegisterValidation(t *testing.T) {
	h, _, e := newAuthTest(t)

	c, rec := postJSON(e, "/auth/register", `{"email":"not-an-email","password":"short","full_name":""}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
