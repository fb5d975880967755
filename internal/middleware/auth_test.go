package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/repository"
	"github.com/studyspace/study-space-api/internal/utils"
)

const testSecret = "unit-test-secret"

func authSetup(t *testing.T) (sqlmock.Sqlmock, echo.MiddlewareFunc) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, Auth(testSecret, repository.NewUserRepo(db))
}

func runAuth(mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, model.User, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got model.User
	var ok bool
	h := mw(func(c echo.Context) error {
		got, ok = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec, got, ok
}

func mockUserRow(mock sqlmock.Sqlmock, id uint64, role, status string) {
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id=").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "role", "status", "email", "password_hash", "full_name", "first_name",
			"last_name", "student_id", "department", "year_of_study", "phone",
			"profile_image_url", "joined_at",
		}).AddRow(id, role, status, "jane@example.com", "hash", "Jane Doe",
			nil, nil, nil, nil, nil, nil, nil, time.Now()))
}

func TestAuthMissingHeader(t *testing.T) {
	_, mw := authSetup(t)
	rec, _, ok := runAuth(mw, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ok)
}

func TestAuthBadToken(t *testing.T) {
	_, mw := authSetup(t)
	rec, _, _ := runAuth(mw, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthLoadsUser(t *testing.T) {
	mock, mw := authSetup(t)
	mockUserRow(mock, 42, model.RoleStudent, model.UserActive)

	tok, err := utils.NewAccessToken(testSecret, 42, 15)
	require.NoError(t, err)

	rec, u, ok := runAuth(mw, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, uint64(42), u.ID)
	assert.Equal(t, model.RoleStudent, u.Role)
}

func TestAuthSuspendedAccount(t *testing.T) {
	mock, mw := authSetup(t)
	mockUserRow(mock, 42, model.RoleStudent, model.UserSuspended)

	tok, err := utils.NewAccessToken(testSecret, 42, 15)
	require.NoError(t, err)

	rec, _, ok := runAuth(mw, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, ok)
	assert.Contains(t, rec.Body.String(), "ACCOUNT_SUSPENDED")
}

func TestRequireRoleBlocksStudent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/spaces", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", model.User{ID: 1, Role: model.RoleStudent})

	h := RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/spaces", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", model.User{ID: 1, Role: model.RoleAdmin})

	h := RequireRole(model.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	assert.Equal(t, http.StatusOK, rec.Code)
}
