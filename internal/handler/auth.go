package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/apierr"
	"github.com/studyspace/study-space-api/internal/config"
	"github.com/studyspace/study-space-api/internal/middleware"
	"github.com/studyspace/study-space-api/internal/model"
	"github.com/studyspace/study-space-api/internal/repository"
	"github.com/studyspace/study-space-api/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	FullName    string  `json:"full_name" validate:"required"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	StudentID   *string `json:"student_id"`
	Department  *string `json:"department"`
	YearOfStudy *int    `json:"year_of_study" validate:"omitempty,min=1,max=7"`
	Phone       *string `json:"phone"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateMeReq struct {
	FullName        *string `json:"full_name"`
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Department      *string `json:"department"`
	YearOfStudy     *int    `json:"year_of_study" validate:"omitempty,min=1,max=7"`
	Phone           *string `json:"phone"`
	ProfileImageURL *string `json:"profile_image_url"`
}

type authResp struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Register creates a student account and returns a token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u := &model.User{
		Email:       req.Email,
		Role:        model.RoleStudent,
		Status:      model.UserActive,
		FullName:    strings.TrimSpace(req.FullName),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		StudentID:   req.StudentID,
		Department:  req.Department,
		YearOfStudy: req.YearOfStudy,
		Phone:       req.Phone,
	}
	id, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch err {
		case repository.ErrEmailExists:
			return fail(c, apierr.Conflict("email already registered").WithCode("EMAIL_EXISTS"))
		case repository.ErrStudentIDExists:
			return fail(c, apierr.Conflict("student id already registered").WithCode("STUDENT_ID_EXISTS"))
		default:
			return fail(c, err)
		}
	}

	created, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, id, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, authResp{Token: access.Token, User: created})
}

// Login verifies credentials and returns a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, apierr.Unauthorized("invalid email or password").WithCode("INVALID_CREDENTIALS"))
		}
		return fail(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, apierr.Unauthorized("invalid email or password").WithCode("INVALID_CREDENTIALS"))
	}
	if u.Status == model.UserSuspended {
		return fail(c, apierr.Forbidden("account is suspended").WithCode("ACCOUNT_SUSPENDED"))
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, authResp{Token: access.Token, User: u})
}

// Me returns the authenticated user's row as loaded by the auth middleware.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, apierr.Unauthorized("missing token"))
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateMe patches the caller's own profile fields. Role and status are
// admin-only and never accepted here.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, apierr.Unauthorized("missing token"))
	}
	var req updateMeReq
	if err := bindAndValidate(c, &req); err != nil {
		return fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	upd := repository.ProfileUpdate{
		FullName:        req.FullName,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Department:      req.Department,
		YearOfStudy:     req.YearOfStudy,
		Phone:           req.Phone,
		ProfileImageURL: req.ProfileImageURL,
	}
	if err := h.Users.UpdateProfile(ctx, u.ID, upd); err != nil {
		return fail(c, err)
	}
	fresh, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, fresh)
}
