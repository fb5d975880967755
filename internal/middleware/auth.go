package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"      // context with timeout for the user lookup
    "database/sql" // sentinel errors like sql.ErrNoRows
    "net/http"     // HTTP status codes for responses
    "strings"      // string utilities for prefix checking and trimming
    "time"         // timeout for DB calls

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/studyspace/study-space-api/internal/apierr"
    "github.com/studyspace/study-space-api/internal/model"
    "github.com/studyspace/study-space-api/internal/repository"
    "github.com/studyspace/study-space-api/internal/utils"
)

// Auth returns an Echo middleware that validates a Bearer access token,
// loads the matching user row and stores it in the request context under
// "user".  Loading the row on every request means role or status changes
// take effect immediately instead of at token expiry.  Suspended accounts
// are rejected with 403 ACCOUNT_SUSPENDED even when the token is valid.
// Handlers read the user back via the CurrentUser helper.
func Auth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.  Anything else is rejected
            // with 401 before touching the database.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, apierr.Unauthorized("missing bearer token"))
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            userID, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, apierr.Unauthorized("invalid or expired token"))
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            u, err := users.GetByID(ctx, userID)
            if err != nil {
                if err == sql.ErrNoRows {
                    return c.JSON(http.StatusUnauthorized, apierr.Unauthorized("user not found"))
                }
                return c.JSON(http.StatusInternalServerError, apierr.Internal("load user failed"))
            }
            if u.Status != model.UserActive {
                e := apierr.Forbidden("account is suspended").WithCode("ACCOUNT_SUSPENDED")
                return c.JSON(e.Status, e)
            }

            // Store the full user for handlers and downstream middleware.
            c.Set("user", u)
            return next(c)
        }
    }
}

// CurrentUser extracts the authenticated user stored by Auth.  The second
// return value is false when the middleware did not run (public routes).
func CurrentUser(c echo.Context) (model.User, bool) {
    u, ok := c.Get("user").(model.User)
    return u, ok
}
