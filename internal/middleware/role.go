package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/studyspace/study-space-api/internal/apierr"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  It assumes Auth has
// already stored the user in the context.  If the user's role is not in the
// allowed set, the request is aborted with a 403 Forbidden response.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    // Build a set of allowed roles for constant‑time lookups.
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            u, ok := CurrentUser(c)
            if !ok || !allowed[u.Role] {
                return c.JSON(http.StatusForbidden, apierr.Forbidden("admin access required"))
            }
            return next(c)
        }
    }
}
