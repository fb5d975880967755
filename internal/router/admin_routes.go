package router

import (
	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/handler"
	"github.com/studyspace/study-space-api/internal/middleware"
	"github.com/studyspace/study-space-api/internal/model"
)

// RegisterAdmin registers all admin-only endpoints: space and utility
// management, penalties, ratings and user administration.
func RegisterAdmin(e *echo.Echo,
	sp *handler.SpaceHandler,
	ut *handler.UtilityHandler,
	pen *handler.PenaltyHandler,
	rat *handler.RatingHandler,
	usr *handler.AdminUserHandler,
	authMW echo.MiddlewareFunc,
) {
	adminMW := middleware.RequireRole(model.RoleAdmin)

	spaces := e.Group("/spaces", authMW, adminMW)
	spaces.POST("", sp.Create)
	spaces.PATCH("/:id", sp.Update)
	spaces.DELETE("/:id", sp.Delete)

	utilities := e.Group("/utilities", authMW, adminMW)
	utilities.POST("", ut.Create)
	utilities.PATCH("/:id", ut.Update)
	utilities.DELETE("/:id", ut.Delete)

	penalties := e.Group("/penalties", authMW, adminMW)
	penalties.GET("", pen.List)
	penalties.POST("", pen.Create)
	penalties.PATCH("/:id", pen.Patch)

	ratings := e.Group("/ratings", authMW, adminMW)
	ratings.GET("", rat.List)
	ratings.POST("", rat.Create)
	ratings.PATCH("/:id", rat.Patch)
	ratings.DELETE("/:id", rat.Delete)

	users := e.Group("/admin/users", authMW, adminMW)
	users.GET("", usr.List)
	users.GET("/:id", usr.Get)
	users.PATCH("/:id", usr.Patch)
	users.GET("/:id/summary", usr.Summary)
}
