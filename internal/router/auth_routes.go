package router

import (
	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/handler"
	"github.com/studyspace/study-space-api/internal/middleware"
)

// RegisterAuth registers the authentication endpoints. Register and login
// are open; the /auth/me pair requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authMW echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/auth", authMW)
	me.GET("/me", a.Me)
	me.PATCH("/me", a.UpdateMe)
}

// RegisterBookings registers the booking lifecycle endpoints. Everything
// requires authentication; delete is admin only.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, d *handler.DoorHandler, authMW echo.MiddlewareFunc) {
	g := e.Group("/bookings", authMW)
	g.GET("", b.List)
	g.POST("", b.Create)
	g.GET("/:id", b.Get)
	g.PATCH("/:id", b.Patch)
	g.DELETE("/:id", b.Delete, middleware.RequireRole("admin"))
	g.POST("/:id/check-in", b.CheckIn)
	g.POST("/:id/check-out", b.CheckOut)
	g.POST("/:id/open-door", d.Open)
	g.GET("/:id/qr", d.QR)
}
