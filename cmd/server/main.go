package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/config"
	"github.com/studyspace/study-space-api/internal/database"
	"github.com/studyspace/study-space-api/internal/handler"
	"github.com/studyspace/study-space-api/internal/iot"
	"github.com/studyspace/study-space-api/internal/middleware"
	"github.com/studyspace/study-space-api/internal/queue"
	"github.com/studyspace/study-space-api/internal/repository"
	"github.com/studyspace/study-space-api/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unavailable

	users := repository.NewUserRepo(db)
	spaces := repository.NewSpaceRepo(db)
	utilities := repository.NewUtilityRepo(db)
	bookings := repository.NewBookingRepo(db)
	penalties := repository.NewPenaltyRepo(db)
	ratings := repository.NewRatingRepo(db)

	door := iot.NewClient(cfg.DoorServerURL, cfg.DoorPrivateKey)
	if door.Local() {
		log.Printf("door controller not configured; running with local sessions")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	authMW := middleware.Auth(cfg.JWTSecret, users)

	authH := handler.NewAuthHandler(cfg, users)
	spaceH := handler.NewSpaceHandler(spaces)
	utilityH := handler.NewUtilityHandler(utilities)
	bookingH := handler.NewBookingHandler(bookings, spaces, door)
	doorH := handler.NewDoorHandler(bookings, door)
	penaltyH := handler.NewPenaltyHandler(penalties, bookings, users)
	ratingH := handler.NewRatingHandler(ratings, bookings, users)
	adminUserH := handler.NewAdminUserHandler(users, bookings, penalties, ratings)

	router.RegisterRoutes(e, spaceH, utilityH)
	router.RegisterAuth(e, authH, authMW)
	router.RegisterBookings(e, bookingH, doorH, authMW)
	router.RegisterAdmin(e, spaceH, utilityH, penaltyH, ratingH, adminUserH, authMW)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
