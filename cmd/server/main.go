package main // Entry point package

import (
	"context" // context for startup deadlines
	"log"     // Logging library

	"github.com/joho/godotenv"    // loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/tachbel/hostel-management/internal/config"     // Internal config loader
	"github.com/tachbel/hostel-management/internal/database"   // MySQL connection and schema
	"github.com/tachbel/hostel-management/internal/handler"    // HTTP handlers
	"github.com/tachbel/hostel-management/internal/middleware" // cache and rate limit middleware
	"github.com/tachbel/hostel-management/internal/repository" // data access layer
	"github.com/tachbel/hostel-management/internal/router"     // Internal router setup
	queue_publisher "github.com/tachbel/hostel-management/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win
	cfg := config.Load()

	// Open the single store handle for the process lifetime.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Create tables when absent and seed sample data into an empty store.
	ctx := context.Background()
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}
	if cfg.SeedData {
		seeded, err := database.Seed(ctx, db)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		if seeded {
			log.Println("seeded sample students, rooms and managers")
		}
	}

	// Repositories share the one handle; handlers own transactions that
	// span more than one of them.
	studentRepo := repository.NewStudentRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	managerRepo := repository.NewManagerRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	complaintRepo := repository.NewComplaintRepo(db)
	reportRepo := repository.NewReportRepo(db)

	e := echo.New()

	// Redis backs the response cache and the rate limiter.  When Redis is
	// unreachable the client is nil and both middlewares pass through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; caching and rate limiting disabled")
	}
	e.Use(middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewResponseCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e, router.Handlers{
		Student:   handler.NewStudentHandler(studentRepo, bookingRepo),
		Room:      handler.NewRoomHandler(roomRepo, bookingRepo),
		Manager:   handler.NewManagerHandler(managerRepo),
		Booking:   handler.NewBookingHandler(bookingRepo, studentRepo, roomRepo, queue_publisher.Publisher{}),
		Complaint: handler.NewComplaintHandler(complaintRepo, studentRepo, managerRepo),
		Report:    handler.NewReportHandler(reportRepo, complaintRepo),
		Admin:     handler.NewAdminHandler(db),
	})

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
