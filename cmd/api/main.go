package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"lostfound-backend/internal/config"
	"lostfound-backend/internal/handler"
	"lostfound-backend/internal/middleware"
	"lostfound-backend/internal/repository"
	"lostfound-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (unread counts will not be cached)", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/google", h.Auth.GoogleLogin)
	auth.Post("/refresh", h.Auth.RefreshToken)

	items := v1.Group("/items")
	items.Get("/", middleware.AuthOptional(authService), h.Item.Feed)
	items.Get("/:itemId", middleware.AuthOptional(authService), h.Item.Get)
	items.Post("/", middleware.AuthRequired(authService), h.Item.Create)
	items.Put("/:itemId", middleware.AuthRequired(authService), h.Item.Update)
	items.Delete("/:itemId", middleware.AuthRequired(authService), h.Item.Delete)
	items.Post("/:itemId/report", middleware.AuthRequired(authService), h.Item.Report)

	resolutions := v1.Group("/resolutions", middleware.AuthRequired(authService))
	resolutions.Post("/", h.Resolution.Create)
	resolutions.Get("/item/:itemId", h.Resolution.Review)
	resolutions.Get("/:resolutionId", h.Resolution.Get)
	resolutions.Post("/:resolutionId/approve", h.Resolution.Approve)
	resolutions.Post("/:resolutionId/reject", h.Resolution.Reject)

	notifications := v1.Group("/notifications", middleware.AuthRequired(authService))
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Post("/:id/mark-read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	profile := v1.Group("/profile")
	profile.Get("/me", middleware.AuthRequired(authService), h.Profile.GetProfile)
	profile.Get("/me/items", middleware.AuthRequired(authService), h.Profile.GetMyItems)
	profile.Post("/hostel", middleware.AuthRequired(authService), h.Profile.SetHostel)
	profile.Get("/:publicId", middleware.AuthOptional(authService), h.Profile.GetPublicProfile)

	admin := v1.Group("/admin", middleware.AuthRequired(authService), middleware.RequireAdmin())
	admin.Get("/stats", h.Admin.GetStats)
	admin.Get("/activity", h.Admin.GetActivity)
	admin.Get("/claims", h.Admin.GetClaims)
	admin.Get("/users", h.Admin.GetUsers)
	admin.Get("/reported-items", h.Admin.GetReportedItems)
	admin.Post("/items/:itemId/moderate", h.Admin.ModerateItem)
	admin.Post("/users/:userId/moderate", h.Admin.ModerateUser)
}
