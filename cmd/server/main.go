package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mithil0407/playernumberone/internal/config"
	"github.com/mithil0407/playernumberone/internal/database"
	"github.com/mithil0407/playernumberone/internal/routes"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	cache := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware. In production only the funnel's own origin may call the
	// API; anywhere else the default wide-open CORS keeps local dev simple.
	corsConfig := cors.Config{}
	if cfg.IsProduction() && cfg.AppURL != "" {
		corsConfig.AllowOrigins = cfg.AppURL
	}
	app.Use(cors.New(corsConfig))
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, cfg, database.DB, cache)

	// 4. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
