package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/piotrniepolak/watchtower2-sub003/config"
	"github.com/piotrniepolak/watchtower2-sub003/database"
	"github.com/piotrniepolak/watchtower2-sub003/middleware"
	discussionRoutes "github.com/piotrniepolak/watchtower2-sub003/routers/discussionRoutes"
	healthRoutes "github.com/piotrniepolak/watchtower2-sub003/routers/healthRoutes"
	newsRoutes "github.com/piotrniepolak/watchtower2-sub003/routers/newsRoutes"
	quizRoutes "github.com/piotrniepolak/watchtower2-sub003/routers/quizRoutes"
	stockRoutes "github.com/piotrniepolak/watchtower2-sub003/routers/stockRoutes"
	"github.com/piotrniepolak/watchtower2-sub003/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := utils.SeedSectors(database.Database.Db); err != nil {
		log.Fatalf("Failed to seed sectors: %v", err)
	}
	if err := utils.SeedStocks(database.Database.Db); err != nil {
		log.Fatalf("Failed to seed stocks: %v", err)
	}

	scheduler := utils.InitializeSchedulers(database.Database.Db)
	defer scheduler.Stop()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve the bundled client from the public folder
	app.Static("/", "./public")

	app.Get("/api/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := database.Database.Db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unreachable!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})

	newsRoutes.SetupNewsRoutes(app)
	stockRoutes.SetupStockRoutes(app)
	discussionRoutes.SetupDiscussionRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	healthRoutes.SetupHealthRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
