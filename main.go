package main

import (
	"log"

	"trainingmanager/config"
	"trainingmanager/database"
	courseRoutes "trainingmanager/routers/courseRoutes"
	hypermediaRoutes "trainingmanager/routers/hypermediaRoutes"
	mediaRoutes "trainingmanager/routers/mediaRoutes"
	userRoutes "trainingmanager/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	config.LoadConfig()

	db, err := database.Connect(config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type",
	}))

	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve the companion client page from the public folder
	app.Static("/", "./public")

	courseRoutes.SetupCourseRoutes(app, db)
	mediaRoutes.SetupMediaRoutes(app, db)
	userRoutes.SetupUserRoutes(app, db)
	hypermediaRoutes.SetupLinkRelationRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
