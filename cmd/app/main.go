package main

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"

	"lucky-tours-api/cmd/config"
	migration "lucky-tours-api/cmd/database/migrate"
	"lucky-tours-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on environment")
	}
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}

	port := utils.GetConfig("PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
