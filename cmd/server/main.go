package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/cache"
	"github.com/example/kudipay/internal/config"
	"github.com/example/kudipay/internal/database"
	"github.com/example/kudipay/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)
	kv := cache.Connect(cfg.RedisURL)
	client := billing.NewClient(cfg)

	app := fiber.New(fiber.Config{
		AppName: "Kudipay Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, kv, client, cfg)

	if _, err := client.ServiceToken(context.Background()); err != nil {
		log.Printf("provider token warm-up failed: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
