package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/kuvashare/kuva/app/repository"
	"github.com/kuvashare/kuva/internal/pkg/cache"
	"github.com/kuvashare/kuva/internal/pkg/database"
	"github.com/kuvashare/kuva/internal/pkg/env"
	"github.com/kuvashare/kuva/internal/pkg/jobqueue"
	"github.com/kuvashare/kuva/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	// background workers for report notifications and media cleanup
	jobqueue.GetManager().Start()

	app := fiber.New(fiber.Config{
		BodyLimit: 52428800, // 50 MiB
	})
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
