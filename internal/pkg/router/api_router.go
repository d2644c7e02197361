package router

import (
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"

	"github.com/kuvashare/kuva/app/controllers"
	"github.com/kuvashare/kuva/internal/pkg/cache"
	"github.com/kuvashare/kuva/internal/pkg/constants"
	"github.com/kuvashare/kuva/internal/pkg/env"
	"github.com/kuvashare/kuva/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New(limiter.Config{
		Storage: newLimiterStorage(),
	}))
	api.Use(middleware.UserContextMiddleware)

	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	photos := api.Group(constants.PhotosRoute)
	// Fixed paths must be registered before the /:uuid wildcard.
	photos.Get(constants.FeedRoute, controllers.HandleFeed)
	photos.Get(constants.ActivityRoute, middleware.RequireAuth, controllers.HandleActivityFeed)
	photos.Get(constants.ReportConfirmRoute, controllers.HandleConfirmReport)
	photos.Get("/", middleware.RequireAuth, controllers.HandleUserPhotos)
	photos.Post("/", middleware.RequireAuth, controllers.HandleCreatePhoto)
	photos.Get("/:uuid", controllers.HandleGetPhoto)
	photos.Post("/:uuid/delete", middleware.RequireAuth, controllers.HandleDeletePhoto)
	photos.Post("/:uuid/comment", middleware.RequireAuth, controllers.HandleCreateComment)
	photos.Post("/:uuid/like", middleware.RequireAuth, controllers.HandleSetLike)
	// Reporting is open to guests as well.
	photos.Post("/:uuid/report", controllers.HandleReportPhoto)

	users := api.Group(constants.UsersRoute)
	users.Get("/:id/profile", controllers.HandleGetProfile)
	users.Post("/profile-photo", middleware.RequireAuth, controllers.HandleCreateProfilePhoto)

	admin := api.Group(constants.AdminRoute, middleware.RequireAuth, middleware.RequireAdmin)
	admin.Get("/queue/stats", controllers.HandleQueueStats)
	admin.Get("/queue/jobs/:id", controllers.HandleGetJob)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

// newLimiterStorage reuses the cache client's connection settings so the
// limiter counters live next to the job queue, in a separate database.
func newLimiterStorage() *redisstorage.Storage {
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")

	if client := cache.GetClient(); client != nil {
		if h, p, err := net.SplitHostPort(client.Options().Addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := client.Options().Password; p != "" {
			password = p
		}
	}

	return redisstorage.New(redisstorage.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1,
	})
}
