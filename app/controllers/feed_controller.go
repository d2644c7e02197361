package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kuvashare/kuva/internal/pkg/activity"
	"github.com/kuvashare/kuva/internal/pkg/database"
	"github.com/kuvashare/kuva/internal/pkg/env"
	"github.com/kuvashare/kuva/internal/pkg/feed"
	"github.com/kuvashare/kuva/internal/pkg/usercontext"
)

// GET /api/photos/feed?lat=..&lng=..&popularity=1 – nearby photo discovery
func HandleFeed(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	if c.Query("lat") == "" || latErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  []string{"lat must be a finite value between -90 and 90"},
		})
	}
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if c.Query("lng") == "" || lngErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  []string{"lng must be a finite value between -180 and 180"},
		})
	}

	byPopularity := false
	if v := c.Query("popularity"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation_failed",
				"errors":  []string{"popularity must be a boolean"},
			})
		}
		byPopularity = parsed
	}

	svc := feed.NewServiceFromDB(database.GetDB(), configuredRadius())
	photos, err := svc.Feed(c.Context(), feed.Query{
		Lat:          lat,
		Lng:          lng,
		ByPopularity: byPopularity,
	})
	if err != nil {
		var verr *feed.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation_failed",
				"errors":  []string{verr.Field + " " + verr.Message},
			})
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	return c.JSON(fiber.Map{"message": "success", "photos": photos})
}

// GET /api/photos/activity – likes and comments on the caller's photos,
// most recent first
func HandleActivityFeed(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	svc := activity.NewServiceFromDB(database.GetDB())
	events, err := svc.Feed(c.Context(), uctx.UserID)
	if err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	return c.JSON(fiber.Map{"message": "success", "data": events})
}

func configuredRadius() float64 {
	radius, err := strconv.ParseFloat(env.GetEnv("FEED_RADIUS_METERS", ""), 64)
	if err != nil || radius <= 0 {
		return feed.DefaultRadiusMeters
	}
	return radius
}
