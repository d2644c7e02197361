package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kuvashare/kuva/internal/pkg/database"
	"github.com/kuvashare/kuva/internal/pkg/jobqueue"
	"github.com/kuvashare/kuva/internal/pkg/moderation"
)

func moderationService() *moderation.Service {
	queue := jobqueue.GetManager().GetQueue()
	return moderation.NewServiceFromDB(
		database.GetDB(),
		jobqueue.NewReportNotifier(queue),
		jobqueue.NewMediaCleaner(queue),
	)
}

// POST /api/photos/:uuid/report – flag a photo for moderation. Reporting an
// already-reported photo succeeds without creating anything.
func HandleReportPhoto(c *fiber.Ctx) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonMessage(c, fiber.StatusBadRequest, "validation_failed")
	}

	err := moderationService().Report(c.Context(), c.Params("uuid"), body.Message)
	if err != nil {
		if errors.Is(err, moderation.ErrMessageRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "validation_failed",
				"errors":  []string{"message is required"},
			})
		}
		if isNotFound(err) {
			return jsonMessage(c, fiber.StatusNotFound, "invalid_photo")
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	return c.JSON(fiber.Map{"message": "success"})
}

// GET /api/photos/report/confirm?token=... – resolve a report via its
// single-use token, removing photo and report together.
func HandleConfirmReport(c *fiber.Ctx) error {
	err := moderationService().Confirm(c.Context(), c.Query("token"))
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrTokenRequired):
			return jsonMessage(c, fiber.StatusBadRequest, "token_required")
		case errors.Is(err, moderation.ErrInvalidToken):
			return jsonMessage(c, fiber.StatusNotFound, "invalid_token")
		default:
			return jsonMessage(c, fiber.StatusInternalServerError, "error")
		}
	}

	return c.JSON(fiber.Map{"message": "success"})
}
