package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kuvashare/kuva/internal/pkg/jobqueue"
)

// GET /api/admin/queue/stats – pending and in-flight background job counts
func HandleQueueStats(c *fiber.Ctx) error {
	queue := jobqueue.GetManager().GetQueue()

	pending, err := queue.GetQueueSize(c.Context())
	if err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}
	processing, err := queue.GetProcessingSize(c.Context())
	if err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	return c.JSON(fiber.Map{
		"message":    "success",
		"pending":    pending,
		"processing": processing,
	})
}

// GET /api/admin/queue/jobs/:id – inspect a single background job
func HandleGetJob(c *fiber.Ctx) error {
	job, err := jobqueue.GetManager().GetQueue().GetJob(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return jsonMessage(c, fiber.StatusNotFound, "invalid_job")
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	return c.JSON(fiber.Map{"message": "success", "job": job})
}
