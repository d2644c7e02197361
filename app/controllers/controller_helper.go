package controllers

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// jsonMessage writes the service's canonical success/failure envelope.
func jsonMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// jsonValidationErrors flattens validator errors into the response body so the
// caller sees which fields failed.
func jsonValidationErrors(c *fiber.Ctx, err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		messages := make([]string, 0, len(errs))
		for _, fe := range errs {
			messages = append(messages, strings.ToLower(fe.Field())+" failed on the '"+fe.Tag()+"' rule")
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  messages,
		})
	}
	return jsonMessage(c, fiber.StatusBadRequest, "validation_failed")
}

// isNotFound reports whether err is the repository layer's missing-record signal.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// contentTypeForUpload derives a content type from the uploaded file name,
// falling back to the multipart header.
func contentTypeForUpload(header *multipart.FileHeader) string {
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
