package controllers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/kuvashare/kuva/app/models"
	"github.com/kuvashare/kuva/app/repository"
	"github.com/kuvashare/kuva/internal/pkg/cache"
	"github.com/kuvashare/kuva/internal/pkg/database"
	"github.com/kuvashare/kuva/internal/pkg/engagement"
	"github.com/kuvashare/kuva/internal/pkg/geo"
	"github.com/kuvashare/kuva/internal/pkg/jobqueue"
	"github.com/kuvashare/kuva/internal/pkg/mediastore"
	"github.com/kuvashare/kuva/internal/pkg/usercontext"
)

const profileCacheTTL = time.Minute

func profileCacheKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

// POST /api/photos – create a geotagged photo with its media upload
func HandleCreatePhoto(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	lat, latErr := strconv.ParseFloat(c.FormValue("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.FormValue("lng"), 64)
	if latErr != nil || !geo.ValidLatitude(lat) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  []string{"lat must be a finite value between -90 and 90"},
		})
	}
	if lngErr != nil || !geo.ValidLongitude(lng) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  []string{"lng must be a finite value between -180 and 180"},
		})
	}

	photo := &models.Photo{
		UserID:    uctx.UserID,
		Caption:   c.FormValue("caption"),
		Latitude:  lat,
		Longitude: lng,
	}
	if err := validator.New().Struct(photo); err != nil {
		return jsonValidationErrors(c, err)
	}

	header, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  []string{"photo file is required"},
		})
	}

	repo := repository.GetGlobalFactory().GetPhotoRepository()
	if err := repo.Create(photo); err != nil {
		log.Errorf("[Photo] Failed to create photo record: %v", err)
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	photo.FileName = photo.UUID + strings.ToLower(filepath.Ext(header.Filename))
	if err := storeUpload(c, header, photo.FileName); err != nil {
		// Media store failure aborts the whole creation.
		log.Errorf("[Photo] Failed to store media for photo %s: %v", photo.UUID, err)
		if derr := repo.Delete(photo.ID); derr != nil {
			log.Errorf("[Photo] Failed to roll back photo %s: %v", photo.UUID, derr)
		}
		return jsonMessage(c, fiber.StatusBadRequest, "Error saving the file.")
	}
	if err := database.GetDB().Model(photo).Update("file_name", photo.FileName).Error; err != nil {
		log.Errorf("[Photo] Failed to persist file name for photo %s: %v", photo.UUID, err)
	}

	// The owner's cached profile embeds their photo list.
	if err := cache.Delete(profileCacheKey(uctx.UserID)); err != nil {
		log.Errorf("[Photo] Failed to invalidate profile cache for user %d: %v", uctx.UserID, err)
	}

	return c.JSON(fiber.Map{"message": "success", "photo_id": photo.UUID})
}

// GET /api/photos/:uuid – photo detail with engagement and viewer like state
func HandleGetPhoto(c *fiber.Ctx) error {
	photo, err := repository.GetGlobalFactory().GetPhotoRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return jsonMessage(c, fiber.StatusNotFound, "invalid_photo")
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	eng := engagement.NewServiceFromDB(database.GetDB())
	summary, err := eng.Summarize(c.Context(), photo.ID)
	if err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	userLiked := false
	if uctx := usercontext.GetUserContext(c); uctx.IsLoggedIn {
		userLiked, err = eng.UserLiked(c.Context(), uctx.UserID, photo.ID)
		if err != nil {
			return jsonMessage(c, fiber.StatusInternalServerError, "error")
		}
	}

	return c.JSON(fiber.Map{
		"message":      "success",
		"photo":        photo,
		"num_likes":    summary.NumLikes,
		"num_comments": summary.NumComments,
		"likes":        summary.Likes,
		"comments":     summary.Comments,
		"user_liked":   userLiked,
	})
}

// POST /api/photos/:uuid/delete – owner-initiated photo deletion
func HandleDeletePhoto(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	repo := repository.GetGlobalFactory().GetPhotoRepository()
	photo, err := repo.GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return jsonMessage(c, fiber.StatusNotFound, "invalid_photo")
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	if photo.UserID != uctx.UserID {
		return jsonMessage(c, fiber.StatusForbidden, "authentication")
	}

	if err := repo.Delete(photo.ID); err != nil {
		log.Errorf("[Photo] Failed to delete photo %s: %v", photo.UUID, err)
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	cleaner := jobqueue.NewMediaCleaner(jobqueue.GetManager().GetQueue())
	if err := cleaner.CleanupPhoto(photo); err != nil {
		log.Errorf("[Photo] Failed to schedule media cleanup for %s: %v", photo.UUID, err)
	}

	if err := cache.Delete(profileCacheKey(uctx.UserID)); err != nil {
		log.Errorf("[Photo] Failed to invalidate profile cache for user %d: %v", uctx.UserID, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

// POST /api/photos/:uuid/comment – add a comment (1-200 characters)
func HandleCreateComment(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	photo, err := repository.GetGlobalFactory().GetPhotoRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return jsonMessage(c, fiber.StatusNotFound, "invalid_photo")
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonMessage(c, fiber.StatusBadRequest, "validation_failed")
	}

	eng := engagement.NewServiceFromDB(database.GetDB())
	if _, err := eng.AddComment(c.Context(), photo.ID, uctx.UserID, body.Text); err != nil {
		return jsonValidationErrors(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

// POST /api/photos/:uuid/like – upsert the viewer's like state
func HandleSetLike(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	photo, err := repository.GetGlobalFactory().GetPhotoRepository().GetByUUID(c.Params("uuid"))
	if err != nil {
		if isNotFound(err) {
			return jsonMessage(c, fiber.StatusNotFound, "invalid_photo")
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	var body struct {
		Liked *bool `json:"liked"`
	}
	if err := c.BodyParser(&body); err != nil || body.Liked == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  []string{"liked is required and must be a boolean"},
		})
	}

	eng := engagement.NewServiceFromDB(database.GetDB())
	if err := eng.SetLike(c.Context(), uctx.UserID, photo.ID, *body.Liked); err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	return c.JSON(fiber.Map{"message": "success"})
}

// GET /api/photos – the authenticated user's own photos
func HandleUserPhotos(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	photos, err := repository.GetGlobalFactory().GetPhotoRepository().GetByUserID(uctx.UserID)
	if err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	return c.JSON(fiber.Map{"message": "success", "photos": photos})
}

// GET /api/users/:id/profile – a user's public profile with their photos
func HandleGetProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return jsonMessage(c, fiber.StatusBadRequest, "validation_failed")
	}

	cacheKey := profileCacheKey(uint(id))
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(uint(id))
	if err != nil {
		if isNotFound(err) {
			return jsonMessage(c, fiber.StatusNotFound, "invalid_user")
		}
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	photos, err := repos.Photo.GetByUserID(user.ID)
	if err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	resp := fiber.Map{
		"message":       "success",
		"name":          user.Name,
		"profile_photo": user.ProfilePhoto,
		"photos":        photos,
	}
	if body, err := json.Marshal(resp); err == nil {
		if err := cache.Set(cacheKey, body, profileCacheTTL); err != nil {
			log.Errorf("[Profile] Failed to cache profile for user %d: %v", user.ID, err)
		}
	}

	return c.JSON(resp)
}

// POST /api/users/profile-photo – upload the authenticated user's profile photo
func HandleCreateProfilePhoto(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	header, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "validation_failed",
			"errors":  []string{"photo file is required"},
		})
	}

	userRepo := repository.GetGlobalFactory().GetUserRepository()
	user, err := userRepo.GetByID(uctx.UserID)
	if err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	fileName := fmt.Sprintf("profile/%d%s", user.ID, strings.ToLower(filepath.Ext(header.Filename)))
	if err := storeUpload(c, header, fileName); err != nil {
		log.Errorf("[Profile] Failed to store profile photo for user %d: %v", user.ID, err)
		return jsonMessage(c, fiber.StatusBadRequest, "Error saving the file.")
	}

	user.ProfilePhoto = fileName
	if err := userRepo.Update(user); err != nil {
		return jsonMessage(c, fiber.StatusInternalServerError, "error")
	}

	if err := cache.Delete(profileCacheKey(user.ID)); err != nil {
		log.Errorf("[Profile] Failed to invalidate profile cache for user %d: %v", user.ID, err)
	}

	return c.JSON(fiber.Map{"message": "success", "photo": fileName})
}

func storeUpload(c *fiber.Ctx, header *multipart.FileHeader, key string) error {
	store, err := mediastore.Get()
	if err != nil {
		return err
	}

	f, err := header.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	return store.Put(c.Context(), key, f, header.Size, contentTypeForUpload(header))
}
