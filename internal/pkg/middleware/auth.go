package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kuvashare/kuva/app/repository"
	"github.com/kuvashare/kuva/internal/pkg/env"
	"github.com/kuvashare/kuva/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the bearer token issued by the external
// identity provider into a UserContext. Requests without a token pass through
// anonymously; RequireAuth decides whether that is acceptable per route.
func UserContextMiddleware(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Next()
	}

	claims, err := validateToken(tokenString)
	if err != nil {
		return c.Next()
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return c.Next()
	}

	uctx := usercontext.UserContext{
		UserID:     uint(userID),
		IsLoggedIn: true,
	}
	if name, ok := claims["username"].(string); ok {
		uctx.Username = name
	}

	// Role membership lives in our user table, not in the token.
	if user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(uctx.UserID); err == nil {
		uctx.IsAdmin = user.IsAdmin()
		if uctx.Username == "" {
			uctx.Username = user.Name
		}
	}

	usercontext.SetUserContext(c, uctx)
	return c.Next()
}

// RequireAuth ensures an authenticated user and returns JSON 401 otherwise
func RequireAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}
	return c.Next()
}

// RequireAdmin ensures an authenticated admin and returns JSON 403 otherwise
func RequireAdmin(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "authentication required",
		})
	}
	if !usercontext.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "admin role required",
		})
	}
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func validateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(env.GetEnv("JWT_SECRET", "")), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
