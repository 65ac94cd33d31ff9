package middleware

import (
	"context"
	"strings"

	"github.com/biosecret/taskmanager/models"
	"github.com/gofiber/fiber/v2"
)

const userIDKey = "user_id"

// TokenVerifier trả về user ID từ access token
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// JWTMiddleware xác thực bearer token và lưu user ID vào context
func JWTMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Lấy token từ header Authorization
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return models.Errorf(models.ErrAuth, "missing token")
		}

		// Tách từ "Bearer <token>"
		const prefix = "Bearer "
		if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
			return models.Errorf(models.ErrAuth, "invalid token format")
		}

		userID, err := verifier.Verify(c.UserContext(), strings.TrimSpace(authHeader[len(prefix):]))
		if err != nil {
			return err
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID trả về user ID mà JWTMiddleware đã lưu
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}
