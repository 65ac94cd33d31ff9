package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosecret/taskmanager/models"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(_ context.Context, token string) (string, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return "", models.Errorf(models.ErrAuth, "invalid or expired token")
}

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Get("/me", JWTMiddleware(stubVerifier{"good": "user-1"}), func(c *fiber.Ctx) error {
		return c.SendString(UserID(c))
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		code    int
		body    string
		message string
	}{
		{name: "valid", header: "Bearer good", code: fiber.StatusOK, body: "user-1"},
		{name: "lowercase scheme", header: "bearer good", code: fiber.StatusOK, body: "user-1"},
		{name: "missing", header: "", code: fiber.StatusUnauthorized, message: "missing token"},
		{name: "no scheme", header: "good", code: fiber.StatusUnauthorized, message: "invalid token format"},
		{name: "empty token", header: "Bearer ", code: fiber.StatusUnauthorized, message: "invalid token format"},
		{name: "unknown token", header: "Bearer bad", code: fiber.StatusUnauthorized, message: "invalid or expired token"},
	}

	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)

			if tt.message != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.message, body["message"])
				return
			}
			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(raw))
		})
	}
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("[" + UserID(c) + "]")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
