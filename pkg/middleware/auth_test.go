package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(WebhookAuth(secret, zap.NewNop()))
	app.Post("/webhook/email", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestWebhookAuthMissingToken(t *testing.T) {
	app := newAuthApp("secret")

	req := httptest.NewRequest("POST", "/webhook/email", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookAuthSharedSecret(t *testing.T) {
	app := newAuthApp("secret")

	req := httptest.NewRequest("POST", "/webhook/email", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWebhookAuthSignedToken(t *testing.T) {
	app := newAuthApp("secret")

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "service_role"}).
		SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/webhook/email", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWebhookAuthGarbageToken(t *testing.T) {
	app := newAuthApp("secret")

	req := httptest.NewRequest("POST", "/webhook/email", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookAuthWrongSecretNonJWT(t *testing.T) {
	app := newAuthApp("secret")

	req := httptest.NewRequest("POST", "/webhook/email", nil)
	req.Header.Set("Authorization", "Bearer almost.secret.value")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
