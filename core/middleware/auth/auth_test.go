package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(cfg Config) *fiber.App {
	app := fiber.New()
	app.Use(New(cfg))
	app.Get("/lookup/x", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		path   string
		header map[string]string
		status int
	}{
		{"Disabled", Config{}, "/lookup/x", nil, fiber.StatusOK},
		{"MissingKey", Config{ApiKey: "secret"}, "/lookup/x", nil, fiber.StatusUnauthorized},
		{"WrongKey", Config{ApiKey: "secret"}, "/lookup/x", map[string]string{Header: "nope"}, fiber.StatusUnauthorized},
		{"HeaderKey", Config{ApiKey: "secret"}, "/lookup/x", map[string]string{Header: "secret"}, fiber.StatusOK},
		{"BearerKey", Config{ApiKey: "secret"}, "/lookup/x", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
		{"Skipped", Config{ApiKey: "secret", Skip: []string{"/metrics"}}, "/metrics", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := setupTestApp(tt.cfg).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
