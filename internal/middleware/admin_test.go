package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithNotice(t *testing.T) {
	tests := []struct {
		name   string
		target string
		notice string
		want   string
	}{
		{"no notice", "/auth", "", "/auth"},
		{"relative", "/auth", "access_denied", "/auth?notice=access_denied"},
		{"keeps query", "/admin?tab=ads", "ad_created", "/admin?notice=ad_created&tab=ads"},
		{"absolute", "https://auth.example.com/login", "access_denied", "https://auth.example.com/login?notice=access_denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithNotice(tt.target, tt.notice))
		})
	}
}

func TestSessionToken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(SessionToken(c, "access_token"))
	})

	read := func(req *http.Request) string {
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", read(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
	assert.Equal(t, "from-header", read(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	assert.Equal(t, "", read(req))
}
