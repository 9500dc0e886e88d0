package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newClientApp() *fiber.App {
	app := fiber.New()
	app.Use(EnsureClientID())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalClientID).(string))
	})
	app.Use("/ws/game/:gameId", WebSocketUpgrade())
	app.Get("/ws/game/:gameId", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalWSGameID).(string))
	})
	return app
}

func TestEnsureClientID(t *testing.T) {
	app := newClientApp()

	tests := []struct {
		name   string
		target string
		header string
		status int
		body   string
	}{
		{name: "header", target: "/whoami", header: "alice", status: fiber.StatusOK, body: "alice"},
		{name: "query", target: "/whoami?clientId=bob", status: fiber.StatusOK, body: "bob"},
		{name: "header wins", target: "/whoami?clientId=bob", header: "alice", status: fiber.StatusOK, body: "alice"},
		{name: "missing", target: "/whoami", status: fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Client-ID", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, resp.StatusCode)
			}
			if tt.body != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.body {
					t.Fatalf("expected body %q, got %q", tt.body, body)
				}
			}
		})
	}
}

func TestWebSocketUpgradeRequiresUpgrade(t *testing.T) {
	app := newClientApp()

	req := httptest.NewRequest(http.MethodGet, "/ws/game/abc", nil)
	req.Header.Set("X-Client-ID", "alice")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Fatalf("expected 426, got %d", resp.StatusCode)
	}
}
