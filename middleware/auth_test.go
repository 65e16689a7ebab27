package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"football-stats-api/middleware"

	"github.com/gofiber/fiber/v2"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	if token == "good-token" {
		return "user-123", nil
	}
	return "", errors.New("token rejected")
}

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Post("/guarded", middleware.TokenAuth(stubVerifier{}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("user_id")})
	})
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return body["message"]
}

func TestTokenAuthMissingHeader(t *testing.T) {
	app := newGuardedApp()

	resp := request(t, app, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}
	if msg := message(t, resp); msg != "Token is missing!" {
		t.Fatalf("got message %q, want %q", msg, "Token is missing!")
	}
}

func TestTokenAuthMalformedHeader(t *testing.T) {
	app := newGuardedApp()

	for _, header := range []string{"good-token", "Basic good-token", "Bearer "} {
		resp := request(t, app, header)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("header %q: got status %d, want 401", header, resp.StatusCode)
		}
		if msg := message(t, resp); msg != "Token format is invalid!" {
			t.Fatalf("header %q: got message %q, want %q", header, msg, "Token format is invalid!")
		}
	}
}

func TestTokenAuthRejectedToken(t *testing.T) {
	app := newGuardedApp()

	resp := request(t, app, "Bearer expired-token")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}
	if msg := message(t, resp); msg != "Token is invalid!" {
		t.Fatalf("got message %q, want %q", msg, "Token is invalid!")
	}
}

func TestTokenAuthAcceptedToken(t *testing.T) {
	app := newGuardedApp()

	resp := request(t, app, "Bearer good-token")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	defer resp.Body.Close()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["user_id"] != "user-123" {
		t.Fatalf("got user_id %q, want user-123", body["user_id"])
	}
}

func TestTokenAuthCaseInsensitiveScheme(t *testing.T) {
	app := newGuardedApp()

	resp := request(t, app, "bearer good-token")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200 for lowercase scheme", resp.StatusCode)
	}
	resp.Body.Close()
}
