package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wigglew/wigglew_auth/internal/token"
)

func setupProtectedApp(t *testing.T, issuer *token.Issuer) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", JWTAuth(issuer), func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)
		return c.JSON(fiber.Map{"user_id": uid, "role": role})
	})
	return app
}

func TestJWTAuthMissingHeader(t *testing.T) {
	app := setupProtectedApp(t, token.NewIssuer("secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/protected", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	app := setupProtectedApp(t, token.NewIssuer("secret", time.Hour))

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not.a.token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	app := setupProtectedApp(t, issuer)

	signed, err := issuer.Issue("user-1", "+881700000000", "USER")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signed)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
