package auth

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/config"
	"inventory-backend/internal/models"
	"inventory-backend/internal/store/storetest"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	user := &models.User{ID: "3c3e8c8e-7c39-4a64-8f2b-0f9f7d6b7a11", Role: models.RoleAdmin}
	tok, err := GenerateToken(testSecret, user, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseToken(testSecret, tok)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleAdmin {
		t.Fatalf("claims = %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != TokenTTL {
		t.Fatalf("token lifetime = %v, want %v", got, TokenTTL)
	}
}

func TestParseTokenRejects(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleEmployee}
	expired, _ := GenerateToken(testSecret, user, time.Now().Add(-2*time.Hour))
	valid, _ := GenerateToken(testSecret, user, time.Now())
	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTCustomClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &JWTCustomClaims{
		UserID: user.ID,
		Role:   user.Role,
	}).SignedString([]byte(testSecret))

	cases := map[string]struct{ secret, token string }{
		"alg none":     {testSecret, unsigned},
		"no expiry":    {testSecret, noExpiry},
		"expired":      {testSecret, expired},
		"wrong secret": {strings.Repeat("x", 32), valid},
		"garbage":      {testSecret, "not.a.token"},
	}
	for name, tc := range cases {
		if _, err := ParseToken(tc.secret, tc.token); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "S3cret") {
		t.Fatal("wrong password accepted")
	}
}

func newTestApp(users UserStore) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.FiberErrorHandler(config.GetLogger())})
	app.Post("/login", LoginHandler(users, testSecret))

	protected := app.Group("", JWTMiddleware(testSecret))
	protected.Get("/me", MeHandler(users))
	protected.Get("/admin-only", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func seedUser(t *testing.T, mem *storetest.Memory, username, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{Username: username, PasswordHash: hash, Role: role}
	if err := mem.UpsertUser(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

func TestLogin(t *testing.T) {
	mem := storetest.NewMemory()
	seedUser(t, mem, "dana", "pw-123", models.RoleAdmin)
	app := newTestApp(mem)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"ok", `{"username":"dana","password":"pw-123"}`, fiber.StatusOK},
		{"wrong password", `{"username":"dana","password":"nope"}`, fiber.StatusUnauthorized},
		{"unknown user", `{"username":"ghost","password":"pw-123"}`, fiber.StatusUnauthorized},
		{"missing password", `{"username":"dana"}`, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/login", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
			if tc.status != fiber.StatusOK {
				return
			}
			var out LoginResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatal(err)
			}
			if out.Token == "" || out.Role != models.RoleAdmin {
				t.Fatalf("login response = %+v", out)
			}
		})
	}
}

func TestGate(t *testing.T) {
	mem := storetest.NewMemory()
	admin := seedUser(t, mem, "admin", "pw", models.RoleAdmin)
	clerk := seedUser(t, mem, "clerk", "pw", models.RoleEmployee)
	app := newTestApp(mem)

	adminTok, _ := GenerateToken(testSecret, admin, time.Now())
	clerkTok, _ := GenerateToken(testSecret, clerk, time.Now())

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/me", "", fiber.StatusUnauthorized},
		{"not bearer", "/me", "Basic abc", fiber.StatusUnauthorized},
		{"bad token", "/me", "Bearer abc", fiber.StatusUnauthorized},
		{"me", "/me", "Bearer " + clerkTok, fiber.StatusOK},
		{"employee on admin route", "/admin-only", "Bearer " + clerkTok, fiber.StatusForbidden},
		{"admin on admin route", "/admin-only", "Bearer " + adminTok, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.status)
			}
		})
	}
}
