package request

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"inventory-backend/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

type sampleBody struct {
	Name  string `json:"name" validate:"required"`
	Count *int   `json:"count" validate:"required,min=0"`
}

func (b *sampleBody) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
}

func TestIsUUID(t *testing.T) {
	cases := map[string]bool{
		"0b5c7e4a-3f43-4b53-9a4e-9f3c2f6f8a10":   true,
		"not-a-uuid":                             false,
		"":                                       false,
		"0b5c7e4a3f434b539a4e9f3c2f6f8a10":       false,
		"{0b5c7e4a-3f43-4b53-9a4e-9f3c2f6f8a10}": false,
	}
	for in, want := range cases {
		if got := IsUUID(in); got != want {
			t.Errorf("IsUUID(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBind(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"name":" widget ","count":0}`, fiber.StatusOK},
		{"blank name after trim", `{"name":"   ","count":1}`, fiber.StatusBadRequest},
		{"missing count", `{"name":"widget"}`, fiber.StatusBadRequest},
		{"negative count", `{"name":"widget","count":-1}`, fiber.StatusBadRequest},
		{"wrong type", `{"name":"widget","count":"three"}`, fiber.StatusBadRequest},
		{"malformed json", `{"name":`, fiber.StatusBadRequest},
	}

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		status, msg := apperr.Render(err)
		return c.Status(status).SendString(msg)
	}})
	app.Post("/", func(c *fiber.Ctx) error {
		var body sampleBody
		if err := Bind(c, &body, "Invalid body."); err != nil {
			return err
		}
		return c.SendString(body.Name)
	})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
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

func TestUUIDParamCanonicalizes(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		status, msg := apperr.Render(err)
		return c.Status(status).SendString(msg)
	}})
	app.Get("/branches/:branchId", func(c *fiber.Ctx) error {
		id, err := UUIDParam(c, "branchId", "Invalid branch id.")
		if err != nil {
			return err
		}
		return c.SendString(id)
	})

	cases := []struct {
		in     string
		status int
		want   string
	}{
		{"3642276F-D743-4831-9F82-F50CAD35B19A", fiber.StatusOK, "3642276f-d743-4831-9f82-f50cad35b19a"},
		{"3642276f-d743-4831-9f82-f50cad35b19a", fiber.StatusOK, "3642276f-d743-4831-9f82-f50cad35b19a"},
		{"3642276f", fiber.StatusBadRequest, "Invalid branch id."},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", "/branches/"+tc.in, nil))
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != tc.status || string(body) != tc.want {
			t.Errorf("%s: got %d %q, want %d %q", tc.in, resp.StatusCode, body, tc.status, tc.want)
		}
	}
}
