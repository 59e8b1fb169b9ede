package admin

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"inventory-backend/internal/apperr"
	"inventory-backend/internal/cache"
	"inventory-backend/internal/config"
	"inventory-backend/internal/models"
	"inventory-backend/internal/store/storetest"

	"github.com/gofiber/fiber/v2"
)

func newBranchApp(mem *storetest.Memory) *fiber.App {
	return newBranchAppWithCache(mem, cache.New(nil, 0, config.GetLogger()))
}

func newBranchAppWithCache(mem *storetest.Memory, c *cache.Cache) *fiber.App {
	svc := NewBranchService(mem, c)
	app := fiber.New(fiber.Config{ErrorHandler: apperr.FiberErrorHandler(config.GetLogger())})
	app.Get("/branches", ListBranchesHandler(svc))
	app.Post("/branches", CreateBranchHandler(svc))
	app.Get("/branches/:branchId", GetBranchHandler(svc))
	app.Put("/branches/:branchId", UpdateBranchHandler(svc))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func TestCreateBranch(t *testing.T) {
	app := newBranchApp(storetest.NewMemory())

	status, body := doJSON(t, app, "POST", "/branches", `{"name":"  Tel Aviv ","address":"Dizengoff 1"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, body %s", status, body)
	}
	var b models.Branch
	if err := json.Unmarshal(body, &b); err != nil {
		t.Fatal(err)
	}
	if b.ID == "" || b.Name != "Tel Aviv" {
		t.Fatalf("created branch = %+v", b)
	}

	cases := []struct {
		name, body, msg string
	}{
		{"duplicate", `{"name":"Tel Aviv","address":"elsewhere"}`, msgBranchDuplicate},
		{"missing address", `{"name":"Haifa"}`, "Name and address are required."},
		{"blank name", `{"name":"  ","address":"x"}`, "Name and address are required."},
		{"name too long", `{"name":"` + strings.Repeat("n", 101) + `","address":"x"}`, "Name and address are required."},
		{"address too long", `{"name":"Haifa","address":"` + strings.Repeat("a", 256) + `"}`, "Name and address are required."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", "/branches", tc.body)
			if status != fiber.StatusBadRequest || !strings.Contains(string(body), tc.msg) {
				t.Fatalf("got %d %s, want 400 %q", status, body, tc.msg)
			}
		})
	}
}

func TestGetAndUpdateBranch(t *testing.T) {
	app := newBranchApp(storetest.NewMemory())
	_, body := doJSON(t, app, "POST", "/branches", `{"name":"Haifa","address":"Port 2"}`)
	var b models.Branch
	_ = json.Unmarshal(body, &b)
	doJSON(t, app, "POST", "/branches", `{"name":"Eilat","address":"Beach 3"}`)

	if status, _ := doJSON(t, app, "GET", "/branches/nope", ""); status != fiber.StatusBadRequest {
		t.Fatalf("malformed id status = %d", status)
	}
	if status, _ := doJSON(t, app, "GET", "/branches/6f1f7b52-1e4c-4c1d-9a43-2b7d2d5e0f00", ""); status != fiber.StatusNotFound {
		t.Fatalf("unknown id status = %d", status)
	}

	status, body := doJSON(t, app, "PUT", "/branches/"+b.ID, `{"address":" Port 5 "}`)
	if status != fiber.StatusOK {
		t.Fatalf("update status = %d %s", status, body)
	}
	var updated models.Branch
	_ = json.Unmarshal(body, &updated)
	if updated.Name != "Haifa" || updated.Address != "Port 5" {
		t.Fatalf("updated = %+v", updated)
	}

	if status, _ := doJSON(t, app, "PUT", "/branches/"+b.ID, `{"name":"Eilat"}`); status != fiber.StatusBadRequest {
		t.Fatalf("rename onto existing name status = %d", status)
	}
	if status, _ := doJSON(t, app, "PUT", "/branches/"+b.ID, `{"name":"   "}`); status != fiber.StatusBadRequest {
		t.Fatalf("blank name status = %d", status)
	}
}

func TestListBranchesNewestFirstAndStable(t *testing.T) {
	app := newBranchApp(storetest.NewMemory())
	for _, name := range []string{"A", "B", "C"} {
		doJSON(t, app, "POST", "/branches", `{"name":"`+name+`","address":"x"}`)
	}

	_, first := doJSON(t, app, "GET", "/branches", "")
	_, second := doJSON(t, app, "GET", "/branches", "")

	var a, b []models.Branch
	_ = json.Unmarshal(first, &a)
	_ = json.Unmarshal(second, &b)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two reads without writes differ")
	}
	if len(a) != 3 || a[0].Name != "C" || a[2].Name != "A" {
		t.Fatalf("order = %v", a)
	}
}
