package inventory

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"inventory-backend/internal/cache"
	"inventory-backend/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func newCachedFixture(t *testing.T) (*fixture, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return newFixtureWithCache(t, cache.New(rdb, time.Minute, config.GetLogger())), mr
}

// list reads the branch items twice through path and fails unless both reads match.
func (f *fixture) list(t *testing.T, path string) []map[string]any {
	t.Helper()
	var first, second []map[string]any
	for _, dst := range []*[]map[string]any{&first, &second} {
		status, body := f.do(t, "GET", path, "")
		if status != fiber.StatusOK {
			t.Fatalf("GET %s = %d %s", path, status, body)
		}
		if err := json.Unmarshal(body, dst); err != nil {
			t.Fatal(err)
		}
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("GET %s: cached read differs\nfirst:  %v\nsecond: %v", path, first, second)
	}
	return second
}

func TestItemCacheInvalidatedAcrossIDCase(t *testing.T) {
	f, mr := newCachedFixture(t)
	key := cache.BranchItemsKey(f.branch.ID)
	upperPath := "/api/branches/" + strings.ToUpper(f.branch.ID) + "/items"

	first := f.create(t, `{"name":"Widget","quantity":10,"price":4.5}`)
	if got := f.list(t, upperPath); len(got) != 1 || got[0]["price"] != 4.5 {
		t.Fatalf("list = %v", got)
	}
	if keys := mr.Keys(); len(keys) != 1 || keys[0] != key {
		t.Fatalf("cached keys = %v, want [%s]", keys, key)
	}

	second := f.create(t, `{"name":"Gadget","quantity":3}`)
	if mr.Exists(key) {
		t.Fatal("create left the item list cached")
	}
	got := f.list(t, upperPath)
	if len(got) != 2 || got[0]["id"] != first.ID || got[1]["id"] != second.ID {
		t.Fatalf("list after create = %v", got)
	}

	if status, b := f.do(t, "PUT", upperPath+"/"+strings.ToUpper(first.ID), `{"quantity":7}`); status != fiber.StatusOK {
		t.Fatalf("update = %d %s", status, b)
	}
	if mr.Exists(key) {
		t.Fatal("update left the item list cached")
	}
	got = f.list(t, "/api/"+f.branch.ID+"/items")
	if got[0]["quantity"] != float64(7) {
		t.Fatalf("list after update = %v", got)
	}

	if status, b := f.do(t, "DELETE", "/api/"+f.branch.ID+"/items/"+second.ID, ""); status != fiber.StatusOK {
		t.Fatalf("delete = %d %s", status, b)
	}
	if mr.Exists(key) {
		t.Fatal("delete left the item list cached")
	}
	if got := f.list(t, upperPath); len(got) != 1 || got[0]["id"] != first.ID {
		t.Fatalf("list after delete = %v", got)
	}
	for _, k := range mr.Keys() {
		if k != strings.ToLower(k) {
			t.Fatalf("non-canonical cache key %q", k)
		}
	}
}
