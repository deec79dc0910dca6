package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Soptik1290/restaurant-menu-summarizer/types"
)

// fakeRedis is an in-memory stand-in for the Redis client.
type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

var testDay = time.Date(2026, 8, 28, 11, 30, 0, 0, time.UTC)

func testResult() *types.MenuResult {
	return &types.MenuResult{
		RestaurantName: "U Fleků",
		MenuItems: []types.MenuItem{
			{Category: "soup", Name: "Gulášová polévka", Price: 45, Allergens: []string{"1", "9"}},
		},
		DailyMenuFound: true,
		Date:           "2026-08-28",
		SourceURL:      "http://example.com/menu",
	}
}

func TestKey(t *testing.T) {
	got := Key(testDay, "http://example.com/menu")
	want := "menu:2026-08-28:http://example.com/menu"
	if got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestGetMiss(t *testing.T) {
	store := NewStore(newFakeRedis(), zerolog.Nop())
	result, ok, err := store.Get(context.Background(), testDay, "http://example.com/menu")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || result != nil {
		t.Errorf("Get() on empty cache = (%v, %v), want miss", result, ok)
	}
}

func TestSetThenGet(t *testing.T) {
	store := NewStore(newFakeRedis(), zerolog.Nop())
	ctx := context.Background()
	url := "http://example.com/menu"

	if err := store.Set(ctx, testDay, url, testResult()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := store.Get(ctx, testDay, url)
	if err != nil || !ok {
		t.Fatalf("Get() after Set() = (ok=%v, err=%v), want hit", ok, err)
	}
	if got.RestaurantName != "U Fleků" || len(got.MenuItems) != 1 || !got.DailyMenuFound {
		t.Errorf("Get() returned %+v, want stored result", got)
	}
	if got.MenuItems[0].Price != 45 {
		t.Errorf("Get() price = %v, want 45", got.MenuItems[0].Price)
	}
}

func TestKeysAreDayScoped(t *testing.T) {
	store := NewStore(newFakeRedis(), zerolog.Nop())
	ctx := context.Background()
	url := "http://example.com/menu"

	if err := store.Set(ctx, testDay, url, testResult()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	nextDay := testDay.Add(24 * time.Hour)
	_, ok, err := store.Get(ctx, nextDay, url)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("yesterday's entry served for a new day")
	}
}

func TestInvalidate(t *testing.T) {
	store := NewStore(newFakeRedis(), zerolog.Nop())
	ctx := context.Background()
	url := "http://example.com/menu"

	if err := store.Set(ctx, testDay, url, testResult()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	store.Invalidate(ctx, testDay, url)

	_, ok, err := store.Get(ctx, testDay, url)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("entry survived Invalidate()")
	}
}

func TestCorruptEntryIsDroppedAndDeleted(t *testing.T) {
	fake := newFakeRedis()
	store := NewStore(fake, zerolog.Nop())
	ctx := context.Background()
	url := "http://example.com/menu"
	key := Key(testDay, url)
	fake.data[key] = "{not json"

	_, ok, err := store.Get(ctx, testDay, url)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("corrupt entry reported as hit")
	}
	if _, exists := fake.data[key]; exists {
		t.Error("corrupt entry not deleted")
	}
}
