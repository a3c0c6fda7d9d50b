package tiered_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seatwise/seatwise/internal/adapter/tiered"
)

// memCache is a simple in-memory cache for testing.
type memCache struct {
	data    map[string][]byte
	failGet bool
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	if m.failGet {
		return nil, false, errors.New("backend down")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestTiered_L1Hit(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)

	l1.data["key1"] = []byte("val1")

	val, found, err := c.Get(context.Background(), "key1")
	if err != nil {
		t.Fatal(err)
	}
	if !found || string(val) != "val1" {
		t.Fatalf("got (%q, %t), want L1 hit val1", val, found)
	}
}

func TestTiered_L2HitBackfillsL1(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)

	l2.data["key2"] = []byte("val2")

	val, found, err := c.Get(context.Background(), "key2")
	if err != nil {
		t.Fatal(err)
	}
	if !found || string(val) != "val2" {
		t.Fatalf("got (%q, %t), want L2 hit val2", val, found)
	}

	if got, ok := l1.data["key2"]; !ok || string(got) != "val2" {
		t.Fatalf("L1 backfill = (%q, %t), want val2", got, ok)
	}
}

func TestTiered_Miss(t *testing.T) {
	c := tiered.New(newMemCache(), newMemCache(), 5*time.Minute)

	_, found, err := c.Get(context.Background(), "missing")
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("expected miss")
	}
}

func TestTiered_L2FailureDegradesToMiss(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	l2.failGet = true
	c := tiered.New(l1, l2, 5*time.Minute)

	_, found, err := c.Get(context.Background(), "key")
	if err != nil {
		t.Fatalf("expected soft miss, got error: %v", err)
	}
	if found {
		t.Fatal("expected miss when L2 is down")
	}
}

func TestTiered_SetAndDeleteBothLevels(t *testing.T) {
	l1, l2 := newMemCache(), newMemCache()
	c := tiered.New(l1, l2, 5*time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "key3", []byte("val3"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, ok := l1.data["key3"]; !ok {
		t.Fatal("expected key3 in L1")
	}
	if _, ok := l2.data["key3"]; !ok {
		t.Fatal("expected key3 in L2")
	}

	if err := c.Delete(ctx, "key3"); err != nil {
		t.Fatal(err)
	}
	if _, ok := l1.data["key3"]; ok {
		t.Fatal("expected key3 deleted from L1")
	}
	if _, ok := l2.data["key3"]; ok {
		t.Fatal("expected key3 deleted from L2")
	}
}
