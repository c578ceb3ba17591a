//go:build integration

package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// These tests need live services. Point them elsewhere with
// BLOCKFALL_TEST_REDIS_ADDR and BLOCKFALL_TEST_MONGO_URI.

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("BLOCKFALL_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "blockfall-test-" + time.Now().Format("150405.000")})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer s.Close()

	exerciseStore(t, ctx, s)
}

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("BLOCKFALL_TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "blockfall_test", Collection: "saves_" + time.Now().Format("150405")})
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	defer func() {
		_ = s.collection.Drop(context.Background())
		s.Close()
	}()

	exerciseStore(t, ctx, s)
}

func exerciseStore(t *testing.T, ctx context.Context, s Store) {
	t.Helper()

	older := newRecord(t, "older")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	newer := newRecord(t, "newer")
	newer.CreatedAt = newer.CreatedAt.Truncate(time.Millisecond)

	for _, rec := range []*Record{older, newer} {
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save(%s) error: %v", rec.Name, err)
		}
	}

	loaded, err := s.Load(ctx, newer.ID)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Seed != newer.Seed || loaded.State.Summary() != newer.State.Summary() {
		t.Errorf("loaded %s, want %s", loaded.State.Summary(), newer.State.Summary())
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Fatalf("List = %+v, want newer then older", list)
	}

	for _, rec := range []*Record{older, newer} {
		if err := s.Delete(ctx, rec.ID); err != nil {
			t.Errorf("Delete(%s) error: %v", rec.Name, err)
		}
	}
	if _, err := s.Load(ctx, older.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load after delete: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, older.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}
