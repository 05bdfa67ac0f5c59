package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := store.Set(ctx, "a", []byte("hello")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("expected hello, got %s", got)
	}

	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// deleting a missing key is a no-op
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete of missing key errored: %v", err)
	}
}

func TestMemoryClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	store.Set(ctx, "a", []byte("1"))
	store.Set(ctx, "b", []byte("2"))
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, err := store.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected empty store after clear, got %v", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	buf := []byte("original")
	store.Set(ctx, "a", buf)
	buf[0] = 'X'

	got, _ := store.Get(ctx, "a")
	if string(got) != "original" {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}
}
