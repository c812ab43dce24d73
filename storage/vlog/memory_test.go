package vlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "Morning Walk", MediaTypeImage, "uploads/1-2.jpg")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.UploadDate.IsZero() {
		t.Fatalf("expected upload date to default to now")
	}
	if len(created.Comments) != 0 {
		t.Fatalf("expected empty comment list, got %d", len(created.Comments))
	}

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if fetched.Title != "Morning Walk" || fetched.MediaType != MediaTypeImage || fetched.MediaPath != "uploads/1-2.jpg" {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}
}

func TestMemoryStore_GetUnknownID(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		v, err := store.Create(ctx, fmt.Sprintf("vlog %d", i), MediaTypeVideo, fmt.Sprintf("uploads/%d.mp4", i))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		ids = append(ids, v.ID)
	}

	vlogs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(vlogs) != 3 {
		t.Fatalf("expected 3 vlogs, got %d", len(vlogs))
	}

	for i, v := range vlogs {
		if want := ids[len(ids)-1-i]; v.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, v.ID)
		}
	}

	for i := 1; i < len(vlogs); i++ {
		if vlogs[i].UploadDate.After(vlogs[i-1].UploadDate) {
			t.Fatalf("list not ordered by upload date descending")
		}
	}
}

func TestMemoryStore_AddComment(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "with comments", MediaTypeImage, "uploads/a.png")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		updated, err := store.AddComment(ctx, created.ID, "Ana", fmt.Sprintf("comment %d", i))
		if err != nil {
			t.Fatalf("add comment %d: %v", i, err)
		}
		if len(updated.Comments) != i+1 {
			t.Fatalf("expected %d comments, got %d", i+1, len(updated.Comments))
		}
	}

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	for i, c := range fetched.Comments {
		if want := fmt.Sprintf("comment %d", i); c.Text != want {
			t.Fatalf("comment %d out of order: got %q", i, c.Text)
		}
		if c.Date.IsZero() {
			t.Fatalf("comment %d has zero date", i)
		}
	}
}

func TestMemoryStore_AddCommentUnknownID(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.AddComment(context.Background(), "missing", "Ana", "hi"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ReturnedVlogIsACopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, "immutable", MediaTypeImage, "uploads/a.jpg")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Title = "mutated"
	created.Comments = append(created.Comments, Comment{Name: "x", Text: "y"})

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if fetched.Title != "immutable" || len(fetched.Comments) != 0 {
		t.Fatalf("store state leaked through returned copy: %+v", fetched)
	}
}

func TestVlog_MarshalsCommentsAsArray(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.Create(context.Background(), "fresh", MediaTypeImage, "uploads/a.jpg")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	payload, err := json.Marshal(created)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if !strings.Contains(string(payload), `"comments":[]`) {
		t.Fatalf("expected comments to marshal as [], got %s", payload)
	}
}
