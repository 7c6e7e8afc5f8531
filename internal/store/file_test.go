package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AbdulManan133/chatbot-Ui/internal/store"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := store.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx := context.Background()

	if err := s.Write(ctx, "chatbot_history", `{"messages":[]}`); err != nil {
		t.Fatalf("Write: %v", err)
	}
	value, ok, err := s.Read(ctx, "chatbot_history")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !ok || value != `{"messages":[]}` {
		t.Fatalf("unexpected read: ok=%v value=%q", ok, value)
	}
}

func TestFileStoreAbsentKey(t *testing.T) {
	s, err := store.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	value, ok, err := s.Read(context.Background(), "nothing_here")
	if err != nil {
		t.Fatalf("Read of absent key must not error: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("unexpected read: ok=%v value=%q", ok, value)
	}
}

func TestFileStoreDeleteIsIdempotent(t *testing.T) {
	s, err := store.NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx := context.Background()

	if err := s.Write(ctx, "slot", "v"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Delete(ctx, "slot"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "slot"); err != nil {
		t.Fatalf("second Delete must not error: %v", err)
	}
	if _, ok, _ := s.Read(ctx, "slot"); ok {
		t.Fatal("deleted key must be absent")
	}
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := store.NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx := context.Background()

	if err := s.Write(ctx, "../escape/attempt", "v"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	value, ok, err := s.Read(ctx, "../escape/attempt")
	if err != nil || !ok || value != "v" {
		t.Fatalf("sanitized key must round-trip: ok=%v value=%q err=%v", ok, value, err)
	}
	// The file must live inside the state directory.
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one file under %s, got %v", dir, matches)
	}
}

func TestFileStoreNestedStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "state")
	if _, err := store.NewFile(dir); err != nil {
		t.Fatalf("NewFile must create nested directories: %v", err)
	}
}
