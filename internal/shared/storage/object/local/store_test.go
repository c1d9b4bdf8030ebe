package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenDeleteRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "user-1", "page.png", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("fake image bytes")) {
		t.Fatalf("unexpected size %d", size)
	}
	if mimeType == "" {
		t.Fatal("expected sniffed mime type")
	}

	f, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Fatalf("round trip mismatch: %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Open(ctx, key); err == nil {
		t.Fatal("expected Open to fail after Delete")
	}
}

func TestDeleteMissingObjectIsNotAnError(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Delete(context.Background(), "user/none.png"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestOpenRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	for _, key := range []string{"../outside.txt", "/etc/passwd", "a/../../b"} {
		if _, err := store.Open(context.Background(), key); err == nil {
			t.Fatalf("expected invalid key error for %q", key)
		}
	}
}

func TestSaveNamespacesUsers(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key1, _, _, err := store.Save(ctx, "user-1", "page.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save user-1: %v", err)
	}
	key2, _, _, err := store.Save(ctx, "user-2", "page.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save user-2: %v", err)
	}

	if strings.Split(key1, "/")[0] == strings.Split(key2, "/")[0] {
		t.Fatalf("expected distinct user namespaces: %q vs %q", key1, key2)
	}
}
