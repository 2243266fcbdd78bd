package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "resumes", "resume.pdf", strings.NewReader("%PDF-1.4 content"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(key, "resumes/") || !strings.HasSuffix(key, "_resume.pdf") {
		t.Fatalf("unexpected key: %q", key)
	}
	if size != int64(len("%PDF-1.4 content")) {
		t.Fatalf("unexpected size: %d", size)
	}
	if mimeType == "" {
		t.Fatalf("expected detected mime type")
	}

	f, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "%PDF-1.4 content" {
		t.Fatalf("content mismatch: %q", string(data))
	}
}

func TestSaveRandomizesKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	first, _, _, err := store.Save(ctx, "resumes", "resume.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, _, _, err := store.Save(ctx, "resumes", "resume.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct keys for same file name")
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, _, _, err := store.Save(ctx, "resumes", "../../etc/passwd", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error for traversal file name")
	}
	if _, err := store.Open(ctx, "../outside"); err == nil {
		t.Fatalf("expected error for traversal key")
	}
}
