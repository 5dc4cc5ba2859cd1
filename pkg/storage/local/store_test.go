package local

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weaponlions/ecommerce-server/pkg/config"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := New(config.StorageConfig{
		UploadRoot:    t.TempDir(),
		PublicBaseURL: "/uploads",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestSaveAndPublicURL(t *testing.T) {
	store := newTestStore(t)

	url, err := store.Save(enums.MediaCategoryProduct, "abc-photo.png", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "/uploads/product/abc-photo.png" {
		t.Fatalf("unexpected url %q", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "product", "abc-photo.png"))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("unexpected blob content %q", data)
	}
}

func TestSaveRejectsDuplicateName(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(enums.MediaCategoryGeneral, "dup.png", strings.NewReader("a")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := store.Save(enums.MediaCategoryGeneral, "dup.png", strings.NewReader("b")); err == nil {
		t.Fatalf("expected duplicate save to fail")
	}
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(enums.MediaCategoryGeneral, "../escape.png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal name to be rejected")
	}
	if _, err := store.Save("bogus", "ok.png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected invalid category to be rejected")
	}
}

func TestMoveRelocatesBlob(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(enums.MediaCategoryGeneral, "pic.png", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	url, err := store.Move(enums.MediaCategoryGeneral, enums.MediaCategoryCarousel, "pic.png")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if url != "/uploads/carousel/pic.png" {
		t.Fatalf("unexpected url %q", url)
	}

	if _, err := os.Stat(filepath.Join(store.Root(), "general", "pic.png")); !os.IsNotExist(err) {
		t.Fatalf("expected source blob gone, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "carousel", "pic.png")); err != nil {
		t.Fatalf("expected destination blob, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.Save(enums.MediaCategoryGeneral, "gone.png", strings.NewReader("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(enums.MediaCategoryGeneral, "gone.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(enums.MediaCategoryGeneral, "gone.png"); err != nil {
		t.Fatalf("second Remove should not fail: %v", err)
	}
}
