// Package local stores uploaded blobs on the local filesystem, one
// subdirectory per media category, and maps them to public URLs served by the
// API's static file handler.
package local

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/weaponlions/ecommerce-server/pkg/config"
	"github.com/weaponlions/ecommerce-server/pkg/enums"
)

// Store is a category-keyed blob store rooted at a single directory.
type Store struct {
	root          string
	publicBaseURL string
}

// New validates the configuration and ensures the root directory exists.
func New(cfg config.StorageConfig) (*Store, error) {
	if cfg.UploadRoot == "" {
		return nil, errors.New("storage upload root is required")
	}
	root, err := filepath.Abs(cfg.UploadRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving upload root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload root: %w", err)
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = "/uploads"
	}
	return &Store{root: root, publicBaseURL: base}, nil
}

// Root returns the absolute directory blobs are stored under.
func (s *Store) Root() string {
	return s.root
}

// Save writes the blob under the category's subdirectory and returns its
// public URL. The file name must already be unique; an existing blob with the
// same name is an error.
func (s *Store) Save(category enums.MediaCategory, fileName string, data io.Reader) (string, error) {
	target, err := s.blobPath(category, fileName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating category directory: %w", err)
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating blob: %w", err)
	}
	if _, err := io.Copy(out, data); err != nil {
		out.Close()
		os.Remove(target)
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing blob: %w", err)
	}
	return s.PublicURL(category, fileName), nil
}

// Move relocates a blob between category subdirectories and returns the new
// public URL. A missing source blob is an error; the metadata row stays
// authoritative for everything else.
func (s *Store) Move(from, to enums.MediaCategory, fileName string) (string, error) {
	src, err := s.blobPath(from, fileName)
	if err != nil {
		return "", err
	}
	dst, err := s.blobPath(to, fileName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("creating category directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("moving blob: %w", err)
	}
	return s.PublicURL(to, fileName), nil
}

// Remove deletes a blob. A blob that is already gone is not an error so a
// retried delete stays idempotent.
func (s *Store) Remove(category enums.MediaCategory, fileName string) error {
	target, err := s.blobPath(category, fileName)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing blob: %w", err)
	}
	return nil
}

// PublicURL returns the URL the static file handler serves the blob at.
func (s *Store) PublicURL(category enums.MediaCategory, fileName string) string {
	return s.publicBaseURL + "/" + path.Join(category.String(), fileName)
}

func (s *Store) blobPath(category enums.MediaCategory, fileName string) (string, error) {
	if !category.IsValid() {
		return "", fmt.Errorf("invalid media category %q", category)
	}
	cleaned := filepath.Base(fileName)
	if cleaned == "" || cleaned == "." || cleaned == ".." || cleaned != fileName {
		return "", fmt.Errorf("invalid blob file name %q", fileName)
	}
	return filepath.Join(s.root, category.String(), cleaned), nil
}
