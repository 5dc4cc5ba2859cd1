package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weaponlions/ecommerce-server/pkg/migrate"
)

func TestCatalogMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_catalog_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no catalog migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS categories",
		"CREATE TABLE IF NOT EXISTS category_attributes",
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS product_attribute_values",
		"CREATE TABLE IF NOT EXISTS collections",
		"CREATE TABLE IF NOT EXISTS product_collections",
		"CREATE UNIQUE INDEX IF NOT EXISTS categories_slug_key",
		"CREATE UNIQUE INDEX IF NOT EXISTS category_attributes_category_name_key",
		"CREATE UNIQUE INDEX IF NOT EXISTS product_attribute_values_pair_key",
		"CREATE UNIQUE INDEX IF NOT EXISTS product_collections_pair_key",
		"ON DELETE CASCADE",
		"ON DELETE SET NULL",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMediaMigrationContainsUsageConstraint(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_media_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no media migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS media_assets",
		"CREATE TABLE IF NOT EXISTS media_usages",
		"CREATE UNIQUE INDEX IF NOT EXISTS media_assets_file_name_key",
		"CREATE UNIQUE INDEX IF NOT EXISTS media_usages_quadruple_key",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}
