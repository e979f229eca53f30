package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDirAcceptsRepoMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("repo migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "not_versioned.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected validation error for unversioned filename")
	}
}

func TestValidateDirRejectsMissingGooseHeaders(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "20250101000000_missing_down.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected validation error for missing goose Down header")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Meal Tags!")
	if err != nil {
		t.Fatalf("CreateSQLMigration returned error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("migration created outside target dir: %s", path)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration failed validation: %v", err)
	}
}
