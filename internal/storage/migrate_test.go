// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers memory-to-sqlite, sqlite-to-badger, dry runs, and dir checks.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/carewise/internal/models"
)

func TestCopyMemoryToSQLite(t *testing.T) {
	ctx := context.Background()
	srcKV := NewMemoryKV()
	src := NewProfileStore(srcKV, nil)
	if _, err := src.SaveProfile(ctx, models.DefaultProfile()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	p := models.DefaultProfile()
	p.Age = 70
	if _, err := src.SaveProfile(ctx, p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if err := srcKV.Put(ctx, "unrelated", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	dstDB := setupTestDB(t)
	summary, err := Copy(ctx, dstDB, srcKV, false)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	if summary.Keys != 3 || summary.Profiles != 1 || summary.Assessments != 2 || summary.Skipped != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	dst := NewProfileStore(dstDB, nil)
	got, err := dst.Profile(ctx)
	if err != nil || got == nil {
		t.Fatalf("Profile after copy: %v, %v", got, err)
	}
	if got.Age != 70 {
		t.Errorf("Expected latest profile, got age %d", got.Age)
	}
	history, _ := dst.Assessments(ctx, 0)
	if len(history) != 2 {
		t.Errorf("Expected 2 assessments, got %d", len(history))
	}
	if _, err := dstDB.Get(ctx, "unrelated"); err == nil {
		t.Error("Unrelated keys must not be copied")
	}
}

func TestCopyDryRun(t *testing.T) {
	ctx := context.Background()
	srcKV := NewMemoryKV()
	if _, err := NewProfileStore(srcKV, nil).SaveProfile(ctx, models.DefaultProfile()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	dstKV := NewMemoryKV()
	summary, err := Copy(ctx, dstKV, srcKV, true)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if summary.Keys != 2 {
		t.Errorf("Expected 2 keys reported, got %d", summary.Keys)
	}

	keys, _ := dstKV.Keys(ctx, "")
	if len(keys) != 0 {
		t.Errorf("Dry run wrote %d keys", len(keys))
	}
}

func TestCopySQLiteToBadger(t *testing.T) {
	ctx := context.Background()
	srcDB := setupTestDB(t)
	if _, err := NewProfileStore(srcDB, nil).SaveProfile(ctx, models.DefaultProfile()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	dst, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	defer dst.Close()

	if _, err := Copy(ctx, dst, srcDB, false); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	got, err := NewProfileStore(dst, nil).Profile(ctx)
	if err != nil || got == nil {
		t.Fatalf("Profile after copy: %v, %v", got, err)
	}
}

func TestCopyEmptySource(t *testing.T) {
	summary, err := Copy(context.Background(), NewMemoryKV(), NewMemoryKV(), false)
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if summary.Keys != 0 {
		t.Errorf("Expected 0 keys, got %d", summary.Keys)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	emptyDir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(emptyDir)
	if err != nil {
		t.Fatalf("IsDirNonEmpty failed: %v", err)
	}
	if nonEmpty {
		t.Error("Expected empty directory to return false")
	}

	if err := os.WriteFile(filepath.Join(emptyDir, "test.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	nonEmpty, err = IsDirNonEmpty(emptyDir)
	if err != nil {
		t.Fatalf("IsDirNonEmpty failed: %v", err)
	}
	if !nonEmpty {
		t.Error("Expected non-empty directory to return true")
	}

	nonEmpty, err = IsDirNonEmpty("/nonexistent/path")
	if err != nil {
		t.Fatalf("IsDirNonEmpty for nonexistent should not error: %v", err)
	}
	if nonEmpty {
		t.Error("Expected non-existent directory to return false")
	}
}
