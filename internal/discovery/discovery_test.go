package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("# tf\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_DoublestarPattern(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.tf"))
	write(t, filepath.Join(dir, "modules", "vpc", "vpc.tf"))
	write(t, filepath.Join(dir, "modules", "vpc", "README.md"))

	files, err := Discover(Options{Patterns: []string{"**/*.tf"}, BaseDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestDiscover_SkipsTerraformCache(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.tf"))
	write(t, filepath.Join(dir, ".terraform", "modules", "dep.tf"))

	files, err := Discover(Options{Patterns: []string{"**/*.tf"}, BaseDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d: %v", len(files), files)
	}
}

func TestDiscover_NoPatterns(t *testing.T) {
	files, err := Discover(Options{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if files != nil {
		t.Errorf("expected nil, got %v", files)
	}
}

func TestDiscover_InvalidPatternSkipped(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "main.tf"))

	files, err := Discover(Options{Patterns: []string{"[", "*.tf"}, BaseDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
}
