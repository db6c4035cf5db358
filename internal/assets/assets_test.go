package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestManagerRootPriority(t *testing.T) {
	base := t.TempDir()
	override := t.TempDir()
	writeFile(t, base, "models/rock.obj", "base")
	writeFile(t, base, "white.jpg", "white")
	writeFile(t, override, "models/rock.obj", "override")

	m := NewManager(base, override)

	data, err := m.Load("models/rock.obj")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "override" {
		t.Errorf("expected later root to win, got %q", data)
	}

	data, err = m.Load("white.jpg")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "white" {
		t.Errorf("expected fallback to first root, got %q", data)
	}
}

func TestManagerAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "abs")

	m := NewManager()
	data, err := m.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "abs" {
		t.Errorf("got %q", data)
	}
}

func TestManagerNotFound(t *testing.T) {
	m := NewManager(t.TempDir())

	_, err := m.Load("missing.png")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := m.Resolve(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for absolute path, got %v", err)
	}
}

func TestManagerCachesContents(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "first")

	m := NewManager(dir)
	if _, err := m.Load("a.txt"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := m.Load("./a.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("expected cached contents, got %q", data)
	}

	m.Close()
	data, err = m.Load("a.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected fresh contents after Close, got %q", data)
	}
}

func TestManagerRoots(t *testing.T) {
	m := NewManager("a", "b/")
	m.AddRoot("c")

	roots := m.Roots()
	want := []string{"c", "b", "a"}
	if len(roots) != len(want) {
		t.Fatalf("got %v, want %v", roots, want)
	}
	for i := range want {
		if roots[i] != want[i] {
			t.Errorf("roots[%d] = %q, want %q", i, roots[i], want[i])
		}
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache()
	c.Set("a", []byte("x"))

	if _, ok := c.Get("a"); !ok {
		t.Error("expected hit")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected miss")
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d/%d, want 1/1", hits, misses)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	c.Clear()
	hits, misses = c.Stats()
	if hits != 0 || misses != 0 || c.Len() != 0 {
		t.Error("expected empty cache after Clear")
	}
}
