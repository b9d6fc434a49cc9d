package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, doc string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lighthouse.yaml")
	writeFile(t, path, "camera:\n  fov: 45\n")

	changes := make(chan Config, 4)
	w, err := Watch(path, func(cfg Config) { changes <- cfg }, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	// Invalid content is skipped and never delivered.
	writeFile(t, path, "camera:\n  fov: 500\n")
	select {
	case cfg := <-changes:
		t.Fatalf("invalid config delivered: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}

	writeFile(t, path, "camera:\n  fov: 70\n")
	select {
	case cfg := <-changes:
		if cfg.Camera.Fov != 70 {
			t.Errorf("reloaded fov = %g, want 70", cfg.Camera.Fov)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lighthouse.yaml")
	writeFile(t, path, "")

	changes := make(chan Config, 1)
	w, err := Watch(path, func(cfg Config) { changes <- cfg }, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.yaml"), "window:\n  width: 10\n")
	select {
	case <-changes:
		t.Fatal("sibling file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lighthouse.yaml")
	writeFile(t, path, "")
	w, err := Watch(path, func(Config) {})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	if _, err := Watch(filepath.Join(t.TempDir(), "nope", "x.yaml"), func(Config) {}); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
