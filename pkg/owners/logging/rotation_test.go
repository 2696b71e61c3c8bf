package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewRotatingWriter(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "app.log")
	w, err := NewRotatingWriter(path, RotationConfig{})
	if err != nil {
		t.Fatalf("NewRotatingWriter() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	if w.cfg.MaxSize != DefaultRotationConfig().MaxSize {
		t.Errorf("MaxSize = %d, want default", w.cfg.MaxSize)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestRotatingWriterAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("existing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotatingWriter(path, RotationConfig{MaxSize: 1024})
	if err != nil {
		t.Fatal(err)
	}
	if w.size != int64(len("existing\n")) {
		t.Errorf("size = %d, want existing file size", w.size)
	}

	if _, err := w.Write([]byte("appended\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "existing\nappended\n" {
		t.Errorf("content = %q", content)
	}
}

func TestRotatingWriterRotatesOnSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	w, err := NewRotatingWriter(path, RotationConfig{MaxSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	for i := 0; i < 3; i++ {
		if _, err := w.Write([]byte("0123456789abcde\n")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	rotated := w.rotatedFiles()
	if len(rotated) != 2 {
		t.Fatalf("got %d rotated files, want 2", len(rotated))
	}
	for _, f := range rotated {
		if !strings.HasPrefix(filepath.Base(f.path), "app.") || filepath.Ext(f.path) != ".log" {
			t.Errorf("unexpected rotated name %q", f.path)
		}
	}

	content, _ := os.ReadFile(path)
	if string(content) != "0123456789abcde\n" {
		t.Errorf("current file = %q", content)
	}
}

func TestRotatingWriterOversizedFirstWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewRotatingWriter(path, RotationConfig{MaxSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	// An empty file is never rotated, even when one write exceeds MaxSize.
	if _, err := w.Write([]byte("much longer than four bytes\n")); err != nil {
		t.Fatal(err)
	}
	if n := len(w.rotatedFiles()); n != 0 {
		t.Errorf("got %d rotated files, want 0", n)
	}
}

func TestRotatingWriterDaily(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewRotatingWriter(path, RotationConfig{MaxSize: 1 << 20, Daily: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	if _, err := w.Write([]byte("today\n")); err != nil {
		t.Fatal(err)
	}

	tomorrow := time.Now().Add(25 * time.Hour)
	w.now = func() time.Time { return tomorrow }

	if _, err := w.Write([]byte("tomorrow\n")); err != nil {
		t.Fatal(err)
	}

	rotated := w.rotatedFiles()
	if len(rotated) != 1 {
		t.Fatalf("got %d rotated files, want 1", len(rotated))
	}
	if !strings.Contains(rotated[0].path, tomorrow.Format("2006-01-02")) {
		t.Errorf("rotated name %q missing date", rotated[0].path)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "tomorrow\n" {
		t.Errorf("current file = %q", content)
	}
}

func TestRotatingWriterMaxBackups(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	w, err := NewRotatingWriter(path, RotationConfig{MaxSize: 8, MaxBackups: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	for i := 0; i < 6; i++ {
		if _, err := w.Write([]byte("12345678")); err != nil {
			t.Fatal(err)
		}
	}

	if n := len(w.rotatedFiles()); n != 2 {
		t.Errorf("got %d rotated files, want 2", n)
	}
}

func TestRotatingWriterMaxAge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	stale := filepath.Join(dir, "app.2020-01-01-000000.log")
	fresh := filepath.Join(dir, "app.2099-01-01-000000.log")
	unrelated := filepath.Join(dir, "other.2020-01-01-000000.log")
	for _, p := range []string{stale, fresh, unrelated} {
		if err := os.WriteFile(p, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-90 * 24 * time.Hour)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(unrelated, old, old); err != nil {
		t.Fatal(err)
	}

	w, err := NewRotatingWriter(path, RotationConfig{MaxAge: 30})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	if fileExists(stale) {
		t.Error("stale rotated file not removed")
	}
	if !fileExists(fresh) {
		t.Error("fresh rotated file removed")
	}
	if !fileExists(unrelated) {
		t.Error("unrelated file removed")
	}
}

func TestRotatedNameCollision(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.log")
	w := &RotatingWriter{path: path}
	at := time.Date(2024, 1, 20, 15, 4, 5, 0, time.UTC)

	first := w.rotatedName(at)
	if filepath.Base(first) != "app.2024-01-20-150405.log" {
		t.Fatalf("rotatedName() = %q", first)
	}
	if err := os.WriteFile(first, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	second := w.rotatedName(at)
	if filepath.Base(second) != "app.2024-01-20-150405-1.log" {
		t.Errorf("rotatedName() after collision = %q", second)
	}
}

func TestRotatingWriterClose(t *testing.T) {
	t.Parallel()

	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), "app.log"), RotationConfig{})
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := w.Write([]byte("late")); err != os.ErrClosed {
		t.Errorf("Write() after Close error = %v, want os.ErrClosed", err)
	}
}
