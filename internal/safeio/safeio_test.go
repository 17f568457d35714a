package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeFSAllowsAbsoluteUnderRoot(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(p, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs, err := NewSafeFS(dir)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if _, err := fs.SafeReadFile(p); err != nil {
		t.Fatalf("SafeReadFile absolute: %v", err)
	}
	if _, err := fs.SafeReadFile("a.txt"); err != nil {
		t.Fatalf("SafeReadFile relative: %v", err)
	}
}

func TestSafeFSRejectsOutsideRoot(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	p := filepath.Join(other, "b.txt")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs, err := NewSafeFS(root)
	if err != nil {
		t.Fatalf("NewSafeFS: %v", err)
	}
	if _, err := fs.SafeReadFile(p); !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
	if _, err := fs.SafeReadFile("../x"); err == nil {
		t.Fatalf("expected traversal error")
	}
	if err := fs.WriteFileAtomic(filepath.Join(other, "c.txt"), []byte("x"), 0o644); !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot on write, got %v", err)
	}
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	fs := Unrestricted()
	p := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(p, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := fs.WriteFileAtomic(p, []byte("new\n"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "new\n" {
		t.Fatalf("content=%q", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %v", entries)
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	fs := Unrestricted()
	p := filepath.Join(t.TempDir(), "missing", "out.txt")
	if err := fs.WriteFileAtomic(p, []byte("x"), 0o644); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Fatalf("output should not exist: %v", err)
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	fs := Unrestricted()
	if err := fs.Remove(filepath.Join(t.TempDir(), "nope.txt")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}
