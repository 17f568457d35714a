package safeio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var ErrOutsideRoot = errors.New("safeio: resolved outside root")

// SafeFS resolves paths relative to a fixed root. The zero value (see
// Unrestricted) accepts any path and resolves relatives against the working
// directory.
type SafeFS struct {
	absRoot string // absolute root with symlinks resolved; empty = unrestricted
}

// NewSafeFS locks all future operations to the given root directory.
// The root path is resolved to an absolute, symlink-free directory.
func NewSafeFS(root string) (*SafeFS, error) {
	if root == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("safeio: root is not a directory")
	}
	return &SafeFS{absRoot: abs}, nil
}

// Unrestricted returns a SafeFS that performs no root confinement.
func Unrestricted() *SafeFS { return &SafeFS{} }

// Root returns the absolute root directory bound to this SafeFS.
func (s *SafeFS) Root() string {
	if s == nil {
		return ""
	}
	return s.absRoot
}

// SafeReadFile reads a regular file under the root.
func (s *SafeFS) SafeReadFile(userPath string) ([]byte, error) {
	p, err := s.resolve(userPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("safeio: path is a directory")
	}
	return os.ReadFile(p)
}

// SafeStat returns metadata for a file or directory under the root.
func (s *SafeFS) SafeStat(userPath string) (fs.FileInfo, error) {
	p, err := s.resolve(userPath)
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

// WriteFileAtomic writes data to a temp file next to userPath and renames it
// into place, so readers see either the old content or the new content.
// The target's parent directory must already exist.
func (s *SafeFS) WriteFileAtomic(userPath string, data []byte, perm fs.FileMode) error {
	target, err := s.resolveTarget(userPath)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return err
	}
	return nil
}

// Remove deletes the file at userPath. A missing file is not an error.
func (s *SafeFS) Remove(userPath string) error {
	target, err := s.resolveTarget(userPath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *SafeFS) resolve(userPath string) (string, error) {
	joined, err := s.join(userPath)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", err
	}
	if !hasPathPrefix(resolved, s.absRoot) {
		return "", fmt.Errorf("%w (root=%s, path=%s)", ErrOutsideRoot, s.absRoot, resolved)
	}
	return resolved, nil
}

// resolveTarget is resolve for paths that may not exist yet: the parent
// directory is resolved, the final element is kept verbatim.
func (s *SafeFS) resolveTarget(userPath string) (string, error) {
	joined, err := s.join(userPath)
	if err != nil {
		return "", err
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(joined))
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, filepath.Base(joined))
	if !hasPathPrefix(target, s.absRoot) {
		return "", fmt.Errorf("%w (root=%s, path=%s)", ErrOutsideRoot, s.absRoot, target)
	}
	return target, nil
}

func (s *SafeFS) join(userPath string) (string, error) {
	if s == nil {
		return "", errors.New("safeio: filesystem not configured")
	}
	if userPath == "" {
		return "", errors.New("safeio: empty path")
	}
	clean := filepath.Clean(userPath)
	isAbs := filepath.IsAbs(clean) || (runtime.GOOS == "windows" && filepath.VolumeName(clean) != "")
	if isAbs {
		return clean, nil
	}
	if s.absRoot == "" {
		return filepath.Abs(clean)
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("safeio: path traversal not allowed")
	}
	return filepath.Join(s.absRoot, clean), nil
}

func hasPathPrefix(path, root string) bool {
	path = filepath.Clean(path)
	if len(root) == 0 {
		return true
	}
	root = filepath.Clean(root)
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		root = strings.ToLower(root)
	}
	if path == root {
		return true
	}
	sep := string(os.PathSeparator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	if !strings.HasSuffix(path, sep) {
		path += sep
	}
	return strings.HasPrefix(path, root)
}
