// Package inventory loads the flat path list produced by the upstream scanner.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zonetriage/internal/safeio"
)

// ErrNoInput marks a missing or unreadable inventory source. Callers treat it
// as "nothing to do", not as a failure.
var ErrNoInput = errors.New("inventory: no input")

// Loader reads inventories through a (possibly root-confined) filesystem.
type Loader struct {
	FS *safeio.SafeFS
}

func NewLoader(fs *safeio.SafeFS) *Loader {
	if fs == nil {
		fs = safeio.Unrestricted()
	}
	return &Loader{FS: fs}
}

// Load returns the trimmed, non-empty lines of source in file order.
// Duplicates are kept.
func (l *Loader) Load(ctx context.Context, source string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty source", ErrNoInput)
	}
	b, err := l.FS.SafeReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoInput, err)
	}
	return Parse(b), nil
}

// Parse splits raw inventory bytes into paths. Blank lines are ignored and
// lines of any length are kept.
func Parse(b []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	return paths
}
