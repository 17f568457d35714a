// Package handoff persists the candidate target list for the deep-analysis stage.
package handoff

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"zonetriage/internal/safeio"
)

// ErrWrite marks a failed handoff. No partial output is left behind.
var ErrWrite = errors.New("handoff: write failed")

// Sink receives the encoded candidate list.
type Sink interface {
	Write(ctx context.Context, targets []string) error
}

// Encode renders targets one per line, each newline-terminated.
func Encode(targets []string) []byte {
	var buf bytes.Buffer
	for _, t := range targets {
		buf.WriteString(t)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// FileSink writes the list to Path, replacing prior content atomically.
type FileSink struct {
	FS   *safeio.SafeFS
	Path string
}

func NewFileSink(fs *safeio.SafeFS, path string) *FileSink {
	if fs == nil {
		fs = safeio.Unrestricted()
	}
	return &FileSink{FS: fs, Path: path}
}

func (s *FileSink) Write(ctx context.Context, targets []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := s.FS.WriteFileAtomic(s.Path, Encode(targets), 0o644); err != nil {
		// A stale list from an earlier run would be mistaken for this run's output.
		_ = s.FS.Remove(s.Path)
		return fmt.Errorf("%w: %s: %v", ErrWrite, s.Path, err)
	}
	return nil
}
