package inventory

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zonetriage/internal/safeio"
	"zonetriage/internal/tester"
)

func writeList(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "scan_list.txt")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadTrimsAndSkipsBlankLines(t *testing.T) {
	p := writeList(t, t.TempDir(), "  /tmp/a  \n\n/home/u/Desktop/b.sh\r\n\t\n/tmp/a\n")
	got, err := NewLoader(nil).Load(context.Background(), p)
	tester.NoErr(t, err)
	tester.Eq(t, got, []string{"/tmp/a", "/home/u/Desktop/b.sh", "/tmp/a"}, "duplicates kept, order preserved")
}

func TestLoadMissingSourceIsNoInput(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	tester.ErrIs(t, err, ErrNoInput)
}

func TestLoadDirectoryIsNoInput(t *testing.T) {
	_, err := NewLoader(nil).Load(context.Background(), t.TempDir())
	tester.ErrIs(t, err, ErrNoInput)
}

func TestLoadOutsideRootIsNoInput(t *testing.T) {
	p := writeList(t, t.TempDir(), "/tmp/a\n")
	fs, err := safeio.NewSafeFS(t.TempDir())
	tester.NoErr(t, err)
	_, err = NewLoader(fs).Load(context.Background(), p)
	tester.ErrIs(t, err, ErrNoInput)
}

func TestLoadEmptyFile(t *testing.T) {
	p := writeList(t, t.TempDir(), "\n\n")
	got, err := NewLoader(nil).Load(context.Background(), p)
	tester.NoErr(t, err)
	tester.Eq(t, len(got), 0)
}

func TestParseKeepsLinesAfterOverlongPath(t *testing.T) {
	long := "/" + strings.Repeat("x", 2<<20)
	got := Parse([]byte("/tmp/a\n" + long + "\n/tmp/b\n/home/u/Desktop/c\n"))
	tester.Eq(t, len(got), 4, "every line must survive a path longer than any scanner buffer")
	tester.Eq(t, got[0], "/tmp/a")
	tester.True(t, got[1] == long, "long path must be kept intact")
	tester.Eq(t, got[2:], []string{"/tmp/b", "/home/u/Desktop/c"})
}

func TestLoadOverlongLineReturnsWholeInventory(t *testing.T) {
	long := "/srv/" + strings.Repeat("y", 2<<20)
	p := writeList(t, t.TempDir(), long+"\n/tmp/z\n")
	got, err := NewLoader(nil).Load(context.Background(), p)
	tester.NoErr(t, err)
	tester.Eq(t, len(got), 2)
	tester.Eq(t, got[1], "/tmp/z")
}
