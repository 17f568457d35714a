package zone

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterDropsShareTrees(t *testing.T) {
	paths := []string{"/home/u/Desktop/a.sh", "/tmp/x", "/usr/share/doc/readme"}
	assert.Equal(t, []string{"/home/u/Desktop", "/tmp"}, Cluster(paths, DefaultExclusions))
}

func TestClusterDistinctSortedAndFiltered(t *testing.T) {
	paths := []string{
		"/var/lib/dpkg/status",
		"/opt/b/2",
		"/opt/a/1",
		"/opt/b/3",
		"/proc/1/status",
		"/snap/core/x",
		"/opt/a/4",
		"/sys/kernel/y",
	}
	zones := Cluster(paths, DefaultExclusions)
	assert.Equal(t, []string{"/opt/a", "/opt/b"}, zones)

	seen := map[string]bool{}
	for _, z := range zones {
		assert.False(t, seen[z], "duplicate zone %s", z)
		seen[z] = true
		for _, x := range DefaultExclusions {
			assert.NotContains(t, z, x)
		}
	}
}

func TestClusterEmpty(t *testing.T) {
	assert.Empty(t, Cluster(nil, DefaultExclusions))
}

func TestUnderRespectsBoundaries(t *testing.T) {
	assert.True(t, Under("/tmp/x", "/tmp"))
	assert.True(t, Under("/tmp/a/b/x", "/tmp"))
	assert.False(t, Under("/tmpfoo/x", "/tmp"))
	assert.False(t, Under("/tmp", "/tmp"))
	assert.True(t, Under("/etc", "/"))
}

func TestExpandOrderAndOverlap(t *testing.T) {
	paths := []string{"/tmp/a/1", "/tmp/2", "/home/u/Downloads/3", "/tmp/a/4", "/tmpx/5"}
	got, err := Expand(context.Background(), paths, []string{"/tmp", "/tmp/a", "/nowhere"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"/tmp/a/1", "/tmp/2", "/tmp/a/4", "/tmp/a/1", "/tmp/a/4"}, got)
}

func TestExpandParallelMatchesSequential(t *testing.T) {
	var paths, zones []string
	for i := 0; i < 40; i++ {
		z := fmt.Sprintf("/data/z%02d", i)
		zones = append(zones, z)
		for j := 0; j < i%5; j++ {
			paths = append(paths, fmt.Sprintf("%s/f%d", z, j))
		}
	}
	zones = append(zones, "/data")

	seq, err := Expand(context.Background(), paths, zones, 1)
	require.NoError(t, err)
	par, err := Expand(context.Background(), paths, zones, 8)
	require.NoError(t, err)
	assert.Equal(t, seq, par)

	want := 0
	for _, z := range zones {
		for _, p := range paths {
			if Under(p, z) {
				want++
			}
		}
	}
	assert.Len(t, par, want)
}

func TestExpandCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Expand(ctx, []string{"/tmp/x"}, []string{"/tmp"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcluded(t *testing.T) {
	assert.True(t, Excluded("/usr/share/doc", DefaultExclusions))
	assert.False(t, Excluded("/usr/local/bin", DefaultExclusions))
	assert.False(t, Excluded("/anything", []string{""}))
}

func TestGroupsIndexedByZone(t *testing.T) {
	paths := []string{"/tmp/1", "/home/u/Desktop/2", "/tmp/3"}
	got, err := Groups(context.Background(), paths, []string{"/home/u/Desktop", "/var", "/tmp"}, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"/home/u/Desktop/2"}, got[0])
	assert.Empty(t, got[1])
	assert.Equal(t, []string{"/tmp/1", "/tmp/3"}, got[2])
}
