package zone

import (
	"context"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Under reports whether path lives in zone or any directory below it.
func Under(path, zone string) bool {
	dir := filepath.Dir(path)
	if dir == zone {
		return true
	}
	prefix := zone
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(dir, prefix)
}

// Members returns the paths under zone, in inventory order.
func Members(paths []string, zone string) []string {
	var out []string
	for _, p := range paths {
		if Under(p, zone) {
			out = append(out, p)
		}
	}
	return out
}

// Expand appends, for each zone in order, every path under it. A path under
// two overlapping zones appears once per zone.
func Expand(ctx context.Context, paths, zones []string, workers int) ([]string, error) {
	groups, err := Groups(ctx, paths, zones, workers)
	if err != nil {
		return nil, err
	}
	return flatten(groups), nil
}

// Groups returns the members of each zone, indexed like zones. With
// workers > 1 the zones are scanned concurrently; each worker fills its own
// slot so the result matches the sequential order exactly.
func Groups(ctx context.Context, paths, zones []string, workers int) ([][]string, error) {
	slots := make([][]string, len(zones))
	if workers <= 1 || len(zones) <= 1 {
		for i, z := range zones {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			slots[i] = Members(paths, z)
		}
		return slots, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, z := range zones {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = Members(paths, z)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slots, nil
}

func flatten(slots [][]string) []string {
	n := 0
	for _, s := range slots {
		n += len(s)
	}
	out := make([]string, 0, n)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out
}
