// Package zone groups inventory paths into directory zones and expands
// selected zones back into paths.
package zone

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExclusions are virtual mounts and package/share trees that are
// never worth classifier context.
var DefaultExclusions = []string{"/proc", "/sys", "/snap", "/var/lib", "/usr/share"}

// Cluster returns the sorted, unique parent directories of paths, minus any
// directory containing one of the exclusion substrings.
func Cluster(paths []string, exclusions []string) []string {
	seen := make(map[string]struct{}, len(paths))
	zones := make([]string, 0, len(paths))
	for _, p := range paths {
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		if Excluded(dir, exclusions) {
			continue
		}
		zones = append(zones, dir)
	}
	sort.Strings(zones)
	return zones
}

// Excluded reports whether zone contains any exclusion substring.
func Excluded(zone string, exclusions []string) bool {
	for _, x := range exclusions {
		if x != "" && strings.Contains(zone, x) {
			return true
		}
	}
	return false
}
