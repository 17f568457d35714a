package triage

import (
	"context"
	"strings"
)

// DefaultRiskMarkers are the substrings the local fallback treats as
// user-writable staging areas.
var DefaultRiskMarkers = []string{"Desktop", "tmp", "Downloads"}

// Heuristic flags every zone containing one of Markers (case-sensitive).
// It never returns Unavailable.
type Heuristic struct {
	Markers []string
}

func NewHeuristic() *Heuristic {
	return &Heuristic{Markers: DefaultRiskMarkers}
}

func (h *Heuristic) Classify(_ context.Context, zones []string, _ string) Verdict {
	markers := h.Markers
	if markers == nil {
		markers = DefaultRiskMarkers
	}
	out := make([]string, 0)
	for _, z := range zones {
		for _, m := range markers {
			if m != "" && strings.Contains(z, m) {
				out = append(out, z)
				break
			}
		}
	}
	return Verdict{Outcome: Matched, Zones: out, Source: "heuristic"}
}
