// Package triage decides which zones are worth deep inspection.
//
// A Remote classifier proposes suspicious zones from an external model; its
// answer is only accepted for verbatim members of the submitted batch. When
// the remote path is unavailable for any reason a deterministic Heuristic
// takes over. Cascade wires the two together.
package triage

import "context"

// Outcome tags a classifier result.
type Outcome int

const (
	// Matched means Zones holds the classifier's decision (possibly empty).
	Matched Outcome = iota
	// Unavailable means the classifier could not decide; callers fall back.
	Unavailable
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Verdict is the result of one classification.
type Verdict struct {
	Outcome Outcome
	Zones   []string
	// Source names the classifier that produced the verdict.
	Source string
}

// Classifier returns the subset of zones considered suspicious for intent.
type Classifier interface {
	Classify(ctx context.Context, zones []string, intent string) Verdict
}

// DefaultIntent is the question asked about the zone batch.
const DefaultIntent = "Analyze these folders for user-writable or suspicious locations (e.g. Desktop, tmp, shm):"

func unavailable(source string) Verdict {
	return Verdict{Outcome: Unavailable, Source: source}
}
