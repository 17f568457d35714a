package triage

import (
	"context"
	"log"
	"strings"
	"time"

	llmclient "zonetriage/internal/llm/client"
)

// DefaultBudget is the maximum number of zones shown to the remote model per call.
const DefaultBudget = 150

// Remote classifies zones with an external model. A Remote with a nil Client
// (no credential configured) is always Unavailable and never touches the network.
type Remote struct {
	Client  llmclient.LLMClient
	Budget  int
	Timeout time.Duration
	Logger  *log.Logger
}

// Batch returns the zones that will be submitted: the first Budget entries.
func (r *Remote) Batch(zones []string) []string {
	n := r.Budget
	if n <= 0 {
		n = DefaultBudget
	}
	if len(zones) > n {
		return zones[:n]
	}
	return zones
}

func (r *Remote) Classify(ctx context.Context, zones []string, intent string) Verdict {
	if r == nil || r.Client == nil {
		return unavailable("remote")
	}
	source := r.Client.Name()
	batch := r.Batch(zones)
	if strings.TrimSpace(intent) == "" {
		intent = DefaultIntent
	}
	prompt := BuildPrompt(intent, batch)
	if capacity := r.Client.TokenCapacity(); capacity > 0 {
		if est := r.Client.CountTokens(prompt); est > capacity {
			r.logf("remote batch estimated at %d tokens exceeds %s capacity %d", est, source, capacity)
		}
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	resp, err := r.Client.Complete(ctx, SystemInstruction, prompt)
	if err != nil || strings.TrimSpace(resp) == "" {
		if err != nil {
			r.logf("remote classifier %s unavailable: %v", source, err)
		}
		return unavailable(source)
	}
	return Verdict{Outcome: Matched, Zones: ParseResponse(resp, batch), Source: source}
}

// Close releases the underlying client.
func (r *Remote) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

func (r *Remote) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}
