package triage

import (
	"context"
	"errors"
	"io"
	"log"
)

// Cascade asks Primary first and consults Fallback only when Primary is
// Unavailable. Results are never merged.
type Cascade struct {
	Primary  Classifier
	Fallback Classifier
	Logger   *log.Logger
}

func (c *Cascade) Classify(ctx context.Context, zones []string, intent string) Verdict {
	if c.Primary != nil {
		v := c.Primary.Classify(ctx, zones, intent)
		if v.Outcome == Matched {
			return v
		}
	}
	if c.Logger != nil {
		c.Logger.Printf("[!] AGENT: Neural Link Unstable. Engaging Local Heuristics.")
	}
	if c.Fallback == nil {
		return unavailable("cascade")
	}
	return c.Fallback.Classify(ctx, zones, intent)
}

// Close closes whichever members hold resources.
func (c *Cascade) Close() error {
	var errs []error
	for _, m := range []Classifier{c.Primary, c.Fallback} {
		if cl, ok := m.(io.Closer); ok {
			errs = append(errs, cl.Close())
		}
	}
	return errors.Join(errs...)
}
