package llm

import (
	"context"
	"errors"
	"time"

	llmclient "zonetriage/internal/llm/client"
)

// Retry retries Complete up to maxAttempts with exponential backoff
// starting at baseDelay. A RetryAfterError stretches the wait to what the
// provider asked for. If context is canceled, it stops immediately.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &retrying{base: base{next}, max: maxAttempts, delay: baseDelay}
	}
}

type retrying struct {
	base
	max   int
	delay time.Duration
}

func (r *retrying) Complete(ctx context.Context, system, user string) (string, error) {
	var last error
	for i := 0; i < r.max; i++ {
		out, err := r.next.Complete(ctx, system, user)
		if err == nil {
			return out, nil
		}
		// If it's a permanent error, do not retry.
		var pErr *llmclient.PermanentError
		if errors.As(err, &pErr) {
			return "", err
		}
		last = err
		if i == r.max-1 {
			break
		}
		wait := r.delay * time.Duration(1<<i)
		var ra *llmclient.RetryAfterError
		if errors.As(err, &ra) && ra.After > wait {
			wait = ra.After
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	return "", last
}
