package llm

import (
	"context"
	"log"
	"time"

	llmclient "zonetriage/internal/llm/client"
)

// Middleware decorates an LLMClient to inject cross-cutting concerns
// (timeouts, retries, logging).
type Middleware func(llmclient.LLMClient) llmclient.LLMClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.LLMClient, mws ...Middleware) llmclient.LLMClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		out = mws[i](out)
	}
	return out
}

// base forwards the non-call methods so each middleware only implements Complete.
type base struct{ next llmclient.LLMClient }

func (b base) Name() string                { return b.next.Name() }
func (b base) Close() error                { return b.next.Close() }
func (b base) CountTokens(text string) int { return b.next.CountTokens(text) }
func (b base) TokenCapacity() int          { return b.next.TokenCapacity() }

// -------- Timeout --------

// WithTimeout bounds every Complete call. A non-positive d disables it.
func WithTimeout(d time.Duration) Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		if d <= 0 {
			return next
		}
		return &timeouted{base: base{next}, d: d}
	}
}

type timeouted struct {
	base
	d time.Duration
}

func (t *timeouted) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.next.Complete(ctx, system, user)
}

// -------- Logging --------

// WithLogging logs request size and errors. Provide a custom logger or nil
// to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &logging{base: base{next}, log: logger}
	}
}

type logging struct {
	base
	log *log.Logger
}

func (l *logging) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	l.log.Printf("LLM request (%s): %d bytes", l.Name(), len(system)+len(user))
	out, err := l.next.Complete(ctx, system, user)
	if err != nil {
		l.log.Printf("LLM error (%s) after %s: %v", l.Name(), time.Since(start).Round(time.Millisecond), err)
		return out, err
	}
	l.log.Printf("LLM response (%s): %d bytes in %s", l.Name(), len(out), time.Since(start).Round(time.Millisecond))
	return out, nil
}
