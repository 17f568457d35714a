package llmclient

import (
	"context"
	"errors"
	"time"
)

// LLMClient is a single request/response text completion endpoint.
type LLMClient interface {
	Name() string
	Close() error
	CountTokens(text string) int
	TokenCapacity() int
	// Complete sends a system instruction and a user payload and returns the
	// model's free-text answer.
	Complete(ctx context.Context, system, user string) (string, error)
}

var ErrEmptyResponse = errors.New("llmclient: empty response from model")

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// RetryAfterError carries the wait a provider asked for before the next attempt.
type RetryAfterError struct {
	Err   error
	After time.Duration
}

func (e *RetryAfterError) Error() string { return e.Err.Error() }
func (e *RetryAfterError) Unwrap() error { return e.Err }
