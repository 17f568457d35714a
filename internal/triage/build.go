package triage

import (
	"context"
	"log"
	"net/http"
	"time"

	"zonetriage/internal/config"
	"zonetriage/internal/llm"
	llmclient "zonetriage/internal/llm/client"
)

// NewRemote builds the remote classifier from rc. Without a usable
// credential the returned Remote has no client and always reports
// Unavailable, so no request is ever attempted.
func NewRemote(ctx context.Context, rc config.RemoteConfig, httpClient *http.Client, logger *log.Logger) (*Remote, error) {
	r := &Remote{Budget: rc.Budget, Logger: logger}
	if !rc.Enabled() {
		return r, nil
	}
	cli, err := llmclient.New(ctx, llmclient.Config{
		Provider:   rc.Provider,
		Model:      rc.Model,
		BaseURL:    rc.Endpoint,
		APIKey:     rc.Credential,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, err
	}
	if rl, ok := cli.(rateLimitReporter); ok {
		quotaLog := logger
		if quotaLog == nil {
			quotaLog = log.Default()
		}
		name := cli.Name()
		rl.SetRateLimitHeaderHandler(func(h llmclient.RateLimitHeaders) {
			quotaLog.Printf("LLM quota (%s): %d requests remaining, reset in %s", name, h.RemainingRequests, h.ResetRequests)
		})
	}
	attempts := 1 + rc.Retries
	if attempts < 1 {
		attempts = 1
	}
	r.Client = llm.Wrap(cli,
		llm.WithLogging(logger),
		llm.Retry(attempts, 500*time.Millisecond),
		llm.WithTimeout(rc.Timeout),
	)
	// Overall bound across attempts, including backoff.
	if rc.Timeout > 0 {
		r.Timeout = time.Duration(attempts)*rc.Timeout + time.Duration(attempts)*time.Second
	}
	return r, nil
}

type rateLimitReporter interface {
	SetRateLimitHeaderHandler(llmclient.RateLimitHeaderHandler)
}

// NewDefault returns the standard cascade: remote first, heuristic fallback.
func NewDefault(ctx context.Context, rc config.RemoteConfig, httpClient *http.Client, logger *log.Logger) (*Cascade, error) {
	remote, err := NewRemote(ctx, rc, httpClient, logger)
	if err != nil {
		return nil, err
	}
	return &Cascade{Primary: remote, Fallback: NewHeuristic(), Logger: logger}, nil
}
