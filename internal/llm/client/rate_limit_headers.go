package llmclient

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RateLimitHeaders represents normalized provider rate-limit signals.
type RateLimitHeaders struct {
	RetryAfterSeconds int

	LimitRequests     int
	LimitTokens       int
	RemainingRequests int
	RemainingTokens   int

	ResetRequests time.Duration
	ResetTokens   time.Duration
}

type RateLimitHeaderHandler func(headers RateLimitHeaders)

// parseRateLimitHeaders reads the x-ratelimit-* family used by OpenAI-compatible
// providers. OpenRouter sends the reset as epoch milliseconds; Groq sends a
// Go-style duration. Both are accepted.
func parseRateLimitHeaders(h http.Header) (RateLimitHeaders, bool) {
	out := RateLimitHeaders{}
	found := false

	readInt := func(key string) (int, bool) {
		v := strings.TrimSpace(h.Get(key))
		if v == "" {
			return 0, false
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	readReset := func(key string) (time.Duration, bool) {
		v := strings.TrimSpace(h.Get(key))
		if v == "" {
			return 0, false
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d, true
		}
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		d := time.Until(time.UnixMilli(ms))
		if d < 0 {
			d = 0
		}
		return d, true
	}

	if v, ok := readInt("retry-after"); ok {
		out.RetryAfterSeconds = v
		found = true
	}
	if v, ok := readInt("x-ratelimit-limit-requests"); ok {
		out.LimitRequests = v
		found = true
	} else if v, ok := readInt("x-ratelimit-limit"); ok {
		out.LimitRequests = v
		found = true
	}
	if v, ok := readInt("x-ratelimit-limit-tokens"); ok {
		out.LimitTokens = v
		found = true
	}
	if v, ok := readInt("x-ratelimit-remaining-requests"); ok {
		out.RemainingRequests = v
		found = true
	} else if v, ok := readInt("x-ratelimit-remaining"); ok {
		out.RemainingRequests = v
		found = true
	}
	if v, ok := readInt("x-ratelimit-remaining-tokens"); ok {
		out.RemainingTokens = v
		found = true
	}
	if v, ok := readReset("x-ratelimit-reset-requests"); ok {
		out.ResetRequests = v
		found = true
	} else if v, ok := readReset("x-ratelimit-reset"); ok {
		out.ResetRequests = v
		found = true
	}
	if v, ok := readReset("x-ratelimit-reset-tokens"); ok {
		out.ResetTokens = v
		found = true
	}

	return out, found
}
