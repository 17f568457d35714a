package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ChatClient calls an OpenAI-compatible Chat Completions endpoint
// (OpenRouter, Groq) and returns the first choice's message content.
type ChatClient struct {
	http     *http.Client
	provider string
	apiKey   string
	model    string
	baseURL  string
	tokenCap int
	headers  map[string]string

	rlMu      sync.RWMutex
	rlHandler RateLimitHeaderHandler
}

type ChatOptions struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	TokenCap int
	// Headers are extra request headers (e.g. OpenRouter's HTTP-Referer / X-Title).
	Headers map[string]string
	// HTTPClient overrides the default client; the caller owns its timeout.
	HTTPClient *http.Client
}

func NewChatClient(opts ChatOptions) (*ChatClient, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("llmclient: base url is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("llmclient: model is required")
	}
	if opts.TokenCap <= 0 {
		opts.TokenCap = 6000
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	provider := opts.Provider
	if provider == "" {
		provider = "chat"
	}
	return &ChatClient{
		http:     hc,
		provider: provider,
		apiKey:   opts.APIKey,
		model:    opts.Model,
		baseURL:  opts.BaseURL,
		tokenCap: opts.TokenCap,
		headers:  opts.Headers,
	}, nil
}

func (c *ChatClient) Name() string { return c.provider + ":" + c.model }
func (c *ChatClient) Close() error { return nil }
func (c *ChatClient) CountTokens(text string) int {
	return CountTokens(text)
}
func (c *ChatClient) TokenCapacity() int { return c.tokenCap }

func (c *ChatClient) SetRateLimitHeaderHandler(handler RateLimitHeaderHandler) {
	c.rlMu.Lock()
	defer c.rlMu.Unlock()
	c.rlHandler = handler
}

type chatReq struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ChatClient) Complete(ctx context.Context, system, user string) (string, error) {
	b, err := json.Marshal(chatReq{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	limits, hasLimits := c.captureRateLimitHeaders(resp.Header)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		err := fmt.Errorf("%s: unexpected status %s: %s", c.provider, resp.Status, string(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
			if hasLimits && limits.RetryAfterSeconds > 0 {
				return "", &RetryAfterError{Err: err, After: time.Duration(limits.RetryAfterSeconds) * time.Second}
			}
		}
		if resp.StatusCode == http.StatusBadRequest && strings.Contains(string(body), "context_length_exceeded") {
			return "", NewPermanentError(err)
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", NewPermanentError(err)
		}
		return "", err
	}
	var out chatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

func (c *ChatClient) captureRateLimitHeaders(h http.Header) (RateLimitHeaders, bool) {
	parsed, ok := parseRateLimitHeaders(h)
	if !ok {
		return parsed, false
	}
	c.rlMu.RLock()
	handler := c.rlHandler
	c.rlMu.RUnlock()
	if handler != nil {
		handler(parsed)
	}
	return parsed, true
}
