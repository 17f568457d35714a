package llmclient

import (
	"context"
	"net/http"
	"strings"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
// Cross-cutting concerns (timeouts, retries, logging) are applied via middleware.
type GeminiClient struct {
	cli      *genai.Client
	model    string
	tokenCap int
}

func NewGeminiClient(ctx context.Context, apiKey, model, baseURL string, tokenCap int, hc *http.Client) (*GeminiClient, error) {
	cfg := &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI, HTTPClient: hc}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if tokenCap <= 0 {
		tokenCap = 12000
	}
	return &GeminiClient{cli: cli, model: model, tokenCap: tokenCap}, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }
func (g *GeminiClient) CountTokens(text string) int {
	return CountTokens(text)
}
func (g *GeminiClient) TokenCapacity() int { return g.tokenCap }

func (g *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: genai.RoleUser, Parts: []*genai.Part{{Text: user}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
			Temperature:       genai.Ptr[float32](0),
			ResponseMIMEType:  "text/plain",
		},
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil {
			continue
		}
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
