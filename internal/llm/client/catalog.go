package llmclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Provider describes how to reach one remote classifier backend.
type Provider struct {
	Name         string
	BaseURL      string
	DefaultModel string
	// CredentialEnv names the variable the key is conventionally read from.
	CredentialEnv string
	TokenCap      int
	Headers       map[string]string
}

var catalog = map[string]Provider{
	"openrouter": {
		Name:          "openrouter",
		BaseURL:       "https://openrouter.ai/api/v1/chat/completions",
		DefaultModel:  "google/gemini-2.0-flash-exp:free",
		CredentialEnv: "OPENROUTER_KEY",
		TokenCap:      32000,
		Headers:       map[string]string{"X-Title": "zonetriage"},
	},
	"groq": {
		Name:          "groq",
		BaseURL:       "https://api.groq.com/openai/v1/chat/completions",
		DefaultModel:  "llama-3.1-8b-instant",
		CredentialEnv: "GROQ_API_KEY",
		TokenCap:      6000,
	},
	"gemini": {
		Name:          "gemini",
		DefaultModel:  "gemini-2.5-flash",
		CredentialEnv: "GEMINI_API_KEY",
		TokenCap:      12000,
	},
}

// Lookup returns the catalog entry for provider (case-insensitive).
func Lookup(provider string) (Provider, bool) {
	p, ok := catalog[strings.ToLower(strings.TrimSpace(provider))]
	return p, ok
}

// Config selects and configures a client. Empty Model/BaseURL use catalog defaults.
type Config struct {
	Provider   string
	Model      string
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg Config) (LLMClient, error) {
	p, ok := Lookup(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("llmclient: unknown provider %q", cfg.Provider)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = p.DefaultModel
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = p.BaseURL
	}
	if p.Name == "gemini" {
		return NewGeminiClient(ctx, cfg.APIKey, model, baseURL, p.TokenCap, cfg.HTTPClient)
	}
	return NewChatClient(ChatOptions{
		Provider:   p.Name,
		APIKey:     cfg.APIKey,
		Model:      model,
		BaseURL:    baseURL,
		TokenCap:   p.TokenCap,
		Headers:    p.Headers,
		HTTPClient: cfg.HTTPClient,
	})
}
