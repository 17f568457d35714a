package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DisabledCredential is the sentinel value that forces the local heuristic
// even when a credential variable is set.
const DisabledCredential = "test"

type Config struct {
	Input   string
	Output  string
	Root    string
	Workers int
	Remote  RemoteConfig
	Mirror  MirrorConfig
	// RunLogDSN enables the Postgres run ledger when non-empty.
	RunLogDSN string

	getenv func(string) string
}

type RemoteConfig struct {
	Provider   string
	Model      string
	Endpoint   string
	Credential string
	Budget     int
	Timeout    time.Duration
	Retries    int
}

type MirrorConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether the remote classifier may be attempted at all.
func (r RemoteConfig) Enabled() bool {
	c := strings.TrimSpace(r.Credential)
	return c != "" && c != DisabledCredential
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup, so tests need not touch
// the process environment.
func FromEnv(getenv func(string) string) *Config {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	provider := strings.ToLower(firstNonEmpty(get("TRIAGE_PROVIDER"), "openrouter"))
	return &Config{
		getenv:    get,
		Input:     firstNonEmpty(get("TRIAGE_INPUT"), "scan_list.txt"),
		Output:    firstNonEmpty(get("TRIAGE_OUTPUT"), "suspicious_targets.txt"),
		Root:      get("TRIAGE_ROOT"),
		Workers:   parseInt(get("TRIAGE_WORKERS"), 1),
		RunLogDSN: get("TRIAGE_RUNLOG_DSN"),
		Remote: RemoteConfig{
			Provider:   provider,
			Model:      get("TRIAGE_MODEL"),
			Endpoint:   get("TRIAGE_ENDPOINT"),
			Credential: credentialFor(provider, get),
			Budget:     parseInt(get("TRIAGE_BUDGET"), 150),
			Timeout:    parseDuration(get("TRIAGE_TIMEOUT"), 30*time.Second),
			Retries:    parseInt(get("TRIAGE_RETRIES"), 0),
		},
		Mirror: loadMirrorConfig(get),
	}
}

// SetProvider switches the remote provider and re-resolves its credential
// from the same source the Config was built from.
func (c *Config) SetProvider(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == c.Remote.Provider {
		return
	}
	c.Remote.Provider = name
	if c.getenv != nil {
		c.Remote.Credential = credentialFor(name, c.getenv)
	}
}

func credentialFor(provider string, get func(string) string) string {
	switch provider {
	case "groq":
		return get("GROQ_API_KEY")
	case "gemini":
		return firstNonEmpty(get("GEMINI_API_KEY"), get("GOOGLE_API_KEY"))
	default:
		return firstNonEmpty(get("OPENROUTER_KEY"), get("OPENROUTER_API_KEY"))
	}
}

func loadMirrorConfig(get func(string) string) MirrorConfig {
	endpoint := get("TRIAGE_S3_ENDPOINT")
	return MirrorConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(get("TRIAGE_S3_REGION"), "us-east-1"),
		AccessKey: firstNonEmpty(get("TRIAGE_S3_ACCESS_KEY"), get("MINIO_ROOT_USER")),
		SecretKey: firstNonEmpty(get("TRIAGE_S3_SECRET_KEY"), get("MINIO_ROOT_PASSWORD")),
		Bucket:    firstNonEmpty(get("TRIAGE_S3_BUCKET"), "triage-handoff"),
		UseSSL:    parseBool(get("TRIAGE_S3_USE_SSL"), true),
	}
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func parseBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
