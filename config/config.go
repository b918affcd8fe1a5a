package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultUserAgent is the browser-like User-Agent sent with every fetch.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	RateLimit RateLimitConfig
	Batch     BatchConfig
	Approval  ApprovalConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls how recipe pages are downloaded.
type FetchConfig struct {
	// Timeout bounds the whole fetch, including redirects and body read.
	Timeout time.Duration // default: 10s

	// UserAgent is sent on every request.
	UserAgent string

	// MaxBodyBytes caps how much of a page is read.
	MaxBodyBytes int64 // default: 5 MiB

	// TLSFingerprint dials HTTPS with a Chrome ClientHello (utls).
	TLSFingerprint bool // default: false
}

// RateLimitConfig controls per-client rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per client IP.
	Burst int // default: 5
}

// BatchConfig controls batch extraction jobs.
type BatchConfig struct {
	MaxURLs     int           // default: 50
	Concurrency int           // default: 4
	JobTTL      time.Duration // default: 1h
}

// ApprovalConfig controls the menu approval workflow.
type ApprovalConfig struct {
	TokenTTL time.Duration // default: 168h
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("RECIPES_HOST", "0.0.0.0"),
			Port: envIntOr("RECIPES_PORT", 8080),
			Mode: envOr("RECIPES_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout:        envDurationOr("RECIPES_FETCH_TIMEOUT", 10*time.Second),
			UserAgent:      envOr("RECIPES_USER_AGENT", DefaultUserAgent),
			MaxBodyBytes:   int64(envIntOr("RECIPES_MAX_BODY_BYTES", 5<<20)),
			TLSFingerprint: envBoolOr("RECIPES_TLS_FINGERPRINT", false),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("RECIPES_RATE_RPS", 2.0),
			Burst:             envIntOr("RECIPES_RATE_BURST", 5),
		},
		Batch: BatchConfig{
			MaxURLs:     envIntOr("RECIPES_BATCH_MAX_URLS", 50),
			Concurrency: envIntOr("RECIPES_BATCH_CONCURRENCY", 4),
			JobTTL:      envDurationOr("RECIPES_BATCH_TTL", time.Hour),
		},
		Approval: ApprovalConfig{
			TokenTTL: envDurationOr("RECIPES_APPROVAL_TOKEN_TTL", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level:  strings.ToLower(envOr("RECIPES_LOG_LEVEL", "info")),
			Format: strings.ToLower(envOr("RECIPES_LOG_FORMAT", "json")),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
