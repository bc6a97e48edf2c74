package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the assistant console.
type Config struct {
	BindAddr                 string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration
	MetricsNamespace         string

	VapiAPIKey      string
	VapiAPIBase     string
	VapiOrgID       string
	VapiHTTPTimeout time.Duration
}

// Load reads environment variables and applies safe defaults. The settings
// form can override the Vapi values per session; these are only the seeds.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:                 envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:         envOrDefault("APP_METRICS_NAMESPACE", "vapidesk"),
		VapiAPIKey:               envTrimmed("VAPI_API_KEY"),
		VapiAPIBase:              envOrDefault("VAPI_API_BASE", "https://api.vapi.ai"),
		VapiOrgID:                envTrimmed("VAPI_ORG_ID"),
		VapiHTTPTimeout:          30 * time.Second,
		ShutdownTimeout:          15 * time.Second,
		SessionInactivityTimeout: 30 * time.Minute,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.VapiHTTPTimeout, err = durationFromEnv("VAPI_HTTP_TIMEOUT", cfg.VapiHTTPTimeout)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.VapiHTTPTimeout <= 0 {
		return Config{}, fmt.Errorf("VAPI_HTTP_TIMEOUT must be positive")
	}
	u, err := url.Parse(cfg.VapiAPIBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("VAPI_API_BASE must be an http(s) URL, got %q", cfg.VapiAPIBase)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}
