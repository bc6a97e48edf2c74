package config

import (
	"testing"
	"time"
)

func setCoreEnvEmpty(t *testing.T) {
	t.Helper()
	keys := []string{
		"APP_BIND_ADDR",
		"APP_SHUTDOWN_TIMEOUT",
		"APP_SESSION_INACTIVITY_TIMEOUT",
		"APP_METRICS_NAMESPACE",
		"VAPI_API_KEY",
		"VAPI_API_BASE",
		"VAPI_ORG_ID",
		"VAPI_HTTP_TIMEOUT",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setCoreEnvEmpty(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":8080" {
		t.Errorf("BindAddr = %q, want %q", cfg.BindAddr, ":8080")
	}
	if cfg.VapiAPIBase != "https://api.vapi.ai" {
		t.Errorf("VapiAPIBase = %q, want default endpoint", cfg.VapiAPIBase)
	}
	if cfg.VapiAPIKey != "" {
		t.Errorf("VapiAPIKey = %q, want empty default", cfg.VapiAPIKey)
	}
	if cfg.MetricsNamespace != "vapidesk" {
		t.Errorf("MetricsNamespace = %q, want %q", cfg.MetricsNamespace, "vapidesk")
	}
	if cfg.VapiHTTPTimeout != 30*time.Second {
		t.Errorf("VapiHTTPTimeout = %v, want 30s", cfg.VapiHTTPTimeout)
	}
	if cfg.SessionInactivityTimeout != 30*time.Minute {
		t.Errorf("SessionInactivityTimeout = %v, want 30m", cfg.SessionInactivityTimeout)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	setCoreEnvEmpty(t)
	t.Setenv("APP_BIND_ADDR", ":9191")
	t.Setenv("VAPI_API_KEY", "  sk-test  ")
	t.Setenv("VAPI_API_BASE", "http://localhost:7777")
	t.Setenv("VAPI_ORG_ID", "org-1")
	t.Setenv("VAPI_HTTP_TIMEOUT", "5s")
	t.Setenv("APP_SESSION_INACTIVITY_TIMEOUT", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9191" {
		t.Errorf("BindAddr = %q, want %q", cfg.BindAddr, ":9191")
	}
	if cfg.VapiAPIKey != "sk-test" {
		t.Errorf("VapiAPIKey = %q, want trimmed value", cfg.VapiAPIKey)
	}
	if cfg.VapiAPIBase != "http://localhost:7777" {
		t.Errorf("VapiAPIBase = %q, want explicit value", cfg.VapiAPIBase)
	}
	if cfg.VapiOrgID != "org-1" {
		t.Errorf("VapiOrgID = %q, want %q", cfg.VapiOrgID, "org-1")
	}
	if cfg.VapiHTTPTimeout != 5*time.Second {
		t.Errorf("VapiHTTPTimeout = %v, want 5s", cfg.VapiHTTPTimeout)
	}
	if cfg.SessionInactivityTimeout != 10*time.Minute {
		t.Errorf("SessionInactivityTimeout = %v, want 10m", cfg.SessionInactivityTimeout)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad duration", "VAPI_HTTP_TIMEOUT", "soon"},
		{"non-url base", "VAPI_API_BASE", "not a url"},
		{"base without scheme", "VAPI_API_BASE", "api.vapi.ai"},
		{"tiny inactivity timeout", "APP_SESSION_INACTIVITY_TIMEOUT", "1s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setCoreEnvEmpty(t)
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load() with %s=%q succeeded, want error", tc.key, tc.value)
			}
		})
	}
}
