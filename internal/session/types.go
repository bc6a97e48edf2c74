package session

import "time"

// Settings is the Vapi configuration in effect for one operator session.
// The key is deliberately excluded from JSON so it never echoes back to the
// browser.
type Settings struct {
	APIKey  string `json:"-"`
	APIBase string `json:"api_base"`
	OrgID   string `json:"org_id,omitempty"`
}

// UpdateRequest carries a settings change from the browser. Nil fields keep
// the current value; the key is write-only.
type UpdateRequest struct {
	APIKey  *string `json:"api_key"`
	APIBase *string `json:"api_base"`
	OrgID   *string `json:"org_id"`
}

// View is the session representation returned to the browser.
type View struct {
	SessionID       string    `json:"session_id"`
	Status          Status    `json:"status"`
	APIBase         string    `json:"api_base"`
	OrgID           string    `json:"org_id,omitempty"`
	APIKeySet       bool      `json:"api_key_set"`
	StartedAt       time.Time `json:"started_at"`
	LastActivityAt  time.Time `json:"last_activity_at"`
	InactivityTTLMS int64     `json:"inactivity_ttl_ms,omitempty"`
}
