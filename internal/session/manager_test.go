package session

import (
	"testing"
	"time"
)

func TestCreateSeedsSettings(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create(Settings{APIKey: "sk-1", APIBase: "https://api.vapi.ai", OrgID: "org-1"})
	if s.ID == "" {
		t.Fatalf("created session has no id")
	}
	if s.Status != StatusActive {
		t.Fatalf("Status = %q, want %q", s.Status, StatusActive)
	}
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Settings.APIKey != "sk-1" || got.Settings.OrgID != "org-1" {
		t.Fatalf("settings = %+v, want seeded values", got.Settings)
	}
}

func TestGetUnknownSession(t *testing.T) {
	m := NewManager(time.Minute)
	if _, err := m.Get("nope"); err != ErrNotFound {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateSettingsKeepsNilFields(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create(Settings{APIKey: "sk-1", APIBase: "https://api.vapi.ai"})

	newBase := " http://localhost:9999 "
	updated, err := m.UpdateSettings(s.ID, UpdateRequest{APIBase: &newBase})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if updated.Settings.APIBase != "http://localhost:9999" {
		t.Errorf("APIBase = %q, want trimmed new value", updated.Settings.APIBase)
	}
	if updated.Settings.APIKey != "sk-1" {
		t.Errorf("APIKey = %q, want untouched", updated.Settings.APIKey)
	}
}

func TestSettingsAreSessionScoped(t *testing.T) {
	m := NewManager(time.Minute)
	a := m.Create(Settings{APIKey: "key-a"})
	b := m.Create(Settings{APIKey: "key-b"})

	newKey := "rotated"
	if _, err := m.UpdateSettings(a.ID, UpdateRequest{APIKey: &newKey}); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	gotB, err := m.Get(b.ID)
	if err != nil {
		t.Fatalf("Get(b) error = %v", err)
	}
	if gotB.Settings.APIKey != "key-b" {
		t.Fatalf("session b key = %q, changed by session a's update", gotB.Settings.APIKey)
	}
}

func TestEndSession(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create(Settings{})
	if m.ActiveCount() != 1 {
		t.Fatalf("ActiveCount() = %d, want 1", m.ActiveCount())
	}
	ended, err := m.End(s.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if ended.Status != StatusEnded {
		t.Fatalf("Status = %q, want %q", ended.Status, StatusEnded)
	}
	if m.ActiveCount() != 0 {
		t.Fatalf("ActiveCount() after end = %d, want 0", m.ActiveCount())
	}
	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Fatalf("Get() on ended session error = %v, want ErrNotFound", err)
	}
}

func TestExpireInactive(t *testing.T) {
	m := NewManager(5 * time.Second)
	var expired []string
	m.SetExpireHook(func(s *Session) { expired = append(expired, s.ID) })

	s := m.Create(Settings{APIKey: "sk-1"})

	// Backdate activity past the timeout, then force a sweep.
	m.mu.Lock()
	m.sessions[s.ID].LastActivityAt = time.Now().UTC().Add(-time.Minute)
	m.mu.Unlock()
	m.expireInactive()

	if len(expired) != 1 || expired[0] != s.ID {
		t.Fatalf("expired = %v, want [%s]", expired, s.ID)
	}
	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Fatalf("Get() on expired session error = %v, want ErrNotFound", err)
	}

	// A second overdue sweep drops the ended session entirely.
	m.mu.Lock()
	m.sessions[s.ID].LastActivityAt = time.Now().UTC().Add(-time.Minute)
	m.mu.Unlock()
	m.expireInactive()

	m.mu.RLock()
	_, still := m.sessions[s.ID]
	m.mu.RUnlock()
	if still {
		t.Fatalf("expired session still held after second sweep")
	}
}

func TestViewHidesAPIKey(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create(Settings{APIKey: "sk-secret", APIBase: "https://api.vapi.ai", OrgID: "org-9"})

	v := s.View(time.Minute)
	if !v.APIKeySet {
		t.Errorf("APIKeySet = false, want true")
	}
	if v.APIBase != "https://api.vapi.ai" || v.OrgID != "org-9" {
		t.Errorf("view = %+v", v)
	}
	if v.InactivityTTLMS != time.Minute.Milliseconds() {
		t.Errorf("InactivityTTLMS = %d, want %d", v.InactivityTTLMS, time.Minute.Milliseconds())
	}
}
