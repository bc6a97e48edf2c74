package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

var ErrNotFound = errors.New("session not found")

// Session is one operator's console session. It owns a private copy of the
// Vapi settings so concurrent sessions cannot interfere with each other.
type Session struct {
	ID             string
	Status         Status
	Settings       Settings
	StartedAt      time.Time
	LastActivityAt time.Time
}

// View flattens a session for JSON responses, without the API key.
func (s *Session) View(inactivityTTL time.Duration) View {
	return View{
		SessionID:       s.ID,
		Status:          s.Status,
		APIBase:         s.Settings.APIBase,
		OrgID:           s.Settings.OrgID,
		APIKeySet:       strings.TrimSpace(s.Settings.APIKey) != "",
		StartedAt:       s.StartedAt,
		LastActivityAt:  s.LastActivityAt,
		InactivityTTLMS: inactivityTTL.Milliseconds(),
	}
}

type Manager struct {
	mu                sync.RWMutex
	sessions          map[string]*Session
	inactivityTimeout time.Duration
	onExpire          func(*Session)
}

func NewManager(inactivityTimeout time.Duration) *Manager {
	if inactivityTimeout <= 0 {
		inactivityTimeout = 30 * time.Minute
	}
	return &Manager{
		sessions:          make(map[string]*Session),
		inactivityTimeout: inactivityTimeout,
	}
}

func (m *Manager) InactivityTimeout() time.Duration {
	return m.inactivityTimeout
}

func (m *Manager) SetExpireHook(hook func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = hook
}

// Create starts a session seeded with the given settings (normally the
// environment defaults).
func (m *Manager) Create(seed Settings) *Session {
	now := time.Now().UTC()
	s := &Session{
		ID:             uuid.NewString(),
		Status:         StatusActive,
		Settings:       seed,
		StartedAt:      now,
		LastActivityAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return clone(s)
}

// Get returns an active session and marks it as recently used.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.Status != StatusActive {
		return nil, ErrNotFound
	}
	s.LastActivityAt = time.Now().UTC()
	return clone(s), nil
}

// UpdateSettings replaces the given fields for one session only. Nil request
// fields keep their current value.
func (m *Manager) UpdateSettings(sessionID string, req UpdateRequest) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok || s.Status != StatusActive {
		return nil, ErrNotFound
	}
	if req.APIKey != nil {
		s.Settings.APIKey = strings.TrimSpace(*req.APIKey)
	}
	if req.APIBase != nil {
		s.Settings.APIBase = strings.TrimSpace(*req.APIBase)
	}
	if req.OrgID != nil {
		s.Settings.OrgID = strings.TrimSpace(*req.OrgID)
	}
	s.LastActivityAt = time.Now().UTC()
	return clone(s), nil
}

func (m *Manager) End(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	s.Status = StatusEnded
	s.LastActivityAt = time.Now().UTC()
	return clone(s), nil
}

// StartJanitor expires idle sessions in the background so abandoned browser
// tabs do not keep credentials in memory forever.
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.expireInactive()
			}
		}
	}()
}

func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive {
			count++
		}
	}
	return count
}

func (m *Manager) expireInactive() {
	now := time.Now().UTC()
	var expired []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.Status == StatusActive {
			if now.Sub(s.LastActivityAt) < m.inactivityTimeout {
				continue
			}
			s.Status = StatusEnded
			s.LastActivityAt = now
			expired = append(expired, clone(s))
			continue
		}
		// Ended sessions linger one sweep so a late End call still resolves,
		// then get dropped to release the stored key.
		if now.Sub(s.LastActivityAt) >= m.inactivityTimeout {
			delete(m.sessions, id)
		}
	}
	hook := m.onExpire
	m.mu.Unlock()

	if hook != nil {
		for _, s := range expired {
			hook(s)
		}
	}
}

func clone(s *Session) *Session {
	c := *s
	return &c
}
