package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Vapi API endpoint.
	DefaultBaseURL = "https://api.vapi.ai"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 2 << 20
	listLimit      = 100
)

// Config selects the credentials and endpoint for one client instance.
// A client is built per session so that concurrent operator sessions never
// share credentials.
type Config struct {
	APIKey  string
	BaseURL string
	OrgID   string
	Timeout time.Duration
}

// Client is a thin typed wrapper over the Vapi REST API. It holds no cache
// and never retries: one operation is one HTTP request.
type Client struct {
	apiKey  string
	baseURL string
	orgID   string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: base,
		orgID:   strings.TrimSpace(cfg.OrgID),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL reports the endpoint this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

// TestConnection probes the API with a minimal list read. The four statuses
// are mutually exclusive and exhaustive for this operation.
func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	res, err := c.send(ctx, http.MethodGet, "/assistant?limit=1", nil)
	if err != nil {
		return StatusUnreachable
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		return StatusConnected
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return StatusUnauthorized
	default:
		return StatusServerError
	}
}

// ListAssistants fetches every assistant visible to the key. An empty account
// yields an empty slice, not an error.
func (c *Client) ListAssistants(ctx context.Context) ([]Assistant, error) {
	var out []Assistant
	if err := c.do(ctx, http.MethodGet, "/assistant?limit="+strconv.Itoa(listLimit), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Assistant{}
	}
	return out, nil
}

// GetAssistant fetches one assistant by id.
func (c *Client) GetAssistant(ctx context.Context, id string) (Assistant, error) {
	var out Assistant
	if err := c.do(ctx, http.MethodGet, "/assistant/"+url.PathEscape(id), nil, &out); err != nil {
		return Assistant{}, err
	}
	return out, nil
}

// CreateAssistant validates the draft locally, then POSTs it. Validation
// failures never reach the network.
func (c *Client) CreateAssistant(ctx context.Context, draft AssistantDraft) (Assistant, error) {
	draft = draft.Prune()
	if err := draft.Validate(); err != nil {
		return Assistant{}, err
	}
	var out Assistant
	if err := c.do(ctx, http.MethodPost, "/assistant", draft, &out); err != nil {
		return Assistant{}, err
	}
	return out, nil
}

// UpdateAssistant PATCHes the given fields onto an existing assistant. The
// same bounds apply as for creation; the name may be omitted.
func (c *Client) UpdateAssistant(ctx context.Context, id string, update AssistantDraft) (Assistant, error) {
	update = update.Prune()
	if err := update.ValidateUpdate(); err != nil {
		return Assistant{}, err
	}
	var out Assistant
	if err := c.do(ctx, http.MethodPatch, "/assistant/"+url.PathEscape(id), update, &out); err != nil {
		return Assistant{}, err
	}
	return out, nil
}

// DeleteAssistant removes an assistant. Deleting an id that is already gone
// returns ErrNotFound; callers treat that as a successful end state.
func (c *Client) DeleteAssistant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/assistant/"+url.PathEscape(id), nil, nil)
}

// ListCalls fetches recent calls, optionally filtered by assistant.
func (c *Client) ListCalls(ctx context.Context, assistantID string, limit int) ([]Call, error) {
	if limit <= 0 || limit > listLimit {
		limit = listLimit
	}
	path := "/call?limit=" + strconv.Itoa(limit)
	if strings.TrimSpace(assistantID) != "" {
		path += "&assistantId=" + url.QueryEscape(assistantID)
	}
	var out []Call
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Call{}
	}
	return out, nil
}

// CreateCall places a new outbound call through the platform.
func (c *Client) CreateCall(ctx context.Context, draft CallDraft) (Call, error) {
	if err := draft.Validate(); err != nil {
		return Call{}, err
	}
	var out Call
	if err := c.do(ctx, http.MethodPost, "/call", draft, &out); err != nil {
		return Call{}, err
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.orgID != "" {
		req.Header.Set("X-Vapi-Org-Id", c.orgID)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}
	return res, nil
}

// do runs one request and maps the response onto the error taxonomy. It never
// retries; a failure surfaces immediately to the caller.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	res, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return &UnreachableError{Err: err}
	}

	switch {
	case res.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return &RemoteError{StatusCode: res.StatusCode, Message: remoteMessage(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ProtocolError{Err: err}
	}
	return nil
}

// remoteMessage pulls the human-readable message out of a Vapi error body.
// The platform sends either {"message": "..."} or {"message": ["...", ...]}.
func remoteMessage(raw []byte) string {
	var parsed struct {
		Message any    `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch m := parsed.Message.(type) {
		case string:
			if strings.TrimSpace(m) != "" {
				return m
			}
		case []any:
			parts := make([]string, 0, len(m))
			for _, item := range m {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
		if strings.TrimSpace(parsed.Error) != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
