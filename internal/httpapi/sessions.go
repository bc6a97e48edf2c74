package httpapi

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/vapidesk/internal/session"
	"github.com/antoniostano/vapidesk/internal/vapi"
)

type sessionResponse struct {
	session.View
	ConnectionStatus vapi.ConnectionStatus `json:"connection_status,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create(session.Settings{
		APIKey:  s.cfg.VapiAPIKey,
		APIBase: s.cfg.VapiAPIBase,
		OrgID:   s.cfg.VapiOrgID,
	})
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("created").Inc()

	resp := sessionResponse{View: sess.View(s.sessions.InactivityTimeout())}
	if resp.APIKeySet {
		start := time.Now()
		resp.ConnectionStatus = s.client(sess).TestConnection(r.Context())
		s.observeProbe(start, resp.ConnectionStatus)
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}
	sess, err := s.sessions.End(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("ended").Inc()
	respondJSON(w, http.StatusOK, sessionResponse{View: sess.View(s.sessions.InactivityTimeout())})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{View: sess.View(s.sessions.InactivityTimeout())})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	var req session.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.APIBase != nil {
		base := strings.TrimSpace(*req.APIBase)
		if base == "" {
			base = vapi.DefaultBaseURL
			req.APIBase = &base
		} else if u, err := url.Parse(base); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			respondError(w, http.StatusBadRequest, "invalid_api_base", "api_base must be an http(s) URL")
			return
		}
	}

	updated, err := s.sessions.UpdateSettings(sess.ID, req)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "session_not_found", err.Error())
		return
	}
	s.metrics.SessionEvents.WithLabelValues("settings_updated").Inc()

	resp := sessionResponse{View: updated.View(s.sessions.InactivityTimeout())}
	if resp.APIKeySet {
		start := time.Now()
		resp.ConnectionStatus = s.client(updated).TestConnection(r.Context())
		s.observeProbe(start, resp.ConnectionStatus)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	start := time.Now()
	status := s.client(sess).TestConnection(r.Context())
	s.observeProbe(start, status)
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   status,
		"api_base": sess.Settings.APIBase,
	})
}
