package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/vapidesk/internal/config"
	"github.com/antoniostano/vapidesk/internal/observability"
	"github.com/antoniostano/vapidesk/internal/session"
	"github.com/antoniostano/vapidesk/internal/vapi"
)

// SessionHeader carries the console session id on every API request from the
// browser.
const SessionHeader = "X-Console-Session"

type Server struct {
	cfg      config.Config
	sessions *session.Manager
	metrics  *observability.Metrics
	static   http.Handler
}

func New(cfg config.Config, sessions *session.Manager, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		metrics:  metrics,
		static:   newStaticHandler(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Handle("/ui/*", http.StripPrefix("/ui/", s.static))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/session", s.handleCreateSession)
	r.Post("/v1/session/{id}/end", s.handleEndSession)
	r.Get("/v1/settings", s.handleGetSettings)
	r.Put("/v1/settings", s.handleUpdateSettings)
	r.Post("/v1/connection/test", s.handleTestConnection)
	r.Get("/v1/dashboard", s.handleDashboard)
	r.Get("/v1/providers", s.handleProviders)

	r.Get("/v1/assistants", s.handleListAssistants)
	r.Post("/v1/assistants", s.handleCreateAssistant)
	r.Get("/v1/assistants/{id}", s.handleGetAssistant)
	r.Patch("/v1/assistants/{id}", s.handleUpdateAssistant)
	r.Delete("/v1/assistants/{id}", s.handleDeleteAssistant)

	r.Get("/v1/calls", s.handleListCalls)
	r.Post("/v1/calls", s.handleCreateCall)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ready",
		"api_base":        s.cfg.VapiAPIBase,
		"api_key_seeded":  s.cfg.VapiAPIKey != "",
		"active_sessions": s.sessions.ActiveCount(),
	})
}

// client builds a Vapi client from one session's own settings, so two
// operator sessions never share credentials.
func (s *Server) client(sess *session.Session) *vapi.Client {
	return vapi.NewClient(vapi.Config{
		APIKey:  sess.Settings.APIKey,
		BaseURL: sess.Settings.APIBase,
		OrgID:   sess.Settings.OrgID,
		Timeout: s.cfg.VapiHTTPTimeout,
	})
}

// withSession resolves the session named by the request header. A missing or
// expired session yields a 401 and a nil session.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request) *session.Session {
	id := strings.TrimSpace(r.Header.Get(SessionHeader))
	if id == "" {
		respondError(w, http.StatusUnauthorized, "missing_session", "request header "+SessionHeader+" is required")
		return nil
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "session_not_found", err.Error())
		return nil
	}
	return sess
}

// observe records one upstream operation for metrics.
func (s *Server) observe(operation string, start time.Time, err error) {
	s.metrics.ObserveUpstream(operation, vapi.ErrorCode(err), time.Since(start))
}

// observeProbe records a connectivity probe, using the probe's own status as
// the outcome since TestConnection reports failures as a status, not an error.
func (s *Server) observeProbe(start time.Time, status vapi.ConnectionStatus) {
	s.metrics.ObserveUpstream("test_connection", string(status), time.Since(start))
}

type errorResponse struct {
	Error          string                `json:"error"`
	Code           string                `json:"code"`
	UpstreamStatus int                   `json:"upstream_status,omitempty"`
	Violations     []vapi.FieldViolation `json:"violations,omitempty"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondUpstreamError maps a Vapi client failure onto this API's status
// codes. Validation failures carry the full violation list verbatim so the
// UI can show every problem at once.
func respondUpstreamError(w http.ResponseWriter, err error) {
	var verr *vapi.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:      verr.Error(),
			Code:       "validation_failed",
			Violations: verr.Violations,
		})
		return
	}
	switch vapi.ErrorCode(err) {
	case "unauthorized":
		respondError(w, http.StatusUnauthorized, "upstream_unauthorized", "the Vapi API rejected the configured key")
	case "not_found":
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case "remote_error":
		var remote *vapi.RemoteError
		_ = errors.As(err, &remote)
		respondJSON(w, http.StatusBadGateway, errorResponse{
			Error:          remote.Message,
			Code:           "upstream_error",
			UpstreamStatus: remote.StatusCode,
		})
	case "unreachable":
		respondError(w, http.StatusBadGateway, "upstream_unreachable", err.Error())
	case "protocol_error":
		respondError(w, http.StatusBadGateway, "upstream_protocol", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
