package httpapi

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/vapidesk/internal/vapi"
)

type listAssistantsResponse struct {
	Assistants []vapi.Assistant `json:"assistants"`
	Summaries  []vapi.Summary   `json:"summaries"`
	Count      int              `json:"count"`
}

func (s *Server) handleListAssistants(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	start := time.Now()
	assistants, err := s.client(sess).ListAssistants(r.Context())
	s.observe("list_assistants", start, err)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	summaries := make([]vapi.Summary, 0, len(assistants))
	for _, a := range assistants {
		summaries = append(summaries, vapi.Summarize(a))
	}
	respondJSON(w, http.StatusOK, listAssistantsResponse{
		Assistants: assistants,
		Summaries:  summaries,
		Count:      len(assistants),
	})
}

func (s *Server) handleGetAssistant(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_assistant_id", "missing assistant id")
		return
	}
	start := time.Now()
	assistant, err := s.client(sess).GetAssistant(r.Context(), id)
	s.observe("get_assistant", start, err)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assistant)
}

func (s *Server) handleCreateAssistant(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	var draft vapi.AssistantDraft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	start := time.Now()
	created, err := s.client(sess).CreateAssistant(r.Context(), draft)
	s.observe("create_assistant", start, err)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAssistant(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_assistant_id", "missing assistant id")
		return
	}
	var update vapi.AssistantDraft
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	start := time.Now()
	updated, err := s.client(sess).UpdateAssistant(r.Context(), id, update)
	s.observe("update_assistant", start, err)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

type deleteAssistantResponse struct {
	ID          string `json:"id"`
	Deleted     bool   `json:"deleted"`
	AlreadyGone bool   `json:"already_gone,omitempty"`
}

func (s *Server) handleDeleteAssistant(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_assistant_id", "missing assistant id")
		return
	}
	start := time.Now()
	err := s.client(sess).DeleteAssistant(r.Context(), id)
	s.observe("delete_assistant", start, err)
	if err != nil {
		// Deleting an already-deleted assistant is still a success from the
		// operator's point of view: the assistant is gone either way.
		if errors.Is(err, vapi.ErrNotFound) {
			respondJSON(w, http.StatusOK, deleteAssistantResponse{ID: id, Deleted: true, AlreadyGone: true})
			return
		}
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deleteAssistantResponse{ID: id, Deleted: true})
}

type dashboardResponse struct {
	ConnectionStatus vapi.ConnectionStatus `json:"connection_status"`
	APIBase          string                `json:"api_base"`
	APIKeySet        bool                  `json:"api_key_set"`
	AssistantCount   int                   `json:"assistant_count"`
	Recent           []vapi.Summary        `json:"recent"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	client := s.client(sess)
	resp := dashboardResponse{
		APIBase:   client.BaseURL(),
		APIKeySet: client.HasKey(),
		Recent:    []vapi.Summary{},
	}

	start := time.Now()
	resp.ConnectionStatus = client.TestConnection(r.Context())
	s.observeProbe(start, resp.ConnectionStatus)
	if resp.ConnectionStatus != vapi.StatusConnected {
		respondJSON(w, http.StatusOK, resp)
		return
	}

	start = time.Now()
	assistants, err := client.ListAssistants(r.Context())
	s.observe("list_assistants", start, err)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	resp.AssistantCount = len(assistants)

	sort.Slice(assistants, func(i, j int) bool {
		return assistants[i].UpdatedAt.After(assistants[j].UpdatedAt)
	})
	for i, a := range assistants {
		if i == 5 {
			break
		}
		resp.Recent = append(resp.Recent, vapi.Summarize(a))
	}
	respondJSON(w, http.StatusOK, resp)
}
