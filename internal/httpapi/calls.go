package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/antoniostano/vapidesk/internal/vapi"
)

type listCallsResponse struct {
	Calls []vapi.Call `json:"calls"`
	Count int         `json:"count"`
}

func (s *Server) handleListCalls(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	assistantID := strings.TrimSpace(r.URL.Query().Get("assistant_id"))
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	start := time.Now()
	calls, err := s.client(sess).ListCalls(r.Context(), assistantID, limit)
	s.observe("list_calls", start, err)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listCallsResponse{Calls: calls, Count: len(calls)})
}

func (s *Server) handleCreateCall(w http.ResponseWriter, r *http.Request) {
	sess := s.withSession(w, r)
	if sess == nil {
		return
	}
	var draft vapi.CallDraft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	start := time.Now()
	call, err := s.client(sess).CreateCall(r.Context(), draft)
	s.observe("create_call", start, err)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, call)
}
