package httpapi

import (
	"net/http"

	"github.com/antoniostano/vapidesk/internal/vapi"
)

type providersResponse struct {
	VoiceProviders    []vapi.VoiceProvider `json:"voice_providers"`
	ModelProviders    []vapi.ModelProvider `json:"model_providers"`
	FirstMessageModes []string             `json:"first_message_modes"`
	BackgroundSounds  []string             `json:"background_sounds"`
	DefaultDraft      vapi.AssistantDraft  `json:"default_draft"`
}

// handleProviders feeds the UI's select inputs. The catalog is static; the
// remote service remains authoritative for what it actually accepts.
func (s *Server) handleProviders(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, providersResponse{
		VoiceProviders:    vapi.VoiceProviders(),
		ModelProviders:    vapi.ModelProviders(),
		FirstMessageModes: vapi.FirstMessageModes(),
		BackgroundSounds:  vapi.BackgroundSounds(),
		DefaultDraft:      vapi.DefaultDraft(),
	})
}
