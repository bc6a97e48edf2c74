package vapi

import (
	"strings"
	"time"
)

func ptr[T any](v T) *T { return &v }

// ConnectionStatus is the outcome of a connectivity probe against the Vapi API.
type ConnectionStatus string

const (
	StatusConnected    ConnectionStatus = "connected"
	StatusUnauthorized ConnectionStatus = "unauthorized"
	StatusUnreachable  ConnectionStatus = "unreachable"
	StatusServerError  ConnectionStatus = "server_error"
)

// ChatMessage is one entry of a model's message list. The assistant's system
// prompt travels as the message with role "system".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// VoiceConfig selects a speech-synthesis vendor and its tuning knobs.
// Speed and stability bounds mirror what the Vapi dashboard accepts; the
// remote service stays authoritative. The tuning fields are pointers so a
// real zero survives serialization: nil means "platform default".
type VoiceConfig struct {
	Provider  string   `json:"provider" validate:"required,oneof=elevenlabs openai azure playht"`
	VoiceID   string   `json:"voiceId,omitempty"`
	Speed     *float64 `json:"speed,omitempty" validate:"omitempty,gte=0.5,lte=2"`
	Stability *float64 `json:"stability,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// ModelConfig selects a language-model vendor, model and sampling parameters.
// Temperature 0 is a valid greedy-sampling setting, so it is a pointer too.
type ModelConfig struct {
	Provider    string        `json:"provider" validate:"required,oneof=openai anthropic google azure"`
	Model       string        `json:"model" validate:"required"`
	Temperature *float64      `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens   *int          `json:"maxTokens,omitempty" validate:"omitempty,gte=1,lte=4000"`
	Messages    []ChatMessage `json:"messages,omitempty"`
}

// AssistantDraft is an assistant configuration before the platform has
// assigned it an id. It is also the payload shape for updates, where every
// field is optional.
type AssistantDraft struct {
	Name               string       `json:"name,omitempty" validate:"required"`
	FirstMessage       string       `json:"firstMessage,omitempty"`
	FirstMessageMode   string       `json:"firstMessageMode,omitempty" validate:"omitempty,oneof=assistant-speaks-first assistant-waits-for-user assistant-speaks-first-with-model-generated-message"`
	MaxDurationSeconds int          `json:"maxDurationSeconds,omitempty" validate:"omitempty,gte=10,lte=43200"`
	Voice              *VoiceConfig `json:"voice,omitempty"`
	Model              *ModelConfig `json:"model,omitempty"`
	BackgroundSound    string       `json:"backgroundSound,omitempty" validate:"omitempty,oneof=off office nature cafe"`
	EndCallMessage     string       `json:"endCallMessage,omitempty"`
	VoicemailMessage   string       `json:"voicemailMessage,omitempty"`
	EndCallPhrases     []string     `json:"endCallPhrases,omitempty"`
}

// Assistant is a configured voice agent as the platform stores it. The id is
// server-assigned and immutable.
type Assistant struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	AssistantDraft
}

// SystemMessage extracts the system prompt from the model's message list.
func (d AssistantDraft) SystemMessage() string {
	if d.Model == nil {
		return ""
	}
	for _, m := range d.Model.Messages {
		if m.Role == "system" {
			return m.Content
		}
	}
	return ""
}

// Prune drops empty nested blocks and blank phrases so the wire payload never
// carries hollow voice/model objects the platform would reject.
func (d AssistantDraft) Prune() AssistantDraft {
	out := d
	if out.Voice != nil && out.Voice.Provider == "" && out.Voice.VoiceID == "" && out.Voice.Speed == nil && out.Voice.Stability == nil {
		out.Voice = nil
	}
	if out.Model != nil && out.Model.Provider == "" && out.Model.Model == "" && len(out.Model.Messages) == 0 {
		out.Model = nil
	}
	if out.Model != nil {
		msgs := out.Model.Messages[:0:0]
		for _, m := range out.Model.Messages {
			if strings.TrimSpace(m.Content) != "" {
				msgs = append(msgs, m)
			}
		}
		model := *out.Model
		model.Messages = msgs
		out.Model = &model
	}
	phrases := d.EndCallPhrases[:0:0]
	for _, p := range d.EndCallPhrases {
		if s := strings.TrimSpace(p); s != "" {
			phrases = append(phrases, s)
		}
	}
	out.EndCallPhrases = phrases
	return out
}

// Summary is the condensed row shown in list and dashboard views.
type Summary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FirstMessage  string    `json:"first_message,omitempty"`
	VoiceProvider string    `json:"voice_provider,omitempty"`
	ModelProvider string    `json:"model_provider,omitempty"`
	ModelName     string    `json:"model_name,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Summarize flattens an assistant for table rendering.
func Summarize(a Assistant) Summary {
	s := Summary{
		ID:           a.ID,
		Name:         a.Name,
		FirstMessage: a.FirstMessage,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if s.Name == "" {
		s.Name = "Unnamed Assistant"
	}
	if a.Voice != nil {
		s.VoiceProvider = a.Voice.Provider
	}
	if a.Model != nil {
		s.ModelProvider = a.Model.Provider
		s.ModelName = a.Model.Model
	}
	return s
}

// CustomerRef addresses the human side of an outbound call.
type CustomerRef struct {
	Number string `json:"number,omitempty"`
}

// Call is a platform call record, kept to the fields the console renders.
type Call struct {
	ID          string       `json:"id"`
	AssistantID string       `json:"assistantId,omitempty"`
	Type        string       `json:"type,omitempty"`
	Status      string       `json:"status,omitempty"`
	Customer    *CustomerRef `json:"customer,omitempty"`
	StartedAt   time.Time    `json:"startedAt,omitempty"`
	EndedAt     time.Time    `json:"endedAt,omitempty"`
}

// CallDraft is the payload for placing a new outbound call.
type CallDraft struct {
	AssistantID string       `json:"assistantId" validate:"required"`
	Customer    *CustomerRef `json:"customer,omitempty"`
}

// DefaultDraft returns the starter configuration the console pre-fills into
// the create form.
func DefaultDraft() AssistantDraft {
	return AssistantDraft{
		Name:               "New Assistant",
		FirstMessage:       "Hello! How can I help you today?",
		FirstMessageMode:   "assistant-speaks-first",
		MaxDurationSeconds: 600,
		Voice: &VoiceConfig{
			Provider:  "elevenlabs",
			Speed:     ptr(1.0),
			Stability: ptr(0.5),
		},
		Model: &ModelConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: ptr(0.7),
			MaxTokens:   ptr(1000),
			Messages: []ChatMessage{{
				Role:    "system",
				Content: "You are a helpful AI assistant. Be friendly, concise, and helpful in your responses.",
			}},
		},
		BackgroundSound: "off",
	}
}
