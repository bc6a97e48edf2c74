package vapi

// VoiceProvider describes one selectable speech-synthesis vendor.
type VoiceProvider struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ModelProvider describes one selectable language-model vendor and the models
// the console offers for it.
type ModelProvider struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Models      []string `json:"models"`
}

// VoiceProviders lists the vendors the console's voice form accepts, in
// display order.
func VoiceProviders() []VoiceProvider {
	return []VoiceProvider{
		{ID: "elevenlabs", Name: "ElevenLabs", Description: "High-quality AI voices with emotional range"},
		{ID: "openai", Name: "OpenAI", Description: "OpenAI's text-to-speech models"},
		{ID: "azure", Name: "Azure Cognitive Services", Description: "Microsoft's speech synthesis service"},
		{ID: "playht", Name: "PlayHT", Description: "AI voice generation platform"},
	}
}

// ModelProviders lists the vendors the console's model form accepts, in
// display order.
func ModelProviders() []ModelProvider {
	return []ModelProvider{
		{ID: "openai", Name: "OpenAI", Description: "OpenAI's language models", Models: []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"}},
		{ID: "anthropic", Name: "Anthropic", Description: "Anthropic's Claude models", Models: []string{"claude-3-opus-20240229", "claude-3-sonnet-20240229", "claude-3-haiku-20240307"}},
		{ID: "google", Name: "Google", Description: "Google's Gemini models", Models: []string{"gemini-pro", "gemini-1.5-pro", "gemini-1.5-flash"}},
		{ID: "azure", Name: "Azure OpenAI", Description: "Azure-hosted OpenAI models", Models: []string{"gpt-4", "gpt-35-turbo"}},
	}
}

// FirstMessageModes lists how an assistant may open a call.
func FirstMessageModes() []string {
	return []string{
		"assistant-speaks-first",
		"assistant-waits-for-user",
		"assistant-speaks-first-with-model-generated-message",
	}
}

// BackgroundSounds lists the ambient tracks the platform can mix into calls.
func BackgroundSounds() []string {
	return []string{"off", "office", "nature", "cafe"}
}
