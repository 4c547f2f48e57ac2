package domain

import "time"

const unknownDescription = "Unknown"

// LLMProvider identifies a language model service provider.
type LLMProvider string

// Available LLM providers.
const (
	// LLMProviderOllama is a local Ollama instance.
	LLMProviderOllama LLMProvider = "ollama"

	// LLMProviderOpenAI is the OpenAI cloud API.
	LLMProviderOpenAI LLMProvider = "openai"
)

// IsValid returns true if the LLM provider is recognised.
func (p LLMProvider) IsValid() bool {
	switch p {
	case LLMProviderOllama, LLMProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p LLMProvider) RequiresAPIKey() bool {
	return p == LLMProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p LLMProvider) IsLocal() bool {
	return p == LLMProviderOllama
}

// String returns the string representation.
func (p LLMProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p LLMProvider) Description() string {
	switch p {
	case LLMProviderOllama:
		return "Ollama (local)"
	case LLMProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration. The LLM is optional:
// unconfigured settings mean the pipeline runs heuristic-only.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider LLMProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Timeout is the per-request timeout.
	Timeout time.Duration
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// NormalizeSettings holds default flags for the deterministic normalizer.
type NormalizeSettings struct {
	// RemoveFillers strips filler words and phrases when true.
	RemoveFillers bool

	// Numbers rewrites spoken numbers and dates when true.
	Numbers bool
}

// ClassifySettings holds meeting-type classification configuration.
type ClassifySettings struct {
	// UseLLM enables LLM-assisted classification when a provider is
	// configured.
	UseLLM bool

	// AutoAccept is the confidence threshold above which a detected
	// meeting type is accepted without confirmation.
	AutoAccept float64
}

// WatchSettings holds watch mode configuration.
type WatchSettings struct {
	// Patterns are the glob patterns matched against new file names.
	Patterns []string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Normalize holds normalizer default flags.
	Normalize NormalizeSettings

	// Classify holds classification settings.
	Classify ClassifySettings

	// Watch holds watch mode settings.
	Watch WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users opt in via config.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{
			Timeout: 2 * time.Minute,
		},
		Normalize: NormalizeSettings{
			RemoveFillers: false,
			Numbers:       true,
		},
		Classify: ClassifySettings{
			UseLLM:     false,
			AutoAccept: 0.6,
		},
		Watch: WatchSettings{
			Patterns: []string{"*.json"},
		},
	}
}

// AllLLMProviders returns all available LLM providers.
func AllLLMProviders() []LLMProvider {
	return []LLMProvider{
		LLMProviderOllama,
		LLMProviderOpenAI,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[LLMProvider]string {
	return map[LLMProvider]string{
		LLMProviderOllama: "llama3.2:3b",
		LLMProviderOpenAI: "gpt-4o-mini",
	}
}
