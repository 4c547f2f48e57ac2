package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLLMProvider_IsValid tests all valid and invalid LLM providers
func TestLLMProvider_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		provider LLMProvider
		expected bool
	}{
		{
			name:     "ollama is valid",
			provider: LLMProviderOllama,
			expected: true,
		},
		{
			name:     "openai is valid",
			provider: LLMProviderOpenAI,
			expected: true,
		},
		{
			name:     "empty string is invalid",
			provider: LLMProvider(""),
			expected: false,
		},
		{
			name:     "unknown provider is invalid",
			provider: LLMProvider("anthropic"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.provider.IsValid())
		})
	}
}

// TestLLMProvider_RequiresAPIKey tests API key requirements
func TestLLMProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, LLMProviderOllama.RequiresAPIKey())
	assert.True(t, LLMProviderOpenAI.RequiresAPIKey())
}

// TestLLMProvider_IsLocal tests local provider detection
func TestLLMProvider_IsLocal(t *testing.T) {
	assert.True(t, LLMProviderOllama.IsLocal())
	assert.False(t, LLMProviderOpenAI.IsLocal())
}

// TestLLMProvider_Description tests provider descriptions
func TestLLMProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", LLMProviderOllama.Description())
	assert.Equal(t, "OpenAI (cloud)", LLMProviderOpenAI.Description())
	assert.Equal(t, "Unknown", LLMProvider("other").Description())
}

// TestLLMSettings_IsConfigured tests LLM configuration detection
func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{
			name:     "unconfigured settings",
			settings: LLMSettings{},
			expected: false,
		},
		{
			name: "ollama without api key",
			settings: LLMSettings{
				Provider: LLMProviderOllama,
				Model:    "llama3.2:3b",
			},
			expected: true,
		},
		{
			name: "openai without api key",
			settings: LLMSettings{
				Provider: LLMProviderOpenAI,
				Model:    "gpt-4o-mini",
			},
			expected: false,
		},
		{
			name: "openai with api key",
			settings: LLMSettings{
				Provider: LLMProviderOpenAI,
				Model:    "gpt-4o-mini",
				APIKey:   "sk-test",
			},
			expected: true,
		},
		{
			name: "invalid provider",
			settings: LLMSettings{
				Provider: LLMProvider("bogus"),
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

// TestDefaultAppSettings tests default values
func TestDefaultAppSettings(t *testing.T) {
	defaults := DefaultAppSettings()

	assert.False(t, defaults.LLM.IsConfigured())
	assert.Equal(t, 2*time.Minute, defaults.LLM.Timeout)
	assert.False(t, defaults.Normalize.RemoveFillers)
	assert.True(t, defaults.Normalize.Numbers)
	assert.False(t, defaults.Classify.UseLLM)
	assert.InDelta(t, 0.6, defaults.Classify.AutoAccept, 1e-9)
	assert.Equal(t, []string{"*.json"}, defaults.Watch.Patterns)
}

// TestDefaultLLMModels tests that every provider has a default model
func TestDefaultLLMModels(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], "provider %s has no default model", p)
	}
}
