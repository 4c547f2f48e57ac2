package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// mockSettingsService is a configurable driving.SettingsService.
type mockSettingsService struct {
	settings    *domain.AppSettings
	getErr      error
	saveErr     error
	validateErr error
	saved       *domain.AppSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.settings == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	return m.settings, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.saved = settings
	return m.saveErr
}

func (m *mockSettingsService) SetLLMProvider(provider domain.LLMProvider, model, apiKey string) error {
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return nil
}

func TestSettingsShowCmd_Defaults(t *testing.T) {
	oldService := settingsService
	settingsService = &mockSettingsService{}
	defer func() { settingsService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "not configured")
	assert.Contains(t, out, "[Normalize]")
	assert.Contains(t, out, "Remove fillers: no")
	assert.Contains(t, out, "Normalize numbers: yes")
	assert.Contains(t, out, "[Classify]")
	assert.Contains(t, out, "Auto-accept threshold: 60%")
	assert.Contains(t, out, "[Watch]")
	assert.Contains(t, out, "*.json")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsShowCmd_ConfiguredLLM(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.LLM = domain.LLMSettings{
		Provider: domain.LLMProviderOpenAI,
		Model:    "gpt-4o-mini",
		APIKey:   "sk-1234567890abcdef",
		Timeout:  2 * time.Minute,
	}

	oldService := settingsService
	settingsService = &mockSettingsService{settings: &settings}
	defer func() { settingsService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "OpenAI (cloud)")
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "sk-1...cdef")
	assert.NotContains(t, out, "sk-1234567890abcdef")
	assert.Contains(t, out, "Status: configured")
}

func TestSettingsShowCmd_ValidationWarning(t *testing.T) {
	oldService := settingsService
	settingsService = &mockSettingsService{validateErr: assert.AnError}
	defer func() { settingsService = oldService }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Warning:")
}

func TestSettingsCmd_NoService(t *testing.T) {
	oldService := settingsService
	settingsService = nil
	defer func() { settingsService = oldService }()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"settings", "show"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskAPIKey(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty uses default", input: "", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Valid choice", input: "2", maxVal: 3, defaultVal: 1, expected: 2},
		{name: "Out of range", input: "5", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Zero is invalid", input: "0", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Not a number", input: "abc", maxVal: 3, defaultVal: 2, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseChoice(tt.input, tt.maxVal, tt.defaultVal)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultVal bool
		expected   bool
	}{
		{name: "yes", input: "y", defaultVal: false, expected: true},
		{name: "full yes", input: "yes", defaultVal: false, expected: true},
		{name: "no", input: "n", defaultVal: true, expected: false},
		{name: "full no", input: "no", defaultVal: true, expected: false},
		{name: "empty keeps default true", input: "", defaultVal: true, expected: true},
		{name: "empty keeps default false", input: "", defaultVal: false, expected: false},
		{name: "garbage keeps default", input: "maybe", defaultVal: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseBool(tt.input, tt.defaultVal))
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultVal float64
		expected   float64
	}{
		{name: "Empty uses default", input: "", defaultVal: 0.6, expected: 0.6},
		{name: "Valid value", input: "0.8", defaultVal: 0.6, expected: 0.8},
		{name: "Above range", input: "1.5", defaultVal: 0.6, expected: 0.6},
		{name: "Below range", input: "-0.1", defaultVal: 0.6, expected: 0.6},
		{name: "Not a number", input: "high", defaultVal: 0.6, expected: 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, parseFloat(tt.input, tt.defaultVal), 0.0001)
		})
	}
}

func TestIsYes(t *testing.T) {
	assert.True(t, isYes("y"))
	assert.True(t, isYes("Yes"))
	assert.False(t, isYes(""))
	assert.False(t, isYes("no"))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", yesNo(true))
	assert.Equal(t, "no", yesNo(false))
}

func TestYesNoPrompt(t *testing.T) {
	assert.Equal(t, "Y/n", yesNoPrompt(true))
	assert.Equal(t, "y/N", yesNoPrompt(false))
}
