package services

import (
	"fmt"
	"time"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyLLMTimeout       = "llm.timeout"
	keyRemoveFillers    = "normalize.remove_fillers"
	keyNormalizeNumbers = "normalize.numbers"
	keyClassifyUseLLM   = "classify.use_llm"
	keyClassifyAccept   = "classify.auto_accept"
	keyWatchPatterns    = "watch.patterns"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore  driven.ConfigStore
	llmValidator driven.LLMConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, llmValidator driven.LLMConfigValidator) *SettingsService {
	return &SettingsService{
		configStore:  configStore,
		llmValidator: llmValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider),
			Model:    s.configStore.GetString(keyLLMModel),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
			Timeout:  s.getTimeout(keyLLMTimeout, defaults.LLM.Timeout),
		},
		Normalize: domain.NormalizeSettings{
			RemoveFillers: s.getBool(keyRemoveFillers, defaults.Normalize.RemoveFillers),
			Numbers:       s.getBool(keyNormalizeNumbers, defaults.Normalize.Numbers),
		},
		Classify: domain.ClassifySettings{
			UseLLM:     s.getBool(keyClassifyUseLLM, defaults.Classify.UseLLM),
			AutoAccept: s.getFloat(keyClassifyAccept, defaults.Classify.AutoAccept),
		},
		Watch: domain.WatchSettings{
			Patterns: s.getStringSlice(keyWatchPatterns, defaults.Watch.Patterns),
		},
	}

	if settings.LLM.Model == "" {
		if model, ok := domain.DefaultLLMModels()[settings.LLM.Provider]; ok {
			settings.LLM.Model = model
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if err := s.configStore.Set(keyLLMTimeout, settings.LLM.Timeout.Seconds()); err != nil {
		return fmt.Errorf("save llm timeout: %w", err)
	}

	// Save normalizer defaults
	if err := s.configStore.Set(keyRemoveFillers, settings.Normalize.RemoveFillers); err != nil {
		return fmt.Errorf("save normalize remove_fillers: %w", err)
	}
	if err := s.configStore.Set(keyNormalizeNumbers, settings.Normalize.Numbers); err != nil {
		return fmt.Errorf("save normalize numbers: %w", err)
	}

	// Save classification settings
	if err := s.configStore.Set(keyClassifyUseLLM, settings.Classify.UseLLM); err != nil {
		return fmt.Errorf("save classify use_llm: %w", err)
	}
	if err := s.configStore.Set(keyClassifyAccept, settings.Classify.AutoAccept); err != nil {
		return fmt.Errorf("save classify auto_accept: %w", err)
	}

	// Save watch settings
	if err := s.configStore.Set(keyWatchPatterns, settings.Watch.Patterns); err != nil {
		return fmt.Errorf("save watch patterns: %w", err)
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.LLMProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	// Set API key
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// Validate checks if current settings are consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Classify.AutoAccept < 0 || settings.Classify.AutoAccept > 1 {
		return fmt.Errorf("classify auto_accept must be within [0,1], got %g", settings.Classify.AutoAccept)
	}

	// An LLM-assisted pipeline needs a configured provider
	if settings.Classify.UseLLM && !settings.LLM.IsConfigured() {
		return fmt.Errorf("classify use_llm requires an LLM provider to be configured")
	}

	if settings.LLM.Provider != "" && !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", settings.LLM.Provider)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.llmValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.llmValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string) domain.LLMProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return ""
	}
	provider := domain.LLMProvider(val)
	if !provider.IsValid() {
		return ""
	}
	return provider
}

// getTimeout reads a timeout stored as seconds.
func (s *SettingsService) getTimeout(key string, defaultVal time.Duration) time.Duration {
	seconds := s.configStore.GetFloat(key)
	if seconds <= 0 {
		return defaultVal
	}
	return time.Duration(seconds * float64(time.Second))
}
