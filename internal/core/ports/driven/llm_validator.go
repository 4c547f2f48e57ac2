package driven

import "github.com/scrivia-labs/scrivia-cli/internal/core/domain"

// LLMConfigValidator validates LLM provider configurations.
// Implementations verify that a configuration is usable by testing
// connectivity to the underlying service.
type LLMConfigValidator interface {
	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if the configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
