// Package ollama provides an LLM service adapter using Ollama.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/scrivia-labs/scrivia-cli/internal/adapters/driven/llm"
	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2:3b"
	DefaultLLMTimeout = 120 * time.Second
	DefaultMaxRetries = 2

	// Minimum spacing between API calls, including retries. Local
	// models queue requests, so pacing keeps retries from piling up.
	requestInterval = 250 * time.Millisecond
)

// LLMConfig holds configuration for the Ollama LLM service.
type LLMConfig struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the LLM model to use (default: llama3.2:3b).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// MaxRetries is the number of retry attempts after a failed call
	// (default: 2).
	MaxRetries int
}

// LLMService provides LLM operations using Ollama.
type LLMService struct {
	client      *http.Client
	limiter     *rate.Limiter
	baseURL     string
	model       string
	maxRetries  int
	promptStore driven.PromptStore
}

// generateRequest is the Ollama /api/generate request format.
type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	Format  string   `json:"format,omitempty"`
	Options *options `json:"options,omitempty"`
}

// options holds generation parameters.
type options struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature float64  `json:"temperature,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// generateResponse is the Ollama /api/generate response format.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *options      `json:"options,omitempty"`
}

// chatMessage is the Ollama chat message format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// NewLLMService creates a new Ollama LLM service.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	return &LLMService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
	}
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return s.generate(ctx, prompt, opts, "")
}

// generate posts to /api/generate, optionally constraining the reply
// format ("json" forces valid JSON output).
func (s *LLMService) generate(ctx context.Context, prompt string, opts driven.GenerateOptions, format string) (string, error) {
	reqBody := generateRequest{
		Model:  s.model,
		Prompt: prompt,
		Stream: false,
		Format: format,
	}

	if opts.MaxTokens > 0 || opts.Temperature > 0 || len(opts.StopWords) > 0 {
		reqBody.Options = &options{
			NumPredict:  opts.MaxTokens,
			Temperature: opts.Temperature,
			Stop:        opts.StopWords,
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/generate",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return genResp.Response, nil
}

// Chat conducts a multi-turn conversation.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	// Convert driven.ChatMessage to internal format
	chatMessages := make([]chatMessage, len(messages))
	for i, msg := range messages {
		chatMessages[i] = chatMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	reqBody := chatRequest{
		Model:    s.model,
		Messages: chatMessages,
		Stream:   false,
	}

	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		reqBody.Options = &options{
			NumPredict:  opts.MaxTokens,
			Temperature: opts.Temperature,
		}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/api/chat",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("ollama error (status %d): failed to read response", resp.StatusCode)
		}
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return chatResp.Message.Content, nil
}

// defaultRepairPrompt is the fallback prompt when no PromptStore is configured.
const defaultRepairPrompt = `Fix speech recognition errors in this transcript. Correct misheard words,
homophones and broken technical terms. Do NOT paraphrase, summarise, or
change what was said. Keep the word order and sentence structure intact.
Return ONLY the corrected transcript text, nothing else.

Transcript:
%s

Corrected transcript:`

// defaultClassifyPrompt is the fallback prompt when no PromptStore is configured.
const defaultClassifyPrompt = `Analyze this meeting transcript and classify its type.

Meeting Types:
- status: Daily standup, progress update, status check
- planning: Sprint planning, roadmap, project planning
- design: Technical design, architecture discussion
- demo: Feature demonstration, product showcase
- talk: Presentation, lecture, educational session
- incident: Incident response, troubleshooting, RCA
- discovery: User research, requirements gathering
- oneonone: 1:1 check-in, career discussion, feedback
- brainstorm: Ideation session, creative thinking

Transcript:
%s

Respond in JSON format:
{
  "type": "one of the meeting types above",
  "confidence": 0.0,
  "evidence": ["phrase1", "phrase2", "phrase3"]
}`

// RepairTranscript asks the model for a corrected transcript. Local
// models are prone to wrapping replies in fences or JSON; the shared
// parser accepts all of those. Failures wrap domain.ErrRepairFailed.
func (s *LLMService) RepairTranscript(ctx context.Context, text string) (domain.RepairResult, error) {
	promptTemplate := s.loadPrompt(driven.PromptRepair, defaultRepairPrompt)
	prompt := fmt.Sprintf(promptTemplate, text)

	reply, err := s.withRetries(ctx, func() (string, error) {
		return s.generate(ctx, prompt, driven.GenerateOptions{}, "")
	})
	if err != nil {
		return domain.RepairResult{}, fmt.Errorf("%w: ollama: %v", domain.ErrRepairFailed, err)
	}

	result, err := llm.ParseRepairReply(reply)
	if err != nil {
		return domain.RepairResult{}, fmt.Errorf("%w: ollama: %v", domain.ErrRepairFailed, err)
	}
	return result, nil
}

// ClassifyMeetingType asks the model to pick a meeting type from the
// taxonomy. The request uses Ollama's JSON mode so small models can't
// drift from the reply contract.
func (s *LLMService) ClassifyMeetingType(ctx context.Context, highSignal []string) (domain.Classification, error) {
	promptTemplate := s.loadPrompt(driven.PromptClassify, defaultClassifyPrompt)
	prompt := fmt.Sprintf(promptTemplate, llm.BuildClassifyContext(highSignal))

	reply, err := s.withRetries(ctx, func() (string, error) {
		return s.generate(ctx, prompt, driven.GenerateOptions{}, "json")
	})
	if err != nil {
		return domain.Classification{}, fmt.Errorf("%w: ollama: %v", domain.ErrLLMUnavailable, err)
	}

	classification, err := llm.ParseClassifyReply(reply, time.Now().UTC())
	if err != nil {
		return domain.Classification{}, fmt.Errorf("ollama: %w", err)
	}
	return classification, nil
}

// withRetries runs fn up to maxRetries+1 times, pacing attempts
// through the rate limiter.
func (s *LLMService) withRetries(ctx context.Context, fn func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *LLMService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *LLMService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the service is reachable by checking the /api/tags endpoint.
// This is a lightweight check that validates connectivity without running inference.
func (s *LLMService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: failed to create ping request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("ollama: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("ollama: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *LLMService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
