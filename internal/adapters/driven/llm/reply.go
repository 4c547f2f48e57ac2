// Package llm holds reply handling shared by the provider adapters.
// Providers differ in transport but return the same two reply shapes:
// plain corrected text (possibly wrapped in JSON or markdown fences)
// for repair, and a strict JSON object for classification.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

// EngineLLM labels classifications produced by a language model.
const EngineLLM = "llm"

// ParseRepairReply interprets a repair response. Models are asked for
// plain corrected text, but smaller ones often wrap the reply in a
// markdown fence or volunteer a JSON object with an itemised change
// list; all three forms are accepted.
func ParseRepairReply(reply string) (domain.RepairResult, error) {
	text := StripFences(strings.TrimSpace(reply))

	if strings.HasPrefix(text, "{") {
		var payload struct {
			Text         string                `json:"text"`
			RepairedText string                `json:"repaired_text"`
			Changes      []domain.RepairChange `json:"changes"`
		}
		if err := json.Unmarshal([]byte(text), &payload); err == nil {
			repaired := payload.RepairedText
			if repaired == "" {
				repaired = payload.Text
			}
			if repaired = strings.TrimSpace(repaired); repaired != "" {
				return domain.RepairResult{
					RepairedText: repaired,
					Changes:      payload.Changes,
				}, nil
			}
		}
		// Not a usable JSON reply; fall through and treat it as text.
	}

	if text == "" {
		return domain.RepairResult{}, errors.New("empty repair reply")
	}
	return domain.RepairResult{RepairedText: text}, nil
}

// ParseClassifyReply interprets a classification response. Unlike
// repair, the reply contract is strict: a JSON object with type,
// confidence and evidence. Anything else is an error so the caller
// can fall back to the heuristic classifier.
func ParseClassifyReply(reply string, now time.Time) (domain.Classification, error) {
	text := StripFences(strings.TrimSpace(reply))

	var payload struct {
		Type       string   `json:"type"`
		Confidence float64  `json:"confidence"`
		Evidence   []string `json:"evidence"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return domain.Classification{}, fmt.Errorf("parse classification reply: %w", err)
	}

	detected, ok := domain.ParseMeetingType(strings.ToLower(strings.TrimSpace(payload.Type)))
	if !ok {
		return domain.Classification{}, fmt.Errorf("classification reply names unknown type %q", payload.Type)
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	evidence := payload.Evidence
	if evidence == nil {
		evidence = []string{}
	}

	return domain.Classification{
		DetectedType:   detected,
		Confidence:     confidence,
		Evidence:       evidence,
		SecondaryTypes: []domain.SecondaryType{},
		Engine:         EngineLLM,
		Timestamp:      now,
	}, nil
}

// BuildClassifyContext joins high-signal excerpts into the prompt
// context block.
func BuildClassifyContext(highSignal []string) string {
	return strings.Join(highSignal, "\n\n")
}

// StripFences removes a surrounding markdown code fence, with or
// without a language tag, leaving other text untouched.
func StripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := text[3:]
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
