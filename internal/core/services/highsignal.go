package services

import (
	"strings"
)

// High-signal extraction defaults.
const (
	// DefaultContextWords is the number of words kept on each side
	// of a marker.
	DefaultContextWords = 50

	// DefaultMaxSegments caps the number of extracted windows.
	DefaultMaxSegments = 10
)

// signalMarkers are words that flag decision, commitment, incident or
// outcome content. A transcript window around any of these carries
// most of the classification signal, so LLM classification sends only
// these windows instead of the full transcript.
var signalMarkers = map[string]struct{}{
	"decided":   {},
	"decide":    {},
	"decision":  {},
	"agreed":    {},
	"committed": {},
	"confirmed": {},
	"will":      {},
	"must":      {},
	"should":    {},
	"going":     {},
	"let's":     {},
	"resolved":  {},
	"fixed":     {},
	"completed": {},
	"incident":  {},
	"blocker":   {},
	"bug":       {},
	"critical":  {},
	"outage":    {},
}

// ExtractHighSignalSegments pulls marker-centred context windows from
// a transcript. Each window spans contextWords words on either side
// of a marker; markers falling inside an already-extracted window are
// skipped so windows never overlap. At most maxSegments windows are
// returned, in transcript order. Zero or negative arguments fall back
// to the defaults.
func ExtractHighSignalSegments(text string, contextWords, maxSegments int) []string {
	if contextWords <= 0 {
		contextWords = DefaultContextWords
	}
	if maxSegments <= 0 {
		maxSegments = DefaultMaxSegments
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}
	}

	segments := []string{}
	coveredUntil := -1

	for i, word := range words {
		if i <= coveredUntil {
			continue
		}
		if _, ok := signalMarkers[normalizeToken(word)]; !ok {
			continue
		}

		start := i - contextWords
		if start < 0 {
			start = 0
		}
		end := i + contextWords + 1
		if end > len(words) {
			end = len(words)
		}

		segments = append(segments, strings.Join(words[start:end], " "))
		coveredUntil = end - 1

		if len(segments) == maxSegments {
			break
		}
	}

	return segments
}

// normalizeToken lowercases a word and strips surrounding punctuation
// so "Decided," still matches the marker list.
func normalizeToken(word string) string {
	return strings.Trim(strings.ToLower(word), ".,!?;:\"'()[]")
}
