package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driving"
	"github.com/scrivia-labs/scrivia-cli/internal/logger"
)

// Ensure ClassifierService implements the interface.
var _ driving.ClassifierService = (*ClassifierService)(nil)

// saturationScore is the score at which raw confidence reaches 1.0.
const saturationScore = 20.0

// engineHeuristic identifies classifications produced by keyword scoring.
const engineHeuristic = "heuristic"

// fallbackEvidence is returned when no keyword matched at all.
const fallbackEvidence = "No strong indicators found"

// ClassifierService detects meeting types by weighted keyword
// frequency. Each keyword contributes weight * ln(1 + count), so
// repetition helps sub-linearly and a single spammed phrase cannot
// dominate. Confidence is the capped score scaled by the margin over
// the runner-up.
type ClassifierService struct {
	keywords KeywordTable

	// now is swapped in tests for stable timestamps.
	now func() time.Time
}

// NewClassifierService creates a classifier over the given keyword
// table, or the built-in table when keywords is nil.
func NewClassifierService(keywords KeywordTable) *ClassifierService {
	if keywords == nil {
		keywords = DefaultKeywords()
	}
	return &ClassifierService{
		keywords: keywords,
		now:      time.Now,
	}
}

// typeScore pairs a taxonomy member with its running score.
type typeScore struct {
	meetingType domain.MeetingType
	score       float64
}

// Classify scores the transcript against the taxonomy using keyword
// frequency only. Never fails; empty or unrecognisable input falls
// back to talk with zero confidence.
func (c *ClassifierService) Classify(text string) domain.Classification {
	return c.classify(text, false)
}

// ClassifyWithStructure runs Classify with structural bonuses
// (question density, timeline references, action markers) added to
// the keyword scores before ranking.
func (c *ClassifierService) ClassifyWithStructure(text string) domain.Classification {
	return c.classify(text, true)
}

func (c *ClassifierService) classify(text string, structural bool) domain.Classification {
	textLower := strings.ToLower(text)

	scores := make(map[domain.MeetingType]float64, len(c.keywords))
	evidence := make(map[domain.MeetingType][]string, len(c.keywords))

	for _, meetingType := range domain.AllMeetingTypes() {
		var score float64
		var found []string

		for _, keyword := range sortedKeywords(c.keywords[meetingType]) {
			count := strings.Count(textLower, keyword)
			if count == 0 {
				continue
			}
			weight := c.keywords[meetingType][keyword]
			score += weight * math.Log(1+float64(count))
			found = append(found, fmt.Sprintf("%s (%dx)", keyword, count))
		}

		scores[meetingType] = score
		evidence[meetingType] = found
	}

	if structural {
		addStructuralBonuses(scores, textLower)
	}

	ranked := rankScores(scores)

	if ranked[0].score == 0 {
		logger.Debug("No keywords matched, falling back to talk")
		return domain.Classification{
			DetectedType:   domain.MeetingTalk,
			Confidence:     0.0,
			Evidence:       []string{fallbackEvidence},
			SecondaryTypes: secondaryTypes(ranked, domain.MeetingTalk),
			Engine:         engineHeuristic,
			Timestamp:      c.now(),
		}
	}

	top := ranked[0]
	second := ranked[1]

	margin := 0.0
	if top.score > 0 {
		margin = (top.score - second.score) / top.score
	}
	rawConfidence := math.Min(top.score/saturationScore, 1.0)
	confidence := rawConfidence * (0.5 + 0.5*margin)

	topEvidence := evidence[top.meetingType]
	if len(topEvidence) > 5 {
		topEvidence = topEvidence[:5]
	}

	logger.Debug("Classified as %s (score %.2f, confidence %.2f)",
		top.meetingType, top.score, confidence)

	return domain.Classification{
		DetectedType:   top.meetingType,
		Confidence:     confidence,
		Evidence:       topEvidence,
		SecondaryTypes: secondaryTypes(ranked, top.meetingType),
		Engine:         engineHeuristic,
		Timestamp:      c.now(),
	}
}

// sortedKeywords returns the table keys in lexicographic order so
// evidence ordering is reproducible run to run.
func sortedKeywords(table map[string]float64) []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// rankScores sorts the taxonomy by score descending. The sort is
// stable over the canonical taxonomy order, so ties resolve to the
// earlier-declared type.
func rankScores(scores map[domain.MeetingType]float64) []typeScore {
	ranked := make([]typeScore, 0, len(scores))
	for _, mt := range domain.AllMeetingTypes() {
		ranked = append(ranked, typeScore{meetingType: mt, score: scores[mt]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

// secondaryTypes returns up to five runner-up candidates, each with
// the margin-free normalized score, never including the detected type.
func secondaryTypes(ranked []typeScore, detected domain.MeetingType) []domain.SecondaryType {
	out := make([]domain.SecondaryType, 0, 5)
	for _, ts := range ranked {
		if ts.meetingType == detected {
			continue
		}
		out = append(out, domain.SecondaryType{
			Type:  ts.meetingType,
			Score: math.Min(ts.score/saturationScore, 1.0),
		})
		if len(out) == 5 {
			break
		}
	}
	return out
}

// addStructuralBonuses applies flat score bonuses from transcript
// shape: heavy questioning suggests discovery or brainstorming,
// timeline vocabulary suggests status or planning, and dense
// commitment language suggests planning or incident response.
func addStructuralBonuses(scores map[domain.MeetingType]float64, textLower string) {
	sentences := strings.Split(textLower, ".")
	questions := 0
	for _, s := range sentences {
		if strings.Contains(s, "?") {
			questions++
		}
	}
	if len(sentences) > 0 {
		density := float64(questions) / float64(len(sentences))
		if density > 0.3 {
			scores[domain.MeetingDiscovery] += 2.0
			scores[domain.MeetingBrainstorm] += 1.5
			scores[domain.MeetingStatus] += 1.0
		}
	}

	timelineWords := []string{"yesterday", "today", "tomorrow", "last week", "next week", "this week"}
	timelineCount := 0
	for _, w := range timelineWords {
		timelineCount += strings.Count(textLower, w)
	}
	if timelineCount > 3 {
		scores[domain.MeetingStatus] += 2.0
		scores[domain.MeetingPlanning] += 1.5
	}

	actionMarkers := []string{"will", "should", "must", "need to", "have to"}
	actionCount := 0
	for _, m := range actionMarkers {
		actionCount += strings.Count(textLower, m)
	}
	if actionCount > 5 {
		scores[domain.MeetingPlanning] += 1.5
		scores[domain.MeetingIncident] += 1.0
	}
}
