// Package notes renders structured Markdown meeting notes from a
// processed transcription. Extraction is deterministic: topics come
// from fixed time buckets, decisions and action items from keyword
// matching, and concrete mentions from pattern matching. Nothing in
// the notes is invented, so every line can be traced back to a
// transcript segment.
package notes

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
)

const (
	// MinDurationSeconds is the shortest transcript the generator
	// accepts. Anything shorter produces notes that are all noise.
	MinDurationSeconds = 30.0

	// topicBucketSeconds is the topic segmentation window.
	topicBucketSeconds = 300.0

	// topicSummaryWords is how many leading words of a bucket's first
	// segment become its topic summary.
	topicSummaryWords = 5
)

var (
	namePattern   = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	numberPattern = regexp.MustCompile(`\$[\d,.]+[MKB]?|\d+\.?\d*%|\d+(?:\.\d+)?(?:\s*(?:million|thousand|billion))?`)
	urlPattern    = regexp.MustCompile(`https?://[^\s)]+|www\.[^\s)]+`)
	datePattern   = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2}(?:\s+\d{4})?|\d{4}-\d{2}-\d{2}\b`)
)

var decisionKeywords = []string{
	"decided",
	"decision",
	"agreed",
	"approved",
	"will go",
	"consensus",
}

var actionKeywords = []string{
	"will",
	"going to",
	"need to",
	"should",
	"must",
	"task",
	"follow up",
	"next step",
	"action item",
}

var riskKeywords = []string{
	"risk",
	"concern",
	"might",
	"could cause",
	"issue",
	"problem",
}

// nameStopwords are capitalized words that are sentence starts rather
// than names.
var nameStopwords = map[string]bool{
	"The": true, "A": true, "An": true, "And": true, "Or": true,
	"But": true, "In": true, "Is": true, "Are": true, "Was": true,
	"Were": true, "I": true, "You": true, "We": true, "It": true,
	"This": true, "That": true, "So": true,
}

// Metadata describes the processing run the notes are generated for.
type Metadata struct {
	// InputFile is the source transcript path; its stem becomes the
	// notes title and the basename of the linked artifact files.
	InputFile string

	// Language is the transcript language code, if known.
	Language string

	// Engine names the ASR engine that produced the transcript.
	Engine string

	// Model names the ASR model.
	Model string
}

// Generator builds meeting notes in the basic deterministic mode.
type Generator struct {
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a notes generator.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the notes document for a transcription. The
// meeting type, when known, is included in the metadata header.
// Transcriptions shorter than MinDurationSeconds are rejected.
func (g *Generator) Generate(t domain.Transcription, meta Metadata, meetingType domain.MeetingType) (string, error) {
	if len(t.Segments) == 0 {
		return "", domain.ErrEmptyTranscript
	}

	total := t.Segments[len(t.Segments)-1].End
	if total < MinDurationSeconds {
		return "", fmt.Errorf("%w: transcript too short, minimum %.0fs required (got %.0fs)",
			domain.ErrInvalidInput, MinDurationSeconds, total)
	}

	sections := []string{
		g.metadataSection(t, meta, meetingType, total),
		topicsSection(t.Segments, total),
		keywordSection("Decisions", "No explicit decisions found", decisionKeywords, t.Segments),
		keywordSection("Action Items", "No action items found", actionKeywords, t.Segments),
		mentionsSection(t.Segments),
		risksSection(t.Segments),
		linksSection(meta.InputFile),
	}
	return strings.Join(sections, "\n\n") + "\n", nil
}

func (g *Generator) metadataSection(t domain.Transcription, meta Metadata, meetingType domain.MeetingType, total float64) string {
	title := "Meeting Notes"
	source := fmt.Sprintf("**Duration**: %s", formatDuration(total))
	if meta.InputFile != "" {
		name := filepath.Base(meta.InputFile)
		title = strings.TrimSuffix(name, filepath.Ext(name))
		source = fmt.Sprintf("**Source**: %s (%s)", name, formatDuration(total))
	}

	now := g.now().UTC()
	lines := []string{
		fmt.Sprintf("# Meeting Notes: %s", title),
		"",
		fmt.Sprintf("**Date**: %s", now.Format("2006-01-02")),
		source,
	}
	if meetingType != "" {
		lines = append(lines, fmt.Sprintf("**Meeting Type**: %s", meetingType.Description()))
	}
	language := t.Language
	if language == "" {
		language = meta.Language
	}
	lines = append(lines,
		fmt.Sprintf("**Language**: %s", orUnknown(language)),
		fmt.Sprintf("**Engine**: %s (%s)", orUnknown(meta.Engine), orUnknown(meta.Model)),
		fmt.Sprintf("**Generated**: %s", now.Format(time.RFC3339)),
	)
	return strings.Join(lines, "\n")
}

// topicsSection divides the recording into fixed five-minute buckets
// and summarizes each bucket by the first words spoken in it.
func topicsSection(segments []domain.Segment, total float64) string {
	var topics []string
	for start := 0.0; start < total; start += topicBucketSeconds {
		end := start + topicBucketSeconds

		var first *domain.Segment
		for i := range segments {
			if segments[i].Start < end && segments[i].End > start {
				first = &segments[i]
				break
			}
		}
		if first == nil {
			continue
		}

		words := strings.Fields(first.Text)
		if len(words) > topicSummaryWords {
			words = words[:topicSummaryWords]
		}
		summary := strings.Join(words, " ")
		if summary == "" {
			summary = "Continued discussion"
		}

		topics = append(topics, fmt.Sprintf("- **[%s–%s]** %s",
			domain.FormatClock(start), domain.FormatClock(math.Min(end, total)), summary))
	}

	if len(topics) == 0 {
		return "## Topics\n\n*No topics found*"
	}
	return "## Topics\n\n" + strings.Join(topics, "\n")
}

func keywordSection(title, empty string, keywords []string, segments []domain.Segment) string {
	var items []string
	for _, s := range segments {
		lower := strings.ToLower(s.Text)
		if !containsAny(lower, keywords) {
			continue
		}
		items = append(items, fmt.Sprintf("- **[%s]** %s",
			domain.FormatClock(s.Start), strings.TrimSpace(s.Text)))
	}

	if len(items) == 0 {
		return fmt.Sprintf("## %s\n\n*%s*", title, empty)
	}
	return fmt.Sprintf("## %s\n\n%s", title, strings.Join(items, "\n"))
}

// mentionsSection pulls names, numbers, URLs and dates out of the full
// transcript text. Matches are deduplicated and sorted so the section
// is stable across runs.
func mentionsSection(segments []domain.Segment) string {
	text := domain.FullText(segments)

	names := matchSet(namePattern, text)
	for name := range names {
		if nameStopwords[name] {
			delete(names, name)
		}
	}
	numbers := matchSet(numberPattern, text)
	urls := matchSet(urlPattern, text)
	dates := matchSet(datePattern, text)

	sections := []string{"## Concrete Mentions"}
	appendGroup := func(heading string, set map[string]bool) {
		if len(set) == 0 {
			return
		}
		sections = append(sections, fmt.Sprintf("\n### %s\n", heading))
		for _, v := range sortedKeys(set) {
			sections = append(sections, fmt.Sprintf("- %s", v))
		}
	}
	appendGroup("Names", names)
	appendGroup("Numbers & Metrics", numbers)
	appendGroup("URLs & References", urls)
	appendGroup("Dates", dates)

	if len(sections) == 1 {
		sections = append(sections, "\n*No concrete mentions found*")
	}
	return strings.Join(sections, "\n")
}

func risksSection(segments []domain.Segment) string {
	var risks, questions []string
	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		stamp := domain.FormatClock(s.Start)

		if strings.HasSuffix(text, "?") {
			questions = append(questions, fmt.Sprintf("- %s **[%s]**", text, stamp))
		}
		if containsAny(strings.ToLower(text), riskKeywords) {
			risks = append(risks, fmt.Sprintf("- %s **[%s]**", text, stamp))
		}
	}

	sections := []string{"## Risks & Open Questions"}
	if len(risks) > 0 {
		sections = append(sections, "\n### Risks\n")
		sections = append(sections, risks...)
	}
	if len(questions) > 0 {
		sections = append(sections, "\n### Open Questions\n")
		sections = append(sections, questions...)
	}
	if len(risks) == 0 && len(questions) == 0 {
		sections = append(sections, "\n*No risks or open questions found*")
	}
	return strings.Join(sections, "\n")
}

// linksSection lists the sibling artifact files written next to the
// notes. Filenames mirror the output layout; the notes only reference
// them, the output manager writes them.
func linksSection(inputFile string) string {
	base := "transcript"
	if inputFile != "" {
		name := filepath.Base(inputFile)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}

	lines := []string{
		"## Transcript Files",
		"",
		fmt.Sprintf("- **Full Transcript (TXT)**: %s.transcript.txt", base),
		fmt.Sprintf("- **Subtitle Format (SRT)**: %s.transcript.srt", base),
		fmt.Sprintf("- **Structured Data (JSON)**: %s.transcript.json", base),
		fmt.Sprintf("- **Changes Log (Markdown)**: %s.changes.md", base),
	}
	return strings.Join(lines, "\n")
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func matchSet(re *regexp.Regexp, text string) map[string]bool {
	set := make(map[string]bool)
	for _, m := range re.FindAllString(text, -1) {
		set[m] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatDuration(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
