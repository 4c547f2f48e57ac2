// Package numbers provides a transform that rewrites spelled-out
// numbers in dates and unit contexts to digits.
package numbers

import (
	"regexp"
	"strings"

	"github.com/scrivia-labs/scrivia-cli/internal/core/domain"
	"github.com/scrivia-labs/scrivia-cli/internal/core/ports/driven"
)

// Ensure Transform implements the interface.
var _ driven.Transform = (*Transform)(nil)

// numberWords maps spelled-out numbers to digit strings. Only these
// words are ever rewritten, and only in the gated contexts below;
// a standalone "one of the options" stays as written.
var numberWords = map[string]string{
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4",
	"five": "5", "six": "6", "seven": "7", "eight": "8", "nine": "9",
	"ten": "10", "eleven": "11", "twelve": "12", "thirteen": "13",
	"fourteen": "14", "fifteen": "15", "sixteen": "16",
	"seventeen": "17", "eighteen": "18", "nineteen": "19",
	"twenty": "20", "thirty": "30", "forty": "40", "fifty": "50",
	"sixty": "60", "seventy": "70", "eighty": "80", "ninety": "90",
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var (
	monthDayPattern   *regexp.Regexp
	numberUnitPattern *regexp.Regexp
)

func init() {
	words := make([]string, 0, len(numberWords))
	for w := range numberWords {
		words = append(words, w)
	}
	wordAlt := strings.Join(words, "|")
	monthAlt := strings.Join(monthNames, "|")

	monthDayPattern = regexp.MustCompile(`(?i)\b(` + monthAlt + `)\s+(` + wordAlt + `)\b`)
	numberUnitPattern = regexp.MustCompile(`(?i)\b(` + wordAlt + `)\s+(am|pm|o'clock|dollars|percent)\b`)
}

// Transform rewrites "<month> <number-word>" to "<Month> <digit>" and
// "<number-word> <unit>" to "<digit> <unit>" for a small set of
// time/money/percentage units.
type Transform struct{}

// New creates a new number/date transform.
func New() *Transform {
	return &Transform{}
}

// Name returns the transform name.
func (t *Transform) Name() string {
	return "numbers"
}

// Apply rewrites gated number words per segment. Unchanged segments
// produce no entries.
func (t *Transform) Apply(segments []domain.Segment) ([]domain.Segment, []domain.TranscriptChange) {
	out := make([]domain.Segment, len(segments))
	var changes []domain.TranscriptChange

	for i, seg := range segments {
		out[i] = seg
		rewritten := rewrite(seg.Text)
		if rewritten == seg.Text {
			continue
		}
		out[i] = seg.Clone()
		out[i].Text = rewritten
		changes = append(changes, domain.TranscriptChange{
			SegmentID:  seg.ID,
			Timestamp:  domain.FormatTimespan(seg.Start, seg.End),
			Before:     seg.Text,
			After:      rewritten,
			Reason:     domain.ReasonNumber,
			ChangeType: domain.ChangeNormalization,
		})
	}

	return out, changes
}

func rewrite(text string) string {
	text = monthDayPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := monthDayPattern.FindStringSubmatch(match)
		return titleCase(parts[1]) + " " + numberWords[strings.ToLower(parts[2])]
	})
	text = numberUnitPattern.ReplaceAllStringFunc(text, func(match string) string {
		parts := numberUnitPattern.FindStringSubmatch(match)
		return numberWords[strings.ToLower(parts[1])] + " " + parts[2]
	})
	return text
}

// titleCase uppercases the first letter of an ASCII word.
func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
