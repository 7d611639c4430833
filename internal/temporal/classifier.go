// Package temporal normalizes raw time phrases into a comparable ordering
// signal. Classification only: ordering disputes are left to the reasoning
// step.
package temporal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/memoweave/memoweave/internal/model"
)

// Classifier classifies raw time expressions into absolute, relative or
// unresolved signals and produces a normalized representation.
type Classifier struct{}

// NewClassifier creates a temporal expression classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

var (
	isoDate   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	monthDay  = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:\s*,?\s*(\d{4}))?\b`)
	bareYear  = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
	clockTime = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\s*(o'?clock|a\.?m\.?|p\.?m\.?)\b|\b(\d{1,2}):(\d{2})\b`)

	relOffset = regexp.MustCompile(`(?i)\b(a|an|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|\d+)\s+(day|week|month|year|hour|minute|morning|night)s?\s+(later|ago|earlier|before|after|afterwards)\b`)
	relNear   = regexp.MustCompile(`(?i)\b(next|last|following|previous|that same|that|the next|the following|the previous)\s+(morning|afternoon|evening|night|day|week|month|year|winter|spring|summer|autumn|fall)\b`)
	relWord   = regexp.MustCompile(`(?i)\b(yesterday|today|tomorrow|tonight|later|earlier|soon|now|then|afterwards|meanwhile|eventually)\b`)
	timeOfDay = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night|noon|midnight|dawn|dusk|sunrise|sunset|midday)\b`)
)

var monthNumbers = map[string]int{
	"january": 1, "jan": 1, "february": 2, "feb": 2, "march": 3, "mar": 3,
	"april": 4, "apr": 4, "may": 5, "june": 6, "jun": 6, "july": 7, "jul": 7,
	"august": 8, "aug": 8, "september": 9, "sep": 9, "october": 10, "oct": 10,
	"november": 11, "nov": 11, "december": 12, "dec": 12,
}

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11,
	"twelve": 12,
}

// Classify maps a raw time expression to its TimeType and a normalized
// representation. Unresolved expressions keep an empty normalization; the
// raw text travels on to the reasoning model as opaque natural language.
func (c *Classifier) Classify(raw string) (model.TimeType, string) {
	expr := strings.TrimSpace(raw)
	if expr == "" {
		return model.TimeUnresolved, ""
	}
	lower := strings.ToLower(expr)

	// Absolute calendar/clock points.
	if m := isoDate.FindStringSubmatch(expr); m != nil {
		return model.TimeAbsolute, m[0]
	}
	if m := slashDate.FindStringSubmatch(expr); m != nil {
		return model.TimeAbsolute, fmt.Sprintf("%s-%s-%s", m[3], pad2(m[1]), pad2(m[2]))
	}
	if m := monthDay.FindStringSubmatch(expr); m != nil {
		month := monthNumbers[strings.ToLower(m[1])]
		if m[3] != "" {
			return model.TimeAbsolute, fmt.Sprintf("%s-%02d-%s", m[3], month, pad2(m[2]))
		}
		return model.TimeAbsolute, fmt.Sprintf("--%02d-%s", month, pad2(m[2]))
	}
	if m := clockTime.FindStringSubmatch(lower); m != nil {
		return model.TimeAbsolute, "T-" + strings.ToUpper(strings.Join(strings.Fields(m[0]), ""))
	}
	if m := bareYear.FindStringSubmatch(expr); m != nil {
		return model.TimeAbsolute, m[1]
	}

	// Offsets from a reference event.
	if m := relOffset.FindStringSubmatch(lower); m != nil {
		return model.TimeRelative, relPlaceholder(m[1], m[2], m[3])
	}
	if relNear.MatchString(lower) {
		return model.TimeRelative, "REL-" + strings.ToUpper(strings.Join(strings.Fields(lower), "-"))
	}
	if m := relWord.FindStringSubmatch(lower); m != nil {
		return model.TimeRelative, "REL-" + strings.ToUpper(m[1])
	}
	if m := timeOfDay.FindStringSubmatch(lower); m != nil {
		return model.TimeRelative, "TOD-" + strings.ToUpper(m[1])
	}

	// No parseable temporal content; keep the raw text opaque.
	return model.TimeUnresolved, ""
}

// Apply classifies the time expression of every frame that carries one and
// returns the updated frames plus warnings for unresolved expressions.
// Frames without a raw expression keep an empty TimeType and no temporal
// signal.
func (c *Classifier) Apply(frames []model.EventFrame) ([]model.EventFrame, []model.Warning) {
	updated := make([]model.EventFrame, len(frames))
	copy(updated, frames)

	var warnings []model.Warning
	for i := range updated {
		frame := &updated[i]
		if frame.TimeRaw == "" {
			continue
		}

		timeType, normalized := c.Classify(frame.TimeRaw)
		frame.TimeType = timeType
		frame.TimeNormalized = normalized

		if timeType == model.TimeUnresolved {
			warnings = append(warnings, model.Warning{
				Stage:      string(model.StageExtractingTime),
				SentenceID: frame.SentenceID,
				Message:    fmt.Sprintf("time expression %q not classifiable, kept as opaque text", frame.TimeRaw),
			})
		}
	}

	return updated, warnings
}

// relPlaceholder renders an offset like "three days later" as "REL+3D".
func relPlaceholder(amount, unit, direction string) string {
	n, ok := numberWords[amount]
	if !ok {
		fmt.Sscanf(amount, "%d", &n)
	}
	if n == 0 {
		n = 1
	}

	sign := "+"
	switch direction {
	case "ago", "earlier", "before":
		sign = "-"
	}

	unitLetter := strings.ToUpper(unit[:1])
	switch unit {
	case "minute":
		unitLetter = "MIN" // "M" is taken by month
	case "morning":
		unitLetter = "MORN"
	}
	return fmt.Sprintf("REL%s%d%s", sign, n, unitLetter)
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
