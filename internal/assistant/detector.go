// Package assistant implements the assistant domain logic: wake word
// detection, rule-based intent parsing and bilingual responses.
package assistant

import (
	"regexp"
	"strings"
)

// Fuzzy patterns for common speech-recognition misses of the default
// wake words.
var fuzzyWakePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(nova|nowa|noah)\b`),
	regexp.MustCompile(`\b(echo|eko|ecco)\b`),
	regexp.MustCompile(`\bhey\s+(nova|echo)\b`),
}

var directCommandPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bopen\s+\w+`),
	regexp.MustCompile(`\bclose\s+\w+`),
	regexp.MustCompile(`\bsearch\s+`),
	regexp.MustCompile(`\w+\s+thorakku`), // Tamil: app name + open
	regexp.MustCompile(`\w+\s+muddu`),    // Tamil: app name + close
	regexp.MustCompile(`\w+\s+pannu`),    // Tamil: app name + do
}

// Detector spots wake words and direct command phrases in user text.
type Detector struct {
	wakeWords []string
}

// NewDetector creates a Detector for the given wake words. Words are
// matched case-insensitively as substrings, the way a speech
// transcript arrives.
func NewDetector(wakeWords []string) *Detector {
	lowered := make([]string, 0, len(wakeWords))
	for _, w := range wakeWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			lowered = append(lowered, w)
		}
	}
	return &Detector{wakeWords: lowered}
}

// IsWakeWord reports whether the text contains a configured wake word
// or a fuzzy variant of one.
func (d *Detector) IsWakeWord(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, w := range d.wakeWords {
		if strings.Contains(lower, w) {
			return true
		}
	}

	for _, p := range fuzzyWakePatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// StripWakeWords removes configured wake words (and a leading "hey")
// from the text so the remainder can be parsed as a command.
func (d *Detector) StripWakeWords(text string) string {
	words := append([]string{"hey"}, d.wakeWords...)
	return stripWords(strings.ToLower(text), words)
}

// IsDirectCommand reports whether the text looks like a command issued
// without a wake word.
func (d *Detector) IsDirectCommand(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)

	for _, p := range directCommandPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}
