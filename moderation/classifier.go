package moderation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Verdict is the classifier's judgement of one message.
type Verdict int

const (
	VerdictClean Verdict = iota
	VerdictHardViolation
	VerdictProfanity
	VerdictSensitive
)

func (v Verdict) String() string {
	switch v {
	case VerdictHardViolation:
		return "hard_violation"
	case VerdictProfanity:
		return "profanity"
	case VerdictSensitive:
		return "sensitive"
	default:
		return "clean"
	}
}

// Category identifies one of the keyword sets.
type Category int

const (
	CategoryBanKeyword Category = iota
	CategoryBadWord
	CategorySensitiveTopic
)

func (c Category) String() string {
	switch c {
	case CategoryBanKeyword:
		return "ban"
	case CategoryBadWord:
		return "bad"
	case CategorySensitiveTopic:
		return "sensitive"
	}
	return "unknown"
}

// ParseCategory maps a command argument to a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ban":
		return CategoryBanKeyword, nil
	case "bad":
		return CategoryBadWord, nil
	case "sensitive":
		return CategorySensitiveTopic, nil
	}
	return 0, fmt.Errorf("unknown keyword category %q", s)
}

// linkMarkers are the substrings that make a ban keyword escalate to a hard
// violation. They are checked against the lowercased raw text, before
// punctuation stripping.
var linkMarkers = []string{"http", ".com", "t.me/", "discord.gg/"}

var punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// NormalizeText lowercases, strips diacritics and removes punctuation.
// Matching is plain substring containment on the result; there is no
// tokenization or stemming, so a keyword inside a longer word still matches.
func NormalizeText(text string) string {
	chain := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(unicode.ToLower),
		norm.NFKC,
	)
	normalized, _, err := transform.String(chain, text)
	if err != nil {
		normalized = strings.ToLower(text)
	}
	return punctuationPattern.ReplaceAllString(normalized, "")
}

// Classifier scores message text against the configured keyword sets.
type Classifier struct {
	state *State
}

func NewClassifier(state *State) *Classifier {
	return &Classifier{state: state}
}

// Classify runs the keyword checks in priority order: ban keywords combined
// with a link marker, then bad words, then sensitive topics.
func (c *Classifier) Classify(text string) Verdict {
	clean := NormalizeText(text)
	lower := strings.ToLower(text)

	if containsAny(lower, linkMarkers) && containsAny(clean, c.state.Keywords(CategoryBanKeyword)) {
		return VerdictHardViolation
	}
	if containsAny(clean, c.state.Keywords(CategoryBadWord)) {
		return VerdictProfanity
	}
	if containsAny(clean, c.state.Keywords(CategorySensitiveTopic)) {
		return VerdictSensitive
	}
	return VerdictClean
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if term != "" && strings.Contains(s, term) {
			return true
		}
	}
	return false
}
