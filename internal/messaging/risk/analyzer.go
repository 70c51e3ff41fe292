// Package risk scores user-to-user message content. Every check is a cheap,
// deterministic heuristic; the output is data for the moderation workflow,
// never an exception.
package risk

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	strutil "trustgate/pkg/platform/strings"
)

const (
	MinLength = 10
	MaxLength = 2000

	// content outside [shortLength, longLength] is unusual but allowed
	shortLength = 20
	longLength  = 1500

	repeatThreshold = 5
	maxSpamScore    = 100
)

// Spam score weights.
const (
	pointsPerKeywordCategory = 20
	pointsPerPattern         = 10
	pointsHeavyCapitals      = 30
	pointsSomeCapitals       = 15
	pointsUnusualLength      = 10
)

const (
	heavyCapitalsRatio = 0.5
	someCapitalsRatio  = 0.3
)

// Flags raised by the pattern and case checks. Keyword categories add
// "spam_<category>".
const (
	FlagLinks             = "contains_links"
	FlagEmail             = "contains_email"
	FlagPhone             = "contains_phone"
	FlagLongNumbers       = "contains_long_numbers"
	FlagRepeated          = "repeated_characters"
	FlagExcessiveCapitals = "excessive_capitals"
	spamFlagPrefix        = "spam_"
)

var (
	linkPattern       = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s<>"]+`)
	emailPattern      = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	phonePattern      = regexp.MustCompile(`(?:\+|\b0)\d(?:[\s.\-]?\d){7,12}\b`)
	longNumberPattern = regexp.MustCompile(`\d{4,}`)
)

type patternCheck struct {
	flag    string
	warning string
	match   func(string) bool
}

var patternChecks = []patternCheck{
	{FlagLinks, "message contains a link", linkPattern.MatchString},
	{FlagEmail, "message contains an email address", emailPattern.MatchString},
	{FlagPhone, "message contains a phone number", phonePattern.MatchString},
	{FlagLongNumbers, "message contains a long number", longNumberPattern.MatchString},
	{FlagRepeated, "message contains repeated characters", hasRepeatedRun},
}

// Assessment is the result of analysing one message. It is computed on
// demand and never stored.
type Assessment struct {
	IsValid            bool     `json:"is_valid"`
	Errors             []string `json:"errors"`
	Warnings           []string `json:"warnings"`
	Flags              []string `json:"flags"`
	RequiresModeration bool     `json:"requires_moderation"`
	SpamScore          int      `json:"spam_score"`
	Language           string   `json:"language"`
}

// Analyzer runs the checks. The zero configuration from New is what the
// service uses; options exist for tests and tuning.
type Analyzer struct {
	keywords []KeywordCategory
}

type Option func(*Analyzer)

// WithKeywords replaces the keyword table. Keywords are folded and
// deduplicated; categories left empty are dropped.
func WithKeywords(categories []KeywordCategory) Option {
	return func(a *Analyzer) {
		a.keywords = categories
	}
}

func New(opts ...Option) *Analyzer {
	a := &Analyzer{keywords: DefaultKeywords}
	for _, opt := range opts {
		opt(a)
	}
	a.keywords = normalizeKeywords(a.keywords)
	return a
}

func normalizeKeywords(categories []KeywordCategory) []KeywordCategory {
	out := make([]KeywordCategory, 0, len(categories))
	for _, c := range categories {
		kws := strutil.DedupeAndFold(c.Keywords)
		if len(kws) == 0 || strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, KeywordCategory{Name: strings.TrimSpace(c.Name), Keywords: kws})
	}
	return out
}

// Analyze runs every check; none short-circuits, so Errors, Warnings and
// Flags are always complete. Checks see the decoded, normalized text, so a
// message scores the same before and after Sanitize.
func (a *Analyzer) Analyze(content string) *Assessment {
	out := &Assessment{Errors: []string{}, Warnings: []string{}, Flags: []string{}}
	score := 0

	trimmed := Normalize(PlainText(content))
	n := utf8.RuneCountInString(trimmed)
	if n < MinLength {
		out.Errors = append(out.Errors, fmt.Sprintf("message is too short (minimum %d characters)", MinLength))
	}
	if n > MaxLength {
		out.Errors = append(out.Errors, fmt.Sprintf("message is too long (maximum %d characters)", MaxLength))
	}
	if n < shortLength || n > longLength {
		score += pointsUnusualLength
	}

	for _, hit := range a.matchKeywords(trimmed) {
		for _, kw := range hit.keywords {
			out.Warnings = append(out.Warnings, fmt.Sprintf("suspicious keyword: %q", kw))
		}
		out.Flags = append(out.Flags, spamFlagPrefix+hit.category)
		score += pointsPerKeywordCategory
	}

	ratio := capitalRatio(trimmed)
	switch {
	case ratio > heavyCapitalsRatio:
		out.Warnings = append(out.Warnings, "message uses too many capital letters")
		out.Flags = append(out.Flags, FlagExcessiveCapitals)
		score += pointsHeavyCapitals
	case ratio > someCapitalsRatio:
		score += pointsSomeCapitals
	}

	for _, c := range patternChecks {
		if c.match(trimmed) {
			out.Warnings = append(out.Warnings, c.warning)
			out.Flags = append(out.Flags, c.flag)
			score += pointsPerPattern
		}
	}

	out.Language = DetectLanguage(trimmed)
	out.SpamScore = min(score, maxSpamScore)
	out.IsValid = len(out.Errors) == 0
	out.RequiresModeration = len(out.Warnings) > 0 || len(out.Flags) > 0
	return out
}

type keywordHit struct {
	category string
	keywords []string
}

// matchKeywords returns matched keywords grouped by category, in table order.
// Keywords are folded in New and content is folded here, so "CASINO" and
// "Casino" both match "casino".
func (a *Analyzer) matchKeywords(content string) []keywordHit {
	// a Caser carries state, so each call gets its own
	folded := cases.Fold().String(content)
	var hits []keywordHit
	for _, cat := range a.keywords {
		var matched []string
		for _, kw := range cat.Keywords {
			if strings.Contains(folded, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > 0 {
			hits = append(hits, keywordHit{category: cat.Name, keywords: matched})
		}
	}
	return hits
}

// capitalRatio is uppercase letters over all letters; non-letters are not
// counted. Text without letters has ratio zero.
func capitalRatio(s string) float64 {
	letters, upper := 0, 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}

// hasRepeatedRun reports a run of at least repeatThreshold identical runes.
// Go's regexp has no backreferences, so this is a plain scan.
func hasRepeatedRun(s string) bool {
	return len(repeatedRuns(s)) > 0
}

type runeRun struct {
	start, end int // byte offsets
	r          rune
}

func repeatedRuns(s string) []runeRun {
	var (
		runs  []runeRun
		prev  rune = -1
		count int
		start int
	)
	flush := func(end int) {
		if count >= repeatThreshold && !unicode.IsSpace(prev) {
			runs = append(runs, runeRun{start: start, end: end, r: prev})
		}
	}
	for i, r := range s {
		if r == prev {
			count++
			continue
		}
		flush(i)
		prev, count, start = r, 1, i
	}
	flush(len(s))
	return runs
}
