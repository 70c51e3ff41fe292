package risk

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Correction types.
const (
	CorrectionEmail      = "email"
	CorrectionPhone      = "phone"
	CorrectionLink       = "link"
	CorrectionLongNumber = "long_number"
	CorrectionCapitals   = "excessive_capitals"
	CorrectionRepeated   = "repeated_characters"
	CorrectionKeyword    = "spam_keyword"
)

// Correction is advisory: the sender or moderator decides whether to use
// SuggestedText.
type Correction struct {
	Type          string `json:"type"`
	Message       string `json:"message"`
	SuggestedText string `json:"suggested_text"`
}

const keepRepeated = 2

// SuggestCorrections proposes one masked rewrite per risk found in content.
// Each suggestion starts from the original text.
func (a *Analyzer) SuggestCorrections(content string) []Correction {
	out := []Correction{}
	mask := func(kind string, re *regexp.Regexp, placeholder, msg string) {
		if re.MatchString(content) {
			out = append(out, Correction{
				Type:          kind,
				Message:       msg,
				SuggestedText: re.ReplaceAllString(content, placeholder),
			})
		}
	}

	mask(CorrectionEmail, emailPattern, "[email hidden]", "Share contact details through the platform instead of by email.")
	mask(CorrectionPhone, phonePattern, "[phone hidden]", "Phone numbers are hidden until a visit is confirmed.")
	mask(CorrectionLink, linkPattern, "[link removed]", "External links are not allowed in messages.")
	mask(CorrectionLongNumber, longNumberPattern, "[number hidden]", "Avoid sharing account or card numbers.")

	if capitalRatio(content) > heavyCapitalsRatio {
		out = append(out, Correction{
			Type:          CorrectionCapitals,
			Message:       "Writing in capitals reads as shouting.",
			SuggestedText: sentenceCase(content),
		})
	}

	if runs := repeatedRuns(content); len(runs) > 0 {
		out = append(out, Correction{
			Type:          CorrectionRepeated,
			Message:       "Avoid repeating the same character.",
			SuggestedText: collapseRuns(content, runs),
		})
	}

	for _, hit := range a.matchKeywords(content) {
		text := content
		for _, kw := range hit.keywords {
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(kw))
			text = re.ReplaceAllStringFunc(text, func(m string) string {
				return strings.Repeat("*", utf8.RuneCountInString(m))
			})
		}
		out = append(out, Correction{
			Type:          CorrectionKeyword,
			Message:       "This wording is often used in spam (" + hit.category + ").",
			SuggestedText: text,
		})
	}
	return out
}

// sentenceCase lowercases everything, then capitalises the first letter of
// the text and of each sentence.
func sentenceCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	capNext := true
	for _, r := range strings.ToLower(s) {
		if capNext && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
			capNext = false
		}
		if r == '.' || r == '!' || r == '?' {
			capNext = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

func collapseRuns(s string, runs []runeRun) string {
	var b strings.Builder
	last := 0
	for _, run := range runs {
		b.WriteString(s[last:run.start])
		b.WriteString(strings.Repeat(string(run.r), keepRepeated))
		last = run.end
	}
	b.WriteString(s[last:])
	return b.String()
}
