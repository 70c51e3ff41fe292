package risk

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stopwords = map[language.Tag]map[string]bool{
	language.French: set("le", "la", "les", "un", "une", "des", "et", "est", "je", "vous", "nous",
		"pour", "avec", "dans", "sur", "pas", "que", "qui", "bonjour", "merci", "appartement", "maison"),
	language.English: set("the", "a", "an", "and", "is", "are", "i", "you", "we", "for", "with",
		"in", "on", "not", "that", "which", "hello", "thanks", "apartment", "house"),
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// DetectLanguage guesses French or English from stopword overlap and returns
// a BCP 47 tag string. Ties and texts with no stopwords are "und". The result
// is informational and never affects moderation.
func DetectLanguage(content string) string {
	words := strings.FieldsFunc(cases.Fold().String(content), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	fr, en := 0, 0
	for _, w := range words {
		if stopwords[language.French][w] {
			fr++
		}
		if stopwords[language.English][w] {
			en++
		}
	}
	switch {
	case fr > en:
		return language.French.String()
	case en > fr:
		return language.English.String()
	default:
		return language.Und.String()
	}
}
