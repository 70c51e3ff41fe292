// Package strings holds small slice-of-string helpers shared by handlers and
// the content analyzer.
package strings

import (
	"strings"

	"golang.org/x/text/cases"
)

// DedupeAndTrim drops blanks and duplicates after trimming. Order is
// preserved, so the first occurrence wins.
//
//	DedupeAndTrim([]string{" a ", "b", "a", ""}) // []string{"a", "b"}
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndFold is DedupeAndTrim with Unicode case folding, for values that
// are later compared case-insensitively.
//
//	DedupeAndFold([]string{"Casino", " CASINO", "Éclair"}) // []string{"casino", "éclair"}
func DedupeAndFold(values []string) []string {
	return dedupe(values, func(v string) string {
		return cases.Fold().String(strings.TrimSpace(v))
	})
}

func dedupe(values []string, normalize func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		n := normalize(v)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
