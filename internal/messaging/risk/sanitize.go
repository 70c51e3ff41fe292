package risk

import (
	"html"
	"regexp"
	"strings"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// Normalize collapses whitespace runs inside a line to one space, trims each
// line and the whole text, and turns three or more newlines into two. It does
// not escape and is idempotent.
func Normalize(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	content = strings.Join(lines, "\n")
	content = blankLines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// Sanitize is the stored and displayed form: normalized, then HTML-escaped.
// Entities already in the input are decoded first, so sanitizing stored
// content again returns it unchanged.
func Sanitize(content string) string {
	return html.EscapeString(Normalize(PlainText(content)))
}

// PlainText decodes the HTML entities Sanitize produces.
func PlainText(content string) string {
	return html.UnescapeString(content)
}
