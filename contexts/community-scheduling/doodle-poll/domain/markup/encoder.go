// Package markup turns free text typed by poll authors and voters into safe
// display markup, and parses the poll block that embeds a poll in a page.
package markup

import (
	"regexp"
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var decorations = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\\\\`), "<br />"},
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "<b>$1</b>"},
	{regexp.MustCompile(`__(.*?)__`), "<u>$1</u>"},
	{regexp.MustCompile(`//(.*?)//`), "<i>$1</i>"},
}

// Escape replaces the five HTML special characters with entities.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Sanitize trims and escapes a single-line value such as a voter name.
func Sanitize(text string) string {
	return Escape(strings.TrimSpace(text))
}

// Decorate applies the inline wiki formatting allowed inside options:
// a double backslash breaks the line, **bold**, __underline__ and //italic//.
// The input must already be escaped.
func Decorate(escaped string) string {
	out := escaped
	for _, d := range decorations {
		out = d.pattern.ReplaceAllString(out, d.replacement)
	}
	return out
}

// EncodeOption sanitizes and decorates one option. The second result is false
// when nothing is left after trimming.
func EncodeOption(raw string) (string, bool) {
	sanitized := Sanitize(raw)
	if sanitized == "" {
		return "", false
	}
	return Decorate(sanitized), true
}
