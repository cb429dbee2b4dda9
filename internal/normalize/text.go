package normalize

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"jobboard-engine/internal/domain"
)

var (
	reBreak = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>`)
	reTags  = regexp.MustCompile(`<[^>]+>`)
)

// TextFields are the text-bearing keys cleaned in place by Text.
var TextFields = []string{
	"title",
	"description",
	"job_description",
	"company",
	"location",
	"salary",
	"type",
	"category",
}

// Clean turns scraped markup into plain text: <br> becomes a newline,
// entities are decoded, every other tag becomes a space, whitespace runs
// collapse, and blank lines are dropped. nil yields "".
//
// Decoding and stripping repeat until the text stops changing, so
// double-encoded markup (&amp;lt;b&amp;gt;) cannot survive one pass and
// Clean(Clean(x)) == Clean(x).
func Clean(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}

	for {
		next := reBreak.ReplaceAllString(s, "\n")
		next = html.UnescapeString(next)
		next = reTags.ReplaceAllString(next, " ")
		if next == s {
			break
		}
		s = next
	}

	lines := strings.FieldsFunc(s, isLineBreak)
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// Text cleans every TextFields key present on job, in place. Missing keys
// stay missing.
func Text(job domain.RawJob) {
	for _, key := range TextFields {
		if v, ok := job[key]; ok {
			job[key] = Clean(v)
		}
	}
}

// TruncateWords keeps the first n words of text and marks the cut with "...".
func TruncateWords(text string, n int) string {
	if text == "" {
		return ""
	}
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[:n], " ") + "..."
}
