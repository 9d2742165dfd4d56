// Package slugs provides canonical slugification helpers.
//
// There are two strategies:
//   - Heading slugs: topic IDs derived from markdown headings in the bundled docs.
//   - Keyword slugs: normalized user input for enumerated keywords (range kinds,
//     weekday names, format names), built on gosimple/slug.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// HeadingSlug converts a heading text to a URL-friendly slug.
func HeadingSlug(text string) string {
	var result strings.Builder
	prevDash := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-' || r == '_' || r == ':':
			// Convert separators (including colon) to dashes
			if !prevDash && result.Len() > 0 {
				result.WriteRune('-')
				prevDash = true
			}
		}
	}

	s := result.String()
	return strings.TrimSuffix(s, "-")
}

// Keyword normalizes free-form keyword input to a dashed lowercase slug.
//
// camelCase boundaries and underscores become dashes, so "thisWeek",
// "this_week", "This Week" and "this-week" all yield "this-week".
func Keyword(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteRune('-')
		}
		if r == '_' {
			r = '-'
		}
		b.WriteRune(r)
		prev = r
	}

	return goslug.Make(b.String())
}
