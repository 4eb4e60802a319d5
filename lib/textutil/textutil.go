package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize applies NFKD normalization then collapses every whitespace run
// into a single space and trims the ends.
//
// It is the one place raw markup text gets cleaned, every parser matches
// against its output.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.Join(strings.Fields(norm.NFKD.String(raw)), " ")
}

var unsafeSlugChars = regexp.MustCompile(`[^A-Za-z0-9_\-. ]`)

// Slug turns a display name into a lowercase, underscore separated identifier
// that is safe to use as a filename.
func Slug(name string) string {
	if name == "" {
		name = "unknown_item"
	}
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(stripMarks, name)
	if err == nil {
		name = stripped
	}
	name = unsafeSlugChars.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

var (
	nonWordChars        = regexp.MustCompile(`[^\w]`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
)

// TypeKey converts a field label like "Melee Damage" into "melee_damage".
func TypeKey(label string) string {
	key := strings.ToLower(strings.TrimSpace(label))
	key = whitespaceRegex.ReplaceAllString(key, "_")
	key = nonWordChars.ReplaceAllString(key, "")
	key = repeatedUnderscores.ReplaceAllString(key, "_")
	key = strings.Trim(key, "_")
	if key == "" {
		return "unknown_effect"
	}
	return key
}
