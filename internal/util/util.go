package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlug = regexp.MustCompile("[^a-z0-9]+")

// Slugify creates a topic-safe slug from a sign name, e.g. "Vía Norte Km 12" -> "via-norte-km-12".
func Slugify(s string) string {
	s = strings.ToLower(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Normalize removes NULL padding that signs leave in fixed-size octet
// strings and trims the result.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}
