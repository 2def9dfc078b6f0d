package domain

import (
	"regexp"
	"strings"
)

// canonicalName matches filenames already in the target form:
// eight leading digits and a .pdf extension. Files matching it are
// never reprocessed, which makes repeated runs idempotent.
var canonicalName = regexp.MustCompile(`^\d{8}.*\.pdf$`)

// IsCanonicalName reports whether a basename is already in canonical form.
func IsCanonicalName(name string) bool {
	return canonicalName.MatchString(name)
}

// slugUnsafe matches any run of characters that may not appear in a slug.
var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases a string and collapses every run of characters
// outside [a-z0-9] into a single hyphen. Leading and trailing hyphens
// are trimmed. An input with no usable characters slugs to "".
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugUnsafe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// TargetName derives the canonical filename for an extraction:
// YYYYMMDD-title-category.pdf. It is a pure function of its inputs,
// and its result always satisfies IsCanonicalName.
func TargetName(e Extraction, f Fallbacks) string {
	n := e.Normalise(f)
	stamp := strings.ReplaceAll(n.Date, "-", "")
	return stamp + "-" + n.Title + "-" + n.Category + ".pdf"
}
