package domain

import (
	"strings"
	"time"
)

// Extraction is the structured result parsed from the model's reply.
// Fields may be empty when the model omits them; Normalise fills the
// gaps so downstream code can rely on all three being present.
type Extraction struct {
	// Date is the document's date as reported by the model,
	// ideally in YYYY-MM-DD form.
	Date string

	// Category is a short lowercase label, e.g. "invoice" or "receipt".
	Category string

	// Title is a short human-readable title for the document.
	Title string
}

// Fallbacks holds the sentinel values substituted when the model
// omits a field. They are configuration, not constants baked into
// the pipeline.
type Fallbacks struct {
	// Date is used when the model returns no parseable date.
	Date time.Time

	// Label is used when the model returns no title or category.
	Label string
}

// DefaultFallbacks returns the standard sentinels: 2021-12-31 and "unknown".
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		Date:  time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC),
		Label: "unknown",
	}
}

// dateLayouts are the date shapes accepted from the model, most
// specific first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"20060102",
}

// parseDate attempts to interpret a model-supplied date string.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalise returns a copy of the extraction with every field
// guaranteed non-empty: the date canonicalised to YYYY-MM-DD (or the
// fallback date), and title/category slugged (or the fallback label).
func (e Extraction) Normalise(f Fallbacks) Extraction {
	out := Extraction{
		Date:     f.Date.Format("2006-01-02"),
		Category: Slug(e.Category),
		Title:    Slug(e.Title),
	}
	if t, ok := parseDate(e.Date); ok {
		out.Date = t.Format("2006-01-02")
	}
	if out.Category == "" {
		out.Category = Slug(f.Label)
	}
	if out.Title == "" {
		out.Title = Slug(f.Label)
	}
	return out
}
