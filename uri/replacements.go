package uri

import (
	"strings"

	"github.com/crmarques/restrecord/query"
)

// Replacement substitutes one placeholder token with a value.
type Replacement struct {
	Placeholder string
	Value       string
}

// Replacements are applied in order by literal find/replace.
type Replacements []Replacement

// Replace builds a single replacement. A missing ':' prefix is added.
func Replace(placeholder string, value any) Replacement {
	trimmed := strings.TrimSpace(placeholder)
	if !strings.HasPrefix(trimmed, ":") {
		trimmed = ":" + trimmed
	}
	return Replacement{Placeholder: trimmed, Value: query.FormatValue(value)}
}

// With returns a copy of r extended with more replacements.
func (r Replacements) With(more ...Replacement) Replacements {
	combined := make(Replacements, 0, len(r)+len(more))
	combined = append(combined, r...)
	return append(combined, more...)
}

// Apply substitutes every placeholder in path by literal find/replace.
// Unknown placeholders are left untouched.
func (r Replacements) Apply(path string) string {
	for _, replacement := range r {
		if replacement.Placeholder == "" {
			continue
		}
		path = strings.ReplaceAll(path, replacement.Placeholder, replacement.Value)
	}
	return path
}
