package keys

import "strings"

// Normalize trims and lower-cases a name and replaces spaces with
// underscores. Used for deck-list names and singleflight keys so lookups are
// stable regardless of the caller's casing.
func Normalize(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}
