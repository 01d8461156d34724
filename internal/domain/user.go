// Package domain contains entity without logic, just meta-data
package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxDisplayNameLen = 36

	// AnonymousName replaces a missing or blank display name.
	// A join never fails on the name alone.
	AnonymousName = "Anonymous"
)

// DisplayName normalizes a user-supplied name for presentation:
// trimmed, clamped to MaxDisplayNameLen, blank coerced to the
// placeholder.
func DisplayName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return AnonymousName
	}
	if len(name) > MaxDisplayNameLen {
		// Back off to a rune boundary so the clamp never leaves a
		// split multi-byte character behind.
		cut := MaxDisplayNameLen
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut]
	}
	return name
}
