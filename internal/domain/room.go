package domain

import (
	"sort"
	"strings"
)

type RoomID string

// Separator joins the two normalized names into a room key.
const Separator = "#"

// DeriveRoomID builds the identifier for a two-party conversation from
// both display names. Deterministic and symmetric:
// DeriveRoomID(a, b) == DeriveRoomID(b, a).
func DeriveRoomID(a, b string) RoomID {
	names := []string{normalizeKey(a), normalizeKey(b)}
	sort.Strings(names)
	return RoomID(strings.Join(names, Separator))
}

// normalizeKey folds a user-supplied name for room derivation.
// Empty names stay empty here; the display placeholder is a
// presentation concern, not a key concern.
func normalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
