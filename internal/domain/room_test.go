package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDeriveRoomIDSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"Bob", "Alice"},
		{"zoe", "adam"},
		{"", "carol"},
	}
	for _, p := range pairs {
		if DeriveRoomID(p[0], p[1]) != DeriveRoomID(p[1], p[0]) {
			t.Errorf("DeriveRoomID not symmetric for %q/%q", p[0], p[1])
		}
	}
}

func TestDeriveRoomIDNormalization(t *testing.T) {
	got := DeriveRoomID(" Alice ", "BOB")
	want := DeriveRoomID("alice", "bob")
	if got != want {
		t.Errorf("DeriveRoomID(\" Alice \", \"BOB\") = %q, want %q", got, want)
	}
	if got != RoomID("alice#bob") {
		t.Errorf("DeriveRoomID = %q, want alice#bob", got)
	}
}

func TestDeriveRoomIDSorts(t *testing.T) {
	if got := DeriveRoomID("bob", "alice"); got != RoomID("alice#bob") {
		t.Errorf("DeriveRoomID(bob, alice) = %q, want alice#bob", got)
	}
}

func TestDeriveRoomIDEmptyNames(t *testing.T) {
	// Empty names still derive a key; two anonymous clients land in
	// the same room rather than being rejected.
	if got := DeriveRoomID("", ""); got != RoomID("#") {
		t.Errorf("DeriveRoomID(\"\", \"\") = %q, want #", got)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"  alice  ", "alice"},
		{"", AnonymousName},
		{"   ", AnonymousName},
	}
	for _, c := range cases {
		if got := DisplayName(c.in); got != c.want {
			t.Errorf("DisplayName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDisplayNameClamp(t *testing.T) {
	long := make([]byte, MaxDisplayNameLen*2)
	for i := range long {
		long[i] = 'a'
	}
	if got := DisplayName(string(long)); len(got) != MaxDisplayNameLen {
		t.Errorf("DisplayName length = %d, want %d", len(got), MaxDisplayNameLen)
	}
}

func TestDisplayNameClampRuneBoundary(t *testing.T) {
	// The leading ASCII byte shifts the 3-byte runes so the clamp
	// position lands mid-rune.
	long := "a" + strings.Repeat("你", MaxDisplayNameLen)
	got := DisplayName(long)
	if !utf8.ValidString(got) {
		t.Errorf("clamped name is not valid UTF-8: %q", got)
	}
	if len(got) > MaxDisplayNameLen || len(got) == 0 {
		t.Errorf("clamped name length = %d, want 1..%d", len(got), MaxDisplayNameLen)
	}
}
