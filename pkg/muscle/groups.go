// Package muscle defines the closed set of trainable muscle groups.
package muscle

import (
	"strings"
)

// Muscle group names as they appear in requests and responses.
const (
	Abdominals = "abdominals"
	Abductors  = "abductors"
	Adductors  = "adductors"
	Biceps     = "biceps"
	Calves     = "calves"
	Chest      = "chest"
	Forearms   = "forearms"
	Glutes     = "glutes"
	Hamstrings = "hamstrings"
	Lats       = "lats"
	LowerBack  = "lowerBack"
	MiddleBack = "middleBack"
	Neck       = "neck"
	Quadriceps = "quadriceps"
	Shoulders  = "shoulders"
	Traps      = "traps"
	Triceps    = "triceps"
)

var groups = [...]string{
	Abdominals, Abductors, Adductors, Biceps, Calves, Chest, Forearms, Glutes,
	Hamstrings, Lats, LowerBack, MiddleBack, Neck, Quadriceps, Shoulders,
	Traps, Triceps,
}

// lookup is keyed by the folded form produced by fold.
var lookup = func() map[string]string {
	m := make(map[string]string, len(groups))
	for _, g := range groups {
		m[fold(g)] = g
	}
	return m
}()

// Count is the size of the muscle group set.
const Count = len(groups)

// All returns the muscle groups in canonical order. The slice is a copy.
func All() []string {
	out := make([]string, len(groups))
	copy(out, groups[:])
	return out
}

// IsValid reports whether name is exactly one of the canonical group names.
func IsValid(name string) bool {
	canonical, ok := Normalize(name)
	return ok && canonical == name
}

// Normalize resolves name to its canonical spelling, ignoring case,
// whitespace, hyphens and underscores ("Lower Back", "lowerback" and
// "lower_back" all resolve to lowerBack).
func Normalize(name string) (string, bool) {
	canonical, ok := lookup[fold(name)]
	return canonical, ok
}

// Index returns the canonical position of a group, or -1.
func Index(name string) int {
	for i, g := range groups {
		if g == name {
			return i
		}
	}
	return -1
}

func fold(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '\t', '-', '_':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
