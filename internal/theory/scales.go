// File: internal/theory/scales.go
package theory

import (
	"fmt"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// scaleIntervals maps a mode name to its semitone offsets from the root.
// The five modes carried here are the ones the harmony generator has chord
// quality tables for.
var scaleIntervals = map[string][]int{
	"major":      {0, 2, 4, 5, 7, 9, 11},
	"minor":      {0, 2, 3, 5, 7, 8, 10},
	"dorian":     {0, 2, 3, 5, 7, 9, 10},
	"mixolydian": {0, 2, 4, 5, 7, 9, 10},
	"phrygian":   {0, 1, 3, 5, 7, 8, 10},
}

// ScaleIntervals returns the interval set for a mode, defaulting to natural
// minor for unknown names. Unknown modes are a soft condition: generation
// should keep going with a sensible default rather than abort.
func ScaleIntervals(mode string) []int {
	if iv, ok := scaleIntervals[mode]; ok {
		return iv
	}
	return scaleIntervals["minor"]
}

// KnownScale reports whether mode has a native interval table.
func KnownScale(mode string) bool {
	_, ok := scaleIntervals[mode]
	return ok
}

// ScalePitches expands a scale from a root pitch across the given number of
// octaves, ascending. The result stays within MIDI bounds; out-of-range
// degrees are dropped.
func ScalePitches(root int, mode string, octaves int) []int {
	iv := ScaleIntervals(mode)
	var out []int
	for oct := 0; oct < octaves; oct++ {
		for _, step := range iv {
			p := root + oct*12 + step
			if p > schemas.MaxMIDI {
				return out
			}
			if p >= schemas.MinMIDI {
				out = append(out, p)
			}
		}
	}
	return out
}

// DegreePitch returns the pitch of a 0-based scale degree relative to the
// root, carrying degrees past the octave upward.
func DegreePitch(root int, mode string, degree int) int {
	iv := ScaleIntervals(mode)
	n := len(iv)
	oct := degree / n
	idx := degree % n
	if idx < 0 {
		idx += n
		oct--
	}
	return ClampPitch(root + oct*12 + iv[idx])
}

// InScale reports whether a pitch's class belongs to the scale rooted at
// rootClass.
func InScale(pitch, rootClass int, mode string) bool {
	rel := ((PitchClass(pitch) - rootClass) % 12 + 12) % 12
	for _, step := range ScaleIntervals(mode) {
		if rel == step {
			return true
		}
	}
	return false
}

// Quantize snaps a pitch to the nearest member of the scale rooted at
// rootClass, preferring the lower neighbor on exact ties.
func Quantize(pitch, rootClass int, mode string) int {
	if InScale(pitch, rootClass, mode) {
		return pitch
	}
	for d := 1; d <= 6; d++ {
		if pitch-d >= schemas.MinMIDI && InScale(pitch-d, rootClass, mode) {
			return pitch - d
		}
		if pitch+d <= schemas.MaxMIDI && InScale(pitch+d, rootClass, mode) {
			return pitch + d
		}
	}
	return pitch
}

// ParseTimeSignature splits a meter string like "4/4" into numerator and
// denominator. A zero or non-numeric denominator is a hard failure.
func ParseTimeSignature(meter string) (int, int, error) {
	var num, den int
	if _, err := fmt.Sscanf(meter, "%d/%d", &num, &den); err != nil {
		return 0, 0, fmt.Errorf("invalid time signature %q: %w", meter, err)
	}
	if den == 0 {
		return 0, 0, fmt.Errorf("invalid time signature %q: zero denominator", meter)
	}
	if num <= 0 {
		return 0, 0, fmt.Errorf("invalid time signature %q: non-positive numerator", meter)
	}
	return num, den, nil
}

// BeatsPerBar converts a meter to its length in quarter-note beats.
func BeatsPerBar(meter string) (float64, error) {
	num, den, err := ParseTimeSignature(meter)
	if err != nil {
		return 0, err
	}
	return float64(num) * 4.0 / float64(den), nil
}
