// File: internal/theory/chords.go
package theory

// ChordIntervals maps a chord quality to its semitone offsets from the root.
var ChordIntervals = map[string][]int{
	"major":      {0, 4, 7},
	"minor":      {0, 3, 7},
	"diminished": {0, 3, 6},
	"seventh":    {0, 4, 7, 10},
	"sus4":       {0, 5, 7},
}

// chordSuffixes renders a quality as the symbol suffix used in progressions.
var chordSuffixes = map[string]string{
	"major":      "",
	"minor":      "m",
	"diminished": "dim",
	"seventh":    "7",
	"sus4":       "sus4",
}

// degreeQualities gives the diatonic chord quality for each scale degree
// (0-based) of the supported modes. Seven entries per mode.
var degreeQualities = map[string][7]string{
	"major":      {"major", "minor", "minor", "major", "major", "minor", "diminished"},
	"minor":      {"minor", "diminished", "major", "minor", "minor", "major", "major"},
	"dorian":     {"minor", "minor", "major", "major", "minor", "diminished", "major"},
	"mixolydian": {"major", "minor", "diminished", "major", "minor", "minor", "major"},
	"phrygian":   {"minor", "major", "major", "minor", "diminished", "major", "minor"},
}

// DegreeQuality resolves the diatonic quality of a 0-based scale degree in a
// mode, defaulting to minor-mode qualities for unknown modes and wrapping
// degrees past the octave.
func DegreeQuality(mode string, degree int) string {
	table, ok := degreeQualities[mode]
	if !ok {
		table = degreeQualities["minor"]
	}
	idx := degree % 7
	if idx < 0 {
		idx += 7
	}
	return table[idx]
}

// ChordSymbol renders the chord on a scale degree as a symbol like "Am",
// "F#dim" or "G7".
func ChordSymbol(rootClass int, mode string, degree int) string {
	pitch := DegreePitch(rootClass+60, mode, degree)
	quality := DegreeQuality(mode, degree)
	return PitchClassNames[PitchClass(pitch)] + chordSuffixes[quality]
}

// ChordPitches stamps a chord quality onto a root pitch.
func ChordPitches(root int, quality string) []int {
	iv, ok := ChordIntervals[quality]
	if !ok {
		iv = ChordIntervals["major"]
	}
	out := make([]int, 0, len(iv))
	for _, step := range iv {
		out = append(out, ClampPitch(root+step))
	}
	return out
}
