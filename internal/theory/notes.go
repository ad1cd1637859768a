// File: internal/theory/notes.go

// Package theory implements the symbolic music-theory utilities the
// generators and scorers are built on: pitch-class math, pitch name
// conversion, scale and chord interval tables, and the pure note-sequence
// transforms used by the variation engine.
package theory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// PitchClassNames maps pitch class 0-11 to its canonical (sharp) spelling.
var PitchClassNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// noteLetters maps a letter to its natural pitch class.
var noteLetters = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// ErrBadNoteName is wrapped by all note-name parse failures.
var ErrBadNoteName = fmt.Errorf("malformed note name")

// ParseNote converts a name like "C4", "F#3" or "Bb2" to a MIDI pitch.
// Sharps are canonical; flats normalize to the enharmonic sharp class.
// C4 == 60. Returns a descriptive error for malformed syntax.
func ParseNote(name string) (int, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrBadNoteName)
	}

	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	pc, ok := noteLetters[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no note letter A-G", ErrBadNoteName, name)
	}

	rest := s[1:]
	for len(rest) > 0 {
		if rest[0] == '#' {
			pc++
			rest = rest[1:]
		} else if rest[0] == 'b' {
			pc--
			rest = rest[1:]
		} else {
			break
		}
	}
	pc = ((pc % 12) + 12) % 12

	if rest == "" {
		return 0, fmt.Errorf("%w: %q is missing an octave", ErrBadNoteName, name)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q has a non-numeric octave", ErrBadNoteName, name)
	}

	midi := (octave+1)*12 + pc
	if midi < schemas.MinMIDI || midi > schemas.MaxMIDI {
		return 0, fmt.Errorf("%w: %q is outside the MIDI range", ErrBadNoteName, name)
	}
	return midi, nil
}

// ParsePitchClass resolves a bare key name like "C", "F#" or "Eb" to its
// pitch class. Best-effort: flats fold onto sharps.
func ParsePitchClass(name string) (int, error) {
	midi, err := ParseNote(strings.TrimSpace(name) + "4")
	if err != nil {
		return 0, err
	}
	return midi % 12, nil
}

// NoteName renders a MIDI pitch as its sharp-spelled name with octave.
func NoteName(midi int) string {
	pc := ((midi % 12) + 12) % 12
	octave := midi/12 - 1
	return fmt.Sprintf("%s%d", PitchClassNames[pc], octave)
}

// PitchClass returns the pitch class of a MIDI pitch.
func PitchClass(midi int) int {
	return ((midi % 12) + 12) % 12
}

// ClampPitch confines a pitch to the MIDI range.
func ClampPitch(p int) int {
	if p < schemas.MinMIDI {
		return schemas.MinMIDI
	}
	if p > schemas.MaxMIDI {
		return schemas.MaxMIDI
	}
	return p
}

// ClampVelocity confines a velocity to the MIDI range.
func ClampVelocity(v int) int {
	if v < schemas.MinMIDI {
		return schemas.MinMIDI
	}
	if v > schemas.MaxMIDI {
		return schemas.MaxMIDI
	}
	return v
}
