// File: internal/theory/transforms.go
package theory

import "github.com/atelier-audio/arranger-cli/api/schemas"

// The variation operators below are pure Note[] -> Note[] maps. None of them
// mutates its input; callers rely on that to keep earlier pipeline stages
// immutable.

// Transpose shifts every pitch by the given number of semitones, clamped to
// the MIDI range.
func Transpose(notes []schemas.Note, semitones int) []schemas.Note {
	out := make([]schemas.Note, len(notes))
	for i, n := range notes {
		n.Pitch = ClampPitch(n.Pitch + semitones)
		out[i] = n
	}
	return out
}

// Invert reflects every pitch about a pivot: new = 2*pivot - old.
func Invert(notes []schemas.Note, pivot int) []schemas.Note {
	out := make([]schemas.Note, len(notes))
	for i, n := range notes {
		n.Pitch = ClampPitch(2*pivot - n.Pitch)
		out[i] = n
	}
	return out
}

// Retrograde reverses the pitch order while keeping the original time-slot
// grid: note i keeps its time and duration but takes the pitch and velocity
// of note len-1-i.
func Retrograde(notes []schemas.Note) []schemas.Note {
	out := make([]schemas.Note, len(notes))
	for i, n := range notes {
		src := notes[len(notes)-1-i]
		n.Pitch = src.Pitch
		n.Velocity = src.Velocity
		out[i] = n
	}
	return out
}

// Augment scales every note's time and duration by factor. A factor above 1
// stretches, below 1 compresses. Non-positive factors return a copy
// unchanged; a zero-length motif is not a meaningful augmentation target.
func Augment(notes []schemas.Note, factor float64) []schemas.Note {
	out := make([]schemas.Note, len(notes))
	if factor <= 0 {
		copy(out, notes)
		return out
	}
	for i, n := range notes {
		n.Time *= factor
		n.Duration *= factor
		out[i] = n
	}
	return out
}

// Diminish halves time and duration by the factor (the inverse of Augment).
func Diminish(notes []schemas.Note, factor float64) []schemas.Note {
	if factor <= 0 {
		out := make([]schemas.Note, len(notes))
		copy(out, notes)
		return out
	}
	return Augment(notes, 1/factor)
}
