// File: internal/variation/operators.go

// Package variation mutates selected motifs through a small operator
// catalog, places ear candy around section transitions, and generates the
// fills that carry one section into the next.
package variation

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/theory"
)

// Operator names accepted by Apply.
const (
	OpTranspose  = "transpose"
	OpInvert     = "invert"
	OpRetrograde = "retrograde"
	OpAugment    = "augment"
	OpDiminish   = "diminish"
	OpThin       = "thin"
	OpThicken    = "thicken"
	OpRandomize  = "randomize"
)

// ErrUnknownOperator is returned by Apply for names outside the catalog.
var ErrUnknownOperator = fmt.Errorf("unknown variation operator")

// Apply runs one named operator over a motif's notes and returns the varied
// copy. Only the randomize operator consumes randomness; rng may be nil for
// the rest.
func Apply(op string, seed schemas.MotifSeed, rng *rand.Rand) (schemas.MotifSeed, error) {
	out := seed
	switch op {
	case OpTranspose:
		out.Notes = theory.Transpose(seed.Notes, 2)
	case OpInvert:
		out.Notes = theory.Invert(seed.Notes, pivotPitch(seed.Notes))
	case OpRetrograde:
		out.Notes = theory.Retrograde(seed.Notes)
	case OpAugment:
		out.Notes = theory.Augment(seed.Notes, 2)
		out.LengthBars = seed.LengthBars * 2
	case OpDiminish:
		out.Notes = theory.Diminish(seed.Notes, 2)
	case OpThin:
		out.Notes = Thin(seed.Notes)
	case OpThicken:
		out.Notes = Thicken(seed.Notes)
	case OpRandomize:
		out.Notes = Randomize(seed.Notes, rng)
	default:
		return schemas.MotifSeed{}, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	return out, nil
}

// pivotPitch picks the inversion axis: the first note's pitch, so the motif
// still starts in the same place.
func pivotPitch(notes []schemas.Note) int {
	if len(notes) == 0 {
		return 60
	}
	return notes[0].Pitch
}

// Thin keeps every other note by index, starting from the first.
func Thin(notes []schemas.Note) []schemas.Note {
	var out []schemas.Note
	for i, n := range notes {
		if i%2 == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Thicken duplicates every note one octave up, merging the copies into a
// single time-sorted stream.
func Thicken(notes []schemas.Note) []schemas.Note {
	out := make([]schemas.Note, 0, 2*len(notes))
	for _, n := range notes {
		out = append(out, n)
		n.Pitch = theory.ClampPitch(n.Pitch + 12)
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// Randomize shifts every pitch by an independent offset in [-2,2].
func Randomize(notes []schemas.Note, rng *rand.Rand) []schemas.Note {
	out := make([]schemas.Note, len(notes))
	for i, n := range notes {
		n.Pitch = theory.ClampPitch(n.Pitch + rng.Intn(5) - 2)
		out[i] = n
	}
	return out
}
