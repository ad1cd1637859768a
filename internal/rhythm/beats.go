// File: internal/rhythm/beats.go

// Package rhythm provides the step-grid utilities under the groove generator:
// beat/subdivision math, swing and humanization offsets, euclidean pattern
// construction and pattern set algebra. All functions are pure; the
// humanization helpers take an explicit random source.
package rhythm

import (
	"math/rand"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// StepDuration returns the length of one grid step in beats.
func StepDuration(stepsPerBar int, beatsPerBar float64) float64 {
	if stepsPerBar <= 0 {
		return 0
	}
	return beatsPerBar / float64(stepsPerBar)
}

// StepToBeats converts a 0-based step index to its beat position.
func StepToBeats(step, stepsPerBar int, beatsPerBar float64) float64 {
	return float64(step) * StepDuration(stepsPerBar, beatsPerBar)
}

// SwingOffset returns the extra delay, in beats, applied to a step by a swing
// amount in percent [0,100]. Only odd subdivisions swing; at 100% the off-step
// lands two thirds of the way to the next one, the classic triplet feel.
func SwingOffset(step int, amount float64, stepsPerBar int, beatsPerBar float64) float64 {
	if step%2 == 0 || amount <= 0 {
		return 0
	}
	if amount > 100 {
		amount = 100
	}
	stepLen := StepDuration(stepsPerBar, beatsPerBar)
	// Full swing shifts the off-step by a third of a step pair.
	return (amount / 100.0) * stepLen / 3.0
}

// HumanizeTime draws a timing offset in beats from +-jitterMs at the given
// tempo. rng must not be nil.
func HumanizeTime(rng *rand.Rand, jitterMs, tempo float64) float64 {
	if jitterMs <= 0 || tempo <= 0 {
		return 0
	}
	beatMs := 60000.0 / tempo
	return (rng.Float64()*2 - 1) * jitterMs / beatMs
}

// HumanizeVelocity jitters a velocity by up to +-amount, clamped to MIDI
// bounds.
func HumanizeVelocity(rng *rand.Rand, velocity int, amount float64) int {
	if amount <= 0 {
		return velocity
	}
	v := velocity + int((rng.Float64()*2-1)*amount)
	if v < schemas.MinMIDI {
		return schemas.MinMIDI
	}
	if v > schemas.MaxMIDI {
		return schemas.MaxMIDI
	}
	return v
}

// MeasureSyncopation returns the percentage of hits that land off the
// quarter-note grid (steps 0, 4, 8, 12 of a 16-step bar). An empty pattern
// measures 0.
func MeasureSyncopation(pattern []int) float64 {
	if len(pattern) == 0 {
		return 0
	}
	off := 0
	for _, step := range pattern {
		if (step%16)%4 != 0 {
			off++
		}
	}
	return 100.0 * float64(off) / float64(len(pattern))
}

// InterOnsetSpacings returns the gaps between consecutive sorted step
// indices. Patterns with fewer than two hits have no spacings.
func InterOnsetSpacings(pattern []int) []int {
	sorted := sortedCopy(pattern)
	if len(sorted) < 2 {
		return nil
	}
	out := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		out = append(out, sorted[i]-sorted[i-1])
	}
	return out
}

// SpacingVariance returns the population variance of inter-onset spacings.
func SpacingVariance(pattern []int) float64 {
	sp := InterOnsetSpacings(pattern)
	if len(sp) == 0 {
		return 0
	}
	mean := 0.0
	for _, s := range sp {
		mean += float64(s)
	}
	mean /= float64(len(sp))
	variance := 0.0
	for _, s := range sp {
		d := float64(s) - mean
		variance += d * d
	}
	return variance / float64(len(sp))
}
