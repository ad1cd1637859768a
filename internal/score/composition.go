// File: internal/score/composition.go
package score

import (
	"math"
	"sort"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// timeTolerance is the alignment window, in beats, used when pairing notes
// across voices and matching bass onsets to chord starts.
const timeTolerance = 0.1

// Composition scores a section's coherence:
// 0.3*voice leading + 0.25*density + 0.2*collision complement +
// 0.25*harmonic clarity.
func Composition(c schemas.SectionComposition, energyLevel, lengthBars int) schemas.CompositionScore {
	s := schemas.CompositionScore{
		VoiceLeading:      VoiceLeadingSanity(c.Voices),
		Density:           DensityScore(c.Voices, energyLevel, lengthBars),
		RegisterCollision: RegisterCollisions(c.Voices),
		HarmonicClarity:   HarmonicClarity(c),
	}
	collisionPenalty := math.Min(5*float64(s.RegisterCollision), 50)
	s.Overall = math.Round(0.3*s.VoiceLeading + 0.25*s.Density +
		0.2*(100-collisionPenalty) + 0.25*s.HarmonicClarity)
	return s
}

// VoiceLeadingSanity penalizes parallel fifths and octaves, blended with
// voice independence. A single voice trivially scores 100.
func VoiceLeadingSanity(voices []schemas.Voice) float64 {
	if len(voices) < 2 {
		return 100
	}
	fifths, octaves := 0, 0
	for i := 0; i < len(voices); i++ {
		for j := i + 1; j < len(voices); j++ {
			f, o := CountParallels(voices[i].Notes, voices[j].Notes)
			fifths += f
			octaves += o
		}
	}
	raw := 100 - 5*float64(fifths) - 10*float64(octaves)
	if raw < 0 {
		raw = 0
	}
	return schemas.ClampScore(0.7*raw + 0.3*voiceIndependence(voices))
}

// CountParallels detects parallel fifths and octaves between two voices.
// For each consecutive-in-time note pair of voice A, the nearest-in-time
// notes of voice B (within the tolerance) are matched; a parallel requires
// the pitch-class interval (mod 12) to stay 7 (fifth) or 0 (octave) across
// both pairs while both voices move in the same direction.
func CountParallels(a, b []schemas.Note) (fifths, octaves int) {
	as := timeSorted(a)
	for i := 1; i < len(as); i++ {
		prevA, curA := as[i-1], as[i]

		prevB, ok1 := nearestAt(b, prevA.Time)
		curB, ok2 := nearestAt(b, curA.Time)
		if !ok1 || !ok2 {
			continue
		}

		motionA := sign(curA.Pitch - prevA.Pitch)
		motionB := sign(curB.Pitch - prevB.Pitch)
		if motionA == 0 || motionA != motionB {
			continue // oblique or contrary motion is never parallel
		}

		iv1 := pcInterval(prevA.Pitch, prevB.Pitch)
		iv2 := pcInterval(curA.Pitch, curB.Pitch)
		if iv1 != iv2 {
			continue
		}
		switch iv1 {
		case 7:
			fifths++
		case 0:
			octaves++
		}
	}
	return fifths, octaves
}

// voiceIndependence measures how often time-aligned voice pairs move in
// different directions. No measurable motion reads as fully independent.
func voiceIndependence(voices []schemas.Voice) float64 {
	same, total := 0, 0
	for i := 0; i < len(voices); i++ {
		for j := i + 1; j < len(voices); j++ {
			as := timeSorted(voices[i].Notes)
			for k := 1; k < len(as); k++ {
				prevB, ok1 := nearestAt(voices[j].Notes, as[k-1].Time)
				curB, ok2 := nearestAt(voices[j].Notes, as[k].Time)
				if !ok1 || !ok2 {
					continue
				}
				ma := sign(as[k].Pitch - as[k-1].Pitch)
				mb := sign(curB.Pitch - prevB.Pitch)
				if ma == 0 && mb == 0 {
					continue
				}
				total++
				if ma == mb {
					same++
				}
			}
		}
	}
	if total == 0 {
		return 100
	}
	return 100 * float64(total-same) / float64(total)
}

// DensityScore compares total notes-per-bar against the energy-banded
// target range. Inside the band scores 100; shortfall costs 5 per note,
// excess 3, floored at 0.
func DensityScore(voices []schemas.Voice, energyLevel, lengthBars int) float64 {
	if lengthBars <= 0 {
		lengthBars = 1
	}
	total := 0
	for _, v := range voices {
		total += len(v.Notes)
	}
	perBar := float64(total) / float64(lengthBars)

	var lo, hi float64
	switch {
	case energyLevel < 30:
		lo, hi = 2, 10
	case energyLevel < 70:
		lo, hi = 10, 30
	default:
		lo, hi = 30, 60
	}

	switch {
	case perBar >= lo && perBar <= hi:
		return 100
	case perBar < lo:
		return schemas.ClampScore(100 - 5*(lo-perBar))
	default:
		return schemas.ClampScore(100 - 3*(perBar-hi))
	}
}

// RegisterCollisions counts cross-role note pairs that overlap in time with
// a pitch difference in (0,3] semitones. The count is unbounded.
func RegisterCollisions(voices []schemas.Voice) int {
	collisions := 0
	for i := 0; i < len(voices); i++ {
		for j := i + 1; j < len(voices); j++ {
			if voices[i].Role == voices[j].Role {
				continue
			}
			for _, na := range voices[i].Notes {
				for _, nb := range voices[j].Notes {
					if !overlap(na, nb) {
						continue
					}
					d := na.Pitch - nb.Pitch
					if d < 0 {
						d = -d
					}
					if d > 0 && d <= 3 {
						collisions++
					}
				}
			}
		}
	}
	return collisions
}

// HarmonicClarity measures how well the bass articulates the declared
// harmony. A composition with no harmony progression returns exactly 70.
func HarmonicClarity(c schemas.SectionComposition) float64 {
	if len(c.Harmony) == 0 {
		return 70
	}

	var bassNotes []schemas.Note
	for _, v := range c.Voices {
		if v.Role == schemas.VoiceBass {
			bassNotes = append(bassNotes, v.Notes...)
		}
	}

	aligned := 0
	for _, ev := range c.Harmony {
		for _, n := range bassNotes {
			if math.Abs(n.Time-ev.StartBeat) <= timeTolerance {
				aligned++
				break
			}
		}
	}
	fraction := float64(aligned) / float64(len(c.Harmony))

	// -10 .. +20 around the base of 80 as alignment improves.
	raw := 80 + (30*fraction - 10)
	return schemas.ClampScore(0.7*raw + 0.3*voiceIndependence(c.Voices))
}

// -- helpers --

func timeSorted(notes []schemas.Note) []schemas.Note {
	out := make([]schemas.Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// nearestAt finds the note closest in time to t, accepting only matches
// within the alignment tolerance.
func nearestAt(notes []schemas.Note, t float64) (schemas.Note, bool) {
	best := schemas.Note{}
	bestDist := math.Inf(1)
	for _, n := range notes {
		d := math.Abs(n.Time - t)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	if bestDist <= timeTolerance {
		return best, true
	}
	return schemas.Note{}, false
}

func pcInterval(a, b int) int {
	d := (a - b) % 12
	if d < 0 {
		d += 12
	}
	return d
}

func overlap(a, b schemas.Note) bool {
	return a.Time < b.Time+b.Duration && b.Time < a.Time+a.Duration
}
