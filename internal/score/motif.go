// File: internal/score/motif.go
package score

import (
	"math"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/theory"
)

// Motif scores one seed against a style prior:
// 0.25*memorability + 0.20*singability + 0.20*tension/relief +
// 0.15*novelty + 0.20*genre fit, rounded.
func Motif(m schemas.MotifSeed, prior schemas.StylePrior) schemas.MotifScore {
	s := schemas.MotifScore{
		Memorability:  Memorability(m.Notes),
		Singability:   Singability(m.Notes),
		TensionRelief: TensionRelief(m),
		Novelty:       Novelty(m.Notes),
		GenreFit:      MotifGenreFit(m, prior),
	}
	s.Overall = math.Round(0.25*s.Memorability + 0.20*s.Singability +
		0.20*s.TensionRelief + 0.15*s.Novelty + 0.20*s.GenreFit)
	return s
}

// Memorability blends contour clarity with repetition balance and penalizes
// unwieldy length or range.
func Memorability(notes []schemas.Note) float64 {
	raw := 0.4*contourScore(notes) + 0.6*repetitionBalance(notes)

	if len(notes) > 16 {
		raw -= 2 * float64(len(notes)-16)
	}
	if r := pitchRange(notes); r > 24 {
		raw -= 1.5 * float64(r-24)
	}
	return schemas.ClampScore(raw)
}

// contourScore rewards a clear dominant direction, a moderate amount of
// direction changes, and arch shapes.
func contourScore(notes []schemas.Note) float64 {
	raw := 50.0
	if len(notes) < 3 {
		return raw
	}

	ups, downs, changes, moves := 0, 0, 0, 0
	prevDir := 0
	for i := 1; i < len(notes); i++ {
		d := sign(notes[i].Pitch - notes[i-1].Pitch)
		if d == 0 {
			continue
		}
		moves++
		if d > 0 {
			ups++
		} else {
			downs++
		}
		if prevDir != 0 && d != prevDir {
			changes++
		}
		prevDir = d
	}
	if moves == 0 {
		return raw
	}

	dominant := float64(max(ups, downs)) / float64(moves)
	if dominant >= 0.6 {
		raw += 20
	}
	changeRatio := float64(changes) / float64(moves)
	if changeRatio >= 0.2 && changeRatio <= 0.5 {
		raw += 15
	}

	// Arch: first and second half trend in opposite directions.
	half := len(notes) / 2
	firstTrend := sign(notes[half-1].Pitch - notes[0].Pitch)
	secondTrend := sign(notes[len(notes)-1].Pitch - notes[half].Pitch)
	if firstTrend != 0 && secondTrend != 0 && firstTrend != secondTrend {
		raw += 15
	}
	return schemas.ClampScore(raw)
}

// repetitionBalance combines pitch and interval repetition into a single
// banded score: the sweet spot is partial repetition.
func repetitionBalance(notes []schemas.Note) float64 {
	if len(notes) < 2 {
		return 50
	}
	pitchRep := 1 - float64(distinctPitches(notes))/float64(len(notes))

	intervals := noteIntervals(notes)
	intervalRep := 0.0
	if len(intervals) > 0 {
		intervalRep = 1 - float64(distinctInts(intervals))/float64(len(intervals))
	}

	combined := (pitchRep + intervalRep) / 2
	switch {
	case combined >= 0.2 && combined <= 0.5:
		return 90
	case combined < 0.1:
		return 60
	case combined > 0.7:
		return 40
	default:
		return 50
	}
}

// Singability penalizes wide leaps and extreme ranges, and rewards room to
// breathe between notes.
func Singability(notes []schemas.Note) float64 {
	raw := 70.0
	if len(notes) < 2 {
		return raw
	}

	transitions := len(notes) - 1
	leaps := 0
	for _, iv := range noteIntervals(notes) {
		a := iv
		if a < 0 {
			a = -a
		}
		if a > 7 {
			leaps++
		}
		if a > 12 {
			leaps++ // very wide leaps count twice
		}
	}
	raw -= 40 * float64(leaps) / float64(transitions)

	switch r := pitchRange(notes); {
	case r <= 12:
		raw += 15
	case r <= 19:
		raw += 5
	default:
		raw -= 15
	}

	// Average rest between consecutive notes.
	totalRest := 0.0
	for i := 1; i < len(notes); i++ {
		gap := notes[i].Time - (notes[i-1].Time + notes[i-1].Duration)
		if gap > 0 {
			totalRest += gap
		}
	}
	if totalRest/float64(transitions) >= 0.25 {
		raw += 10
	}
	return schemas.ClampScore(raw)
}

// TensionRelief measures how the motif leans on and resolves out-of-scale
// color. Motifs under 3 notes are too short to judge and return 50.
func TensionRelief(m schemas.MotifSeed) float64 {
	if len(m.Notes) < 3 {
		return 50
	}
	rootClass, err := theory.ParsePitchClass(m.Key)
	if err != nil {
		rootClass = 0
	}

	raw := 50.0
	outside := 0
	for _, n := range m.Notes {
		if !theory.InScale(n.Pitch, rootClass, m.Scale) {
			outside++
		}
	}
	ratio := float64(outside) / float64(len(m.Notes))
	if ratio >= 0.1 && ratio <= 0.3 {
		raw += 25 // a taste of tension
	} else if ratio > 0.5 {
		raw -= 15 // mostly outside reads as wrong-key
	}

	final := m.Notes[len(m.Notes)-1]
	if theory.InScale(final.Pitch, rootClass, m.Scale) {
		raw += 15
		fc := theory.PitchClass(final.Pitch)
		fifth := theory.PitchClass(theory.DegreePitch(rootClass, m.Scale, 4))
		if fc == rootClass || fc == fifth {
			raw += 10 // resolves home
		}
	}
	return schemas.ClampScore(raw)
}

// Novelty blends interval variety with rhythmic interest and rewards a
// measured dose of spicy intervals.
func Novelty(notes []schemas.Note) float64 {
	if len(notes) < 2 {
		return 50
	}
	intervals := noteIntervals(notes)

	variety := 100 * float64(distinctInts(absAll(intervals))) / float64(len(intervals))
	rhythmic := 100 * float64(distinctDurations(notes)) / float64(len(notes))
	raw := 0.5*variety + 0.5*rhythmic

	spicy := 0
	for _, iv := range intervals {
		switch ((iv % 12) + 12) % 12 {
		case 1, 6, 10, 11: // minor 2nd, tritone, minor/major 7th
			spicy++
		}
	}
	spicyRatio := float64(spicy) / float64(len(intervals))
	if spicyRatio >= 0.1 && spicyRatio <= 0.3 {
		raw += 15
	}
	return schemas.ClampScore(raw)
}

// MotifGenreFit is a coarse structural fit: loopable lengths, workable
// density and a known scale read as genre-friendly.
func MotifGenreFit(m schemas.MotifSeed, prior schemas.StylePrior) float64 {
	raw := 50.0
	if m.LengthBars > 0 {
		perBar := float64(len(m.Notes)) / float64(m.LengthBars)
		if perBar >= 2 && perBar <= 12 {
			raw += 20
		}
		if m.LengthBars <= 2 {
			raw += 15
		}
	}
	if theory.KnownScale(m.Scale) {
		raw += 15
	}
	if prior.Norms.TypicalSectionBars > 0 && m.LengthBars > prior.Norms.TypicalSectionBars {
		raw -= 15 // longer than a typical section cannot loop
	}
	return schemas.ClampScore(raw)
}

// -- shared helpers --

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func noteIntervals(notes []schemas.Note) []int {
	if len(notes) < 2 {
		return nil
	}
	out := make([]int, 0, len(notes)-1)
	for i := 1; i < len(notes); i++ {
		out = append(out, notes[i].Pitch-notes[i-1].Pitch)
	}
	return out
}

func pitchRange(notes []schemas.Note) int {
	if len(notes) == 0 {
		return 0
	}
	lo, hi := notes[0].Pitch, notes[0].Pitch
	for _, n := range notes[1:] {
		if n.Pitch < lo {
			lo = n.Pitch
		}
		if n.Pitch > hi {
			hi = n.Pitch
		}
	}
	return hi - lo
}

func distinctPitches(notes []schemas.Note) int {
	seen := map[int]bool{}
	for _, n := range notes {
		seen[n.Pitch] = true
	}
	return len(seen)
}

func distinctDurations(notes []schemas.Note) int {
	seen := map[float64]bool{}
	for _, n := range notes {
		seen[n.Duration] = true
	}
	return len(seen)
}

func distinctInts(vals []int) int {
	seen := map[int]bool{}
	for _, v := range vals {
		seen[v] = true
	}
	return len(seen)
}

func absAll(vals []int) []int {
	out := make([]int, len(vals))
	for i, v := range vals {
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}
