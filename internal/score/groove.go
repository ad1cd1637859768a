// File: internal/score/groove.go

// Package score implements the four scoring engines: groove, motif,
// composition coherence and mix. Every function here is total over
// well-formed input, never consumes randomness, and returns values bounded
// to [0,100] (raw counts like register collisions excepted). Empty inputs
// take documented fallbacks instead of failing.
package score

import (
	"math"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/rhythm"
)

// Groove scores one candidate against a style prior:
// 0.4*danceability + 0.35*pocket + 0.25*genre fit, rounded.
func Groove(c schemas.GrooveCandidate, prior schemas.StylePrior) schemas.GrooveScore {
	s := schemas.GrooveScore{
		Danceability: Danceability(c),
		Pocket:       Pocket(c),
		GenreFit:     GrooveGenreFit(c, prior),
	}
	s.Overall = math.Round(0.4*s.Danceability + 0.35*s.Pocket + 0.25*s.GenreFit)
	return s
}

// Danceability blends kick placement, snare backbeat and hat groove, then
// applies the syncopation and tempo bonuses.
func Danceability(c schemas.GrooveCandidate) float64 {
	raw := 0.4*KickPlacement(c.Kick) + 0.35*SnareBackbeat(c.Snare, c.Meter) + 0.25*HatGroove(c.Hat)

	// Moderate syncopation rewards, extremes penalize.
	sync := (rhythm.MeasureSyncopation(c.Kick) + rhythm.MeasureSyncopation(c.Snare)) / 2
	if sync >= 20 && sync <= 60 {
		raw += 10
	} else if sync < 10 || sync > 80 {
		raw -= 10
	}

	// The dance-floor tempo band.
	if c.Tempo >= 115 && c.Tempo <= 135 {
		raw += 10
	} else if c.Tempo < 90 || c.Tempo > 160 {
		raw -= 10
	}
	return schemas.ClampScore(raw)
}

// KickPlacement rewards downbeat anchoring and even spacing. An empty
// pattern scores 0.
func KickPlacement(kick []int) float64 {
	if len(kick) == 0 {
		return 0
	}
	raw := 10.0 // base for having any kick at all

	has := stepSet(kick)
	if has[0] {
		raw += 40
	}
	if has[8] {
		raw += 20
	}

	// Even spacing: up to 30 as variance approaches zero.
	variance := rhythm.SpacingVariance(kick)
	evenness := 30 * (1 - variance/16)
	if evenness < 0 {
		evenness = 0
	}
	raw += evenness

	// Sparsity and density penalties.
	if len(kick) < 2 {
		raw -= 15
	}
	if len(kick) > 8 {
		raw -= float64(len(kick)-8) * 5
	}
	return schemas.ClampScore(raw)
}

// SnareBackbeat scores the classic 2-and-4 in 4/4. Empty patterns score 0;
// meters without a defined backbeat get a neutral 50.
func SnareBackbeat(snare []int, meter string) float64 {
	if len(snare) == 0 {
		return 0
	}
	if meter != "4/4" {
		return 50
	}
	raw := 0.0
	has := stepSet(snare)
	if has[4] {
		raw += 40
	}
	if has[12] {
		raw += 40
	}
	if has[4] && has[12] {
		raw += 10
	}
	if has[0] {
		raw -= 20 // a snare on the downbeat fights the kick
	}
	return schemas.ClampScore(raw)
}

// HatGroove scores hat density, off-beat feel and spacing variety. An empty
// hat pattern is acceptable (sparse percussion is a style), so it returns a
// fixed neutral 30 rather than 0.
func HatGroove(hat []int) float64 {
	if len(hat) == 0 {
		return 30
	}
	raw := 50.0

	density := float64(len(hat)) / 16
	if density >= 0.25 && density <= 0.75 {
		raw += 20
	} else {
		raw -= 10
	}

	off := 0
	for _, s := range hat {
		if s%2 == 1 || s%4 == 2 {
			off++
		}
	}
	offRatio := float64(off) / float64(len(hat))
	if offRatio >= 0.3 && offRatio <= 0.7 {
		raw += 15
	}

	if distinctSpacings(hat) >= 2 {
		raw += 15
	}
	return schemas.ClampScore(raw)
}

// Pocket scores how "planted" the groove feels: humanization in the sweet
// spot, swing in a musical band, and kick/snare interplay.
func Pocket(c schemas.GrooveCandidate) float64 {
	raw := 70.0

	// Sweet-spot humanization: a little jitter breathes, too much smears.
	if c.TimingJitterMs >= 5 && c.TimingJitterMs <= 15 {
		raw += 15
	}
	if c.Swing >= 10 && c.Swing <= 30 {
		raw += 10
	}
	if c.TimingJitterMs > 25 {
		raw -= 15
	}

	// Kick and snare answering each other 2-6 steps apart.
	interplay := false
	for _, k := range c.Kick {
		for _, s := range c.Snare {
			d := k - s
			if d < 0 {
				d = -d
			}
			if d >= 2 && d <= 6 {
				interplay = true
			}
		}
	}
	if interplay {
		raw += 10
	}
	return schemas.ClampScore(raw)
}

// GrooveGenreFit bands the candidate's tempo and swing distance from the
// prior's signature.
func GrooveGenreFit(c schemas.GrooveCandidate, prior schemas.StylePrior) float64 {
	raw := 50.0

	tempoDist := math.Abs(c.Tempo - prior.BPM.Typical)
	variance := prior.BPM.Variance
	if variance <= 0 {
		variance = 5
	}
	switch {
	case tempoDist <= variance:
		raw += 25
	case tempoDist <= 2*variance:
		raw += 10
	default:
		raw -= 15
	}

	swingDist := math.Abs(c.Swing - prior.Swing.Amount)
	switch {
	case swingDist <= 10:
		raw += 15
	case swingDist <= 25:
		raw += 5
	default:
		raw -= 10
	}

	if c.Meter == "4/4" {
		raw += 10
	}
	return schemas.ClampScore(raw)
}

func stepSet(pattern []int) map[int]bool {
	out := make(map[int]bool, len(pattern))
	for _, s := range pattern {
		out[s] = true
	}
	return out
}

func distinctSpacings(pattern []int) int {
	seen := map[int]bool{}
	for _, sp := range rhythm.InterOnsetSpacings(pattern) {
		seen[sp] = true
	}
	return len(seen)
}
