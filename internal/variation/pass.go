// File: internal/variation/pass.go
package variation

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/score"
)

// passOperators are the operators a pass may draw for each motif. The wilder
// catalog entries (thicken, randomize, augment) are reserved for explicit
// operator requests.
var passOperators = []string{OpTranspose, OpInvert, OpThin}

// retentionFloor is the worst improvement delta a variation may have and
// still be kept.
const retentionFloor = -10

// Pass runs one variation pass: each motif gets one randomly chosen
// operator, and the result is retained only when it does not score
// meaningfully worse than its source. Ear candy is placed around every
// supplied transition bar independently of the motif work.
func Pass(passNumber int, motifs []schemas.MotifSeed, transitionBars []int, rng *rand.Rand) schemas.VariationPass {
	out := schemas.VariationPass{PassNumber: passNumber}
	prior := schemas.NeutralStylePrior()

	for _, m := range motifs {
		op := passOperators[rng.Intn(len(passOperators))]
		varied, err := Apply(op, m, rng)
		if err != nil {
			continue
		}
		varied.ID = uuid.NewString()

		before := score.Motif(m, prior).Overall
		after := score.Motif(varied, prior)
		delta := after.Overall - before
		if delta < retentionFloor {
			continue
		}
		out.Variations = append(out.Variations, schemas.Variation{
			Operator:         op,
			SourceMotifID:    m.ID,
			Result:           varied,
			Coherence:        after.Overall,
			ImprovementDelta: delta,
		})
	}

	for _, bar := range transitionBars {
		events := transitionCandy(bar)
		out.EarCandy = append(out.EarCandy, events...)
		out.Enhancements = append(out.Enhancements, schemas.TransitionEnhancement{
			AtBar:  bar,
			Events: events,
		})
	}
	return out
}

// transitionCandy is the standard pairing: a riser leading in, an impact on
// the bar itself.
func transitionCandy(bar int) []schemas.EarCandy {
	riserStart := float64(bar - 4)
	if riserStart < 0 {
		riserStart = 0
	}
	return []schemas.EarCandy{
		{Type: "riser", PositionBars: riserStart, DurationBars: float64(bar) - riserStart},
		{Type: "impact", PositionBars: float64(bar), DurationBars: 0.25},
	}
}

// Fill generates the transition fill between two adjacent sections. The
// branch is on energy direction: a rising transition gets a riser and a
// velocity-crescendo snare roll, a falling one gets a downlifter and a
// reverse tail.
func Fill(from, to schemas.ArrangementSection, durationBars float64, beatsPerBar float64) schemas.TransitionFill {
	fill := schemas.TransitionFill{
		FromSectionID: from.ID,
		ToSectionID:   to.ID,
		StartBar:      to.StartBar - int(durationBars),
		DurationBars:  durationBars,
	}
	if fill.StartBar < from.StartBar {
		fill.StartBar = from.StartBar
	}
	startBars := float64(fill.StartBar)

	if to.EnergyLevel > from.EnergyLevel {
		fill.Events = append(fill.Events, schemas.EarCandy{
			Type: "riser", PositionBars: startBars, DurationBars: durationBars,
		})
		fill.FillNotes = snareRoll(durationBars, beatsPerBar)
		return fill
	}

	fill.Events = append(fill.Events,
		schemas.EarCandy{Type: "downlifter", PositionBars: startBars, DurationBars: durationBars},
		schemas.EarCandy{
			Type:         "reverse",
			PositionBars: startBars + durationBars - 0.5/beatsPerBar,
			DurationBars: 0.5 / beatsPerBar,
		},
	)
	return fill
}

// snareRoll lays a 16th-note roll across the fill with a linear velocity
// crescendo from 60 up to 127. Times are beats relative to the fill start.
func snareRoll(durationBars, beatsPerBar float64) []schemas.Note {
	const snarePitch = 38
	totalBeats := durationBars * beatsPerBar
	count := int(totalBeats * 4)
	if count <= 0 {
		return nil
	}
	notes := make([]schemas.Note, count)
	for i := range notes {
		vel := 60 + int(float64(i)/float64(count)*67)
		if vel > 127 {
			vel = 127
		}
		notes[i] = schemas.Note{
			Pitch:    snarePitch,
			Time:     float64(i) * 0.25,
			Duration: 0.25,
			Velocity: vel,
		}
	}
	return notes
}
