// File: internal/variation/variation_test.go
package variation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

func testMotif() schemas.MotifSeed {
	return schemas.MotifSeed{
		ID:         "m-src",
		Type:       schemas.MotifMelodic,
		Key:        "A",
		Scale:      "minor",
		LengthBars: 1,
		Notes: []schemas.Note{
			{Pitch: 69, Time: 0, Duration: 0.5, Velocity: 100},
			{Pitch: 71, Time: 1, Duration: 0.5, Velocity: 90},
			{Pitch: 72, Time: 2, Duration: 0.5, Velocity: 95},
			{Pitch: 71, Time: 3, Duration: 0.5, Velocity: 90},
		},
	}
}

func TestApply(t *testing.T) {
	src := testMotif()

	t.Run("transpose shifts up a whole tone", func(t *testing.T) {
		out, err := Apply(OpTranspose, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 71, out.Notes[0].Pitch)
		assert.Equal(t, 69, src.Notes[0].Pitch, "source must not be mutated")
	})

	t.Run("invert pivots on the first note", func(t *testing.T) {
		out, err := Apply(OpInvert, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 69, out.Notes[0].Pitch)
		assert.Equal(t, 67, out.Notes[1].Pitch)
	})

	t.Run("retrograde keeps the time grid", func(t *testing.T) {
		out, err := Apply(OpRetrograde, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 71, out.Notes[0].Pitch)
		assert.Equal(t, 0.0, out.Notes[0].Time)
		assert.Equal(t, 69, out.Notes[3].Pitch)
	})

	t.Run("augment doubles the length", func(t *testing.T) {
		out, err := Apply(OpAugment, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, out.LengthBars)
		assert.Equal(t, 2.0, out.Notes[1].Time)
	})

	t.Run("unknown operator errors", func(t *testing.T) {
		_, err := Apply("granulate", src, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownOperator)
	})
}

func TestThin(t *testing.T) {
	out := Thin(testMotif().Notes)
	require.Len(t, out, 2)
	assert.Equal(t, 69, out[0].Pitch)
	assert.Equal(t, 72, out[1].Pitch)

	assert.Empty(t, Thin(nil))
}

func TestThicken(t *testing.T) {
	out := Thicken(testMotif().Notes)
	require.Len(t, out, 8)
	// Pairs share a time slot, an octave apart, in time order.
	for i := 0; i < len(out); i += 2 {
		assert.Equal(t, out[i].Time, out[i+1].Time)
		assert.Equal(t, out[i].Pitch+12, out[i+1].Pitch)
		if i > 0 {
			assert.GreaterOrEqual(t, out[i].Time, out[i-1].Time)
		}
	}
}

func TestRandomize(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := testMotif().Notes
	out := Randomize(src, rng)
	require.Len(t, out, len(src))
	for i := range out {
		diff := out[i].Pitch - src[i].Pitch
		assert.GreaterOrEqual(t, diff, -2)
		assert.LessOrEqual(t, diff, 2)
		assert.Equal(t, src[i].Time, out[i].Time)
	}
}

func TestPass(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	motifs := []schemas.MotifSeed{testMotif()}

	pass := Pass(1, motifs, []int{16, 32}, rng)

	t.Run("retained variations carry deltas above the floor", func(t *testing.T) {
		for _, v := range pass.Variations {
			assert.GreaterOrEqual(t, v.ImprovementDelta, float64(retentionFloor))
			assert.Equal(t, "m-src", v.SourceMotifID)
			assert.NotEqual(t, "m-src", v.Result.ID)
			assert.Contains(t, passOperators, v.Operator)
		}
	})

	t.Run("every transition bar gets a riser and an impact", func(t *testing.T) {
		require.Len(t, pass.Enhancements, 2)
		for i, bar := range []int{16, 32} {
			enh := pass.Enhancements[i]
			assert.Equal(t, bar, enh.AtBar)
			require.Len(t, enh.Events, 2)
			assert.Equal(t, "riser", enh.Events[0].Type)
			assert.Equal(t, float64(bar-4), enh.Events[0].PositionBars)
			assert.Equal(t, "impact", enh.Events[1].Type)
			assert.Equal(t, float64(bar), enh.Events[1].PositionBars)
		}
		assert.Len(t, pass.EarCandy, 4)
	})

	t.Run("risers near the top of the piece clamp to bar zero", func(t *testing.T) {
		early := Pass(2, nil, []int{2}, rng)
		require.Len(t, early.Enhancements, 1)
		assert.Equal(t, 0.0, early.Enhancements[0].Events[0].PositionBars)
		assert.Equal(t, 2.0, early.Enhancements[0].Events[0].DurationBars)
	})
}

func TestFill(t *testing.T) {
	build := schemas.ArrangementSection{
		ID: "s-build", Type: schemas.SectionBuild, StartBar: 8, LengthBars: 8, EnergyLevel: 60,
	}
	drop := schemas.ArrangementSection{
		ID: "s-drop", Type: schemas.SectionDrop, StartBar: 16, LengthBars: 16, EnergyLevel: 95,
	}
	breakdown := schemas.ArrangementSection{
		ID: "s-bd", Type: schemas.SectionBreakdown, StartBar: 32, LengthBars: 8, EnergyLevel: 30,
	}

	t.Run("building transition rolls the snare", func(t *testing.T) {
		fill := Fill(build, drop, 2, 4)
		assert.Equal(t, 14, fill.StartBar)
		require.Len(t, fill.Events, 1)
		assert.Equal(t, "riser", fill.Events[0].Type)

		require.Len(t, fill.FillNotes, 32, "two bars of 16ths at 4 beats per bar")
		for i := 1; i < len(fill.FillNotes); i++ {
			assert.GreaterOrEqual(t, fill.FillNotes[i].Velocity, fill.FillNotes[i-1].Velocity,
				"roll velocity must never decrease")
		}
		assert.Equal(t, 60, fill.FillNotes[0].Velocity)
		last := fill.FillNotes[len(fill.FillNotes)-1]
		assert.Greater(t, last.Velocity, 120)
	})

	t.Run("releasing transition reverses out", func(t *testing.T) {
		fill := Fill(drop, breakdown, 1, 4)
		assert.Empty(t, fill.FillNotes)
		require.Len(t, fill.Events, 2)
		assert.Equal(t, "downlifter", fill.Events[0].Type)
		assert.Equal(t, "reverse", fill.Events[1].Type)
		// The reverse occupies the final half beat of the fill.
		assert.InDelta(t, 31.875, fill.Events[1].PositionBars, 1e-9)
		assert.InDelta(t, 0.125, fill.Events[1].DurationBars, 1e-9)
	})
}
