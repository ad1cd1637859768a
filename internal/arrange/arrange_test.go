// File: internal/arrange/arrange_test.go
package arrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/generate"
)

func TestStructure(t *testing.T) {
	t.Run("unknown archetype errors", func(t *testing.T) {
		_, err := Structure("prog-metal-opera", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownArchetype)
	})

	t.Run("sections are contiguous and sum to total", func(t *testing.T) {
		m, err := Structure("club", 0)
		require.NoError(t, err)

		bar := 0
		for _, s := range m.Sections {
			assert.Equal(t, bar, s.StartBar)
			assert.Positive(t, s.LengthBars)
			bar += s.LengthBars
		}
		assert.Equal(t, m.TotalBars, bar)
		assert.True(t, CheckStructure(m).Valid)
	})

	t.Run("repeated types get numeric suffixes", func(t *testing.T) {
		m, err := Structure("club", 0)
		require.NoError(t, err)

		var names []string
		for _, s := range m.Sections {
			if s.Type == schemas.SectionDrop {
				names = append(names, s.Name)
			}
		}
		require.Len(t, names, 2)
		assert.Equal(t, "drop", names[0])
		assert.Equal(t, "drop 2", names[1])
	})

	t.Run("energy curve is a step function", func(t *testing.T) {
		m, err := Structure("minimal", 0)
		require.NoError(t, err)
		require.Len(t, m.EnergyCurve, 2*len(m.Sections))
		for i, s := range m.Sections {
			start, end := m.EnergyCurve[2*i], m.EnergyCurve[2*i+1]
			assert.Equal(t, s.StartBar, start.Bar)
			assert.Equal(t, s.StartBar+s.LengthBars, end.Bar)
			assert.Equal(t, s.EnergyLevel, start.Energy)
			assert.Equal(t, s.EnergyLevel, end.Energy)
		}
	})

	t.Run("key moments mark drops and builds", func(t *testing.T) {
		m, err := Structure("club", 0)
		require.NoError(t, err)

		moments := map[int]string{}
		for _, km := range m.KeyMoments {
			moments[km.Bar] = km.Label
		}
		for _, s := range m.Sections {
			switch s.Type {
			case schemas.SectionDrop, schemas.SectionBuild, schemas.SectionBreakdown:
				assert.Contains(t, moments, s.StartBar)
			case schemas.SectionIntro, schemas.SectionOutro:
				assert.NotContains(t, moments, s.StartBar)
			}
		}
	})

	t.Run("rescaling hits the target exactly", func(t *testing.T) {
		for _, target := range []int{32, 64, 100, 128} {
			m, err := Structure("pop", target)
			require.NoError(t, err)
			assert.Equal(t, target, m.TotalBars)

			bar := 0
			for _, s := range m.Sections {
				assert.Equal(t, bar, s.StartBar)
				bar += s.LengthBars
			}
			assert.Equal(t, target, bar)
			assert.True(t, CheckStructure(m).Valid)
		}
	})

	t.Run("build into drop resolves to impact", func(t *testing.T) {
		m, err := Structure("minimal", 0)
		require.NoError(t, err)
		for i := 1; i < len(m.Sections); i++ {
			if m.Sections[i-1].Type == schemas.SectionBuild && m.Sections[i].Type == schemas.SectionDrop {
				assert.Equal(t, "impact", m.Sections[i].TransitionIn)
				assert.Equal(t, "impact", m.Sections[i-1].TransitionOut)
			}
		}
	})
}

func TestTransitionType(t *testing.T) {
	assert.Equal(t, "impact", TransitionType(schemas.SectionBuild, schemas.SectionDrop))
	assert.Equal(t, "crossfade", TransitionType(schemas.SectionOutro, schemas.SectionIntro))
}

func TestCheckEnergySmoothness(t *testing.T) {
	t.Run("drop jumps are expected", func(t *testing.T) {
		m, err := Structure("club", 0)
		require.NoError(t, err)
		res := CheckEnergySmoothness(m)
		assert.True(t, res.Valid)
	})

	t.Run("abrupt non-drop jump warns", func(t *testing.T) {
		m := schemas.MacroStructure{
			TotalBars: 16,
			Sections: []schemas.ArrangementSection{
				{Name: "intro", Type: schemas.SectionIntro, StartBar: 0, LengthBars: 8, EnergyLevel: 10},
				{Name: "chorus", Type: schemas.SectionChorus, StartBar: 8, LengthBars: 8, EnergyLevel: 95},
			},
		}
		res := CheckEnergySmoothness(m)
		assert.NotEmpty(t, res.Warnings)
		assert.NotEmpty(t, res.Suggestions)
	})
}

func testSeeds() []schemas.MotifSeed {
	mk := func(id string, mt schemas.MotifType, pitches []int) schemas.MotifSeed {
		notes := make([]schemas.Note, len(pitches))
		for i, p := range pitches {
			notes[i] = schemas.Note{Pitch: p, Time: float64(i), Duration: 0.5, Velocity: 95}
		}
		return schemas.MotifSeed{ID: id, Type: mt, Notes: notes, LengthBars: 1, Key: "A", Scale: "minor"}
	}
	return []schemas.MotifSeed{
		mk("mel-1", schemas.MotifMelodic, []int{69, 71, 72, 74}),
		mk("mel-2", schemas.MotifMelodic, []int{76, 74, 72, 71}),
		mk("rhy-1", schemas.MotifRhythmic, []int{45, 45, 45, 45}),
		mk("har-1", schemas.MotifHarmonic, []int{57, 60, 64}),
		mk("tex-1", schemas.MotifTextural, []int{81, 83, 84}),
	}
}

func TestComposeSection(t *testing.T) {
	t.Run("drop carries bass, topline, pad and rhythm", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-drop", Type: schemas.SectionDrop, Name: "drop",
			StartBar: 16, LengthBars: 8, EnergyLevel: 95,
		}
		comp, err := ComposeSection(section, testSeeds(), "", "A", "minor", 4)
		require.NoError(t, err)

		roles := map[schemas.VoiceRole]bool{}
		for _, v := range comp.Voices {
			roles[v.Role] = true
		}
		assert.True(t, roles[schemas.VoiceBass])
		assert.True(t, roles[schemas.VoiceTopline])
		assert.True(t, roles[schemas.VoicePad])
		assert.True(t, roles[schemas.VoiceRhythm])
		assert.False(t, roles[schemas.VoiceHarmony], "harmony only appears in breakdowns")
		assert.Equal(t, 10, comp.DensityLevel)
	})

	t.Run("quiet intro carries nothing", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-intro", Type: schemas.SectionIntro, Name: "intro",
			StartBar: 0, LengthBars: 8, EnergyLevel: 10,
		}
		comp, err := ComposeSection(section, testSeeds(), "", "A", "minor", 4)
		require.NoError(t, err)
		assert.Empty(t, comp.Voices)
	})

	t.Run("breakdown gets the harmony voice", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-bd", Type: schemas.SectionBreakdown, Name: "breakdown",
			StartBar: 32, LengthBars: 8, EnergyLevel: 30,
		}
		comp, err := ComposeSection(section, testSeeds(), "", "A", "minor", 4)
		require.NoError(t, err)

		roles := map[schemas.VoiceRole]bool{}
		for _, v := range comp.Voices {
			roles[v.Role] = true
		}
		assert.True(t, roles[schemas.VoiceHarmony])
		assert.False(t, roles[schemas.VoiceBass], "energy 30 is below the bass gate")
	})

	t.Run("first matching motif wins regardless of order quality", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-v", Type: schemas.SectionVerse, Name: "verse",
			StartBar: 8, LengthBars: 4, EnergyLevel: 45,
		}
		comp, err := ComposeSection(section, testSeeds(), "", "A", "minor", 4)
		require.NoError(t, err)

		for _, v := range comp.Voices {
			if v.Role == schemas.VoiceTopline {
				// mel-1's first pitch, not mel-2's.
				require.NotEmpty(t, v.Notes)
				assert.Equal(t, 69, v.Notes[0].Pitch)
			}
		}
	})

	t.Run("tiling covers the section without overflow", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-d2", Type: schemas.SectionDrop, Name: "drop",
			StartBar: 0, LengthBars: 4, EnergyLevel: 90,
		}
		comp, err := ComposeSection(section, testSeeds(), "", "A", "minor", 4)
		require.NoError(t, err)

		sectionBeats := 16.0
		for _, v := range comp.Voices {
			require.NotEmpty(t, v.Notes)
			for _, n := range v.Notes {
				assert.Less(t, n.Time, sectionBeats)
			}
		}
	})

	t.Run("unknown progression errors", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-x", Type: schemas.SectionDrop, Name: "drop",
			StartBar: 0, LengthBars: 8, EnergyLevel: 90,
		}
		_, err := ComposeSection(section, testSeeds(), "nonexistent", "A", "minor", 4)
		require.Error(t, err)
		assert.ErrorIs(t, err, generate.ErrUnknownProgression)
	})

	t.Run("empty progression falls back to a tonic vamp", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-bd2", Type: schemas.SectionBreakdown, Name: "breakdown",
			StartBar: 0, LengthBars: 8, EnergyLevel: 30,
		}
		comp, err := ComposeSection(section, testSeeds(), "", "A", "minor", 4)
		require.NoError(t, err)
		require.NotEmpty(t, comp.Harmony)
		assert.Equal(t, "Am", comp.Harmony[0].Chord)
	})

	t.Run("register distribution places the bass low", func(t *testing.T) {
		section := schemas.ArrangementSection{
			ID: "s-d3", Type: schemas.SectionDrop, Name: "drop",
			StartBar: 0, LengthBars: 4, EnergyLevel: 90,
		}
		comp, err := ComposeSection(section, testSeeds(), "", "A", "minor", 4)
		require.NoError(t, err)
		require.NotNil(t, comp.RegisterDistribution)

		total := 0
		for _, c := range comp.RegisterDistribution {
			total += c
		}
		assert.Equal(t, len(comp.Voices), total)
	})
}
