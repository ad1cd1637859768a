// File: internal/score/score_test.go
package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

func TestKickPlacement(t *testing.T) {
	t.Run("four on the floor scores perfect", func(t *testing.T) {
		score := KickPlacement([]int{0, 4, 8, 12})
		assert.Equal(t, 100.0, score)
	})

	t.Run("offbeat-only kick scores far lower", func(t *testing.T) {
		anchored := KickPlacement([]int{0, 4, 8, 12})
		floating := KickPlacement([]int{2, 6, 10, 14})
		assert.Equal(t, 40.0, floating)
		assert.Greater(t, anchored, floating)
	})

	t.Run("empty pattern scores zero", func(t *testing.T) {
		assert.Zero(t, KickPlacement(nil))
	})

	t.Run("overstuffed pattern is penalized", func(t *testing.T) {
		all := make([]int, 16)
		for i := range all {
			all[i] = i
		}
		assert.Less(t, KickPlacement(all), KickPlacement([]int{0, 4, 8, 12}))
	})
}

func TestSnareBackbeat(t *testing.T) {
	t.Run("clean backbeat", func(t *testing.T) {
		score := SnareBackbeat([]int{4, 12}, "4/4")
		assert.Equal(t, 90.0, score)
		assert.GreaterOrEqual(t, score, 80.0)
	})

	t.Run("downbeat snare costs twenty", func(t *testing.T) {
		score := SnareBackbeat([]int{0, 4, 12}, "4/4")
		assert.Equal(t, 70.0, score)
	})

	t.Run("empty pattern scores zero", func(t *testing.T) {
		assert.Zero(t, SnareBackbeat(nil, "4/4"))
	})

	t.Run("odd meters are neutral", func(t *testing.T) {
		assert.Equal(t, 50.0, SnareBackbeat([]int{3, 9}, "7/8"))
	})
}

func TestHatGroove(t *testing.T) {
	t.Run("empty hats are a style, not a failure", func(t *testing.T) {
		assert.Equal(t, 30.0, HatGroove(nil))
	})

	t.Run("offbeat eighths score well", func(t *testing.T) {
		assert.Greater(t, HatGroove([]int{2, 6, 10, 14}), 50.0)
	})
}

func TestGrooveOverall(t *testing.T) {
	prior := schemas.NeutralStylePrior()
	c := schemas.GrooveCandidate{
		Tempo:          124,
		Meter:          "4/4",
		Swing:          12,
		Kick:           []int{0, 4, 8, 12},
		Snare:          []int{4, 12},
		Hat:            []int{2, 6, 10, 14},
		TimingJitterMs: 8,
	}
	s := Groove(c, prior)
	assert.InDelta(t, s.Overall, 0.4*s.Danceability+0.35*s.Pocket+0.25*s.GenreFit, 0.5)
	assert.GreaterOrEqual(t, s.Overall, 0.0)
	assert.LessOrEqual(t, s.Overall, 100.0)
	assert.Greater(t, s.Overall, 70.0, "a textbook house groove should score high")
}

func TestCountParallels(t *testing.T) {
	mkVoice := func(pitches []int) []schemas.Note {
		notes := make([]schemas.Note, len(pitches))
		for i, p := range pitches {
			notes[i] = schemas.Note{Pitch: p, Time: float64(i), Duration: 1, Velocity: 90}
		}
		return notes
	}

	t.Run("parallel fifths in same-direction motion", func(t *testing.T) {
		// Upper voice a perfect fifth above the lower, moving together.
		a := mkVoice([]int{67, 69, 71})
		b := mkVoice([]int{60, 62, 64})
		fifths, octaves := CountParallels(a, b)
		assert.Equal(t, 2, fifths)
		assert.Zero(t, octaves)
	})

	t.Run("parallel octaves", func(t *testing.T) {
		a := mkVoice([]int{72, 74})
		b := mkVoice([]int{60, 62})
		fifths, octaves := CountParallels(a, b)
		assert.Zero(t, fifths)
		assert.Equal(t, 1, octaves)
	})

	t.Run("contrary motion is never parallel", func(t *testing.T) {
		a := mkVoice([]int{67, 65})
		b := mkVoice([]int{60, 62})
		fifths, octaves := CountParallels(a, b)
		assert.Zero(t, fifths)
		assert.Zero(t, octaves)
	})

	t.Run("oblique motion is never parallel", func(t *testing.T) {
		a := mkVoice([]int{67, 67})
		b := mkVoice([]int{60, 62})
		fifths, octaves := CountParallels(a, b)
		assert.Zero(t, fifths)
		assert.Zero(t, octaves)
	})

	t.Run("misaligned voices produce no pairs", func(t *testing.T) {
		a := mkVoice([]int{67, 69})
		b := []schemas.Note{
			{Pitch: 60, Time: 0.5, Duration: 1, Velocity: 90},
			{Pitch: 62, Time: 1.5, Duration: 1, Velocity: 90},
		}
		fifths, octaves := CountParallels(a, b)
		assert.Zero(t, fifths)
		assert.Zero(t, octaves)
	})
}

func TestVoiceLeadingSanity(t *testing.T) {
	t.Run("single voice is trivially sane", func(t *testing.T) {
		v := []schemas.Voice{{Role: schemas.VoiceBass}}
		assert.Equal(t, 100.0, VoiceLeadingSanity(v))
	})

	t.Run("stacked parallel octaves get punished", func(t *testing.T) {
		mk := func(base int) []schemas.Note {
			out := make([]schemas.Note, 4)
			for i := range out {
				out[i] = schemas.Note{Pitch: base + 2*i, Time: float64(i), Duration: 1, Velocity: 90}
			}
			return out
		}
		parallel := []schemas.Voice{
			{Role: schemas.VoiceBass, Notes: mk(48)},
			{Role: schemas.VoiceTopline, Notes: mk(60)},
		}
		contrary := []schemas.Voice{
			{Role: schemas.VoiceBass, Notes: mk(48)},
			{Role: schemas.VoiceTopline, Notes: []schemas.Note{
				{Pitch: 72, Time: 0, Duration: 1, Velocity: 90},
				{Pitch: 71, Time: 1, Duration: 1, Velocity: 90},
				{Pitch: 69, Time: 2, Duration: 1, Velocity: 90},
				{Pitch: 67, Time: 3, Duration: 1, Velocity: 90},
			}},
		}
		assert.Less(t, VoiceLeadingSanity(parallel), VoiceLeadingSanity(contrary))
	})
}

func TestDensityScore(t *testing.T) {
	mkVoices := func(total int) []schemas.Voice {
		notes := make([]schemas.Note, total)
		for i := range notes {
			notes[i] = schemas.Note{Pitch: 60, Time: float64(i) * 0.25, Duration: 0.25, Velocity: 90}
		}
		return []schemas.Voice{{Role: schemas.VoiceTopline, Notes: notes}}
	}

	t.Run("in band scores perfect", func(t *testing.T) {
		// 20 notes over 1 bar at mid energy sits inside [10,30].
		assert.Equal(t, 100.0, DensityScore(mkVoices(20), 50, 1))
	})

	t.Run("sparse low-energy section is fine", func(t *testing.T) {
		assert.Equal(t, 100.0, DensityScore(mkVoices(4), 20, 1))
	})

	t.Run("empty high-energy section falls short", func(t *testing.T) {
		assert.Less(t, DensityScore(nil, 90, 1), 100.0)
	})
}

func TestRegisterCollisions(t *testing.T) {
	t.Run("cross-role semitone clash in overlapping time", func(t *testing.T) {
		voices := []schemas.Voice{
			{Role: schemas.VoiceBass, Notes: []schemas.Note{{Pitch: 60, Time: 0, Duration: 1, Velocity: 90}}},
			{Role: schemas.VoicePad, Notes: []schemas.Note{{Pitch: 62, Time: 0.5, Duration: 1, Velocity: 90}}},
		}
		assert.Equal(t, 1, RegisterCollisions(voices))
	})

	t.Run("wide spacing never collides", func(t *testing.T) {
		voices := []schemas.Voice{
			{Role: schemas.VoiceBass, Notes: []schemas.Note{{Pitch: 40, Time: 0, Duration: 1, Velocity: 90}}},
			{Role: schemas.VoicePad, Notes: []schemas.Note{{Pitch: 64, Time: 0, Duration: 1, Velocity: 90}}},
		}
		assert.Zero(t, RegisterCollisions(voices))
	})

	t.Run("same role never collides with itself", func(t *testing.T) {
		voices := []schemas.Voice{
			{Role: schemas.VoicePad, Notes: []schemas.Note{{Pitch: 60, Time: 0, Duration: 1, Velocity: 90}}},
			{Role: schemas.VoicePad, Notes: []schemas.Note{{Pitch: 61, Time: 0, Duration: 1, Velocity: 90}}},
		}
		assert.Zero(t, RegisterCollisions(voices))
	})
}

func TestHarmonicClarity(t *testing.T) {
	t.Run("no harmony returns exactly seventy", func(t *testing.T) {
		c := schemas.SectionComposition{
			Voices: []schemas.Voice{{Role: schemas.VoiceBass, Notes: []schemas.Note{
				{Pitch: 36, Time: 0, Duration: 1, Velocity: 100},
			}}},
		}
		assert.Equal(t, 70.0, HarmonicClarity(c))
	})

	t.Run("bass landing on every chord change scores higher than missing them", func(t *testing.T) {
		harmony := []schemas.ChordEvent{
			{StartBeat: 0, Chord: "Am", DurationBeats: 4},
			{StartBeat: 4, Chord: "F", DurationBeats: 4},
		}
		aligned := schemas.SectionComposition{
			Harmony: harmony,
			Voices: []schemas.Voice{{Role: schemas.VoiceBass, Notes: []schemas.Note{
				{Pitch: 45, Time: 0, Duration: 2, Velocity: 100},
				{Pitch: 41, Time: 4, Duration: 2, Velocity: 100},
			}}},
		}
		drifting := schemas.SectionComposition{
			Harmony: harmony,
			Voices: []schemas.Voice{{Role: schemas.VoiceBass, Notes: []schemas.Note{
				{Pitch: 45, Time: 1.5, Duration: 2, Velocity: 100},
				{Pitch: 41, Time: 5.5, Duration: 2, Velocity: 100},
			}}},
		}
		assert.Greater(t, HarmonicClarity(aligned), HarmonicClarity(drifting))
	})
}

func TestMotifScore(t *testing.T) {
	seed := schemas.MotifSeed{
		ID:         "m-1",
		Type:       schemas.MotifMelodic,
		Key:        "A",
		Scale:      "minor",
		LengthBars: 2,
		Notes: []schemas.Note{
			{Pitch: 69, Time: 0, Duration: 0.5, Velocity: 100},
			{Pitch: 71, Time: 1, Duration: 0.5, Velocity: 90},
			{Pitch: 72, Time: 2, Duration: 0.5, Velocity: 95},
			{Pitch: 74, Time: 3, Duration: 0.5, Velocity: 90},
			{Pitch: 72, Time: 4, Duration: 0.5, Velocity: 95},
			{Pitch: 71, Time: 5, Duration: 0.5, Velocity: 90},
			{Pitch: 69, Time: 6, Duration: 1.0, Velocity: 100},
		},
	}
	prior := schemas.NeutralStylePrior()

	s := Motif(seed, prior)
	require.GreaterOrEqual(t, s.Overall, 0.0)
	require.LessOrEqual(t, s.Overall, 100.0)
	assert.InDelta(t, s.Overall,
		0.25*s.Memorability+0.20*s.Singability+0.20*s.TensionRelief+0.15*s.Novelty+0.20*s.GenreFit, 0.5)

	t.Run("an arch that resolves home is singable", func(t *testing.T) {
		assert.Greater(t, s.Singability, 60.0)
		assert.Greater(t, s.TensionRelief, 50.0)
	})

	t.Run("tiny motifs get the neutral tension fallback", func(t *testing.T) {
		short := seed
		short.Notes = seed.Notes[:2]
		assert.Equal(t, 50.0, TensionRelief(short))
	})

	t.Run("octave-hopping motif is less singable", func(t *testing.T) {
		leapy := seed
		leapy.Notes = []schemas.Note{
			{Pitch: 45, Time: 0, Duration: 0.5, Velocity: 100},
			{Pitch: 69, Time: 1, Duration: 0.5, Velocity: 100},
			{Pitch: 48, Time: 2, Duration: 0.5, Velocity: 100},
			{Pitch: 74, Time: 3, Duration: 0.5, Velocity: 100},
		}
		assert.Less(t, Singability(leapy.Notes), Singability(seed.Notes))
	})
}

func TestMixScore(t *testing.T) {
	palette := schemas.SoundPalette{
		Entries: []schemas.PaletteEntry{
			{Role: schemas.RoleSub, Type: "clean sine sub"},
			{Role: schemas.RoleBass, Type: "saw bass"},
			{Role: schemas.RoleLowMid, Type: "warm keys"},
			{Role: schemas.RoleMid, Type: "plucky lead"},
			{Role: schemas.RoleHighMid, Type: "vocal chop"},
			{Role: schemas.RoleAir, Type: "shimmer pad"},
		},
	}
	palette.RoleCounts = map[schemas.FrequencyRole]int{}
	for _, e := range palette.Entries {
		palette.RoleCounts[e.Role]++
	}

	design := schemas.MixDesign{
		Leveling: schemas.LevelingPlan{Levels: []schemas.TrackLevel{
			{Track: "kick", StemGroup: "drums", TargetDB: -6, Pan: 0},
			{Track: "bass", StemGroup: "bass", TargetDB: -8, Pan: 0},
			{Track: "lead", StemGroup: "synths", TargetDB: -10, Pan: -20},
			{Track: "keys", StemGroup: "synths", TargetDB: -12, Pan: 25},
			{Track: "vox", StemGroup: "vocals", TargetDB: -7, Pan: 0},
			{Track: "shimmer", StemGroup: "fx", TargetDB: -16, Pan: 60},
		}},
		Suggestions: []schemas.ProcessingSuggestion{
			{StemGroup: "synths", Kind: "eq", Description: "high-pass at 180 Hz to clear the low mids"},
			{StemGroup: "vocals", Kind: "eq", Description: "high-pass at 120 Hz"},
		},
		Spatial: schemas.SpatialScene{
			ReverbLayers: []schemas.ReverbLayer{
				{Name: "tight room", Type: "room", DecaySeconds: 0.6, PredelayMs: 10},
				{Name: "long hall", Type: "hall", DecaySeconds: 2.8, PredelayMs: 40},
			},
			Delays: []schemas.DelayLine{{Track: "lead", TimeDesc: "dotted 8th", TempoSynced: true}},
			Width:  []schemas.WidthProcessing{{Track: "shimmer", Technique: "haas", Amount: 40}},
		},
		MasterChain: []string{"glue compressor", "eq", "Limiter"},
	}

	s := Mix(design, palette)

	t.Run("well-formed mix scores high across the board", func(t *testing.T) {
		assert.GreaterOrEqual(t, s.Balance, 80.0)
		assert.GreaterOrEqual(t, s.Depth, 90.0)
		assert.Greater(t, s.Translation, 70.0)
		assert.InDelta(t, s.Overall, 0.3*s.Balance+0.2*s.Stereo+0.2*s.Depth+0.3*s.Translation, 0.5)
	})

	t.Run("no reverb means a flat forty for depth", func(t *testing.T) {
		assert.Equal(t, 40.0, DepthScore(schemas.SpatialScene{}))
	})

	t.Run("wide bass hurts translation", func(t *testing.T) {
		wobbly := design
		wobbly.Spatial.Width = []schemas.WidthProcessing{
			{Track: "bass", Technique: "mid-side", Amount: 80},
		}
		assert.Less(t, TranslationScore(wobbly), TranslationScore(design))
	})

	t.Run("panned low end hurts the stereo picture", func(t *testing.T) {
		lopsided := design
		lopsided.Leveling.Levels = append([]schemas.TrackLevel{}, design.Leveling.Levels...)
		lopsided.Leveling.Levels[1].Pan = -60
		assert.Less(t, StereoScore(lopsided), StereoScore(design))
	})
}
