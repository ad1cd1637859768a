// File: internal/theory/theory_test.go
package theory

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"middle C", "C4", 60, false},
		{"sharp", "F#3", 54, false},
		{"flat normalizes to sharp class", "Bb2", 46, false},
		{"lowercase letter", "g2", 43, false},
		{"negative octave", "A0", 21, false},
		{"empty", "", 0, true},
		{"bad letter", "H4", 0, true},
		{"missing octave", "C#", 0, true},
		{"non numeric octave", "Cx", 0, true},
		{"out of midi range", "C12", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNote(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrBadNoteName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoteNameRoundTrip(t *testing.T) {
	for midi := 0; midi <= 127; midi++ {
		name := NoteName(midi)
		back, err := ParseNote(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, midi, back)
	}
}

func TestParsePitchClass(t *testing.T) {
	pc, err := ParsePitchClass("Eb")
	require.NoError(t, err)
	assert.Equal(t, 3, pc, "Eb folds onto D#")

	_, err = ParsePitchClass("X")
	assert.Error(t, err)
}

func TestScalePitches(t *testing.T) {
	got := ScalePitches(60, "major", 1)
	want := []int{60, 62, 64, 65, 67, 69, 71}
	assert.Empty(t, cmp.Diff(want, got))

	t.Run("unknown mode defaults to minor", func(t *testing.T) {
		assert.Equal(t, ScalePitches(57, "minor", 1), ScalePitches(57, "klingon", 1))
	})

	t.Run("truncates at the top of the midi range", func(t *testing.T) {
		high := ScalePitches(120, "major", 2)
		for _, p := range high {
			assert.LessOrEqual(t, p, schemas.MaxMIDI)
		}
	})
}

func TestDegreePitch(t *testing.T) {
	assert.Equal(t, 60, DegreePitch(60, "major", 0))
	assert.Equal(t, 67, DegreePitch(60, "major", 4))
	assert.Equal(t, 72, DegreePitch(60, "major", 7), "degree 7 wraps up an octave")
	assert.Equal(t, 59, DegreePitch(60, "major", -1), "negative degrees reach down")
}

func TestQuantize(t *testing.T) {
	// C# is not in C major; nearest members are C and D, lower wins the tie.
	assert.Equal(t, 60, Quantize(61, 0, "major"))
	// E is in C major already.
	assert.Equal(t, 64, Quantize(64, 0, "major"))
}

func TestParseTimeSignature(t *testing.T) {
	num, den, err := ParseTimeSignature("4/4")
	require.NoError(t, err)
	assert.Equal(t, 4, num)
	assert.Equal(t, 4, den)

	for _, bad := range []string{"", "4/0", "x/4", "4/y", "0/4"} {
		_, _, err := ParseTimeSignature(bad)
		assert.Error(t, err, "meter %q", bad)
	}

	beats, err := BeatsPerBar("6/8")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, beats, 1e-9)
}

func TestDegreeQuality(t *testing.T) {
	assert.Equal(t, "major", DegreeQuality("major", 0))
	assert.Equal(t, "diminished", DegreeQuality("major", 6))
	assert.Equal(t, "minor", DegreeQuality("minor", 0))
	assert.Equal(t, "major", DegreeQuality("minor", 5))
	// Wrapping and unknown-mode fallback.
	assert.Equal(t, DegreeQuality("minor", 0), DegreeQuality("minor", 7))
	assert.Equal(t, DegreeQuality("minor", 2), DegreeQuality("locrian", 2))
}

func TestChordSymbol(t *testing.T) {
	assert.Equal(t, "C", ChordSymbol(0, "major", 0))
	assert.Equal(t, "Dm", ChordSymbol(0, "major", 1))
	assert.Equal(t, "Bdim", ChordSymbol(0, "major", 6))
	assert.Equal(t, "Am", ChordSymbol(9, "minor", 0))
}

func TestChordPitches(t *testing.T) {
	assert.Equal(t, []int{60, 64, 67}, ChordPitches(60, "major"))
	assert.Equal(t, []int{60, 3 + 60, 7 + 60}, ChordPitches(60, "minor"))
	assert.Equal(t, []int{60, 64, 67}, ChordPitches(60, "nonsense"), "unknown quality falls back to major")
}

// -- Transform Tests --

func sampleNotes() []schemas.Note {
	return []schemas.Note{
		{Pitch: 60, Time: 0, Duration: 0.5, Velocity: 100},
		{Pitch: 64, Time: 0.5, Duration: 0.5, Velocity: 90},
		{Pitch: 67, Time: 1.0, Duration: 1.0, Velocity: 80},
	}
}

func TestTransposeDoesNotMutate(t *testing.T) {
	in := sampleNotes()
	out := Transpose(in, 12)
	assert.Equal(t, 60, in[0].Pitch, "input must stay untouched")
	assert.Equal(t, 72, out[0].Pitch)

	clamped := Transpose(in, 120)
	assert.Equal(t, schemas.MaxMIDI, clamped[2].Pitch)
}

func TestInvert(t *testing.T) {
	out := Invert(sampleNotes(), 60)
	assert.Equal(t, 60, out[0].Pitch)
	assert.Equal(t, 56, out[1].Pitch)
	assert.Equal(t, 53, out[2].Pitch)
}

func TestRetrogradePreservesTimeSlots(t *testing.T) {
	in := sampleNotes()
	out := Retrograde(in)

	// Pitch order reverses.
	assert.Equal(t, []int{67, 64, 60}, []int{out[0].Pitch, out[1].Pitch, out[2].Pitch})
	// Time slots come from the original sequence.
	for i := range in {
		assert.Equal(t, in[i].Time, out[i].Time)
		assert.Equal(t, in[i].Duration, out[i].Duration)
	}
}

func TestAugmentDiminish(t *testing.T) {
	in := sampleNotes()
	out := Augment(in, 2)
	for i := range in {
		assert.Equal(t, in[i].Time*2, out[i].Time)
		assert.Equal(t, in[i].Duration*2, out[i].Duration)
	}

	back := Diminish(out, 2)
	for i := range in {
		assert.InDelta(t, in[i].Time, back[i].Time, 1e-9)
		assert.InDelta(t, in[i].Duration, back[i].Duration, 1e-9)
	}

	same := Augment(in, 0)
	assert.Empty(t, cmp.Diff(in, same), "non-positive factor is a no-op copy")
}
