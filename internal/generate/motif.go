// File: internal/generate/motif.go
package generate

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/theory"
)

const (
	accentVelocity   = 110
	unaccentVelocity = 85
)

// ArpeggioOrder names the traversal of an interval list.
type ArpeggioOrder string

const (
	ArpUp     ArpeggioOrder = "up"
	ArpDown   ArpeggioOrder = "down"
	ArpUpDown ArpeggioOrder = "up-down"
	ArpRandom ArpeggioOrder = "random"
)

// ScaleWalk builds an ascending scale-degree walk from the given start
// degree, one note per noteDur beats.
func ScaleWalk(root int, mode string, startDegree, count int, noteDur float64) []schemas.Note {
	notes := make([]schemas.Note, 0, count)
	for i := 0; i < count; i++ {
		notes = append(notes, schemas.Note{
			Pitch:    theory.DegreePitch(root, mode, startDegree+i),
			Time:     float64(i) * noteDur,
			Duration: noteDur,
			Velocity: unaccentVelocity,
		})
	}
	return notes
}

// Arpeggio traverses an explicit interval list in the given order. rng is
// only consulted for ArpRandom.
func Arpeggio(root int, intervals []int, order ArpeggioOrder, count int, noteDur float64, rng *rand.Rand) []schemas.Note {
	if len(intervals) == 0 || count <= 0 {
		return nil
	}
	idx := func(i int) int {
		n := len(intervals)
		switch order {
		case ArpDown:
			return (n - 1 - i%n + n) % n
		case ArpUpDown:
			cycle := 2*n - 2
			if cycle <= 0 {
				return 0
			}
			pos := i % cycle
			if pos < n {
				return pos
			}
			return cycle - pos
		case ArpRandom:
			return rng.Intn(n)
		default: // ArpUp
			return i % n
		}
	}
	notes := make([]schemas.Note, 0, count)
	for i := 0; i < count; i++ {
		notes = append(notes, schemas.Note{
			Pitch:    theory.ClampPitch(root + intervals[idx(i)]),
			Time:     float64(i) * noteDur,
			Duration: noteDur,
			Velocity: unaccentVelocity,
		})
	}
	return notes
}

// contourShapes express named melodic shapes as scale-degree index sequences.
// Values are offsets from the walk's base degree; they are clamped into the
// playable range when rendered.
var contourShapes = map[string][]int{
	"arch":       {0, 2, 4, 6, 7, 6, 4, 2},
	"ascending":  {0, 1, 2, 3, 4, 5, 6, 7},
	"descending": {7, 6, 5, 4, 3, 2, 1, 0},
	"wave":       {0, 2, 1, 3, 2, 4, 3, 5},
	"valley":     {4, 2, 1, 0, 1, 2, 4, 6},
}

// Contour renders a named shape over the scale rooted at root. Unknown shape
// names fall back to "arch".
func Contour(root int, mode, shape string, noteDur float64) []schemas.Note {
	degrees, ok := contourShapes[shape]
	if !ok {
		degrees = contourShapes["arch"]
	}
	notes := make([]schemas.Note, 0, len(degrees))
	for i, d := range degrees {
		notes = append(notes, schemas.Note{
			Pitch:    theory.DegreePitch(root, mode, d),
			Time:     float64(i) * noteDur,
			Duration: noteDur,
			Velocity: unaccentVelocity,
		})
	}
	return notes
}

// RhythmicMotif places a single pitch on the given step pattern. Steps in
// accents get the fixed accented velocity; everything else the unaccented
// one.
func RhythmicMotif(pitch int, steps []int, accents map[int]bool, stepDur float64) []schemas.Note {
	notes := make([]schemas.Note, 0, len(steps))
	for _, s := range steps {
		vel := unaccentVelocity
		if accents[s] {
			vel = accentVelocity
		}
		notes = append(notes, schemas.Note{
			Pitch:    theory.ClampPitch(pitch),
			Time:     float64(s) * stepDur,
			Duration: stepDur,
			Velocity: vel,
		})
	}
	return notes
}

// BlockChords stamps a chord quality at each root's start time.
func BlockChords(roots []schemas.Note, quality string) []schemas.Note {
	var notes []schemas.Note
	for _, r := range roots {
		for _, p := range theory.ChordPitches(r.Pitch, quality) {
			n := r
			n.Pitch = p
			notes = append(notes, n)
		}
	}
	return notes
}

// TexturalMotif scatters notes with randomized pitch, time, duration and
// velocity. density in [1,10] controls how many notes land per bar and how
// tight the bounds are.
func TexturalMotif(root int, mode string, lengthBars, density int, rng *rand.Rand) []schemas.Note {
	if density < 1 {
		density = 1
	}
	if density > 10 {
		density = 10
	}
	perBar := 2 + density
	total := perBar * lengthBars
	span := float64(lengthBars) * 4.0

	maxDur := 2.0 - float64(density)*0.15 // denser textures use shorter grains
	if maxDur < 0.25 {
		maxDur = 0.25
	}

	scale := theory.ScalePitches(root, mode, 2)
	if len(scale) == 0 {
		scale = []int{root}
	}

	notes := make([]schemas.Note, 0, total)
	for i := 0; i < total; i++ {
		notes = append(notes, schemas.Note{
			Pitch:    scale[rng.Intn(len(scale))],
			Time:     rng.Float64() * (span - 0.25),
			Duration: 0.25 + rng.Float64()*(maxDur-0.25),
			Velocity: theory.ClampVelocity(50 + rng.Intn(40)),
		})
	}
	return notes
}

// bassTemplate is a literal note table over one bar, parameterized by scale
// degree. time/duration in beats.
type bassStep struct {
	degree int
	time   float64
	dur    float64
	accent bool
}

var bassTemplates = map[string][]bassStep{
	"root": {
		{0, 0, 1, true}, {0, 1, 1, false}, {0, 2, 1, false}, {0, 3, 1, false},
	},
	"walking": {
		{0, 0, 1, true}, {2, 1, 1, false}, {4, 2, 1, false}, {5, 3, 1, false},
	},
	"syncopated": {
		{0, 0, 0.75, true}, {0, 1.5, 0.5, false}, {4, 2.5, 0.5, false}, {0, 3.5, 0.5, false},
	},
	"arpeggiated": {
		{0, 0, 0.5, true}, {2, 0.5, 0.5, false}, {4, 1, 0.5, false}, {7, 1.5, 0.5, false},
		{4, 2, 0.5, false}, {2, 2.5, 0.5, false}, {0, 3, 1, false},
	},
}

// BassLine renders a named bass template from the scale rooted two octaves
// below the given root. Unknown templates fall back to "root".
func BassLine(root int, mode, template string, bars int) []schemas.Note {
	steps, ok := bassTemplates[template]
	if !ok {
		steps = bassTemplates["root"]
	}
	bassRoot := theory.ClampPitch(root - 24)
	var notes []schemas.Note
	for bar := 0; bar < bars; bar++ {
		offset := float64(bar) * 4.0
		for _, st := range steps {
			vel := unaccentVelocity
			if st.accent {
				vel = accentVelocity
			}
			notes = append(notes, schemas.Note{
				Pitch:    theory.DegreePitch(bassRoot, mode, st.degree),
				Time:     offset + st.time,
				Duration: st.dur,
				Velocity: vel,
			})
		}
	}
	return notes
}

// MotifPool generates the stage-five candidate pool: melodic walks, contours
// and arpeggios, rhythmic patterns, harmonic block chords, textural beds and
// bass lines, all in the given key and scale.
func MotifPool(prior schemas.StylePrior, key string, mode string, rng *rand.Rand) []schemas.MotifSeed {
	rootClass, err := theory.ParsePitchClass(key)
	if err != nil {
		rootClass = 0
	}
	root := 60 + rootClass

	seed := func(t schemas.MotifType, notes []schemas.Note, bars int) schemas.MotifSeed {
		return schemas.MotifSeed{
			ID:         uuid.New().String(),
			Type:       t,
			Notes:      notes,
			LengthBars: bars,
			Key:        key,
			Scale:      mode,
		}
	}

	var pool []schemas.MotifSeed

	// Melodic material: contours, walks and arpeggios. The shape list is
	// fixed-order so pool generation stays reproducible under one seed.
	for _, shape := range []string{"arch", "ascending", "descending", "wave", "valley"} {
		pool = append(pool, seed(schemas.MotifMelodic, Contour(root, mode, shape, 0.5), 1))
	}
	pool = append(pool,
		seed(schemas.MotifMelodic, ScaleWalk(root, mode, 0, 8, 0.5), 1),
		seed(schemas.MotifMelodic, Arpeggio(root, theory.ChordIntervals["minor"], ArpUpDown, 8, 0.5, rng), 1),
		seed(schemas.MotifMelodic, Arpeggio(root, theory.ChordIntervals["seventh"], ArpUp, 8, 0.5, rng), 1),
	)

	// Bass lines, rendered as melodic seeds in the low register.
	for _, tpl := range []string{"root", "walking", "syncopated", "arpeggiated"} {
		pool = append(pool, seed(schemas.MotifMelodic, BassLine(root, mode, tpl, 1), 1))
	}

	// Rhythmic patterns with explicit accent sets.
	pool = append(pool,
		seed(schemas.MotifRhythmic,
			RhythmicMotif(root, []int{0, 3, 6, 10, 12}, map[int]bool{0: true, 10: true}, 0.25), 1),
		seed(schemas.MotifRhythmic,
			RhythmicMotif(root, []int{0, 4, 8, 12}, map[int]bool{0: true}, 0.25), 1),
	)

	// Harmonic block chords over a tonic-subdominant alternation.
	chordRoots := []schemas.Note{
		{Pitch: root, Time: 0, Duration: 2, Velocity: unaccentVelocity},
		{Pitch: theory.DegreePitch(root, mode, 3), Time: 2, Duration: 2, Velocity: unaccentVelocity},
	}
	quality := theory.DegreeQuality(mode, 0)
	pool = append(pool, seed(schemas.MotifHarmonic, BlockChords(chordRoots, quality), 1))

	// Textural beds at two densities.
	pool = append(pool,
		seed(schemas.MotifTextural, TexturalMotif(root, mode, 2, 3, rng), 2),
		seed(schemas.MotifTextural, TexturalMotif(root, mode, 2, 7, rng), 2),
	)

	return pool
}
