// File: internal/generate/harmony.go
package generate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/theory"
)

// progressionTemplates name common scale-degree sequences (0-based degrees).
var progressionTemplates = map[string][]int{
	"pop":        {0, 4, 5, 3}, // I V vi IV
	"epic":       {5, 3, 0, 4}, // vi IV I V
	"jazz":       {1, 4, 0, 0}, // ii V I
	"minor_vamp": {0, 5},       // i VI
	"andalusian": {0, 6, 5, 4}, // i VII VI V
	"edm":        {0, 5, 3, 4}, // i VI IV V
}

// ErrUnknownProgression is wrapped when a template name does not resolve.
var ErrUnknownProgression = fmt.Errorf("unknown chord progression template")

// ProgressionTemplateNames lists the known templates in a stable order.
func ProgressionTemplateNames() []string {
	return []string{"pop", "epic", "jazz", "minor_vamp", "andalusian", "edm"}
}

// ResolveProgression renders a named template into chord events at a fixed
// beat spacing. Unknown names are a hard failure.
func ResolveProgression(name string, rootClass int, mode string, beatsPerChord float64) ([]schemas.ChordEvent, error) {
	degrees, ok := progressionTemplates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProgression, name)
	}
	return degreesToEvents(degrees, rootClass, mode, beatsPerChord), nil
}

func degreesToEvents(degrees []int, rootClass int, mode string, beatsPerChord float64) []schemas.ChordEvent {
	events := make([]schemas.ChordEvent, 0, len(degrees))
	for i, d := range degrees {
		events = append(events, schemas.ChordEvent{
			StartBeat:     float64(i) * beatsPerChord,
			Chord:         theory.ChordSymbol(rootClass, mode, d),
			DurationBeats: beatsPerChord,
		})
	}
	return events
}

// degreeTransitions is the transition-probability graph over scale degrees:
// each degree has a small fixed set of allowed successors, drawn uniformly.
var degreeTransitions = map[int][]int{
	0: {3, 4, 5, 1},
	1: {4, 6},
	2: {5, 3},
	3: {4, 0, 1},
	4: {0, 5},
	5: {3, 1, 4},
	6: {0},
}

// RandomProgression walks the degree transition graph from the tonic,
// producing length chords at the given spacing.
func RandomProgression(length int, rootClass int, mode string, beatsPerChord float64, rng *rand.Rand) []schemas.ChordEvent {
	if length <= 0 {
		return nil
	}
	degrees := make([]int, 0, length)
	current := 0
	for i := 0; i < length; i++ {
		degrees = append(degrees, current)
		next := degreeTransitions[current]
		if len(next) == 0 {
			next = []int{0}
		}
		current = next[rng.Intn(len(next))]
	}
	return degreesToEvents(degrees, rootClass, mode, beatsPerChord)
}

// TransposeProgression re-maps each chord's root by the given semitone count
// (modulo 12), keeping the quality suffix.
func TransposeProgression(events []schemas.ChordEvent, semitones int) []schemas.ChordEvent {
	out := make([]schemas.ChordEvent, len(events))
	for i, ev := range events {
		root, suffix := splitChordSymbol(ev.Chord)
		if root >= 0 {
			pc := ((root+semitones)%12 + 12) % 12
			ev.Chord = theory.PitchClassNames[pc] + suffix
		}
		out[i] = ev
	}
	return out
}

// splitChordSymbol separates "F#m" into pitch class 6 and suffix "m".
// Returns root -1 when the symbol has no recognizable note letter.
func splitChordSymbol(symbol string) (int, string) {
	if symbol == "" {
		return -1, ""
	}
	end := 1
	for end < len(symbol) && (symbol[end] == '#' || symbol[end] == 'b') {
		end++
	}
	pc, err := theory.ParsePitchClass(symbol[:end])
	if err != nil {
		return -1, symbol
	}
	return pc, symbol[end:]
}

// ExtendProgression tiles a progression cyclically until it covers the
// target number of bars.
func ExtendProgression(events []schemas.ChordEvent, targetBars int, beatsPerBar float64) []schemas.ChordEvent {
	if len(events) == 0 || targetBars <= 0 {
		return nil
	}
	target := float64(targetBars) * beatsPerBar
	var out []schemas.ChordEvent
	cursor := 0.0
	for i := 0; cursor < target; i++ {
		ev := events[i%len(events)]
		ev.StartBeat = cursor
		if cursor+ev.DurationBeats > target {
			ev.DurationBeats = target - cursor
		}
		out = append(out, ev)
		cursor += ev.DurationBeats
	}
	return out
}

// DefaultVamp is the two-chord minor fallback used when a section names no
// progression template: tonic minor alternating with itself over two bars.
func DefaultVamp(rootClass int, beatsPerBar float64) []schemas.ChordEvent {
	symbol := theory.PitchClassNames[((rootClass%12)+12)%12] + "m"
	return []schemas.ChordEvent{
		{StartBeat: 0, Chord: symbol, DurationBeats: beatsPerBar},
		{StartBeat: beatsPerBar, Chord: symbol, DurationBeats: beatsPerBar},
	}
}

// ChordRootPitch resolves a chord symbol's root near the given center pitch,
// for bass alignment checks. Returns false for unparseable symbols.
func ChordRootPitch(symbol string, center int) (int, bool) {
	pc, _ := splitChordSymbol(strings.TrimSpace(symbol))
	if pc < 0 {
		return 0, false
	}
	base := center - center%12 + pc
	if base > center+6 {
		base -= 12
	}
	return theory.ClampPitch(base), true
}
