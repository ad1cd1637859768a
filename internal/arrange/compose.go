// File: internal/arrange/compose.go
package arrange

import (
	"fmt"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/generate"
	"github.com/atelier-audio/arranger-cli/internal/theory"
)

// voiceNeeds orders the voices a section may carry and the motif type each
// one draws from.
var voiceNeeds = []struct {
	Role      schemas.VoiceRole
	MotifType schemas.MotifType
}{
	{schemas.VoiceBass, schemas.MotifMelodic},
	{schemas.VoiceTopline, schemas.MotifMelodic},
	{schemas.VoiceHarmony, schemas.MotifHarmonic},
	{schemas.VoicePad, schemas.MotifTextural},
	{schemas.VoiceRhythm, schemas.MotifRhythmic},
}

// wantsVoice applies the per-section gating rules.
func wantsVoice(role schemas.VoiceRole, s schemas.ArrangementSection) bool {
	switch role {
	case schemas.VoiceBass:
		return s.EnergyLevel >= 40
	case schemas.VoiceTopline:
		return s.Type == schemas.SectionVerse || s.Type == schemas.SectionDrop
	case schemas.VoiceHarmony:
		return s.Type == schemas.SectionBreakdown
	case schemas.VoicePad:
		return s.EnergyLevel >= 30
	case schemas.VoiceRhythm:
		return s.EnergyLevel >= 20
	}
	return false
}

// ComposeSection orchestrates one section from the selected motif seeds.
// Motif selection is first-match by type in the order given; callers that
// care about quality order the seeds before calling. The progression name
// is optional: empty falls back to a tonic minor vamp, an unknown name is
// an error.
func ComposeSection(section schemas.ArrangementSection, seeds []schemas.MotifSeed,
	progression, key, mode string, beatsPerBar float64) (schemas.SectionComposition, error) {

	comp := schemas.SectionComposition{
		SectionID:    section.ID,
		DensityLevel: densityLevel(section.EnergyLevel),
	}

	for _, need := range voiceNeeds {
		if !wantsVoice(need.Role, section) {
			continue
		}
		seed, ok := firstOfType(seeds, need.MotifType)
		if !ok {
			continue
		}
		notes := tileMotif(seed, section.LengthBars, beatsPerBar)
		if need.Role == schemas.VoiceBass {
			notes = dropOctaves(notes, 1)
		}
		comp.Voices = append(comp.Voices, schemas.Voice{
			Role:      need.Role,
			TrackName: string(need.Role),
			ClipName:  fmt.Sprintf("%s %s", section.Name, need.Role),
			Notes:     notes,
		})
	}

	rootClass, err := theory.ParsePitchClass(key)
	if err != nil {
		rootClass = 9 // default to A when the key is unparsable
	}
	if progression != "" {
		events, err := generate.ResolveProgression(progression, rootClass, mode, beatsPerBar)
		if err != nil {
			return schemas.SectionComposition{}, err
		}
		comp.Harmony = generate.ExtendProgression(events, section.LengthBars, beatsPerBar)
	} else {
		vamp := generate.DefaultVamp(rootClass, beatsPerBar)
		comp.Harmony = generate.ExtendProgression(vamp, section.LengthBars, beatsPerBar)
	}

	comp.RegisterDistribution = registerDistribution(comp.Voices)
	return comp, nil
}

// firstOfType returns the first seed of the wanted type, preserving the
// caller's ordering.
func firstOfType(seeds []schemas.MotifSeed, t schemas.MotifType) (schemas.MotifSeed, bool) {
	for _, s := range seeds {
		if s.Type == t {
			return s, true
		}
	}
	return schemas.MotifSeed{}, false
}

// tileMotif repeats a seed's notes at successive bar-aligned offsets until
// the section is covered, discarding copies that start past the section end.
func tileMotif(seed schemas.MotifSeed, sectionBars int, beatsPerBar float64) []schemas.Note {
	if sectionBars <= 0 || len(seed.Notes) == 0 {
		return nil
	}
	motifBars := seed.LengthBars
	if motifBars <= 0 {
		motifBars = 1
	}
	sectionBeats := float64(sectionBars) * beatsPerBar

	var out []schemas.Note
	for bar := 0; bar < sectionBars; bar += motifBars {
		offset := float64(bar) * beatsPerBar
		for _, n := range seed.Notes {
			t := n.Time + offset
			if t >= sectionBeats {
				continue
			}
			n.Time = t
			out = append(out, n)
		}
	}
	return out
}

// dropOctaves shifts notes down by whole octaves, clamped to MIDI range.
func dropOctaves(notes []schemas.Note, octaves int) []schemas.Note {
	out := make([]schemas.Note, len(notes))
	for i, n := range notes {
		n.Pitch = theory.ClampPitch(n.Pitch - 12*octaves)
		out[i] = n
	}
	return out
}

// densityLevel buckets section energy into the five DAW density levels.
func densityLevel(energy int) int {
	switch {
	case energy < 20:
		return 2
	case energy < 40:
		return 4
	case energy < 60:
		return 6
	case energy < 80:
		return 8
	default:
		return 10
	}
}

// registerDistribution buckets each voice's mean pitch into the named
// register bands.
func registerDistribution(voices []schemas.Voice) map[string]int {
	dist := map[string]int{}
	for _, v := range voices {
		if len(v.Notes) == 0 {
			continue
		}
		sum := 0
		for _, n := range v.Notes {
			sum += n.Pitch
		}
		mean := sum / len(v.Notes)
		switch {
		case mean < 40:
			dist["sub"]++
		case mean < 55:
			dist["bass"]++
		case mean < 65:
			dist["low"]++
		case mean < 80:
			dist["mid"]++
		default:
			dist["high"]++
		}
	}
	return dist
}
