// File: internal/pipeline/stages.go

// Package pipeline wires the nine composition stages into a replayable run:
// brief in, arrangement artifact out. Each stage function is free of hidden
// state; the only non-determinism is the injected random source.
package pipeline

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/arrange"
	"github.com/atelier-audio/arranger-cli/internal/generate"
	"github.com/atelier-audio/arranger-cli/internal/mixdesign"
	"github.com/atelier-audio/arranger-cli/internal/theory"
	"github.com/atelier-audio/arranger-cli/internal/variation"
)

// genreDefaults seeds stage one: tempo bands, swing and mix aesthetic per
// genre keyword. First match wins; briefs list their primary genre first.
var genreDefaults = []struct {
	Keyword   string
	Tempo     schemas.TempoRange
	Swing     float64
	Aesthetic string
}{
	{"house", schemas.TempoRange{Min: 120, Max: 128}, 8, "warm analog glue, pumping sidechain"},
	{"techno", schemas.TempoRange{Min: 128, Max: 140}, 0, "dark, saturated, monitor-forward"},
	{"trap", schemas.TempoRange{Min: 135, Max: 150}, 0, "hard transients, heavy 808 sub"},
	{"hip hop", schemas.TempoRange{Min: 85, Max: 95}, 18, "dusty, compressed drum bus"},
	{"boom bap", schemas.TempoRange{Min: 85, Max: 95}, 22, "dusty, compressed drum bus"},
	{"dnb", schemas.TempoRange{Min: 170, Max: 176}, 0, "tight low end, bright clean breaks"},
	{"drum and bass", schemas.TempoRange{Min: 170, Max: 176}, 0, "tight low end, bright clean breaks"},
	{"ambient", schemas.TempoRange{Min: 60, Max: 80}, 0, "wide, washed, long tails"},
	{"downtempo", schemas.TempoRange{Min: 80, Max: 100}, 12, "soft saturation, roomy drums"},
	{"pop", schemas.TempoRange{Min: 100, Max: 120}, 5, "bright, vocal-forward, radio-ready"},
	{"cinematic", schemas.TempoRange{Min: 70, Max: 110}, 0, "orchestral depth, wide dynamics"},
}

var fallbackTempo = schemas.TempoRange{Min: 110, Max: 130}

// DeriveSpec is stage one: a deterministic mapping from brief to spec.
func DeriveSpec(brief schemas.Brief) schemas.Spec {
	spec := schemas.Spec{
		Tempo:        fallbackTempo,
		MixAesthetic: "balanced, clean",
		MinSections:  4,
		MaxSections:  9,
		DurationBars: brief.DurationBars,
	}
	if spec.DurationBars <= 0 {
		spec.DurationBars = 64
	}

	if def, ok := matchGenre(brief.Genres); ok {
		spec.Tempo = def.Tempo
		spec.MixAesthetic = def.Aesthetic
	}

	spec.EnergyArc = energyArc(brief)
	spec.Instrumentation = instrumentation(brief)
	return spec
}

func matchGenre(genres []string) (struct {
	Keyword   string
	Tempo     schemas.TempoRange
	Swing     float64
	Aesthetic string
}, bool) {
	for _, g := range genres {
		lower := strings.ToLower(g)
		for _, def := range genreDefaults {
			if strings.Contains(lower, def.Keyword) {
				return def, true
			}
		}
	}
	return genreDefaults[0], false
}

// energyArc sketches the target arc from the use case: background material
// stays flat, everything else rises into a peak around two thirds in.
func energyArc(brief schemas.Brief) []schemas.EnergyPoint {
	useCase := strings.ToLower(brief.UseCase)
	if strings.Contains(useCase, "background") || strings.Contains(useCase, "ambien") {
		return []schemas.EnergyPoint{
			{Position: 0, Energy: 30},
			{Position: 1, Energy: 35},
		}
	}
	return []schemas.EnergyPoint{
		{Position: 0, Energy: 20},
		{Position: 0.25, Energy: 50},
		{Position: 0.4, Energy: 85},
		{Position: 0.55, Energy: 35},
		{Position: 0.7, Energy: 95},
		{Position: 0.9, Energy: 60},
		{Position: 1, Energy: 15},
	}
}

func instrumentation(brief schemas.Brief) []string {
	base := []string{"drums", "bass", "chords", "lead"}
	for _, inc := range brief.MustInclude {
		dup := false
		for _, b := range base {
			if strings.EqualFold(b, inc) {
				dup = true
			}
		}
		if !dup {
			base = append(base, inc)
		}
	}
	return base
}

// BuildStylePrior is stage two: tempo signature, swing, traits and
// guardrails derived from the brief and its spec.
func BuildStylePrior(brief schemas.Brief, spec schemas.Spec) schemas.StylePrior {
	prior := schemas.StylePrior{
		BPM: schemas.BPMSignature{
			Typical:  spec.Tempo.Mid(),
			Variance: (spec.Tempo.Max - spec.Tempo.Min) / 2,
		},
		Swing:       schemas.SwingProfile{Amount: 0, Subdivision: "16th"},
		SoundTraits: append([]string{}, brief.Moods...),
		Norms: schemas.ArrangementNorms{
			TypicalSectionBars: 8,
			TransitionStyles:   []string{"riser", "impact", "crossfade"},
		},
		Guardrails: schemas.Guardrails{
			EnergyProfile: strings.ToLower(strings.Join(append(append([]string{}, brief.Genres...), brief.Moods...), " ")),
			Avoid:         append([]string{}, brief.MustAvoid...),
		},
	}
	if def, ok := matchGenre(brief.Genres); ok {
		prior.Swing.Amount = def.Swing
	}
	if prior.BPM.Variance < 4 {
		prior.BPM.Variance = 4
	}
	return prior
}

// KeyAndMode picks the tonal center from the brief's moods. The choice is
// deterministic so a run is replayable from the brief alone.
func KeyAndMode(brief schemas.Brief) (string, string) {
	for _, m := range brief.Moods {
		lower := strings.ToLower(m)
		switch {
		case strings.Contains(lower, "happy") || strings.Contains(lower, "uplift") || strings.Contains(lower, "bright"):
			return "C", "major"
		case strings.Contains(lower, "groovy") || strings.Contains(lower, "funky"):
			return "D", "dorian"
		case strings.Contains(lower, "tense") || strings.Contains(lower, "exotic"):
			return "E", "phrygian"
		}
	}
	return "A", "minor"
}

// SelectTimeBase is stage three: generate the groove pool, score it in
// parallel, rank it, and promote the winner.
func (p *Pipeline) SelectTimeBase(prior schemas.StylePrior, rng *rand.Rand) (schemas.TimeBase, error) {
	candidates := generate.GrooveCandidates(prior, rng, p.cfg.Generation.GrooveCount)
	ranked := p.rankGrooves(candidates, prior)
	return PickGroove(ranked, 0)
}

// ErrSelectionIndex is returned when a candidate index falls outside the
// ranked pool.
var ErrSelectionIndex = fmt.Errorf("candidate selection index out of range")

// PickGroove promotes the ranked candidate at idx into a TimeBase, keeping
// the rest as alternates.
func PickGroove(ranked []schemas.ScoredGroove, idx int) (schemas.TimeBase, error) {
	if idx < 0 || idx >= len(ranked) {
		return schemas.TimeBase{}, fmt.Errorf("%w: %d of %d", ErrSelectionIndex, idx, len(ranked))
	}
	tb := schemas.TimeBase{
		Tempo:    ranked[idx].Candidate.Tempo,
		Meter:    ranked[idx].Candidate.Meter,
		Selected: ranked[idx],
	}
	for i, sg := range ranked {
		if i != idx {
			tb.Alternates = append(tb.Alternates, sg)
		}
	}
	return tb, nil
}

// AssemblePalette is stage four. The coverage check is soft: problems ride
// along in the returned CheckResult.
func AssemblePalette(spec schemas.Spec, prior schemas.StylePrior) (schemas.SoundPalette, schemas.CheckResult) {
	palette := generate.Palette(spec, prior)
	return palette, generate.CheckPaletteCoverage(palette)
}

// SelectMotifSeeds is stage five: generate the pool, score it in parallel
// against the prior, rank, and keep the top N.
func (p *Pipeline) SelectMotifSeeds(prior schemas.StylePrior, key, mode string, rng *rand.Rand) schemas.MotifSeedSet {
	pool := generate.MotifPool(prior, key, mode, rng)
	ranked := p.rankMotifs(pool, prior)

	set := schemas.MotifSeedSet{Generated: ranked}
	topN := p.cfg.Generation.MotifTopN
	if topN > len(ranked) {
		topN = len(ranked)
	}
	for _, sm := range ranked[:topN] {
		set.Selected = append(set.Selected, sm.Motif)
	}
	return set
}

// archetypeFor maps brief genres to a structural archetype.
func archetypeFor(prior schemas.StylePrior) string {
	profile := prior.Guardrails.EnergyProfile
	switch {
	case strings.Contains(profile, "house") || strings.Contains(profile, "techno") ||
		strings.Contains(profile, "edm") || strings.Contains(profile, "club"):
		return "club"
	case strings.Contains(profile, "pop"):
		return "pop"
	case strings.Contains(profile, "cinematic") || strings.Contains(profile, "epic") ||
		strings.Contains(profile, "orchestral"):
		return "cinematic"
	default:
		return "minimal"
	}
}

// progressionFor pairs each archetype with a progression template name.
var progressionFor = map[string]string{
	"club":      "edm",
	"pop":       "pop",
	"cinematic": "epic",
	"minimal":   "minor_vamp",
}

// DraftMacroStructure is stage six: archetype selection plus structure
// generation, with the soft checks attached.
func DraftMacroStructure(spec schemas.Spec, prior schemas.StylePrior) (schemas.MacroStructure, schemas.CheckResult, error) {
	m, err := arrange.Structure(archetypeFor(prior), spec.DurationBars)
	if err != nil {
		return schemas.MacroStructure{}, schemas.CheckResult{}, err
	}

	// Bend the template's energy levels toward the spec's arc.
	for i := range m.Sections {
		pos := 0.0
		if m.TotalBars > 0 {
			pos = float64(m.Sections[i].StartBar) / float64(m.TotalBars)
		}
		target := spec.EnergyAt(pos)
		m.Sections[i].EnergyLevel = (m.Sections[i].EnergyLevel + target) / 2
	}
	m.EnergyCurve = nil
	for _, s := range m.Sections {
		m.EnergyCurve = append(m.EnergyCurve,
			schemas.EnergyCurvePoint{Bar: s.StartBar, Energy: s.EnergyLevel},
			schemas.EnergyCurvePoint{Bar: s.StartBar + s.LengthBars, Energy: s.EnergyLevel},
		)
	}

	checks := arrange.CheckStructure(m).Merge(arrange.CheckEnergySmoothness(m))
	return m, checks, nil
}

// ComposeSections is stage seven: one SectionComposition per section, each
// scored for coherence.
func ComposeSections(m schemas.MacroStructure, seeds schemas.MotifSeedSet, tb schemas.TimeBase,
	key, mode string) ([]schemas.SectionComposition, []schemas.CompositionScore, error) {

	beatsPerBar, err := theory.BeatsPerBar(tb.Meter)
	if err != nil {
		return nil, nil, err
	}
	progression := progressionFor[archetypeFromStructure(m)]

	var comps []schemas.SectionComposition
	var scores []schemas.CompositionScore
	for _, section := range m.Sections {
		prog := ""
		if section.Type == schemas.SectionBreakdown {
			prog = progression
		}
		comp, err := arrange.ComposeSection(section, seeds.Selected, prog, key, mode, beatsPerBar)
		if err != nil {
			return nil, nil, fmt.Errorf("compose section %q: %w", section.Name, err)
		}
		comps = append(comps, comp)
		scores = append(scores, scoreComposition(comp, section))
	}
	return comps, scores, nil
}

func archetypeFromStructure(m schemas.MacroStructure) string {
	if _, ok := progressionFor[m.Archetype]; ok {
		return m.Archetype
	}
	return "minimal"
}

// RunVariationPass is stage eight: one operator pass over the selected
// motifs, ear candy at every interior section boundary, and a one-bar fill
// across each boundary.
func RunVariationPass(passNumber int, seeds schemas.MotifSeedSet, m schemas.MacroStructure, tb schemas.TimeBase, rng *rand.Rand) schemas.VariationPass {
	var transitionBars []int
	for _, s := range m.Sections {
		if s.StartBar > 0 {
			transitionBars = append(transitionBars, s.StartBar)
		}
	}
	pass := variation.Pass(passNumber, seeds.Selected, transitionBars, rng)

	beatsPerBar, err := theory.BeatsPerBar(tb.Meter)
	if err != nil {
		beatsPerBar = 4
	}
	for i := 1; i < len(m.Sections); i++ {
		pass.Fills = append(pass.Fills,
			variation.Fill(m.Sections[i-1], m.Sections[i], 1, beatsPerBar))
	}
	return pass
}

// DesignMix is stage nine: the full mix plan plus its score.
func DesignMix(palette schemas.SoundPalette, comps []schemas.SectionComposition, tb schemas.TimeBase) (schemas.MixDesign, schemas.MixScore) {
	design := mixdesign.Design(palette, comps, tb.Tempo)
	return design, scoreMix(design, palette)
}
