// File: internal/generate/groove.go

// Package generate produces the candidate pools the pipeline scores and
// ranks: grooves, motifs, harmony progressions and sound palettes. Every
// randomized function takes an explicit *rand.Rand so full runs replay
// deterministically from a single seed.
package generate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/rhythm"
)

// grooveTemplate is a fixed genre pattern literal over the 16-step grid.
type grooveTemplate struct {
	name     string
	keywords []string
	kick     []int
	snare    []int
	hat      []int
	swing    float64
}

// genreTemplates are matched by keyword against the style prior's
// energy-profile text. Patterns follow the classic drum-machine lineage.
var genreTemplates = []grooveTemplate{
	{
		name:     "four-on-floor house",
		keywords: []string{"house", "disco", "four-on-floor", "four on floor"},
		kick:     []int{0, 4, 8, 12},
		snare:    []int{4, 12},
		hat:      []int{2, 6, 10, 14},
		swing:    8,
	},
	{
		name:     "driving techno",
		keywords: []string{"techno", "driving", "warehouse"},
		kick:     []int{0, 4, 8, 12},
		snare:    []int{4, 12},
		hat:      []int{0, 2, 4, 6, 8, 10, 12, 14},
		swing:    0,
	},
	{
		name:     "boom bap",
		keywords: []string{"hip hop", "hip-hop", "hiphop", "boom bap", "rap"},
		kick:     []int{0, 7, 10},
		snare:    []int{4, 12},
		hat:      []int{0, 2, 4, 6, 8, 10, 12, 14},
		swing:    25,
	},
	{
		name:     "trap",
		keywords: []string{"trap", "drill", "808"},
		kick:     []int{0, 6, 10},
		snare:    []int{8},
		hat:      []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		swing:    0,
	},
	{
		name:     "broken beat",
		keywords: []string{"drum and bass", "dnb", "jungle", "breakbeat", "broken"},
		kick:     []int{0, 10},
		snare:    []int{4, 12},
		hat:      []int{0, 2, 4, 6, 8, 10, 12, 14},
		swing:    5,
	},
	{
		name:     "downtempo",
		keywords: []string{"ambient", "downtempo", "chill", "lofi", "lo-fi"},
		kick:     []int{0, 8},
		snare:    []int{12},
		hat:      []int{2, 6, 10, 14},
		swing:    30,
	},
}

// matchTemplates returns the genre templates whose keywords appear in the
// prior's energy-profile text, or nil when nothing matches.
func matchTemplates(prior schemas.StylePrior) []grooveTemplate {
	text := strings.ToLower(prior.Guardrails.EnergyProfile)
	var out []grooveTemplate
	for _, tpl := range genreTemplates {
		for _, kw := range tpl.keywords {
			if strings.Contains(text, kw) {
				out = append(out, tpl)
				break
			}
		}
	}
	return out
}

// GrooveCandidates builds the stage-three candidate pool for a style prior.
// Genre-matched templates come first, then euclidean and generic variants
// fill the pool; when no keyword matches, the generic euclidean/backbeat/
// 8th-note trio is the whole basis.
func GrooveCandidates(prior schemas.StylePrior, rng *rand.Rand, count int) []schemas.GrooveCandidate {
	if count <= 0 {
		count = 8
	}
	matched := matchTemplates(prior)

	var out []schemas.GrooveCandidate
	add := func(desc string, kick, snare, hat []int, swing float64) {
		tempo := prior.BPM.Typical
		if prior.BPM.Variance > 0 {
			tempo += (rng.Float64()*2 - 1) * prior.BPM.Variance / 2
		}
		out = append(out, schemas.GrooveCandidate{
			ID:               uuid.New().String(),
			Tempo:            tempo,
			Meter:            "4/4",
			Swing:            swing,
			Kick:             append([]int{}, kick...),
			Snare:            append([]int{}, snare...),
			Hat:              append([]int{}, hat...),
			VelocityVariance: 5 + rng.Float64()*10,
			TimingJitterMs:   rng.Float64() * 12,
			VelocityJitter:   rng.Float64() * 10,
			Description:      desc,
		})
	}

	for _, tpl := range matched {
		if len(out) >= count {
			break
		}
		add(tpl.name, tpl.kick, tpl.snare, tpl.hat, tpl.swing)
	}

	// Euclidean variants seeded from the matched material (or from scratch).
	for len(out) < count {
		switch len(out) % 3 {
		case 0:
			kicks := 3 + rng.Intn(3) // 3-5 kicks spread across the bar
			add(fmt.Sprintf("euclidean %d-in-16", kicks),
				rhythm.Euclidean(kicks, 16, rng.Intn(4)),
				[]int{4, 12},
				rhythm.Euclidean(6+rng.Intn(5), 16, 0),
				prior.Swing.Amount)
		case 1:
			add("backbeat",
				[]int{0, 8},
				[]int{4, 12},
				[]int{2, 6, 10, 14},
				prior.Swing.Amount)
		default:
			add("straight 8ths",
				[]int{0, 4, 8, 12},
				[]int{4, 12},
				[]int{0, 2, 4, 6, 8, 10, 12, 14},
				prior.Swing.Amount)
		}
	}
	return out
}

// MutateGroove derives a new candidate by nudging one pattern of the source:
// rotating the hats, adding a euclidean ghost kick, or shifting swing. Used
// by orchestrator-driven regeneration.
func MutateGroove(src schemas.GrooveCandidate, rng *rand.Rand) schemas.GrooveCandidate {
	out := src
	out.ID = uuid.New().String()
	out.Kick = append([]int{}, src.Kick...)
	out.Snare = append([]int{}, src.Snare...)
	out.Hat = append([]int{}, src.Hat...)

	switch rng.Intn(3) {
	case 0:
		out.Hat = rhythm.Rotate(out.Hat, 1+rng.Intn(3), 16)
		out.Description = src.Description + " (hat rotation)"
	case 1:
		out.Kick = rhythm.Combine(out.Kick, rhythm.Euclidean(1, 16, rng.Intn(16)))
		out.Description = src.Description + " (ghost kick)"
	default:
		out.Swing = src.Swing + (rng.Float64()*2-1)*10
		if out.Swing < 0 {
			out.Swing = 0
		}
		if out.Swing > 100 {
			out.Swing = 100
		}
		out.Description = src.Description + " (swing shift)"
	}
	return out
}
