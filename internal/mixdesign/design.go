// File: internal/mixdesign/design.go

// Package mixdesign turns the palette and composed sections into the mix
// plan handed to the DAW-integration collaborator: gain staging, processing
// suggestions, a spatial scene, automation rides and the master chain.
package mixdesign

import (
	"fmt"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// roleMix maps each frequency role to its gain staging and stereo position.
// Low-end roles stay centered; upper roles fan out progressively wider.
var roleMix = map[schemas.FrequencyRole]struct {
	StemGroup string
	TargetDB  float64
	Pan       int
}{
	schemas.RoleSub:     {"bass", -8, 0},
	schemas.RoleBass:    {"bass", -7, 0},
	schemas.RoleLowMid:  {"instruments", -11, -20},
	schemas.RoleMid:     {"instruments", -9, 18},
	schemas.RoleHighMid: {"instruments", -12, -35},
	schemas.RoleHigh:    {"fx", -15, 40},
	schemas.RoleAir:     {"fx", -18, 55},
}

// drumLevels are fixed: every arrangement gets a drum bus regardless of
// palette contents.
var drumLevels = []schemas.TrackLevel{
	{Track: "kick", StemGroup: "drums", TargetDB: -6, Pan: 0},
	{Track: "snare", StemGroup: "drums", TargetDB: -9, Pan: 0},
	{Track: "hats", StemGroup: "drums", TargetDB: -14, Pan: 15},
}

// Design builds the full mix plan for a palette and its composed sections.
// The result is deterministic for a given input.
func Design(palette schemas.SoundPalette, compositions []schemas.SectionComposition, tempo float64) schemas.MixDesign {
	d := schemas.MixDesign{
		Leveling:    leveling(palette),
		Suggestions: suggestions(palette),
		Spatial:     spatialScene(palette, tempo),
		Automation:  automation(compositions),
		MasterChain: []string{"bus compressor", "tape saturation", "eq", "limiter"},
	}
	return d
}

// leveling assigns one track per palette entry plus the fixed drum bus.
// Entries sharing a role get numeric suffixes so track names stay unique.
func leveling(palette schemas.SoundPalette) schemas.LevelingPlan {
	plan := schemas.LevelingPlan{Levels: append([]schemas.TrackLevel{}, drumLevels...)}
	roleSeen := map[schemas.FrequencyRole]int{}
	for _, e := range palette.Entries {
		mix, ok := roleMix[e.Role]
		if !ok {
			mix = roleMix[schemas.RoleMid]
		}
		roleSeen[e.Role]++
		name := string(e.Role)
		if roleSeen[e.Role] > 1 {
			name = fmt.Sprintf("%s %d", e.Role, roleSeen[e.Role])
		}
		lvl := schemas.TrackLevel{
			Track:     name,
			StemGroup: mix.StemGroup,
			TargetDB:  mix.TargetDB,
			Pan:       mix.Pan,
		}
		// Stacked entries in one band alternate sides to avoid a lopsided
		// image.
		if roleSeen[e.Role] > 1 && roleSeen[e.Role]%2 == 0 {
			lvl.Pan = -lvl.Pan
		}
		plan.Levels = append(plan.Levels, lvl)
	}
	return plan
}

// suggestions emits the EQ and compression starting points per stem group.
func suggestions(palette schemas.SoundPalette) []schemas.ProcessingSuggestion {
	out := []schemas.ProcessingSuggestion{
		{StemGroup: "drums", Kind: "compression", Description: "glue compression, 2:1 ratio, slow attack to keep transients"},
		{StemGroup: "bass", Kind: "compression", Description: "steady 4:1 compression for a consistent low end"},
		{StemGroup: "bass", Kind: "eq", Description: "low-pass above 5 kHz; boost 60-90 Hz fundamentals"},
		{StemGroup: "instruments", Kind: "eq", Description: "high-pass at 150 Hz to keep the low end clear"},
		{StemGroup: "fx", Kind: "eq", Description: "high-pass at 300 Hz; shelf lift above 8 kHz for sheen"},
	}
	if palette.Covers(schemas.RoleSub) {
		out = append(out, schemas.ProcessingSuggestion{
			StemGroup: "bass", Kind: "eq",
			Description: "carve 2-3 dB at the sub fundamental on the bass so the layers stack",
		})
	}
	return out
}

// spatialScene builds the two standing reverbs, a tempo-synced delay and
// width treatment for the upper roles.
func spatialScene(palette schemas.SoundPalette, tempo float64) schemas.SpatialScene {
	scene := schemas.SpatialScene{
		ReverbLayers: []schemas.ReverbLayer{
			{Name: "close room", Type: "room", DecaySeconds: 0.5, PredelayMs: 10},
			{Name: "far hall", Type: "hall", DecaySeconds: 2.6, PredelayMs: 35},
		},
		Delays: []schemas.DelayLine{
			{Track: string(schemas.RoleMid), TimeDesc: "1/8 dotted", TempoSynced: true},
		},
	}
	if tempo > 0 && tempo < 100 {
		// Slower tempos leave room for a longer quarter-note echo.
		scene.Delays = append(scene.Delays, schemas.DelayLine{
			Track: string(schemas.RoleHighMid), TimeDesc: "1/4", TempoSynced: true,
		})
	}
	for _, role := range []schemas.FrequencyRole{schemas.RoleHigh, schemas.RoleAir} {
		if palette.Covers(role) {
			scene.Width = append(scene.Width, schemas.WidthProcessing{
				Track: string(role), Technique: "haas", Amount: 35,
			})
		}
	}
	if palette.Covers(schemas.RoleHighMid) {
		scene.Width = append(scene.Width, schemas.WidthProcessing{
			Track: string(schemas.RoleHighMid), Technique: "chorus", Amount: 25,
		})
	}
	return scene
}

// automation plans one filter ride per low-density section and a send ride
// into every dense one, so the arrangement breathes across sections.
func automation(compositions []schemas.SectionComposition) []schemas.AutomationPass {
	var passes []schemas.AutomationPass
	for _, c := range compositions {
		switch {
		case c.DensityLevel <= 4:
			passes = append(passes, schemas.AutomationPass{
				Target:    c.SectionID,
				Parameter: "master low-pass cutoff",
				Description: "sweep the cutoff open across the section to " +
					"lean into the next one",
			})
		case c.DensityLevel >= 8:
			passes = append(passes, schemas.AutomationPass{
				Target:      c.SectionID,
				Parameter:   "hall send",
				Description: "ride the hall send up 2 dB in the final two bars",
			})
		}
	}
	return passes
}
