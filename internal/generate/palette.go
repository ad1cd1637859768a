// File: internal/generate/palette.go
package generate

import (
	"fmt"
	"strings"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// paletteDefaults supplies a stock entry per frequency role, used when the
// brief's instrumentation hints leave a band uncovered.
var paletteDefaults = map[schemas.FrequencyRole]schemas.PaletteEntry{
	schemas.RoleSub: {
		Role: schemas.RoleSub, Type: "sub bass", FreqRangeHz: [2]float64{25, 60},
		Characteristics: []string{"sine", "clean"},
		ProcessingHints: []string{"mono below 100Hz"},
	},
	schemas.RoleBass: {
		Role: schemas.RoleBass, Type: "bass synth", FreqRangeHz: [2]float64{60, 250},
		Characteristics: []string{"round", "sustained"},
		ProcessingHints: []string{"sidechain to kick", "high-pass at 30Hz"},
	},
	schemas.RoleLowMid: {
		Role: schemas.RoleLowMid, Type: "keys", FreqRangeHz: [2]float64{250, 500},
		Characteristics: []string{"warm"},
		ProcessingHints: []string{"cut 300Hz mud"},
	},
	schemas.RoleMid: {
		Role: schemas.RoleMid, Type: "lead", FreqRangeHz: [2]float64{500, 2000},
		Characteristics: []string{"present"},
		ProcessingHints: []string{"saturation for presence"},
	},
	schemas.RoleHighMid: {
		Role: schemas.RoleHighMid, Type: "pluck", FreqRangeHz: [2]float64{2000, 6000},
		Characteristics: []string{"bright", "percussive"},
		ProcessingHints: []string{"short plate reverb"},
	},
	schemas.RoleHigh: {
		Role: schemas.RoleHigh, Type: "hats and percussion", FreqRangeHz: [2]float64{6000, 12000},
		Characteristics: []string{"crisp"},
		ProcessingHints: []string{"transient shaping"},
	},
	schemas.RoleAir: {
		Role: schemas.RoleAir, Type: "shimmer", FreqRangeHz: [2]float64{12000, 18000},
		Characteristics: []string{"airy", "wide"},
		ProcessingHints: []string{"gentle high shelf"},
	},
}

// hintRoles keyword-maps an instrumentation hint onto the band it occupies.
var hintRoles = []struct {
	keywords []string
	role     schemas.FrequencyRole
}{
	{[]string{"sub", "808"}, schemas.RoleSub},
	{[]string{"bass"}, schemas.RoleBass},
	{[]string{"piano", "keys", "rhodes", "guitar", "organ"}, schemas.RoleLowMid},
	{[]string{"lead", "vocal", "synth", "brass", "strings"}, schemas.RoleMid},
	{[]string{"pluck", "arp", "bell", "mallet"}, schemas.RoleHighMid},
	{[]string{"hat", "perc", "shaker", "cymbal", "drum"}, schemas.RoleHigh},
	{[]string{"pad", "texture", "ambience", "noise"}, schemas.RoleAir},
}

const maxPaletteEntries = 12

// Palette assembles the stage-four sound palette from the spec's
// instrumentation hints, filling any uncovered essential band with the stock
// entry and carrying the brief's avoid-list as the forbidden set.
func Palette(spec schemas.Spec, prior schemas.StylePrior) schemas.SoundPalette {
	palette := schemas.SoundPalette{
		RoleCounts: map[schemas.FrequencyRole]int{},
		Forbidden:  append([]string{}, prior.Guardrails.Avoid...),
	}

	add := func(e schemas.PaletteEntry) {
		if len(palette.Entries) >= maxPaletteEntries {
			return
		}
		palette.Entries = append(palette.Entries, e)
		palette.RoleCounts[e.Role]++
	}

	for _, hint := range spec.Instrumentation {
		lower := strings.ToLower(hint)
		for _, hr := range hintRoles {
			matched := false
			for _, kw := range hr.keywords {
				if strings.Contains(lower, kw) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			entry := paletteDefaults[hr.role]
			entry.Type = hint
			entry.Characteristics = append(append([]string{}, entry.Characteristics...), prior.SoundTraits...)
			add(entry)
			break
		}
	}

	// Guarantee essential coverage plus sub and air.
	for _, role := range append(append([]schemas.FrequencyRole{}, schemas.EssentialRoles...), schemas.RoleSub, schemas.RoleHigh, schemas.RoleAir) {
		if !palette.Covers(role) {
			add(paletteDefaults[role])
		}
	}
	return palette
}

// CheckPaletteCoverage is the soft-quality check for a palette: essential
// bands must be covered, over-stacked bands draw warnings.
func CheckPaletteCoverage(p schemas.SoundPalette) schemas.CheckResult {
	res := schemas.CheckResult{Valid: true}
	for _, role := range schemas.EssentialRoles {
		if !p.Covers(role) {
			res.Valid = false
			res.Issues = append(res.Issues, fmt.Sprintf("no palette entry covers the %s band", role))
		}
	}
	for role, n := range p.RoleCounts {
		if n > 3 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%d entries stacked in the %s band; expect masking", n, role))
			res.Suggestions = append(res.Suggestions, fmt.Sprintf("thin the %s band or carve with EQ", role))
		}
	}
	if !p.Covers(schemas.RoleSub) {
		res.Suggestions = append(res.Suggestions, "consider a dedicated sub layer for club translation")
	}
	return res
}
