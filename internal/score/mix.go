// File: internal/score/mix.go
package score

import (
	"math"
	"strings"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// Mix scores a mix design against the palette it was built for:
// 0.3*balance + 0.2*stereo + 0.2*depth + 0.3*translation, rounded.
func Mix(d schemas.MixDesign, palette schemas.SoundPalette) schemas.MixScore {
	s := schemas.MixScore{
		Balance:     MixBalance(d, palette),
		Stereo:      StereoScore(d),
		Depth:       DepthScore(d.Spatial),
		Translation: TranslationScore(d),
	}
	s.Overall = math.Round(0.3*s.Balance + 0.2*s.Stereo + 0.2*s.Depth + 0.3*s.Translation)
	return s
}

// MixBalance is the palette-aware spectral balance: essential band coverage,
// sub and air presence, and a healthy level spread.
func MixBalance(d schemas.MixDesign, palette schemas.SoundPalette) float64 {
	raw := 0.0

	covered := 0
	for _, role := range schemas.EssentialRoles {
		if palette.Covers(role) {
			covered++
		}
	}
	raw += 60 * float64(covered) / float64(len(schemas.EssentialRoles))

	if palette.Covers(schemas.RoleSub) {
		raw += 10
	}
	if palette.Covers(schemas.RoleAir) {
		raw += 10
	}

	if spread := levelSpread(d.Leveling); spread >= 6 && spread <= 15 {
		raw += 20
	} else if spread < 6 && len(d.Leveling.Levels) > 1 {
		raw += 10
	}
	return schemas.ClampScore(raw)
}

// levelSpread is the dB distance between the loudest and quietest track.
func levelSpread(plan schemas.LevelingPlan) float64 {
	if len(plan.Levels) == 0 {
		return 0
	}
	lo, hi := plan.Levels[0].TargetDB, plan.Levels[0].TargetDB
	for _, l := range plan.Levels[1:] {
		if l.TargetDB < lo {
			lo = l.TargetDB
		}
		if l.TargetDB > hi {
			hi = l.TargetDB
		}
	}
	return hi - lo
}

// StereoScore checks left/right balance, low-end centering and pan variety.
func StereoScore(d schemas.MixDesign) float64 {
	raw := 60.0

	left, right := 0, 0
	buckets := map[int]bool{}
	lowCentered := true
	for _, l := range d.Leveling.Levels {
		if l.Pan < 0 {
			left++
		} else if l.Pan > 0 {
			right++
		}
		buckets[l.Pan/25] = true
		if isLowEnd(l) && (l.Pan < -30 || l.Pan > 30) {
			lowCentered = false
		}
	}

	diff := left - right
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= 1:
		raw += 15
	case diff <= 3:
		raw += 5
	default:
		raw -= 10
	}

	if lowCentered {
		raw += 15
	} else {
		raw -= 10
	}

	if len(buckets) >= 3 {
		raw += 10
	}
	return schemas.ClampScore(raw)
}

// DepthScore rewards layered reverbs, decay spread, delays and predelay.
// A scene with no reverb layers is flat by definition: fixed 40.
func DepthScore(scene schemas.SpatialScene) float64 {
	if len(scene.ReverbLayers) == 0 {
		return 40
	}
	raw := 50.0

	types := map[string]bool{}
	minDecay, maxDecay := math.Inf(1), math.Inf(-1)
	hasPredelay := false
	for _, l := range scene.ReverbLayers {
		types[strings.ToLower(l.Type)] = true
		if l.DecaySeconds < minDecay {
			minDecay = l.DecaySeconds
		}
		if l.DecaySeconds > maxDecay {
			maxDecay = l.DecaySeconds
		}
		if l.PredelayMs >= 20 {
			hasPredelay = true
		}
	}
	if len(types) >= 2 {
		raw += 15
	}
	if maxDecay-minDecay >= 1 {
		raw += 15
	}
	if len(scene.Delays) > 0 {
		raw += 10
		for _, dl := range scene.Delays {
			if dl.TempoSynced {
				raw += 5
				break
			}
		}
	}
	if hasPredelay {
		raw += 5
	}
	return schemas.ClampScore(raw)
}

// TranslationScore estimates how the mix survives outside the studio:
// restrained width trickery, a controlled low end, and a limiter on the
// master.
func TranslationScore(d schemas.MixDesign) float64 {
	raw := 70.0

	haas := 0
	for _, w := range d.Spatial.Width {
		if strings.EqualFold(w.Technique, "haas") {
			haas++
		}
		if w.Amount > 50 && isLowEndTrack(w.Track) {
			raw -= 10
		}
	}
	if haas > 2 {
		raw -= 15
	}

	for _, dev := range d.MasterChain {
		if strings.Contains(strings.ToLower(dev), "limiter") {
			raw += 10
			break
		}
	}

	// High-pass hygiene on non-bass stems.
	bonus := 0.0
	for _, s := range d.Suggestions {
		if s.Kind != "eq" {
			continue
		}
		if isLowEndTrack(s.StemGroup) {
			continue
		}
		if strings.Contains(strings.ToLower(s.Description), "high-pass") {
			bonus += 3
		}
	}
	if bonus > 9 {
		bonus = 9
	}
	raw += bonus

	return schemas.ClampScore(raw)
}

func isLowEnd(l schemas.TrackLevel) bool {
	return isLowEndTrack(l.StemGroup) || isLowEndTrack(l.Track)
}

func isLowEndTrack(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bass") || strings.Contains(lower, "drum") ||
		strings.Contains(lower, "kick") || strings.Contains(lower, "sub")
}
