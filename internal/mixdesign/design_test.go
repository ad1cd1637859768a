// File: internal/mixdesign/design_test.go
package mixdesign

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/score"
)

func fullPalette() schemas.SoundPalette {
	p := schemas.SoundPalette{
		Entries: []schemas.PaletteEntry{
			{Role: schemas.RoleSub, Type: "sine sub"},
			{Role: schemas.RoleBass, Type: "reese bass"},
			{Role: schemas.RoleLowMid, Type: "warm keys"},
			{Role: schemas.RoleMid, Type: "pluck lead"},
			{Role: schemas.RoleHighMid, Type: "vocal chop"},
			{Role: schemas.RoleAir, Type: "shimmer"},
		},
		RoleCounts: map[schemas.FrequencyRole]int{},
	}
	for _, e := range p.Entries {
		p.RoleCounts[e.Role]++
	}
	return p
}

func TestDesign(t *testing.T) {
	palette := fullPalette()
	comps := []schemas.SectionComposition{
		{SectionID: "s-intro", DensityLevel: 2},
		{SectionID: "s-drop", DensityLevel: 10},
	}
	d := Design(palette, comps, 124)

	t.Run("every palette entry gets a track plus the drum bus", func(t *testing.T) {
		assert.Len(t, d.Leveling.Levels, len(palette.Entries)+len(drumLevels))
	})

	t.Run("low end stays centered", func(t *testing.T) {
		for _, l := range d.Leveling.Levels {
			if l.StemGroup == "bass" || l.Track == "kick" {
				assert.GreaterOrEqual(t, l.Pan, -30)
				assert.LessOrEqual(t, l.Pan, 30)
			}
		}
	})

	t.Run("master chain ends in a limiter", func(t *testing.T) {
		require.NotEmpty(t, d.MasterChain)
		assert.Equal(t, "limiter", d.MasterChain[len(d.MasterChain)-1])
	})

	t.Run("non-bass stems get high-pass suggestions", func(t *testing.T) {
		found := false
		for _, s := range d.Suggestions {
			if s.Kind == "eq" && s.StemGroup != "bass" && strings.Contains(s.Description, "high-pass") {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("automation follows section density", func(t *testing.T) {
		require.Len(t, d.Automation, 2)
		assert.Equal(t, "s-intro", d.Automation[0].Target)
		assert.Contains(t, d.Automation[0].Parameter, "low-pass")
		assert.Equal(t, "s-drop", d.Automation[1].Target)
	})

	t.Run("the plan scores well on its own rubric", func(t *testing.T) {
		s := score.Mix(d, palette)
		assert.GreaterOrEqual(t, s.Overall, 75.0)
		assert.GreaterOrEqual(t, s.Depth, 80.0)
		assert.GreaterOrEqual(t, s.Translation, 70.0)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		again := Design(fullPalette(), comps, 124)
		assert.Equal(t, d, again)
	})
}

func TestLevelingDuplicateRoles(t *testing.T) {
	p := schemas.SoundPalette{
		Entries: []schemas.PaletteEntry{
			{Role: schemas.RoleMid, Type: "lead one"},
			{Role: schemas.RoleMid, Type: "lead two"},
		},
		RoleCounts: map[schemas.FrequencyRole]int{schemas.RoleMid: 2},
	}
	plan := leveling(p)

	names := map[string]bool{}
	for _, l := range plan.Levels {
		assert.False(t, names[l.Track], "track names must be unique: %s", l.Track)
		names[l.Track] = true
	}
	// The doubled role sits on opposite sides.
	var pans []int
	for _, l := range plan.Levels {
		if strings.HasPrefix(l.Track, string(schemas.RoleMid)) {
			pans = append(pans, l.Pan)
		}
	}
	require.Len(t, pans, 2)
	assert.Equal(t, -pans[0], pans[1])
}

func TestSpatialSceneTempoBranch(t *testing.T) {
	slow := spatialScene(fullPalette(), 80)
	fast := spatialScene(fullPalette(), 128)
	assert.Greater(t, len(slow.Delays), len(fast.Delays))
	for _, dl := range slow.Delays {
		assert.True(t, dl.TempoSynced)
	}
}
