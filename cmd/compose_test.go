// File: cmd/compose_test.go
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBrief(t *testing.T) {
	t.Run("yaml brief", func(t *testing.T) {
		path := writeTemp(t, "brief.yaml", `
genres: [deep house]
moods: [groovy]
use_case: club set opener
duration_bars: 64
must_avoid: [cheesy supersaws]
`)
		brief, err := loadBrief(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"deep house"}, brief.Genres)
		assert.Equal(t, 64, brief.DurationBars)
		assert.Equal(t, []string{"cheesy supersaws"}, brief.MustAvoid)
	})

	t.Run("json brief", func(t *testing.T) {
		path := writeTemp(t, "brief.json", `{
  "genres": ["techno"],
  "moods": ["dark"],
  "use_case": "warehouse set",
  "duration_bars": 128
}`)
		brief, err := loadBrief(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"techno"}, brief.Genres)
		assert.Equal(t, 128, brief.DurationBars)
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := loadBrief("/nonexistent/brief.yaml")
		require.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := writeTemp(t, "bad.yaml", "genres: [unterminated")
		_, err := loadBrief(path)
		require.Error(t, err)
	})
}

func TestStageDescriptionsCoverEveryStage(t *testing.T) {
	for _, stage := range schemas.StageOrder {
		assert.NotEmpty(t, stageDescriptions[stage], "stage %s needs a description", stage)
	}
	assert.Len(t, stageDescriptions, len(schemas.StageOrder))
}
