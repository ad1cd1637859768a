// File: cmd/stages.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// stageDescriptions pairs each stage with a one-line summary. The map is
// keyed on the closed enum so a new stage cannot ship without a description.
var stageDescriptions = map[schemas.Stage]string{
	schemas.StageSpecDerivation:     "derive tempo range, energy arc and instrumentation from the brief",
	schemas.StageStylePrior:         "build the BPM/swing signature and guardrails for the style",
	schemas.StageTimeBase:           "generate, score and rank groove candidates; pick the time base",
	schemas.StagePalette:            "assemble the sound palette and check band coverage",
	schemas.StageMotifSeeds:         "generate and score the motif pool; keep the top seeds",
	schemas.StageMacroStructure:     "draft the section sequence, energy curve and key moments",
	schemas.StageSectionComposition: "orchestrate every section from the selected motifs",
	schemas.StageVariationPass:      "vary motifs and place ear candy around transitions",
	schemas.StageMixDesign:          "plan leveling, processing, space and the master chain",
}

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Print the canonical pipeline stage order.",
	Run: func(cmd *cobra.Command, args []string) {
		for i, stage := range schemas.StageOrder {
			fmt.Printf("%d. %-20s %s\n", i+1, stage, stageDescriptions[stage])
		}
	},
}

func init() {
	rootCmd.AddCommand(stagesCmd)
}
