// File: api/schemas/workflow.go
package schemas

import "time"

// -- Workflow Stages & State --

// Stage identifies one of the nine pipeline stages. The set is closed; use
// StageOrder for the canonical sequence and Stage.Valid to reject strays at
// the boundary.
type Stage string

const (
	StageSpecDerivation     Stage = "spec_derivation"
	StageStylePrior         Stage = "style_prior"
	StageTimeBase           Stage = "time_base"
	StagePalette            Stage = "palette"
	StageMotifSeeds         Stage = "motif_seeds"
	StageMacroStructure     Stage = "macro_structure"
	StageSectionComposition Stage = "section_composition"
	StageVariationPass      Stage = "variation_pass"
	StageMixDesign          Stage = "mix_design"
)

// StageOrder is the fixed, total order of the pipeline. Index in this slice
// is the stage's ordinal.
var StageOrder = []Stage{
	StageSpecDerivation,
	StageStylePrior,
	StageTimeBase,
	StagePalette,
	StageMotifSeeds,
	StageMacroStructure,
	StageSectionComposition,
	StageVariationPass,
	StageMixDesign,
}

// Valid reports whether s names a known stage.
func (s Stage) Valid() bool {
	for _, st := range StageOrder {
		if s == st {
			return true
		}
	}
	return false
}

// Ordinal returns the stage's 0-based position in the canonical order, or -1
// for an unknown stage.
func (s Stage) Ordinal() int {
	for i, st := range StageOrder {
		if s == st {
			return i
		}
	}
	return -1
}

// RevisionEntry is one append-only audit log record.
type RevisionEntry struct {
	ID        string    `json:"id"`
	Stage     Stage     `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Summary   string    `json:"summary"`
}

// WorkflowState tracks pipeline progress: the current stage, the set of
// completed stages (insertion order irrelevant) and the append-only revision
// history. There is no backward transition; stages may be revisited by an
// external orchestrator but never "uncompleted".
type WorkflowState struct {
	CurrentStage    Stage           `json:"current_stage"`
	StagesCompleted map[Stage]bool  `json:"stages_completed"`
	History         []RevisionEntry `json:"history"`
}
