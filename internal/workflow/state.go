// File: internal/workflow/state.go

// Package workflow implements the nine-stage pipeline state machine:
// idempotent completion tracking, next-stage recommendation, state merging
// and the append-only revision history.
package workflow

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// New returns a fresh state positioned at the first stage.
func New() schemas.WorkflowState {
	return schemas.WorkflowState{
		CurrentStage:    schemas.StageOrder[0],
		StagesCompleted: map[schemas.Stage]bool{},
	}
}

// Complete marks a stage done and advances CurrentStage to the next
// recommendation. Completion is idempotent; unknown stages are ignored.
// The input state is not mutated.
func Complete(state schemas.WorkflowState, stage schemas.Stage) schemas.WorkflowState {
	if !stage.Valid() {
		return clone(state)
	}
	out := clone(state)
	out.StagesCompleted[stage] = true
	if next, ok := NextStage(out); ok {
		out.CurrentStage = next
	} else {
		out.CurrentStage = schemas.StageOrder[len(schemas.StageOrder)-1]
	}
	return out
}

// NextStage returns the first stage in canonical order not yet completed.
// The second return is false once all nine are done.
func NextStage(state schemas.WorkflowState) (schemas.Stage, bool) {
	for _, s := range schemas.StageOrder {
		if !state.StagesCompleted[s] {
			return s, true
		}
	}
	return "", false
}

// Merge unions the completed sets and concatenates histories (a's entries
// first). History is append-only: nothing is truncated or reordered. The
// merged CurrentStage is recomputed from the union.
func Merge(a, b schemas.WorkflowState) schemas.WorkflowState {
	out := clone(a)
	for s := range b.StagesCompleted {
		if b.StagesCompleted[s] {
			out.StagesCompleted[s] = true
		}
	}
	out.History = append(out.History, b.History...)
	if next, ok := NextStage(out); ok {
		out.CurrentStage = next
	} else {
		out.CurrentStage = schemas.StageOrder[len(schemas.StageOrder)-1]
	}
	return out
}

// Progress is the completed fraction as a rounded percentage.
func Progress(state schemas.WorkflowState) int {
	done := 0
	for _, s := range schemas.StageOrder {
		if state.StagesCompleted[s] {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(schemas.StageOrder))))
}

// AppendRevision records one audit entry and returns the updated state.
func AppendRevision(state schemas.WorkflowState, stage schemas.Stage, action, summary string) schemas.WorkflowState {
	out := clone(state)
	out.History = append(out.History, schemas.RevisionEntry{
		ID:        uuid.NewString(),
		Stage:     stage,
		Timestamp: time.Now().UTC(),
		Action:    action,
		Summary:   summary,
	})
	return out
}

// clone deep-copies the state so callers can treat every transition as a
// pure function.
func clone(state schemas.WorkflowState) schemas.WorkflowState {
	out := schemas.WorkflowState{
		CurrentStage:    state.CurrentStage,
		StagesCompleted: make(map[schemas.Stage]bool, len(state.StagesCompleted)),
	}
	for s, done := range state.StagesCompleted {
		out.StagesCompleted[s] = done
	}
	if len(state.History) > 0 {
		out.History = make([]schemas.RevisionEntry, len(state.History))
		copy(out.History, state.History)
	}
	return out
}
