// File: api/schemas/common.go
package schemas

// -- Shared Units & Leaf Types --
//
// Time and duration are expressed in beats (quarter note = 1.0), tempo in BPM,
// frequency in Hz, level in dB, pan in [-100,100], and pitch/velocity as MIDI
// integers in [0,127]. Step-pattern positions are 0-based indices over a
// steps-per-bar grid (16 by default).

const (
	// MinMIDI and MaxMIDI bound pitch and velocity values.
	MinMIDI = 0
	MaxMIDI = 127

	// DefaultStepsPerBar is the resolution of the step grid used by the
	// groove generator and rhythm utilities.
	DefaultStepsPerBar = 16

	// MinScore and MaxScore bound every scoring engine output.
	MinScore = 0.0
	MaxScore = 100.0
)

// Note is the leaf value type used by every melodic, rhythmic and harmonic
// structure in the pipeline. Values are immutable once produced; transforms
// always build new slices.
type Note struct {
	Pitch    int     `json:"pitch"`    // MIDI pitch [0,127]
	Time     float64 `json:"time"`     // start, in beats, >= 0
	Duration float64 `json:"duration"` // in beats, > 0
	Velocity int     `json:"velocity"` // MIDI velocity [0,127]
}

// Valid reports whether the note satisfies its documented bounds.
func (n Note) Valid() bool {
	return n.Pitch >= MinMIDI && n.Pitch <= MaxMIDI &&
		n.Velocity >= MinMIDI && n.Velocity <= MaxMIDI &&
		n.Time >= 0 && n.Duration > 0
}

// ClampScore forces a raw sub-score back into the documented [0,100] range.
// Scoring engines are total; this is the single place the bound is enforced.
func ClampScore(s float64) float64 {
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}

// CheckResult is the outcome of a soft-quality check. Soft checks never fail
// hard; the orchestrator decides whether to act on Issues.
type CheckResult struct {
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Merge folds another check result into this one, and-ing validity.
func (c CheckResult) Merge(other CheckResult) CheckResult {
	return CheckResult{
		Valid:       c.Valid && other.Valid,
		Issues:      append(append([]string{}, c.Issues...), other.Issues...),
		Warnings:    append(append([]string{}, c.Warnings...), other.Warnings...),
		Suggestions: append(append([]string{}, c.Suggestions...), other.Suggestions...),
	}
}
