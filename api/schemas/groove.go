// File: api/schemas/groove.go
package schemas

// -- Groove Candidates & Time Base --

// GrooveCandidate is one rhythmic foundation proposal: a tempo, meter and
// swing setting plus kick/snare/hat step-index patterns over the 16-step grid.
// Step indices are unique integers in [0, steps*bars).
type GrooveCandidate struct {
	ID               string  `json:"id"`
	Tempo            float64 `json:"tempo"`
	Meter            string  `json:"meter"`
	Swing            float64 `json:"swing"` // percent [0,100]
	Kick             []int   `json:"kick"`
	Snare            []int   `json:"snare"`
	Hat              []int   `json:"hat"`
	VelocityVariance float64 `json:"velocity_variance"`
	TimingJitterMs   float64 `json:"timing_jitter_ms"`
	VelocityJitter   float64 `json:"velocity_jitter"`
	Description      string  `json:"description"`
}

// GrooveScore is the scored breakdown for one candidate. Overall is the
// weighted blend: 0.4*danceability + 0.35*pocket + 0.25*genre fit, rounded.
type GrooveScore struct {
	Danceability float64 `json:"danceability"`
	Pocket       float64 `json:"pocket"`
	GenreFit     float64 `json:"genre_fit"`
	Overall      float64 `json:"overall"`
}

// ScoredGroove pairs a candidate with its score for ranking.
type ScoredGroove struct {
	Candidate GrooveCandidate `json:"candidate"`
	Score     GrooveScore     `json:"score"`
}

// TimeBase is the stage-three output: the final tempo and meter, the winning
// groove, and the ranked alternates kept for later revision.
type TimeBase struct {
	Tempo      float64        `json:"tempo"`
	Meter      string         `json:"meter"`
	Selected   ScoredGroove   `json:"selected"`
	Alternates []ScoredGroove `json:"alternates,omitempty"`
}
