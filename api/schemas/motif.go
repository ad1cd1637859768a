// File: api/schemas/motif.go
package schemas

// -- Motif Seeds --

// MotifType tags what musical job a motif does.
type MotifType string

const (
	MotifMelodic  MotifType = "melodic"
	MotifRhythmic MotifType = "rhythmic"
	MotifHarmonic MotifType = "harmonic"
	MotifTextural MotifType = "textural"
)

// MotifSeed is a short reusable note sequence. Key is a pitch name like "C"
// or "F#"; Scale names the mode ("minor", "dorian", ...).
type MotifSeed struct {
	ID         string    `json:"id"`
	Type       MotifType `json:"type"`
	Notes      []Note    `json:"notes"`
	LengthBars int       `json:"length_bars"`
	Key        string    `json:"key"`
	Scale      string    `json:"scale"`
}

// MotifScore is the weighted breakdown for one motif:
// 0.25*memorability + 0.20*singability + 0.20*tension/relief +
// 0.15*novelty + 0.20*genre fit.
type MotifScore struct {
	Memorability  float64 `json:"memorability"`
	Singability   float64 `json:"singability"`
	TensionRelief float64 `json:"tension_relief"`
	Novelty       float64 `json:"novelty"`
	GenreFit      float64 `json:"genre_fit"`
	Overall       float64 `json:"overall"`
}

// ScoredMotif pairs a seed with its score.
type ScoredMotif struct {
	Motif MotifSeed  `json:"motif"`
	Score MotifScore `json:"score"`
}

// MotifSeedSet is the stage-five output: the full generated pool with scores
// plus the selected top-N, ranked by descending overall score (ties keep
// generation order).
type MotifSeedSet struct {
	Generated []ScoredMotif `json:"generated"`
	Selected  []MotifSeed   `json:"selected"`
}

// SelectedOfType returns the selected motifs matching a type, preserving
// selection order.
func (s MotifSeedSet) SelectedOfType(t MotifType) []MotifSeed {
	var out []MotifSeed
	for _, m := range s.Selected {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}
