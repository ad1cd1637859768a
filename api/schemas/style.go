// File: api/schemas/style.go
package schemas

// -- Style Prior --

// BPMSignature captures the typical tempo and its acceptable spread for a
// style, in BPM.
type BPMSignature struct {
	Typical  float64 `json:"typical"`
	Variance float64 `json:"variance"`
}

// SwingProfile describes how far off the grid the style sits. Amount is a
// percentage [0,100]; Subdivision names the swung grid ("8th" or "16th").
type SwingProfile struct {
	Amount      float64 `json:"amount"`
	Subdivision string  `json:"subdivision"`
}

// ArrangementNorms carries structural expectations for the style.
type ArrangementNorms struct {
	TypicalSectionBars int      `json:"typical_section_bars"`
	TransitionStyles   []string `json:"transition_styles"`
}

// Guardrails collects qualitative constraints generation should respect.
// EnergyProfile is a free-text label (e.g. "driving four-on-floor techno");
// the groove generator keyword-matches it against known genres.
type Guardrails struct {
	EnergyProfile string   `json:"energy_profile"`
	Avoid         []string `json:"avoid,omitempty"`
}

// StylePrior is the genre-conditioned parameter bundle guiding candidate
// generation and genre-fit scoring. Derived from Brief+Spec, then read-only.
type StylePrior struct {
	BPM         BPMSignature     `json:"bpm"`
	Swing       SwingProfile     `json:"swing"`
	SoundTraits []string         `json:"sound_traits"`
	Norms       ArrangementNorms `json:"norms"`
	Guardrails  Guardrails       `json:"guardrails"`
}

// NeutralStylePrior returns the fixed prior used when scoring must be
// independent of any particular brief (variation improvement deltas).
func NeutralStylePrior() StylePrior {
	return StylePrior{
		BPM:   BPMSignature{Typical: 120, Variance: 10},
		Swing: SwingProfile{Amount: 0, Subdivision: "8th"},
		Norms: ArrangementNorms{TypicalSectionBars: 8, TransitionStyles: []string{"crossfade"}},
		Guardrails: Guardrails{
			EnergyProfile: "neutral",
		},
	}
}
