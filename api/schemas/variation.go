// File: api/schemas/variation.go
package schemas

// -- Variation Pass --

// Variation records one operator application to a source motif. The
// improvement delta is motifScore(result) - motifScore(source), both computed
// against the fixed neutral style prior.
type Variation struct {
	Operator         string    `json:"operator"`
	SourceMotifID    string    `json:"source_motif_id"`
	Result           MotifSeed `json:"result"`
	Coherence        float64   `json:"coherence"`
	ImprovementDelta float64   `json:"improvement_delta"`
}

// EarCandy is a short transitional sound-design event.
type EarCandy struct {
	Type         string  `json:"type"`
	PositionBars float64 `json:"position_bars"`
	DurationBars float64 `json:"duration_bars"`
}

// TransitionEnhancement bundles the ear-candy placed around one section
// transition.
type TransitionEnhancement struct {
	AtBar  int        `json:"at_bar"`
	Events []EarCandy `json:"events"`
}

// VariationPass is the stage-eight output.
type VariationPass struct {
	PassNumber   int                     `json:"pass_number"`
	Variations   []Variation             `json:"variations"`
	EarCandy     []EarCandy              `json:"ear_candy"`
	Enhancements []TransitionEnhancement `json:"enhancements"`
	Fills        []TransitionFill        `json:"fills,omitempty"`
}

// TransitionFill is a generated fill covering the boundary between two
// adjacent sections. FillNotes holds literal drum notes (the snare roll for
// building transitions); Events holds the riser/downlifter/impact markers.
type TransitionFill struct {
	FromSectionID string     `json:"from_section_id"`
	ToSectionID   string     `json:"to_section_id"`
	StartBar      int        `json:"start_bar"`
	DurationBars  float64    `json:"duration_bars"`
	Events        []EarCandy `json:"events"`
	FillNotes     []Note     `json:"fill_notes,omitempty"`
}
