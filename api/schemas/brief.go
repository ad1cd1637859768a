// File: api/schemas/brief.go
package schemas

// -- Brief & Derived Specification --

// Brief is the creative input boundary for a composition run. It is created
// once at ingestion and never modified by later stages.
type Brief struct {
	Genres       []string `json:"genres" yaml:"genres"`
	Moods        []string `json:"moods" yaml:"moods"`
	References   []string `json:"references,omitempty" yaml:"references"`
	UseCase      string   `json:"use_case" yaml:"use_case"`
	DurationBars int      `json:"duration_bars" yaml:"duration_bars"`
	MustInclude  []string `json:"must_include,omitempty" yaml:"must_include"`
	MustAvoid    []string `json:"must_avoid,omitempty" yaml:"must_avoid"`
}

// Validate runs the boundary validation for externally supplied briefs.
// It is a soft check: a brief with problems is reported, not rejected, so the
// caller can decide whether to proceed with defaults.
func (b Brief) Validate() CheckResult {
	res := CheckResult{Valid: true}
	if len(b.Genres) == 0 {
		res.Valid = false
		res.Issues = append(res.Issues, "brief has no genres; style derivation needs at least one")
	}
	if b.DurationBars <= 0 {
		res.Valid = false
		res.Issues = append(res.Issues, "brief duration_bars must be positive")
	}
	if b.DurationBars > 0 && b.DurationBars < 16 {
		res.Warnings = append(res.Warnings, "brief is shorter than 16 bars; most archetypes will be rescaled down aggressively")
	}
	if len(b.Moods) == 0 {
		res.Warnings = append(res.Warnings, "no mood tags supplied; energy arc falls back to genre defaults")
	}
	return res
}

// TempoRange bounds the acceptable tempo for the piece, in BPM.
type TempoRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Mid returns the center of the range.
func (r TempoRange) Mid() float64 { return (r.Min + r.Max) / 2 }

// EnergyPoint is one sample of the target energy arc. Position is normalized
// song position in [0,1]; Energy is [0,100].
type EnergyPoint struct {
	Position float64 `json:"position"`
	Energy   int     `json:"energy"`
}

// Spec is derived deterministically from a Brief. It constrains everything
// downstream: tempo, energy shape, instrumentation and structure.
type Spec struct {
	Tempo           TempoRange    `json:"tempo"`
	EnergyArc       []EnergyPoint `json:"energy_arc"`
	Instrumentation []string      `json:"instrumentation"`
	MixAesthetic    string        `json:"mix_aesthetic"`
	MinSections     int           `json:"min_sections"`
	MaxSections     int           `json:"max_sections"`
	DurationBars    int           `json:"duration_bars"`
}

// EnergyAt linearly interpolates the energy arc at a normalized position.
// An empty arc yields a flat 50.
func (s Spec) EnergyAt(pos float64) int {
	if len(s.EnergyArc) == 0 {
		return 50
	}
	if pos <= s.EnergyArc[0].Position {
		return s.EnergyArc[0].Energy
	}
	for i := 1; i < len(s.EnergyArc); i++ {
		a, b := s.EnergyArc[i-1], s.EnergyArc[i]
		if pos <= b.Position {
			span := b.Position - a.Position
			if span <= 0 {
				return b.Energy
			}
			t := (pos - a.Position) / span
			return a.Energy + int(t*float64(b.Energy-a.Energy))
		}
	}
	return s.EnergyArc[len(s.EnergyArc)-1].Energy
}
