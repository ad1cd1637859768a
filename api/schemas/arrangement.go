// File: api/schemas/arrangement.go
package schemas

// -- Macro Structure & Section Composition --

// SectionType is the structural role of an arrangement section.
type SectionType string

const (
	SectionIntro     SectionType = "intro"
	SectionVerse     SectionType = "verse"
	SectionChorus    SectionType = "chorus"
	SectionBuild     SectionType = "build"
	SectionDrop      SectionType = "drop"
	SectionBreakdown SectionType = "breakdown"
	SectionBridge    SectionType = "bridge"
	SectionOutro     SectionType = "outro"
)

// ArrangementSection is one contiguous span of the piece. StartBar values are
// contiguous across a MacroStructure: section[i+1].StartBar ==
// section[i].StartBar + section[i].LengthBars.
type ArrangementSection struct {
	ID            string      `json:"id"`
	Type          SectionType `json:"type"`
	Name          string      `json:"name"`
	StartBar      int         `json:"start_bar"`
	LengthBars    int         `json:"length_bars"`
	EnergyLevel   int         `json:"energy_level"` // [0,100]
	Elements      []string    `json:"elements,omitempty"`
	TransitionIn  string      `json:"transition_in,omitempty"`
	TransitionOut string      `json:"transition_out,omitempty"`
}

// EnergyCurvePoint is one sample of the section-level energy step function.
type EnergyCurvePoint struct {
	Bar    int `json:"bar"`
	Energy int `json:"energy"`
}

// KeyMoment marks a structurally important bar (drop, chorus, breakdown,
// build starts).
type KeyMoment struct {
	Bar   int    `json:"bar"`
	Label string `json:"label"`
}

// MacroStructure is the stage-six output: the ordered section sequence plus
// its energy curve and key-moment markers. sum(LengthBars) == TotalBars.
type MacroStructure struct {
	Archetype   string               `json:"archetype"`
	TotalBars   int                  `json:"total_bars"`
	Sections    []ArrangementSection `json:"sections"`
	EnergyCurve []EnergyCurvePoint   `json:"energy_curve"`
	KeyMoments  []KeyMoment          `json:"key_moments,omitempty"`
}

// SectionAt returns the section covering the given bar, if any.
func (m MacroStructure) SectionAt(bar int) (ArrangementSection, bool) {
	for _, s := range m.Sections {
		if bar >= s.StartBar && bar < s.StartBar+s.LengthBars {
			return s, true
		}
	}
	return ArrangementSection{}, false
}

// VoiceRole names the instrumental job of a voice within a section.
type VoiceRole string

const (
	VoiceBass    VoiceRole = "bass"
	VoiceTopline VoiceRole = "topline"
	VoiceHarmony VoiceRole = "harmony"
	VoicePad     VoiceRole = "pad"
	VoiceRhythm  VoiceRole = "rhythm"
)

// Voice is one instrumental line within a section, with absolute-time notes
// in beats relative to the section start.
type Voice struct {
	Role      VoiceRole `json:"role"`
	TrackName string    `json:"track_name"`
	ClipName  string    `json:"clip_name"`
	Notes     []Note    `json:"notes"`
}

// ChordEvent is one chord of a harmony progression.
type ChordEvent struct {
	StartBeat     float64 `json:"start_beat"`
	Chord         string  `json:"chord"`
	DurationBeats float64 `json:"duration_beats"`
}

// SectionComposition is the fully orchestrated content of one section.
type SectionComposition struct {
	SectionID            string         `json:"section_id"`
	Voices               []Voice        `json:"voices"`
	Harmony              []ChordEvent   `json:"harmony,omitempty"`
	DensityLevel         int            `json:"density_level"` // [1,10]
	RegisterDistribution map[string]int `json:"register_distribution"`
}

// CompositionScore is the coherence breakdown for one section composition:
// 0.3*voice leading + 0.25*density + 0.2*collision penalty complement +
// 0.25*harmonic clarity.
type CompositionScore struct {
	VoiceLeading      float64 `json:"voice_leading"`
	Density           float64 `json:"density"`
	RegisterCollision int     `json:"register_collisions"` // raw count, unbounded
	HarmonicClarity   float64 `json:"harmonic_clarity"`
	Overall           float64 `json:"overall"`
}
