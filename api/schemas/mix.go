// File: api/schemas/mix.go
package schemas

// -- Mix Design --

// TrackLevel sets the target loudness and stereo position for one track.
type TrackLevel struct {
	Track     string  `json:"track"`
	StemGroup string  `json:"stem_group"`
	TargetDB  float64 `json:"target_db"`
	Pan       int     `json:"pan"` // [-100,100]
}

// LevelingPlan is the per-track gain staging for the arrangement.
type LevelingPlan struct {
	Levels []TrackLevel `json:"levels"`
}

// ProcessingSuggestion is one EQ or compression recommendation for a stem
// group. Kind is "eq" or "compression".
type ProcessingSuggestion struct {
	StemGroup   string `json:"stem_group"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// ReverbLayer is one depth layer of the spatial scene.
type ReverbLayer struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"` // room, plate, hall, spring...
	DecaySeconds float64 `json:"decay_seconds"`
	PredelayMs   float64 `json:"predelay_ms"`
}

// DelayLine is one delay assignment.
type DelayLine struct {
	Track       string `json:"track"`
	TimeDesc    string `json:"time_desc"` // e.g. "1/8 dotted"
	TempoSynced bool   `json:"tempo_synced"`
}

// WidthProcessing is one stereo-width treatment. Amount is [0,100].
type WidthProcessing struct {
	Track     string  `json:"track"`
	Technique string  `json:"technique"` // haas, midside, chorus...
	Amount    float64 `json:"amount"`
}

// SpatialScene groups the depth and width treatments of the mix.
type SpatialScene struct {
	ReverbLayers []ReverbLayer     `json:"reverb_layers"`
	Delays       []DelayLine       `json:"delays,omitempty"`
	Width        []WidthProcessing `json:"width,omitempty"`
}

// AutomationPass is one planned parameter ride.
type AutomationPass struct {
	Target      string `json:"target"`
	Parameter   string `json:"parameter"`
	Description string `json:"description"`
}

// MixDesign is the stage-nine output handed to the DAW-integration
// collaborator. MasterChain is the ordered device list for the master bus.
type MixDesign struct {
	Leveling    LevelingPlan           `json:"leveling"`
	Suggestions []ProcessingSuggestion `json:"suggestions,omitempty"`
	Spatial     SpatialScene           `json:"spatial"`
	Automation  []AutomationPass       `json:"automation,omitempty"`
	MasterChain []string               `json:"master_chain"`
}

// MixScore is the weighted mix-quality breakdown:
// 0.3*balance + 0.2*stereo + 0.2*depth + 0.3*translation.
type MixScore struct {
	Balance     float64 `json:"balance"`
	Stereo      float64 `json:"stereo"`
	Depth       float64 `json:"depth"`
	Translation float64 `json:"translation"`
	Overall     float64 `json:"overall"`
}
