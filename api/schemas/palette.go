// File: api/schemas/palette.go
package schemas

// -- Sound Palette --

// FrequencyRole names the band of the spectrum a palette entry occupies.
type FrequencyRole string

const (
	RoleSub     FrequencyRole = "sub"
	RoleBass    FrequencyRole = "bass"
	RoleLowMid  FrequencyRole = "lowMid"
	RoleMid     FrequencyRole = "mid"
	RoleHighMid FrequencyRole = "highMid"
	RoleHigh    FrequencyRole = "high"
	RoleAir     FrequencyRole = "air"
)

// EssentialRoles are the bands a balanced palette must cover.
var EssentialRoles = []FrequencyRole{RoleBass, RoleLowMid, RoleMid, RoleHighMid}

// PaletteEntry describes one sound-design element. Entries carry only
// descriptive hints; resolving them to actual assets is the asset-search
// collaborator's job.
type PaletteEntry struct {
	Role            FrequencyRole `json:"role"`
	Type            string        `json:"type"`
	FreqRangeHz     [2]float64    `json:"freq_range_hz"`
	Characteristics []string      `json:"characteristics,omitempty"`
	ProcessingHints []string      `json:"processing_hints,omitempty"`
}

// SoundPalette is the bounded set of elements selected for the piece.
type SoundPalette struct {
	Entries    []PaletteEntry        `json:"entries"`
	RoleCounts map[FrequencyRole]int `json:"role_counts"`
	Forbidden  []string              `json:"forbidden,omitempty"`
}

// Covers reports whether any entry fills the given role.
func (p SoundPalette) Covers(role FrequencyRole) bool {
	return p.RoleCounts[role] > 0
}
