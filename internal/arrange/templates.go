// File: internal/arrange/templates.go

// Package arrange builds the macro structure of a piece from named
// archetypes and composes each section from the selected motif seeds.
package arrange

import (
	"fmt"
	"sort"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// ErrUnknownArchetype is returned when a structure archetype name has no
// template. Callers can list valid names with ArchetypeNames.
var ErrUnknownArchetype = fmt.Errorf("unknown structure archetype")

// archetypes maps a structure name to its ordered section-type sequence.
var archetypes = map[string][]schemas.SectionType{
	"club": {
		schemas.SectionIntro, schemas.SectionBuild, schemas.SectionDrop,
		schemas.SectionBreakdown, schemas.SectionBuild, schemas.SectionDrop,
		schemas.SectionOutro,
	},
	"pop": {
		schemas.SectionIntro, schemas.SectionVerse, schemas.SectionChorus,
		schemas.SectionVerse, schemas.SectionChorus, schemas.SectionBridge,
		schemas.SectionChorus, schemas.SectionOutro,
	},
	"cinematic": {
		schemas.SectionIntro, schemas.SectionBuild, schemas.SectionChorus,
		schemas.SectionBreakdown, schemas.SectionBuild, schemas.SectionChorus,
		schemas.SectionOutro,
	},
	"minimal": {
		schemas.SectionIntro, schemas.SectionVerse, schemas.SectionBuild,
		schemas.SectionDrop, schemas.SectionOutro,
	},
}

// ArchetypeNames returns the known archetype names in sorted order.
func ArchetypeNames() []string {
	names := make([]string, 0, len(archetypes))
	for name := range archetypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sectionDefaults supplies the default length and energy per section type.
var sectionDefaults = map[schemas.SectionType]struct {
	LengthBars int
	Energy     int
}{
	schemas.SectionIntro:     {8, 20},
	schemas.SectionVerse:     {16, 45},
	schemas.SectionChorus:    {16, 85},
	schemas.SectionBuild:     {8, 60},
	schemas.SectionDrop:      {16, 95},
	schemas.SectionBreakdown: {8, 30},
	schemas.SectionBridge:    {8, 55},
	schemas.SectionOutro:     {8, 15},
}

// transitionTypes resolves the transition between two adjacent section
// types. Unlisted pairs fall back to "crossfade".
var transitionTypes = map[[2]schemas.SectionType]string{
	{schemas.SectionIntro, schemas.SectionVerse}:     "filter sweep",
	{schemas.SectionIntro, schemas.SectionBuild}:     "riser",
	{schemas.SectionVerse, schemas.SectionChorus}:    "drum fill",
	{schemas.SectionVerse, schemas.SectionBuild}:     "riser",
	{schemas.SectionBuild, schemas.SectionDrop}:      "impact",
	{schemas.SectionBuild, schemas.SectionChorus}:    "impact",
	{schemas.SectionDrop, schemas.SectionBreakdown}:  "reverb tail",
	{schemas.SectionChorus, schemas.SectionVerse}:    "downlifter",
	{schemas.SectionChorus, schemas.SectionBridge}:   "filter sweep",
	{schemas.SectionBreakdown, schemas.SectionBuild}: "riser",
	{schemas.SectionBridge, schemas.SectionChorus}:   "drum fill",
	{schemas.SectionDrop, schemas.SectionOutro}:      "reverb tail",
	{schemas.SectionChorus, schemas.SectionOutro}:    "reverb tail",
}

// TransitionType returns the transition label between two section types.
func TransitionType(from, to schemas.SectionType) string {
	if t, ok := transitionTypes[[2]schemas.SectionType{from, to}]; ok {
		return t
	}
	return "crossfade"
}
