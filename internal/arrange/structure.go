// File: internal/arrange/structure.go
package arrange

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/atelier-audio/arranger-cli/api/schemas"
)

// Structure expands a named archetype into a full macro structure. When
// targetBars differs from the archetype's natural length, every bar-valued
// field is rescaled by the ratio and rounded; targetBars <= 0 keeps the
// natural length.
func Structure(archetype string, targetBars int) (schemas.MacroStructure, error) {
	sequence, ok := archetypes[archetype]
	if !ok {
		return schemas.MacroStructure{}, fmt.Errorf("%w: %q", ErrUnknownArchetype, archetype)
	}

	m := schemas.MacroStructure{Archetype: archetype}
	typeCounts := map[schemas.SectionType]int{}
	bar := 0
	for _, st := range sequence {
		def := sectionDefaults[st]
		typeCounts[st]++

		name := string(st)
		if typeCounts[st] > 1 {
			name = fmt.Sprintf("%s %d", st, typeCounts[st])
		}

		m.Sections = append(m.Sections, schemas.ArrangementSection{
			ID:          uuid.NewString(),
			Type:        st,
			Name:        name,
			StartBar:    bar,
			LengthBars:  def.LengthBars,
			EnergyLevel: def.Energy,
		})
		bar += def.LengthBars
	}
	m.TotalBars = bar

	// Second pass once all names are settled: transitions per adjacent pair.
	for i := range m.Sections {
		if i > 0 {
			m.Sections[i].TransitionIn = TransitionType(m.Sections[i-1].Type, m.Sections[i].Type)
			m.Sections[i-1].TransitionOut = m.Sections[i].TransitionIn
		}
	}

	if targetBars > 0 && targetBars != m.TotalBars {
		rescale(&m, targetBars)
	}

	m.EnergyCurve = energyCurve(m.Sections)
	m.KeyMoments = keyMoments(m.Sections)
	return m, nil
}

// rescale stretches or compresses every bar-valued field by
// targetBars/TotalBars, rounding each. Lengths are recomputed from the
// scaled starts so the sections stay contiguous.
func rescale(m *schemas.MacroStructure, targetBars int) {
	ratio := float64(targetBars) / float64(m.TotalBars)
	for i := range m.Sections {
		m.Sections[i].StartBar = int(math.Round(float64(m.Sections[i].StartBar) * ratio))
	}
	for i := range m.Sections {
		end := targetBars
		if i+1 < len(m.Sections) {
			end = m.Sections[i+1].StartBar
		}
		m.Sections[i].LengthBars = end - m.Sections[i].StartBar
	}
	m.TotalBars = targetBars
}

// energyCurve samples the step function as a (start,energy) and
// (end,energy) pair per section.
func energyCurve(sections []schemas.ArrangementSection) []schemas.EnergyCurvePoint {
	curve := make([]schemas.EnergyCurvePoint, 0, 2*len(sections))
	for _, s := range sections {
		curve = append(curve,
			schemas.EnergyCurvePoint{Bar: s.StartBar, Energy: s.EnergyLevel},
			schemas.EnergyCurvePoint{Bar: s.StartBar + s.LengthBars, Energy: s.EnergyLevel},
		)
	}
	return curve
}

// keyMoments marks the start bar of every drop, chorus, breakdown and
// build section.
func keyMoments(sections []schemas.ArrangementSection) []schemas.KeyMoment {
	var moments []schemas.KeyMoment
	for _, s := range sections {
		switch s.Type {
		case schemas.SectionDrop, schemas.SectionChorus, schemas.SectionBreakdown, schemas.SectionBuild:
			moments = append(moments, schemas.KeyMoment{
				Bar:   s.StartBar,
				Label: fmt.Sprintf("%s start", s.Type),
			})
		}
	}
	return moments
}

// CheckStructure runs the soft structural constraints: contiguous sections,
// bar totals that add up, and sane lengths. It never fails hard.
func CheckStructure(m schemas.MacroStructure) schemas.CheckResult {
	res := schemas.CheckResult{Valid: true}

	if len(m.Sections) == 0 {
		res.Valid = false
		res.Issues = append(res.Issues, "structure has no sections")
		return res
	}

	sum := 0
	for _, s := range m.Sections {
		if s.StartBar != sum {
			res.Valid = false
			res.Issues = append(res.Issues, fmt.Sprintf(
				"section %q starts at bar %d, expected %d", s.Name, s.StartBar, sum))
		}
		if s.LengthBars <= 0 {
			res.Valid = false
			res.Issues = append(res.Issues, fmt.Sprintf(
				"section %q has non-positive length %d", s.Name, s.LengthBars))
		}
		if s.LengthBars == 1 {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"section %q is a single bar; consider merging with a neighbor", s.Name))
		}
		sum += s.LengthBars
	}
	if sum != m.TotalBars {
		res.Valid = false
		res.Issues = append(res.Issues, fmt.Sprintf(
			"section lengths sum to %d bars but total is %d", sum, m.TotalBars))
	}
	return res
}

// CheckEnergySmoothness warns about abrupt energy jumps between adjacent
// sections that are not build-to-drop style transitions.
func CheckEnergySmoothness(m schemas.MacroStructure) schemas.CheckResult {
	res := schemas.CheckResult{Valid: true}
	for i := 1; i < len(m.Sections); i++ {
		prev, cur := m.Sections[i-1], m.Sections[i]
		jump := cur.EnergyLevel - prev.EnergyLevel
		if jump < 0 {
			jump = -jump
		}
		if jump <= 50 {
			continue
		}
		// A huge jump into a drop or out of one is the point of the form.
		if cur.Type == schemas.SectionDrop || prev.Type == schemas.SectionDrop {
			continue
		}
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"energy jumps %d points from %q to %q", jump, prev.Name, cur.Name))
		res.Suggestions = append(res.Suggestions, fmt.Sprintf(
			"insert a build or breakdown between %q and %q", prev.Name, cur.Name))
	}
	return res
}
