// File: internal/pipeline/rank.go
package pipeline

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/score"
)

// rankGrooves scores candidates in parallel and returns them ranked by
// descending overall score. Scoring is pure, so each goroutine writes only
// its own slot; results re-join by index before the stable sort, which keeps
// generation order on ties.
func (p *Pipeline) rankGrooves(candidates []schemas.GrooveCandidate, prior schemas.StylePrior) []schemas.ScoredGroove {
	scored := make([]schemas.ScoredGroove, len(candidates))

	var g errgroup.Group
	g.SetLimit(p.cfg.Engine.WorkerConcurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			scored[i] = schemas.ScoredGroove{Candidate: c, Score: score.Groove(c, prior)}
			return nil
		})
	}
	_ = g.Wait() // no goroutine returns an error

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score.Overall > scored[b].Score.Overall
	})
	return scored
}

// rankMotifs is the motif-pool twin of rankGrooves.
func (p *Pipeline) rankMotifs(pool []schemas.MotifSeed, prior schemas.StylePrior) []schemas.ScoredMotif {
	scored := make([]schemas.ScoredMotif, len(pool))

	var g errgroup.Group
	g.SetLimit(p.cfg.Engine.WorkerConcurrency)
	for i, m := range pool {
		i, m := i, m
		g.Go(func() error {
			scored[i] = schemas.ScoredMotif{Motif: m, Score: score.Motif(m, prior)}
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Score.Overall > scored[b].Score.Overall
	})
	return scored
}

func scoreComposition(c schemas.SectionComposition, section schemas.ArrangementSection) schemas.CompositionScore {
	return score.Composition(c, section.EnergyLevel, section.LengthBars)
}

func scoreMix(d schemas.MixDesign, palette schemas.SoundPalette) schemas.MixScore {
	return score.Mix(d, palette)
}
