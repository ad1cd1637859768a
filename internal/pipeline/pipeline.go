// File: internal/pipeline/pipeline.go
package pipeline

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atelier-audio/arranger-cli/api/schemas"
	"github.com/atelier-audio/arranger-cli/internal/config"
	"github.com/atelier-audio/arranger-cli/internal/workflow"
)

// Arrangement is the finished artifact: every stage output plus the final
// workflow state, serialized as one document for the DAW-integration side.
type Arrangement struct {
	RunID        string                        `json:"run_id"`
	Seed         int64                         `json:"seed"`
	Brief        schemas.Brief                 `json:"brief"`
	Spec         schemas.Spec                  `json:"spec"`
	StylePrior   schemas.StylePrior            `json:"style_prior"`
	Key          string                        `json:"key"`
	Mode         string                        `json:"mode"`
	TimeBase     schemas.TimeBase              `json:"time_base"`
	Palette      schemas.SoundPalette          `json:"palette"`
	PaletteCheck schemas.CheckResult           `json:"palette_check"`
	MotifSeeds   schemas.MotifSeedSet          `json:"motif_seeds"`
	Structure    schemas.MacroStructure        `json:"structure"`
	StructCheck  schemas.CheckResult           `json:"structure_check"`
	Sections     []schemas.SectionComposition  `json:"sections"`
	SectionScore []schemas.CompositionScore    `json:"section_scores"`
	Variations   []schemas.VariationPass       `json:"variations"`
	Mix          schemas.MixDesign             `json:"mix"`
	MixScore     schemas.MixScore              `json:"mix_score"`
	Workflow     schemas.WorkflowState         `json:"workflow"`
}

// Pipeline runs the nine stages in order against one brief.
type Pipeline struct {
	cfg *config.Config
	log *zap.Logger
	rng *rand.Rand
	// effective seed, after resolving the zero "derive from clock" value.
	seed int64
}

// New builds a runner. A zero configured seed derives one from the clock so
// the run is still replayable once its artifact records the effective value.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Pipeline{
		cfg:  cfg,
		log:  log.Named("Pipeline"),
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the effective random seed for this run.
func (p *Pipeline) Seed() int64 { return p.seed }

// Run executes all nine stages and returns the finished arrangement. The
// brief is validated first; hard issues abort before stage one.
func (p *Pipeline) Run(brief schemas.Brief) (*Arrangement, error) {
	if check := brief.Validate(); !check.Valid {
		return nil, fmt.Errorf("brief failed validation: %v", check.Issues)
	}

	art := &Arrangement{
		RunID: uuid.NewString(),
		Seed:  p.seed,
		Brief: brief,
	}
	state := workflow.New()
	p.log.Info("Starting composition run",
		zap.String("run_id", art.RunID), zap.Int64("seed", p.seed))

	// Stage 1: spec derivation.
	art.Spec = DeriveSpec(brief)
	state = p.completeStage(state, schemas.StageSpecDerivation,
		fmt.Sprintf("tempo %.0f-%.0f BPM over %d bars", art.Spec.Tempo.Min, art.Spec.Tempo.Max, art.Spec.DurationBars))

	// Stage 2: style prior.
	art.StylePrior = BuildStylePrior(brief, art.Spec)
	art.Key, art.Mode = KeyAndMode(brief)
	state = p.completeStage(state, schemas.StageStylePrior,
		fmt.Sprintf("typical %.0f BPM, swing %.0f%%, %s %s", art.StylePrior.BPM.Typical, art.StylePrior.Swing.Amount, art.Key, art.Mode))

	// Stage 3: time base.
	tb, err := p.SelectTimeBase(art.StylePrior, p.rng)
	if err != nil {
		return nil, fmt.Errorf("time base selection: %w", err)
	}
	art.TimeBase = tb
	state = p.completeStage(state, schemas.StageTimeBase,
		fmt.Sprintf("selected %q at %.1f BPM (score %.0f, %d alternates)",
			tb.Selected.Candidate.Description, tb.Tempo, tb.Selected.Score.Overall, len(tb.Alternates)))

	// Stage 4: palette.
	art.Palette, art.PaletteCheck = AssemblePalette(art.Spec, art.StylePrior)
	if !art.PaletteCheck.Valid {
		p.log.Warn("Palette coverage has gaps", zap.Strings("issues", art.PaletteCheck.Issues))
	}
	state = p.completeStage(state, schemas.StagePalette,
		fmt.Sprintf("%d entries", len(art.Palette.Entries)))

	// Stage 5: motif seeds.
	art.MotifSeeds = p.SelectMotifSeeds(art.StylePrior, art.Key, art.Mode, p.rng)
	state = p.completeStage(state, schemas.StageMotifSeeds,
		fmt.Sprintf("%d generated, %d selected", len(art.MotifSeeds.Generated), len(art.MotifSeeds.Selected)))

	// Stage 6: macro structure.
	art.Structure, art.StructCheck, err = DraftMacroStructure(art.Spec, art.StylePrior)
	if err != nil {
		return nil, fmt.Errorf("macro structure: %w", err)
	}
	state = p.completeStage(state, schemas.StageMacroStructure,
		fmt.Sprintf("%q archetype, %d sections over %d bars", art.Structure.Archetype, len(art.Structure.Sections), art.Structure.TotalBars))

	// Stage 7: section composition.
	art.Sections, art.SectionScore, err = ComposeSections(art.Structure, art.MotifSeeds, art.TimeBase, art.Key, art.Mode)
	if err != nil {
		return nil, fmt.Errorf("section composition: %w", err)
	}
	state = p.completeStage(state, schemas.StageSectionComposition,
		fmt.Sprintf("%d sections composed", len(art.Sections)))

	// Stage 8: variation passes.
	for pass := 1; pass <= p.cfg.Generation.VariationPasses; pass++ {
		art.Variations = append(art.Variations, RunVariationPass(pass, art.MotifSeeds, art.Structure, art.TimeBase, p.rng))
	}
	state = p.completeStage(state, schemas.StageVariationPass,
		fmt.Sprintf("%d passes", len(art.Variations)))

	// Stage 9: mix design.
	art.Mix, art.MixScore = DesignMix(art.Palette, art.Sections, art.TimeBase)
	state = p.completeStage(state, schemas.StageMixDesign,
		fmt.Sprintf("mix scored %.0f", art.MixScore.Overall))

	art.Workflow = state
	p.log.Info("Composition run complete",
		zap.String("run_id", art.RunID), zap.Int("progress_pct", workflow.Progress(state)))
	return art, nil
}

// completeStage records completion and an audit entry, then logs progress.
func (p *Pipeline) completeStage(state schemas.WorkflowState, stage schemas.Stage, summary string) schemas.WorkflowState {
	state = workflow.Complete(state, stage)
	state = workflow.AppendRevision(state, stage, "complete", summary)
	p.log.Info("Stage complete",
		zap.String("stage", string(stage)),
		zap.String("summary", summary),
		zap.Int("progress_pct", workflow.Progress(state)))
	return state
}
