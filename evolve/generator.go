// Package evolve searches the full puzzle genome space with a genetic
// algorithm, trading exhaustiveness for quality and distribution
// guarantees the direct constructor cannot cheaply provide.
package evolve

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/laser-lock/construct"
	"github.com/lixenwraith/laser-lock/genetic"
	"github.com/lixenwraith/laser-lock/oracle"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// Config tunes one generator instance. Zero values take the compiled
// defaults.
type Config struct {
	// PoolSize overrides parameter.GAPoolSize. Use
	// parameter.GAPoolSizeCompact for interactive latency.
	PoolSize int

	// MaxGenerations overrides parameter.GAMaxGenerations.
	MaxGenerations int

	// Seed for reproducible runs (0 = random).
	Seed uint64

	// ExhaustiveFitness switches the per-chromosome solvability check
	// from sampled to the full 1728-vector search. Slower, exact.
	ExhaustiveFitness bool

	// Logger receives per-generation debug stats. Nil discards.
	Logger *logrus.Logger
}

// Result is the generator's public output: a plain puzzle plus the
// observability metadata side-channel.
type Result struct {
	Puzzle *puzzle.Puzzle

	Fitness     float64
	Breakdown   map[string]float64
	Generations int
	Elapsed     time.Duration
	Solvable    bool

	CacheHits   int
	CacheMisses int
}

// Generator evolves puzzle genomes. Instances are independent; each
// owns its solvability cache, so concurrent generators never interfere.
type Generator struct {
	cfg     Config
	presets map[puzzle.Difficulty]Preset

	fitOracle   *oracle.Oracle
	finalOracle *oracle.Oracle
	cache       *oracle.Cache
	log         *logrus.Logger
}

// NewGenerator creates a generator with the built-in presets.
func NewGenerator(cfg Config) *Generator {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = parameter.GAPoolSize
	}
	if cfg.MaxGenerations <= 0 {
		cfg.MaxGenerations = parameter.GAMaxGenerations
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	fitCfg := oracle.Config{Exhaustive: cfg.ExhaustiveFitness, Seed: cfg.Seed}
	return &Generator{
		cfg:         cfg,
		presets:     DefaultPresets(),
		fitOracle:   oracle.New(fitCfg),
		finalOracle: oracle.New(oracle.DefaultConfig()),
		cache:       oracle.NewCache(),
		log:         log,
	}
}

// SetPreset replaces one tier's tuning, e.g. from a tuning file.
func (g *Generator) SetPreset(d puzzle.Difficulty, p Preset) {
	g.presets[d] = p
}

// Generate evolves a puzzle for the difficulty tier using the tier's
// own lit-edge range. Unknown tiers fall back to medium; the call
// always returns a puzzle. The context bounds the run: on cancellation
// the best chromosome so far is returned.
func (g *Generator) Generate(ctx context.Context, d puzzle.Difficulty) Result {
	preset, ok := g.presets[d]
	if !ok {
		preset = g.presets[puzzle.Medium]
	}
	return g.run(ctx, d, preset)
}

// GenerateWithRange overrides the tier's lit-edge range, clamped to
// [1,12] with min/max swapped when inverted.
func (g *Generator) GenerateWithRange(ctx context.Context, d puzzle.Difficulty, minLit, maxLit int) Result {
	preset, ok := g.presets[d]
	if !ok {
		preset = g.presets[puzzle.Medium]
	}
	preset.LitMin, preset.LitMax = puzzle.ClampLitRange(minLit, maxLit)
	return g.run(ctx, d, preset)
}

func (g *Generator) run(ctx context.Context, d puzzle.Difficulty, preset Preset) Result {
	start := time.Now()

	// Stale verdicts must not leak across puzzles
	g.cache.Clear()

	agg := aggregatorFor(preset.Weights)
	evaluator := func(p *puzzle.Puzzle) (float64, map[string]any) {
		metrics, solvable := g.evaluate(preset, p)
		return agg.Calculate(metrics), map[string]any{
			"breakdown": agg.Breakdown(metrics),
			"solvable":  solvable,
		}
	}

	engine := genetic.NewEngine(
		evaluator,
		g.initializer(preset),
		&genetic.TournamentSelector[*puzzle.Puzzle, float64]{TournamentSize: parameter.GATournamentSize},
		&combiner{litMin: preset.LitMin, litMax: preset.LitMax},
		perturbator{},
		genetic.EngineConfig{
			PoolSize:             g.cfg.PoolSize,
			EliteCount:           eliteCount(g.cfg.PoolSize),
			CrossoverRate:        parameter.GACrossoverRate,
			PerturbationRate:     parameter.GAMutationRate,
			PerturbationStrength: 1.0,
			MaxIterations:        g.cfg.MaxGenerations,
			Parallelism:          parameter.GAParallelism,
			Seed:                 g.cfg.Seed,
		},
	)
	engine.SetRepairer(g.repairer(preset))
	engine.SetCloner(func(p *puzzle.Puzzle) *puzzle.Puzzle { return p.Clone() })
	engine.SetTerminator(g.terminator())

	pool, err := engine.Run(ctx)
	if err != nil {
		g.log.WithError(err).Debug("evolution interrupted, returning best so far")
	}

	best, bestErr := engine.GetBest()
	if bestErr != nil || best.Data == nil {
		// Engine produced nothing usable; degrade to the deterministic
		// fallback rather than failing the call.
		p := construct.Fallback(randomFallbackEdges(preset))
		return Result{
			Puzzle:   p,
			Solvable: true,
			Elapsed:  time.Since(start),
		}
	}

	result := Result{
		Puzzle:      best.Data,
		Fitness:     best.Score,
		Generations: generations(pool),
		Elapsed:     time.Since(start),
		// The returned verdict is always authoritative: the cache may
		// hold sampled false negatives, so the final check bypasses it
		Solvable: g.finalOracle.IsSolvable(best.Data),
	}
	if bd, ok := best.Metadata["breakdown"].(map[string]float64); ok {
		result.Breakdown = bd
	}
	result.CacheHits, result.CacheMisses = g.cache.Stats()

	g.log.WithFields(logrus.Fields{
		"difficulty":  d,
		"fitness":     result.Fitness,
		"generations": result.Generations,
		"solvable":    result.Solvable,
		"elapsed":     result.Elapsed,
	}).Debug("evolution finished")

	return result
}

// terminator implements the early-exit rule: stop once the best
// chromosome clears the quality threshold and is actually solvable, or
// after the convergence patience runs out.
func (g *Generator) terminator() genetic.TerminationFunc[*puzzle.Puzzle, float64] {
	accept := func(pool *genetic.Pool[*puzzle.Puzzle, float64]) bool {
		if len(pool.Members) == 0 {
			return false
		}
		top := pool.Members[0]
		solvable, _ := top.Metadata["solvable"].(bool)

		g.log.WithFields(logrus.Fields{
			"generation": pool.Generation,
			"best":       pool.Stats.BestScore,
			"average":    pool.Stats.AverageScore,
			"solvable":   solvable,
		}).Debug("generation stats")

		return top.Score >= parameter.GAFitnessThreshold && solvable
	}
	return genetic.ConvergenceTerminator(parameter.GAConvergencePatience, accept)
}

func eliteCount(poolSize int) int {
	n := int(float64(poolSize) * parameter.GAEliteRatio)
	if n < 1 {
		n = 1
	}
	return n
}

func generations(pool *genetic.Pool[*puzzle.Puzzle, float64]) int {
	if pool == nil {
		return 0
	}
	return pool.Generation
}

func randomFallbackEdges(preset Preset) []int {
	edges := make([]int, 0, preset.LitMin)
	for e := 0; len(edges) < preset.LitMin && e < parameter.PolygonSides; e++ {
		edges = append(edges, e)
	}
	return edges
}
