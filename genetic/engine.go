package genetic

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"sync"
)

// --- Algorithm Engine ---

// Engine is the main genetic algorithm execution engine
// It coordinates all operators and manages the evolution process
type Engine[S Solution, F Numeric] struct {
	// Core operators
	evaluator   EvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]
	repairer    RepairFunc[S]
	cloner      CloneFunc[S]
	terminator  TerminationFunc[S, F]

	// Configuration
	config EngineConfig

	// State
	rng         *rand.Rand
	rngMu       sync.Mutex
	currentPool *Pool[S, F]
	best        *Candidate[S, F]
	history     []PoolStats[F]

	// Concurrency control
	semaphore chan struct{}
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// EliteCount is the number of best solutions preserved unchanged
	EliteCount int
	// CrossoverRate is the probability offspring are produced by
	// recombination rather than cloned from a single parent (0-1)
	CrossoverRate float64
	// PerturbationRate is the probability of applying perturbation (0-1)
	PerturbationRate float64
	// PerturbationStrength controls the intensity of perturbations (0-1)
	PerturbationStrength float64
	// MaxIterations is the maximum number of generations to run
	MaxIterations int
	// Parallelism controls the number of concurrent evaluations
	Parallelism int
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// NewEngine creates a new genetic algorithm engine with the specified operators
func NewEngine[S Solution, F Numeric](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) *Engine[S, F] {
	// Initialize random number generator
	var rng *rand.Rand
	if config.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed))
	}

	if config.Parallelism < 1 {
		config.Parallelism = 1
	}

	return &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         rng,
		semaphore:   make(chan struct{}, config.Parallelism),
		history:     make([]PoolStats[F], 0, config.MaxIterations),
	}
}

// SetTerminator sets a custom termination condition
func (e *Engine[S, F]) SetTerminator(terminator TerminationFunc[S, F]) {
	e.terminator = terminator
}

// SetRepairer sets the invariant-repair operator applied to every
// solution, initial or offspring, before evaluation
func (e *Engine[S, F]) SetRepairer(repairer RepairFunc[S]) {
	e.repairer = repairer
}

// SetCloner sets the copy operator used when an offspring is taken
// from a single parent without crossover
func (e *Engine[S, F]) SetCloner(cloner CloneFunc[S]) {
	e.cloner = cloner
}

// Run executes the genetic algorithm until termination
func (e *Engine[S, F]) Run(ctx context.Context) (*Pool[S, F], error) {
	// Initialize population
	e.initializePool()

	// Main evolution loop
	for iteration := 0; iteration < e.config.MaxIterations; iteration++ {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return e.currentPool, ctx.Err()
		default:
		}

		// Check termination condition
		if e.terminator != nil && e.terminator(e.currentPool, iteration) {
			break
		}

		// Evolve one generation
		e.evolveGeneration()

		// Record statistics
		e.history = append(e.history, e.currentPool.Stats)
	}

	return e.currentPool, nil
}

// initializePool creates the initial population of candidates
func (e *Engine[S, F]) initializePool() {
	candidates := make([]Candidate[S, F], e.config.PoolSize)

	// Generate and evaluate initial solutions in parallel
	var wg sync.WaitGroup
	for i := 0; i < e.config.PoolSize; i++ {
		wg.Add(1)
		e.semaphore <- struct{}{} // Acquire semaphore

		go func(idx int) {
			defer wg.Done()
			defer func() { <-e.semaphore }() // Release semaphore

			rng := e.lockedRng()
			solution := e.initializer(rng)
			if e.repairer != nil {
				e.repairer(solution, rng)
			}
			candidates[idx] = e.evaluate(solution)
		}(i)
	}
	wg.Wait()

	sortByScore(candidates)
	e.currentPool = &Pool[S, F]{
		Members:    candidates,
		Generation: 0,
		Stats:      calculateStats(candidates),
	}
	e.trackBest()
}

// evolveGeneration creates the next generation of candidates
func (e *Engine[S, F]) evolveGeneration() {
	nextGen := make([]Candidate[S, F], 0, e.config.PoolSize)

	// Preserve elite solutions (best performers; pool is sorted)
	eliteCount := min(e.config.EliteCount, len(e.currentPool.Members))
	nextGen = append(nextGen, e.currentPool.Members[:eliteCount]...)

	// Generate new offspring to fill the pool
	offspring := make([]S, 0, e.config.PoolSize-len(nextGen))
	for len(nextGen)+len(offspring) < e.config.PoolSize {
		parents := e.selector.Select(e.currentPool, 2, e.rng)

		var children []S
		if e.rng.Float64() < e.config.CrossoverRate {
			children = e.combiner.Combine(parents, e.rng)
		} else {
			// Copy before repair can touch it, or the parent's recorded
			// score would desync from its mutated data
			child := parents[0].Data
			if e.cloner != nil {
				child = e.cloner(child)
			}
			children = []S{child}
		}

		for i := range children {
			if e.rng.Float64() < e.config.PerturbationRate {
				e.perturbator.Perturb(&children[i], e.config.PerturbationStrength, e.rng)
			}
			if e.repairer != nil {
				e.repairer(children[i], e.rng)
			}
			offspring = append(offspring, children[i])
			if len(nextGen)+len(offspring) >= e.config.PoolSize {
				break
			}
		}
	}

	// Evaluate offspring in parallel
	evaluated := make([]Candidate[S, F], len(offspring))
	var wg sync.WaitGroup
	for i := range offspring {
		wg.Add(1)
		e.semaphore <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-e.semaphore }()
			evaluated[idx] = e.evaluate(offspring[idx])
		}(i)
	}
	wg.Wait()

	nextGen = append(nextGen, evaluated...)
	sortByScore(nextGen)

	// Update current pool
	e.currentPool = &Pool[S, F]{
		Members:    nextGen[:e.config.PoolSize],
		Generation: e.currentPool.Generation + 1,
		Stats:      calculateStats(nextGen[:e.config.PoolSize]),
	}
	e.trackBest()
}

func (e *Engine[S, F]) evaluate(solution S) Candidate[S, F] {
	score, meta := e.evaluator(solution)
	if meta == nil {
		meta = make(map[string]any)
	}
	return Candidate[S, F]{
		Data:     solution,
		Score:    score,
		Metadata: meta,
	}
}

// trackBest keeps the best-ever candidate across generations, since
// elites can be displaced once the pool fills with equals
func (e *Engine[S, F]) trackBest() {
	if len(e.currentPool.Members) == 0 {
		return
	}
	top := e.currentPool.Members[0]
	if e.best == nil || top.Score > e.best.Score {
		best := top
		e.best = &best
	}
}

// lockedRng hands the engine rng to parallel initializers one at a time
func (e *Engine[S, F]) lockedRng() *rand.Rand {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	seed := e.rng.Uint64()
	return rand.New(rand.NewPCG(seed, seed))
}

// GetHistory returns the statistical history of the evolution process
func (e *Engine[S, F]) GetHistory() []PoolStats[F] {
	return e.history
}

// GetBest returns the best candidate found across all generations
func (e *Engine[S, F]) GetBest() (Candidate[S, F], error) {
	if e.best == nil {
		return Candidate[S, F]{}, errors.New("no candidates available")
	}
	return *e.best, nil
}

// --- Helpers ---

func sortByScore[S Solution, F Numeric](candidates []Candidate[S, F]) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

// calculateStats computes statistical measures for a candidate pool
func calculateStats[S Solution, F Numeric](candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	total := F(0)
	for _, c := range candidates {
		if c.Score > stats.BestScore {
			stats.BestScore = c.Score
		}
		if c.Score < stats.WorstScore {
			stats.WorstScore = c.Score
		}
		total += c.Score
	}

	stats.AverageScore = total / F(len(candidates))
	return stats
}
