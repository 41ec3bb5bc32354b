// Package genetic provides a flexible, generic-first genetic algorithm
// framework for optimization and search problems. It has zero knowledge
// of puzzle-specific types: solutions, operators and fitness evaluation
// are supplied by the caller, so the engine can drive any domain.
package genetic

import (
	"math/rand/v2"
)

// --- Concrete Operator Implementations ---

// TournamentSelector implements tournament selection
// Randomly samples small groups and selects the best from each group
type TournamentSelector[S Solution, F Numeric] struct {
	// TournamentSize is the number of candidates to compete in each tournament
	TournamentSize int
}

// Select implements the Selector interface using tournament selection
func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	selected := make([]Candidate[S, F], 0, size)
	poolSize := len(pool.Members)

	// Validate tournament size
	tournSize := ts.TournamentSize
	if tournSize > poolSize {
		tournSize = poolSize
	}
	if tournSize < 1 {
		tournSize = 2 // Default minimum
	}

	// Run tournaments until we have enough selected candidates
	for len(selected) < size {
		winner := pool.Members[rng.IntN(poolSize)]
		for i := 1; i < tournSize; i++ {
			challenger := pool.Members[rng.IntN(poolSize)]
			if challenger.Score > winner.Score {
				winner = challenger
			}
		}
		selected = append(selected, winner)
	}

	return selected
}

// --- Termination Helpers ---

// ConvergenceTerminator stops the run once the accept predicate passes
// on the pool, or after patience generations without improvement of the
// best score. Carries state across calls; build a fresh one per run.
func ConvergenceTerminator[S Solution, F Numeric](patience int, accept func(pool *Pool[S, F]) bool) TerminationFunc[S, F] {
	var best F
	seeded := false
	stall := 0

	return func(pool *Pool[S, F], iteration int) bool {
		if accept != nil && accept(pool) {
			return true
		}
		if len(pool.Members) == 0 {
			return false
		}

		top := pool.Stats.BestScore
		if !seeded || top > best {
			best = top
			seeded = true
			stall = 0
			return false
		}
		stall++
		return stall >= patience
	}
}
