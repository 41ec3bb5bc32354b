package evolve

import (
	"math"

	"github.com/lixenwraith/laser-lock/difficulty"
	"github.com/lixenwraith/laser-lock/genetic/fitness"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// Fitness metric keys
const (
	MetricSolvability  = "solvability"
	MetricDifficulty   = "difficulty_match"
	MetricDistribution = "distribution"
	MetricAesthetics   = "aesthetics"
)

func aggregatorFor(w Weights) *fitness.WeightedAggregator {
	return &fitness.WeightedAggregator{
		Weights: map[string]float64{
			MetricSolvability:  w.Solvability,
			MetricDifficulty:   w.DifficultyMatch,
			MetricDistribution: w.Distribution,
			MetricAesthetics:   w.Aesthetics,
		},
		Normalizers: map[string]fitness.NormalizeFunc{
			MetricDifficulty: gaussianFalloff(parameter.GADifficultySigma),
			MetricAesthetics: fitness.NormalizeLinear(0, 2),
		},
	}
}

// evaluate scores one chromosome. Solvability is binary and checked in
// sampled mode through the shared cache; difficulty and aesthetics are
// raw values the aggregator's normalizers map onto 0-1.
func (g *Generator) evaluate(preset Preset, p *puzzle.Puzzle) (fitness.Metrics, bool) {
	solvable := g.fitOracle.SolvableCached(p, g.cache)

	m := fitness.Metrics{
		MetricSolvability:  0,
		MetricDifficulty:   rotationGap(preset, p),
		MetricDistribution: distributionScore(p),
		MetricAesthetics:   rawAesthetics(p),
	}
	if solvable {
		m[MetricSolvability] = 1
	}
	return m, solvable
}

// rotationGap is the raw difficulty metric: how far the estimated
// required rotation count falls outside the preset's target range.
// Zero inside the range.
func rotationGap(preset Preset, p *puzzle.Puzzle) float64 {
	est := difficulty.EstimateRotationSteps(p)
	switch {
	case est < preset.TargetRotationMin:
		return float64(preset.TargetRotationMin - est)
	case est > preset.TargetRotationMax:
		return float64(est - preset.TargetRotationMax)
	}
	return 0
}

// gaussianFalloff scores a rotation gap as exp(-d^2/2sigma^2), so a
// zero gap scores exactly 1.0.
func gaussianFalloff(sigma float64) fitness.NormalizeFunc {
	return func(gap float64) float64 {
		return math.Exp(-(gap * gap) / (2 * sigma * sigma))
	}
}

// distributionScore rewards evenly loaded rings: 1 minus the normalized
// spread of emitter counts, with a hard zero when any ring is empty.
func distributionScore(p *puzzle.Puzzle) float64 {
	minC, maxC := math.MaxInt, 0
	for _, r := range p.Rings {
		n := len(r.Emitters)
		if n == 0 {
			return 0
		}
		if n < minC {
			minC = n
		}
		if n > maxC {
			maxC = n
		}
	}
	return 1 - float64(maxC-minC)/float64(maxC)
}

// rawAesthetics sums rotational symmetry of the lit edges with element
// balance across rings. Each term is 0-1, so the sum spans [0,2] and
// the aggregator's linear normalizer rescales it.
func rawAesthetics(p *puzzle.Puzzle) float64 {
	return difficulty.SymmetryScore(p.LitEdges) + difficulty.RingBalance(p)
}
