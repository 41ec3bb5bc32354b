// Package difficulty scores finished puzzles independently of which
// generator produced them. It is a reporting leaf with no feedback
// into generation.
package difficulty

import (
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// Report is the analyzer output: four independent sub-scores, a single
// overall scalar in [0,1], a tier bucket, and tuning suggestions.
type Report struct {
	Overall float64           `json:"overall"`
	Bucket  puzzle.Difficulty `json:"bucket"`

	Density            float64 `json:"density"`
	SolutionComplexity float64 `json:"solutionComplexity"`
	CognitiveLoad      float64 `json:"cognitiveLoad"`
	Aesthetics         float64 `json:"aesthetics"`

	Suggestions []string `json:"suggestions,omitempty"`
}

// Analyze scores a puzzle. Pure function of the puzzle.
func Analyze(p *puzzle.Puzzle) Report {
	r := Report{
		Density:            densityScore(p),
		SolutionComplexity: complexityScore(p),
		CognitiveLoad:      cognitiveLoad(p),
		Aesthetics:         (SymmetryScore(p.LitEdges) + RingBalance(p)) / 2,
	}

	// Pleasing layouts read easier, so aesthetics counts inverted
	r.Overall = parameter.DifficultyWeightDensity*r.Density +
		parameter.DifficultyWeightComplexity*r.SolutionComplexity +
		parameter.DifficultyWeightCognitive*r.CognitiveLoad +
		parameter.DifficultyWeightAesthetics*(1-r.Aesthetics)

	switch {
	case r.Overall < parameter.DifficultyEasyCeiling:
		r.Bucket = puzzle.Easy
	case r.Overall < parameter.DifficultyMediumCeiling:
		r.Bucket = puzzle.Medium
	default:
		r.Bucket = puzzle.Hard
	}

	r.Suggestions = suggestions(p)
	return r
}

// densityScore is the basic element-count metric over a nominal full
// board of 18 elements.
func densityScore(p *puzzle.Puzzle) float64 {
	total := float64(p.TotalEmitters() + p.TotalBlockers())
	v := total / 18.0
	if v > 1 {
		v = 1
	}
	return v
}

// complexityScore estimates solution effort: rotation cost, target
// scattering, and occlusion pressure from crowded rings.
func complexityScore(p *puzzle.Puzzle) float64 {
	est := float64(EstimateRotationSteps(p)) / 18.0
	if est > 1 {
		est = 1
	}

	scatter := 0.0
	if n := len(p.LitEdges); n > 1 {
		scatter = float64(edgeClusters(p.LitEdges)-1) / float64(n-1)
	}

	occlusion := float64(p.TotalBlockers()+p.TotalEmitters()) / 24.0
	if occlusion > 1 {
		occlusion = 1
	}

	return 0.5*est + 0.3*scatter + 0.2*occlusion
}

// cognitiveLoad captures how much the player must track at once.
func cognitiveLoad(p *puzzle.Puzzle) float64 {
	lit := float64(len(p.LitEdges)) / float64(parameter.PolygonSides)

	blockers := float64(p.TotalBlockers()) / 6.0
	if blockers > 1 {
		blockers = 1
	}

	active := 0.0
	for _, r := range p.Rings {
		if len(r.Emitters)+len(r.Blockers) > 0 {
			active++
		}
	}
	active /= float64(parameter.RingCount)

	return 0.4*lit + 0.3*blockers + 0.3*active
}

func suggestions(p *puzzle.Puzzle) []string {
	var out []string
	if d := float64(p.TotalEmitters()) / float64(parameter.PolygonSides); d > parameter.EmitterDensityWarn {
		out = append(out, "emitter density is high; removing emitters would sharpen the puzzle")
	}
	if d := float64(p.TotalBlockers()) / 6.0; d > parameter.BlockerDensityWarn {
		out = append(out, "many blockers; consider removing some to keep rotations readable")
	}
	if d := float64(len(p.LitEdges)) / float64(parameter.PolygonSides); d > parameter.LitEdgeLoadWarn {
		out = append(out, "most edges are targets; fewer lit edges gives clearer goals")
	}
	return out
}
