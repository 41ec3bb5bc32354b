package evolve

import (
	"fmt"

	"github.com/lixenwraith/laser-lock/puzzle"
)

// Weights is the fitness weight vector for one difficulty tier.
// Components sum to 1; solvability dominates.
type Weights struct {
	Solvability     float64 `yaml:"solvability"`
	DifficultyMatch float64 `yaml:"difficulty_match"`
	Distribution    float64 `yaml:"distribution"`
	Aesthetics      float64 `yaml:"aesthetics"`
}

// Preset bundles the tuned ranges for one difficulty tier. The exact
// numbers are a tuning surface; the ordering easy < medium < hard must
// hold for every range.
type Preset struct {
	LitMin, LitMax int

	EmitterMin, EmitterMax int
	BlockerMin, BlockerMax int

	// Target range for the estimated total rotation steps a solver
	// needs; drives the difficultyMatch fitness term.
	TargetRotationMin, TargetRotationMax int

	Weights Weights
}

// DefaultPresets returns the built-in tier table.
func DefaultPresets() map[puzzle.Difficulty]Preset {
	return map[puzzle.Difficulty]Preset{
		puzzle.Easy: {
			LitMin: 2, LitMax: 4,
			EmitterMin: 3, EmitterMax: 5,
			BlockerMin: 0, BlockerMax: 2,
			TargetRotationMin: 0, TargetRotationMax: 6,
			Weights: Weights{Solvability: 0.5, DifficultyMatch: 0.2, Distribution: 0.2, Aesthetics: 0.1},
		},
		puzzle.Medium: {
			LitMin: 3, LitMax: 6,
			EmitterMin: 4, EmitterMax: 7,
			BlockerMin: 1, BlockerMax: 4,
			TargetRotationMin: 5, TargetRotationMax: 12,
			Weights: Weights{Solvability: 0.45, DifficultyMatch: 0.25, Distribution: 0.2, Aesthetics: 0.1},
		},
		puzzle.Hard: {
			LitMin: 4, LitMax: 6,
			EmitterMin: 5, EmitterMax: 9,
			BlockerMin: 3, BlockerMax: 6,
			TargetRotationMin: 10, TargetRotationMax: 18,
			Weights: Weights{Solvability: 0.4, DifficultyMatch: 0.3, Distribution: 0.2, Aesthetics: 0.1},
		},
	}
}

// ValidatePresets checks structural sanity and the tier ordering.
func ValidatePresets(presets map[puzzle.Difficulty]Preset) error {
	for name, p := range presets {
		if p.LitMin < 1 || p.LitMax > 12 || p.LitMin > p.LitMax {
			return fmt.Errorf("evolve: preset %s: lit range [%d,%d] invalid", name, p.LitMin, p.LitMax)
		}
		if p.EmitterMin < 3 || p.EmitterMin > p.EmitterMax {
			return fmt.Errorf("evolve: preset %s: emitter range [%d,%d] invalid (every ring needs one)", name, p.EmitterMin, p.EmitterMax)
		}
		if p.BlockerMin < 0 || p.BlockerMin > p.BlockerMax {
			return fmt.Errorf("evolve: preset %s: blocker range [%d,%d] invalid", name, p.BlockerMin, p.BlockerMax)
		}
		if p.TargetRotationMin < 0 || p.TargetRotationMin > p.TargetRotationMax {
			return fmt.Errorf("evolve: preset %s: rotation range [%d,%d] invalid", name, p.TargetRotationMin, p.TargetRotationMax)
		}
	}

	order := []puzzle.Difficulty{puzzle.Easy, puzzle.Medium, puzzle.Hard}
	for i := 0; i+1 < len(order); i++ {
		lo, hasLo := presets[order[i]]
		hi, hasHi := presets[order[i+1]]
		if !hasLo || !hasHi {
			continue
		}
		if lo.TargetRotationMin > hi.TargetRotationMin || lo.TargetRotationMax > hi.TargetRotationMax ||
			lo.LitMin > hi.LitMin || lo.LitMax > hi.LitMax ||
			lo.EmitterMin > hi.EmitterMin || lo.BlockerMin > hi.BlockerMin {
			return fmt.Errorf("evolve: presets %s and %s violate tier ordering", order[i], order[i+1])
		}
	}
	return nil
}
