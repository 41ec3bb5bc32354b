package oracle

import (
	"math/rand/v2"

	"github.com/lixenwraith/laser-lock/geometry"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// IsSolvable reports whether any rotation vector lights every lit edge.
// Exhaustive mode is authoritative; sampled mode can return false
// negatives and exists for fitness scoring under time pressure.
func (o *Oracle) IsSolvable(p *puzzle.Puzzle) bool {
	_, ok := o.FindSolution(p)
	return ok
}

// FindSolution returns a witness rotation vector lighting every lit
// edge, if the search finds one.
func (o *Oracle) FindSolution(p *puzzle.Puzzle) (puzzle.RotationVector, bool) {
	// Vacuous truth: nothing to light. Handled before any geometry.
	if len(p.LitEdges) == 0 {
		return puzzle.RotationVector{}, true
	}

	// Cheap pre-filter saves the 12^3 enumeration on broken puzzles.
	if !o.IsHeuristicallySolvable(p) {
		return puzzle.RotationVector{}, false
	}

	litMask := litEdgeMask(p)
	if o.cfg.Exhaustive {
		return o.searchExhaustive(p, litMask)
	}
	return o.searchSampled(p, litMask)
}

func (o *Oracle) searchExhaustive(p *puzzle.Puzzle, litMask uint16) (puzzle.RotationVector, bool) {
	checks := 0
	for r0 := 0; r0 < parameter.RotationSteps; r0++ {
		for r1 := 0; r1 < parameter.RotationSteps; r1++ {
			for r2 := 0; r2 < parameter.RotationSteps; r2++ {
				if o.cfg.MaxChecks > 0 && checks >= o.cfg.MaxChecks {
					return puzzle.RotationVector{}, false
				}
				checks++

				rot := puzzle.RotationVector{r0, r1, r2}
				if litMask&^o.hitMask(p, rot) == 0 {
					return rot, true
				}
			}
		}
	}
	return puzzle.RotationVector{}, false
}

func (o *Oracle) searchSampled(p *puzzle.Puzzle, litMask uint16) (puzzle.RotationVector, bool) {
	samples := o.cfg.SampleCount
	if o.cfg.MaxChecks > 0 && o.cfg.MaxChecks < samples {
		samples = o.cfg.MaxChecks
	}
	rng := o.lockedRng()
	for i := 0; i < samples; i++ {
		rot := puzzle.RotationVector{
			rng.IntN(parameter.RotationSteps),
			rng.IntN(parameter.RotationSteps),
			rng.IntN(parameter.RotationSteps),
		}
		if litMask&^o.hitMask(p, rot) == 0 {
			return rot, true
		}
	}
	return puzzle.RotationVector{}, false
}

// lockedRng hands the shared seeded generator to concurrent sampled
// queries one at a time, deriving an independent rng per query
func (o *Oracle) lockedRng() *rand.Rand {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	seed := o.rng.Uint64()
	return rand.New(rand.NewPCG(seed, seed))
}

// IsHeuristicallySolvable is a relaxed necessary condition: every lit
// edge must have at least one emitter that can align with its angular
// window under some single-ring rotation, ignoring all occlusion, and
// the lit edges must not outnumber the emitters (each beam strikes at
// most one edge per rotation vector). A true result does not guarantee
// IsSolvable.
func (o *Oracle) IsHeuristicallySolvable(p *puzzle.Puzzle) bool {
	if len(p.LitEdges) == 0 {
		return true
	}
	if p.TotalEmitters() < len(p.LitEdges) {
		return false
	}

	for _, edge := range p.LitEdges {
		target := geometry.EdgeMidpointAngle(parameter.PolygonSides, edge, 0)
		if !anyEmitterAligns(p, target) {
			return false
		}
	}
	return true
}

func anyEmitterAligns(p *puzzle.Puzzle, targetAngle float64) bool {
	for ri := range p.Rings {
		tol := parameter.EdgeCaptureTolerance[ri]
		for _, slot := range p.Rings[ri].Emitters {
			for rot := 0; rot < parameter.RotationSteps; rot++ {
				exit := geometry.SlotToAngle(slot+rot) + 180
				if geometry.AngularDistance(exit, targetAngle) <= tol {
					return true
				}
			}
		}
	}
	return false
}

func litEdgeMask(p *puzzle.Puzzle) uint16 {
	var mask uint16
	for _, e := range p.LitEdges {
		mask |= 1 << e
	}
	return mask
}
