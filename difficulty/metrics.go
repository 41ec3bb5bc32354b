package difficulty

import (
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// symmetryFolds are the rotational symmetries tested over lit edges.
var symmetryFolds = []int{2, 3, 4, 6}

// SymmetryScore detects rotational symmetry in a lit-edge set: for
// each tested fold it measures the fraction of edges whose image under
// the fold's rotation is also lit, and returns the best fraction.
func SymmetryScore(litEdges []int) float64 {
	if len(litEdges) == 0 {
		return 0
	}
	lit := make(map[int]bool, len(litEdges))
	for _, e := range litEdges {
		lit[e] = true
	}

	best := 0.0
	for _, fold := range symmetryFolds {
		shift := parameter.PolygonSides / fold
		matched := 0
		for _, e := range litEdges {
			if lit[(e+shift)%parameter.PolygonSides] {
				matched++
			}
		}
		frac := float64(matched) / float64(len(litEdges))
		if frac > best {
			best = frac
		}
	}
	return best
}

// RingBalance measures how evenly total elements (emitters plus
// blockers) spread across rings: 1 is perfectly even, 0 is everything
// on one ring.
func RingBalance(p *puzzle.Puzzle) float64 {
	maxC, minC := 0, -1
	for _, r := range p.Rings {
		n := len(r.Emitters) + len(r.Blockers)
		if n > maxC {
			maxC = n
		}
		if minC < 0 || n < minC {
			minC = n
		}
	}
	if maxC == 0 {
		return 1
	}
	return 1 - float64(maxC-minC)/float64(maxC)
}

// EstimateRotationSteps approximates how much total rotation a solver
// needs: for each lit edge, the cheapest single-emitter alignment cost,
// summed. Ignores occlusion, so it is an optimistic lower bound.
func EstimateRotationSteps(p *puzzle.Puzzle) int {
	total := 0
	for _, edge := range p.LitEdges {
		best := parameter.RotationSteps // sentinel above any real cost
		for ring := range p.Rings {
			for _, slot := range p.Rings[ring].Emitters {
				k := alignRotation(edge, slot)
				if k > parameter.RotationSteps/2 {
					k = parameter.RotationSteps - k
				}
				if k < best {
					best = k
				}
			}
		}
		if best < parameter.RotationSteps {
			total += best
		}
	}
	return total
}

// alignRotation returns the rotation index that points an emitter slot
// at an edge across the center.
func alignRotation(edge, slot int) int {
	n := parameter.SlotCount
	return ((edge+n/2-slot)%n + n) % n
}

// edgeClusters counts runs of consecutive lit edges around the
// polygon. Scattered targets form more clusters and read harder.
func edgeClusters(litEdges []int) int {
	if len(litEdges) == 0 {
		return 0
	}
	lit := make(map[int]bool, len(litEdges))
	for _, e := range litEdges {
		lit[e] = true
	}
	clusters := 0
	for _, e := range litEdges {
		prev := (e + parameter.PolygonSides - 1) % parameter.PolygonSides
		if !lit[prev] {
			clusters++
		}
	}
	if clusters == 0 {
		clusters = 1 // full circle
	}
	return clusters
}
