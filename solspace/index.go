// Package solspace precomputes which edges each (ring, slot, rotation)
// emitter placement can reach, and the inverse map used to drive
// constrained puzzle construction instead of blind search.
//
// The index is occlusion-free on purpose: placement is optimistic and
// the constructor's blocker safety check handles occlusion later.
package solspace

import (
	"github.com/lixenwraith/laser-lock/geometry"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// Placement is one way to light an edge: an emitter slot on a ring plus
// the ring rotation that aligns it.
type Placement struct {
	Ring     int
	Slot     int
	Rotation int
	// Steps is the shortest rotation distance (clockwise or counter)
	// from the neutral position.
	Steps int
}

// Difficulty summarizes how constrained an edge is.
type Difficulty struct {
	SolutionCount    int
	MinRotationSteps int
}

// Index holds the forward and reverse reachability maps. Build once,
// then read-only; safe to share across goroutines after Build.
type Index struct {
	// forward[ring][slot][rotation] lists reachable edges
	forward [parameter.RingCount][parameter.SlotCount][parameter.RotationSteps][]int
	// reverse[edge] lists candidate placements
	reverse [parameter.PolygonSides][]Placement
	built   bool
}

// NewIndex returns an unbuilt index. Call Build before use.
func NewIndex() *Index {
	return &Index{}
}

// Build computes both maps from the fixed board geometry using the same
// beam-direction math as the oracle, without blocker or emitter
// occlusion. Idempotent.
func (x *Index) Build() {
	if x.built {
		return
	}
	for ring := 0; ring < parameter.RingCount; ring++ {
		tol := parameter.EdgeCaptureTolerance[ring]
		for slot := 0; slot < parameter.SlotCount; slot++ {
			for rot := 0; rot < parameter.RotationSteps; rot++ {
				exit := geometry.SlotToAngle(slot+rot) + 180
				steps := rotationSteps(rot)
				for edge := 0; edge < parameter.PolygonSides; edge++ {
					mid := geometry.EdgeMidpointAngle(parameter.PolygonSides, edge, 0)
					if geometry.AngularDistance(exit, mid) > tol {
						continue
					}
					x.forward[ring][slot][rot] = append(x.forward[ring][slot][rot], edge)
					x.reverse[edge] = append(x.reverse[edge], Placement{
						Ring:     ring,
						Slot:     slot,
						Rotation: rot,
						Steps:    steps,
					})
				}
			}
		}
	}
	x.built = true
}

// Clear drops the maps so tests that vary geometry constants can force
// a rebuild.
func (x *Index) Clear() {
	*x = Index{}
}

// ReachableEdges returns the edges an emitter at (ring, slot) strikes
// under the given rotation, ignoring occlusion.
func (x *Index) ReachableEdges(ring, slot, rotation int) []int {
	x.Build()
	slot = ((slot % parameter.SlotCount) + parameter.SlotCount) % parameter.SlotCount
	rotation = ((rotation % parameter.RotationSteps) + parameter.RotationSteps) % parameter.RotationSteps
	return x.forward[ring][slot][rotation]
}

// PlacementsFor returns every candidate placement lighting the edge.
func (x *Index) PlacementsFor(edge int) []Placement {
	x.Build()
	if edge < 0 || edge >= parameter.PolygonSides {
		return nil
	}
	return x.reverse[edge]
}

// EdgeDifficulty derives the constraint metrics for an edge on an
// empty board. Fewer candidates or more required steps reads harder.
func (x *Index) EdgeDifficulty(edge int) Difficulty {
	return difficultyOf(x.PlacementsFor(edge), nil, -1)
}

// ConstrainedDifficulty conditions the metrics on a partially built
// puzzle: placements whose slot is already occupied do not count. This
// is what differentiates edges once construction is underway; on a
// pristine board every edge is symmetric.
func (x *Index) ConstrainedDifficulty(edge int, p *puzzle.Puzzle) Difficulty {
	return difficultyOf(x.PlacementsFor(edge), p, edge)
}

func difficultyOf(candidates []Placement, p *puzzle.Puzzle, edge int) Difficulty {
	d := Difficulty{MinRotationSteps: parameter.RotationSteps}
	for _, pl := range candidates {
		if p != nil && p.Rings[pl.Ring].SlotOccupied(pl.Slot) {
			continue
		}
		d.SolutionCount++
		if pl.Steps < d.MinRotationSteps {
			d.MinRotationSteps = pl.Steps
		}
	}
	if d.SolutionCount == 0 {
		d.MinRotationSteps = 0
	}
	return d
}

// rotationSteps maps a rotation index to the shortest step distance
// from neutral, e.g. rotation 11 is one step counter-clockwise.
func rotationSteps(rot int) int {
	if rot > parameter.RotationSteps/2 {
		return parameter.RotationSteps - rot
	}
	return rot
}
