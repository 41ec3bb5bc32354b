package puzzle

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/laser-lock/parameter"
)

// Ring is one concentric rotatable circle. Emitters and Blockers hold
// slot indices in [0, 12); the two sets never share a slot.
type Ring struct {
	Radius   float64 `json:"radius"`
	Emitters []int   `json:"emitters"`
	Blockers []int   `json:"blockers"`
}

// Puzzle is the canonical artifact handed to consumers: the target
// edges and three rings ordered innermost first.
type Puzzle struct {
	LitEdges []int  `json:"litEdges"`
	Rings    []Ring `json:"rings"`
}

// RotationVector is the transient per-ring rotation state in 30-degree
// steps. Produced and discarded by searches, never stored on a Puzzle.
type RotationVector [parameter.RingCount]int

// New returns an empty puzzle with the three canonical rings.
func New() *Puzzle {
	rings := make([]Ring, parameter.RingCount)
	for i := range rings {
		rings[i].Radius = parameter.RingRadii[i]
	}
	return &Puzzle{Rings: rings}
}

// Clone returns a deep copy.
func (p *Puzzle) Clone() *Puzzle {
	c := &Puzzle{
		LitEdges: slices.Clone(p.LitEdges),
		Rings:    make([]Ring, len(p.Rings)),
	}
	for i, r := range p.Rings {
		c.Rings[i] = Ring{
			Radius:   r.Radius,
			Emitters: slices.Clone(r.Emitters),
			Blockers: slices.Clone(r.Blockers),
		}
	}
	return c
}

// Normalize sorts and deduplicates the lit-edge and slot sets so two
// equivalent puzzles serialize identically.
func (p *Puzzle) Normalize() {
	p.LitEdges = sortedUnique(p.LitEdges)
	for i := range p.Rings {
		p.Rings[i].Emitters = sortedUnique(p.Rings[i].Emitters)
		p.Rings[i].Blockers = sortedUnique(p.Rings[i].Blockers)
	}
}

// Validate checks the structural invariants: ring count, slot and edge
// domains, and emitter/blocker disjointness per ring.
func (p *Puzzle) Validate() error {
	if len(p.Rings) != parameter.RingCount {
		return fmt.Errorf("puzzle: expected %d rings, got %d", parameter.RingCount, len(p.Rings))
	}
	for _, e := range p.LitEdges {
		if e < 0 || e >= parameter.PolygonSides {
			return fmt.Errorf("puzzle: lit edge %d outside [0,%d)", e, parameter.PolygonSides)
		}
	}
	seen := make(map[int]bool, parameter.PolygonSides)
	for _, e := range p.LitEdges {
		if seen[e] {
			return fmt.Errorf("puzzle: duplicate lit edge %d", e)
		}
		seen[e] = true
	}
	for i, r := range p.Rings {
		occupied := make(map[int]string, parameter.SlotCount)
		for _, s := range r.Emitters {
			if s < 0 || s >= parameter.SlotCount {
				return fmt.Errorf("puzzle: ring %d emitter slot %d outside [0,%d)", i, s, parameter.SlotCount)
			}
			if occupied[s] != "" {
				return fmt.Errorf("puzzle: ring %d slot %d holds two emitters", i, s)
			}
			occupied[s] = "emitter"
		}
		for _, s := range r.Blockers {
			if s < 0 || s >= parameter.SlotCount {
				return fmt.Errorf("puzzle: ring %d blocker slot %d outside [0,%d)", i, s, parameter.SlotCount)
			}
			if occupied[s] != "" {
				return fmt.Errorf("puzzle: ring %d slot %d holds a blocker and a %s", i, s, occupied[s])
			}
			occupied[s] = "blocker"
		}
	}
	return nil
}

// SlotOccupied reports whether any emitter or blocker holds the slot.
func (r *Ring) SlotOccupied(slot int) bool {
	return slices.Contains(r.Emitters, slot) || slices.Contains(r.Blockers, slot)
}

// FreeSlots returns the unoccupied slot indices in ascending order.
func (r *Ring) FreeSlots() []int {
	free := make([]int, 0, parameter.SlotCount)
	for s := 0; s < parameter.SlotCount; s++ {
		if !r.SlotOccupied(s) {
			free = append(free, s)
		}
	}
	return free
}

// TotalEmitters counts emitters across all rings.
func (p *Puzzle) TotalEmitters() int {
	n := 0
	for _, r := range p.Rings {
		n += len(r.Emitters)
	}
	return n
}

// TotalBlockers counts blockers across all rings.
func (p *Puzzle) TotalBlockers() int {
	n := 0
	for _, r := range p.Rings {
		n += len(r.Blockers)
	}
	return n
}

func sortedUnique(vals []int) []int {
	out := slices.Clone(vals)
	slices.Sort(out)
	return slices.Compact(out)
}
