package construct

import (
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// Fallback builds the minimal guaranteed-solvable puzzle for the given
// lit edges: one emitter per edge at the exactly aligned slot under the
// neutral rotation, distributed round-robin across rings, plus one
// harmless blocker when a safe slot exists. Deterministic and
// unconditionally solvable at rotation [0,0,0].
func Fallback(litEdges []int) *puzzle.Puzzle {
	p := puzzle.New()
	p.LitEdges = dropOppositePairs(litEdges)

	for i, edge := range p.LitEdges {
		slot := slotForEdge(edge, 0)
		placed := false
		for off := 0; off < parameter.RingCount; off++ {
			ring := (i + off) % parameter.RingCount
			if p.Rings[ring].SlotOccupied(slot) {
				if contains(p.Rings[ring].Emitters, slot) {
					placed = true // that emitter already lights this edge
					break
				}
				continue
			}
			p.Rings[ring].Emitters = append(p.Rings[ring].Emitters, slot)
			placed = true
			break
		}
		_ = placed // distinct edges map to distinct slots, placement cannot fail
	}

	addHarmlessBlocker(p)
	p.Normalize()
	return p
}

// dropOppositePairs keeps the first edge of every opposite pair. Edges
// six apart demand emitters on the same diameter, which occlude each
// other at every rotation; no puzzle can light both.
func dropOppositePairs(litEdges []int) []int {
	kept := make([]int, 0, len(litEdges))
	for _, e := range litEdges {
		opposite := (e + parameter.SlotCount/2) % parameter.SlotCount
		if contains(kept, e) || contains(kept, opposite) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// addHarmlessBlocker places a single blocker on a slot no beam crosses
// at the neutral rotation. Skipped when every slot is on a beam path.
func addHarmlessBlocker(p *puzzle.Puzzle) {
	blocked := make(map[int]bool, parameter.SlotCount)
	for ri := range p.Rings {
		for _, es := range p.Rings[ri].Emitters {
			blocked[es] = true
			blocked[(es+parameter.SlotCount/2)%parameter.SlotCount] = true
		}
	}
	for ring := range p.Rings {
		for slot := 0; slot < parameter.SlotCount; slot++ {
			if blocked[slot] || p.Rings[ring].SlotOccupied(slot) {
				continue
			}
			p.Rings[ring].Blockers = append(p.Rings[ring].Blockers, slot)
			return
		}
	}
}
