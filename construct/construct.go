// Package construct builds puzzles directly from the solution-space
// reverse index so every lit edge is satisfied by construction. It
// never fails past its boundary: any internal inconsistency degrades to
// a minimal fallback puzzle that is solvable by direct alignment.
package construct

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/laser-lock/oracle"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
	"github.com/lixenwraith/laser-lock/solspace"
)

type Config struct {
	MinLit, MaxLit int
	Difficulty     puzzle.Difficulty
}

type Result struct {
	Puzzle *puzzle.Puzzle

	// UsedFallback is set when the constrained build failed validation
	// and the deterministic fallback produced the puzzle instead.
	UsedFallback bool

	// Solvable is the authoritative oracle verdict on the result.
	Solvable bool

	Elapsed time.Duration
}

// Generator owns the search state for constraint-based construction.
type Generator struct {
	index  *solspace.Index
	oracle *oracle.Oracle
	rng    *rand.Rand
}

// NewGenerator creates a constructor sharing the given read-only index.
func NewGenerator(index *solspace.Index, seed uint64) *Generator {
	index.Build()
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	return &Generator{
		index:  index,
		oracle: oracle.New(oracle.DefaultConfig()),
		rng:    rng,
	}
}

// Generate builds a puzzle for the requested difficulty. Parameters are
// clamped rather than rejected; the call always produces a puzzle.
func (g *Generator) Generate(cfg Config) Result {
	start := time.Now()

	// 1. Sanitize parameters
	minLit, maxLit := puzzle.ClampLitRange(cfg.MinLit, cfg.MaxLit)
	numLit := minLit + g.rng.IntN(maxLit-minLit+1)

	// 2. Commit to a target rotation vector. The build guarantees every
	// lit edge is struck under this vector; difficulty steers how far
	// the player must rotate to find it.
	target := g.pickTargetRotation(cfg.Difficulty)

	// 3. Select lit edges with difficulty-biased weighting
	p := puzzle.New()
	p.LitEdges = g.selectEdges(numLit, cfg.Difficulty, p)

	// 4. Place one satisfying emitter per lit edge
	placed := g.placeTargetEmitters(p, target)

	// 5. Scatter variety emitters and non-fatal blockers
	g.addVarietyEmitters(p, target, numLit)
	g.addBlockers(p, target)

	// 6. Lightweight validation, fallback on any inconsistency
	usedFallback := false
	if !placed || !g.satisfiedUnder(p, target) {
		p = Fallback(p.LitEdges)
		usedFallback = true
	}

	p.Normalize()
	return Result{
		Puzzle:       p,
		UsedFallback: usedFallback,
		Solvable:     g.oracle.IsSolvable(p),
		Elapsed:      time.Since(start),
	}
}

// pickTargetRotation draws per-ring rotations whose step distance from
// neutral matches the difficulty tier.
func (g *Generator) pickTargetRotation(d puzzle.Difficulty) puzzle.RotationVector {
	var lo, hi int
	switch d {
	case puzzle.Easy:
		lo, hi = 0, 1
	case puzzle.Hard:
		lo, hi = 2, 6
	default:
		lo, hi = 0, 3
	}

	var rot puzzle.RotationVector
	for i := range rot {
		steps := lo + g.rng.IntN(hi-lo+1)
		if steps > 0 && g.rng.IntN(2) == 0 {
			steps = parameter.RotationSteps - steps // counter-clockwise
		}
		rot[i] = steps
	}
	return rot
}

// selectEdges draws numLit distinct edges. Easy biases toward clustered
// edges with many open placements; hard toward scattered, constrained
// ones; medium alternates between the two weightings. Edges opposite an
// already selected edge are excluded: the two satisfying emitters would
// share a diameter and occlude each other at every rotation, so such a
// pair can never be lit together.
func (g *Generator) selectEdges(numLit int, d puzzle.Difficulty, partial *puzzle.Puzzle) []int {
	selected := make([]int, 0, numLit)
	taken := make(map[int]bool, numLit)

	for len(selected) < numLit {
		easyDraw := d == puzzle.Easy
		if d == puzzle.Medium {
			easyDraw = len(selected)%2 == 0
		}

		weights := make([]float64, parameter.PolygonSides)
		for e := 0; e < parameter.PolygonSides; e++ {
			if taken[e] || taken[(e+parameter.PolygonSides/2)%parameter.PolygonSides] {
				continue
			}
			diff := g.index.ConstrainedDifficulty(e, partial)
			w := float64(diff.SolutionCount)
			if easyDraw {
				if hasNeighbor(selected, e) {
					w += float64(2 * diff.SolutionCount)
				}
			} else {
				w = float64(parameter.RingCount*parameter.RotationSteps+1) - w
				if !hasNeighbor(selected, e) {
					w *= 2
				}
			}
			weights[e] = w
		}

		e := g.weightedDraw(weights)
		if e < 0 {
			break
		}
		selected = append(selected, e)
		taken[e] = true
	}
	return selected
}

// placeTargetEmitters commits one emitter per lit edge such that every
// edge is struck under the target rotation. Rings are tried least
// loaded first to encourage distribution. Returns false only if some
// edge could not be satisfied, which triggers the fallback.
func (g *Generator) placeTargetEmitters(p *puzzle.Puzzle, target puzzle.RotationVector) bool {
	for _, edge := range p.LitEdges {
		if !g.placeForEdge(p, target, edge) {
			return false
		}
	}
	return true
}

func (g *Generator) placeForEdge(p *puzzle.Puzzle, target puzzle.RotationVector, edge int) bool {
	for _, ring := range g.ringsByLoad(p) {
		slot := slotForEdge(edge, target[ring])
		if contains(p.Rings[ring].Emitters, slot) {
			return true // already satisfied by an earlier placement
		}
		if p.Rings[ring].SlotOccupied(slot) {
			continue
		}
		p.Rings[ring].Emitters = append(p.Rings[ring].Emitters, slot)
		return true
	}
	return false
}

// addVarietyEmitters scatters extra emitters that do not disturb the
// committed solution: a candidate is rejected when its housing would
// sit on any committed beam path under the target rotation.
func (g *Generator) addVarietyEmitters(p *puzzle.Puzzle, target puzzle.RotationVector, numLit int) {
	extra := g.rng.IntN(int(float64(numLit)*parameter.ConstructVarietyFraction) + 1)
	for i := 0; i < extra; i++ {
		for try := 0; try < parameter.ConstructMaxPlacementTries; try++ {
			ring := g.rng.IntN(parameter.RingCount)
			free := p.Rings[ring].FreeSlots()
			if len(free) == 0 {
				break
			}
			slot := free[g.rng.IntN(len(free))]
			if g.occludesSolution(p, target, ring, slot) {
				continue
			}
			p.Rings[ring].Emitters = append(p.Rings[ring].Emitters, slot)
			break
		}
	}
}

// addBlockers places 1-2 blockers per ring at slots that keep the
// committed solution intact. This is stricter than the minimum the
// relaxed reachability check requires, and therefore always safe.
func (g *Generator) addBlockers(p *puzzle.Puzzle, target puzzle.RotationVector) {
	for ring := range p.Rings {
		want := 1 + g.rng.IntN(parameter.ConstructBlockersPerRingMax)
		for i := 0; i < want; i++ {
			for try := 0; try < parameter.ConstructMaxPlacementTries; try++ {
				free := p.Rings[ring].FreeSlots()
				if len(free) == 0 {
					break
				}
				slot := free[g.rng.IntN(len(free))]
				if g.occludesSolution(p, target, ring, slot) {
					continue
				}
				p.Rings[ring].Blockers = append(p.Rings[ring].Blockers, slot)
				break
			}
		}
	}
}

// occludesSolution reports whether an occupant at (ring, slot) would
// intersect the beam of any committed emitter under the target
// rotation. A beam from world slot w covers world slot w at smaller
// radii (emitter side) and world slot w+6 at every radius (exit side).
func (g *Generator) occludesSolution(p *puzzle.Puzzle, target puzzle.RotationVector, ring, slot int) bool {
	w := worldSlot(slot, target[ring])
	for ri := range p.Rings {
		for _, es := range p.Rings[ri].Emitters {
			we := worldSlot(es, target[ri])
			if w == (we+parameter.SlotCount/2)%parameter.SlotCount {
				return true
			}
			if w == we && p.Rings[ring].Radius < p.Rings[ri].Radius {
				return true
			}
		}
	}
	return false
}

// satisfiedUnder is the lightweight validation pass: every lit edge
// must have an aligned emitter whose beam path is clear of committed
// occupants under the target rotation.
func (g *Generator) satisfiedUnder(p *puzzle.Puzzle, target puzzle.RotationVector) bool {
	for _, edge := range p.LitEdges {
		if !g.edgeSatisfied(p, target, edge) {
			return false
		}
	}
	return true
}

func (g *Generator) edgeSatisfied(p *puzzle.Puzzle, target puzzle.RotationVector, edge int) bool {
	for ring := range p.Rings {
		slot := slotForEdge(edge, target[ring])
		if !contains(p.Rings[ring].Emitters, slot) {
			continue
		}
		if g.beamClear(p, target, ring, slot) {
			return true
		}
	}
	return false
}

// beamClear checks the world-slot occlusion rules for one emitter.
func (g *Generator) beamClear(p *puzzle.Puzzle, target puzzle.RotationVector, ring, slot int) bool {
	w := worldSlot(slot, target[ring])
	exit := (w + parameter.SlotCount/2) % parameter.SlotCount

	for ri := range p.Rings {
		for _, bs := range p.Rings[ri].Blockers {
			wb := worldSlot(bs, target[ri])
			if wb == exit {
				return false
			}
			if wb == w && p.Rings[ri].Radius < p.Rings[ring].Radius {
				return false
			}
		}
		for _, es := range p.Rings[ri].Emitters {
			if ri == ring && es == slot {
				continue
			}
			we := worldSlot(es, target[ri])
			if we == exit {
				return false
			}
			if we == w && p.Rings[ri].Radius < p.Rings[ring].Radius {
				return false
			}
		}
	}
	return true
}

// --- Helpers ---

// slotForEdge returns the slot that strikes the edge under the given
// ring rotation: slot + rotation faces the edge across the center.
func slotForEdge(edge, rotation int) int {
	n := parameter.SlotCount
	return ((edge+n/2-rotation)%n + n) % n
}

func worldSlot(slot, rotation int) int {
	n := parameter.SlotCount
	return ((slot+rotation)%n + n) % n
}

func (g *Generator) ringsByLoad(p *puzzle.Puzzle) []int {
	order := []int{0, 1, 2}
	g.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	// Stable-ish selection: bubble least loaded first, random tie-break
	// comes from the shuffle above.
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if len(p.Rings[order[j]].Emitters) < len(p.Rings[order[i]].Emitters) {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	return order
}

func (g *Generator) weightedDraw(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	spin := g.rng.Float64() * total
	for i, w := range weights {
		spin -= w
		if spin <= 0 && w > 0 {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

func hasNeighbor(selected []int, edge int) bool {
	n := parameter.PolygonSides
	for _, s := range selected {
		if s == (edge+1)%n || s == (edge+n-1)%n {
			return true
		}
	}
	return false
}

func contains(vals []int, v int) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
