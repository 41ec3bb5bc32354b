package evolve

import (
	"math/rand/v2"

	"github.com/lixenwraith/laser-lock/genetic"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// The chromosome is a full puzzle genome: lit edges plus per-ring
// emitter and blocker slot sets. Fitness and its breakdown live on the
// engine's Candidate, never on the puzzle itself.

// initializer builds a random chromosome honoring the forced
// distribution rule: every ring receives at least one emitter.
func (g *Generator) initializer(preset Preset) genetic.InitializerFunc[*puzzle.Puzzle] {
	return func(rng *rand.Rand) *puzzle.Puzzle {
		p := puzzle.New()

		numLit := preset.LitMin + rng.IntN(preset.LitMax-preset.LitMin+1)
		p.LitEdges = randomEdges(rng, numLit)

		emitters := preset.EmitterMin + rng.IntN(preset.EmitterMax-preset.EmitterMin+1)
		if emitters < parameter.RingCount {
			emitters = parameter.RingCount
		}
		// One per ring first, remainder uniform
		for ring := 0; ring < parameter.RingCount; ring++ {
			placeRandom(rng, &p.Rings[ring], true)
		}
		for i := parameter.RingCount; i < emitters; i++ {
			placeRandom(rng, &p.Rings[rng.IntN(parameter.RingCount)], true)
		}

		blockers := preset.BlockerMin + rng.IntN(preset.BlockerMax-preset.BlockerMin+1)
		for i := 0; i < blockers; i++ {
			placeRandom(rng, &p.Rings[rng.IntN(parameter.RingCount)], false)
		}

		return p
	}
}

// combiner crosses two parents: lit-edge sets are unioned then resized
// to a valid count, while each ring is inherited wholesale from one
// randomly chosen parent. Wholesale inheritance preserves intra-ring
// slot validity without post-hoc repair.
type combiner struct {
	litMin, litMax int
}

func (c *combiner) Combine(parents []genetic.Candidate[*puzzle.Puzzle, float64], rng *rand.Rand) []*puzzle.Puzzle {
	if len(parents) < 2 {
		if len(parents) == 1 {
			return []*puzzle.Puzzle{parents[0].Data.Clone()}
		}
		return nil
	}

	a, b := parents[0].Data, parents[1].Data
	child := puzzle.New()

	union := make(map[int]bool, parameter.PolygonSides)
	for _, e := range a.LitEdges {
		union[e] = true
	}
	for _, e := range b.LitEdges {
		union[e] = true
	}
	edges := make([]int, 0, len(union))
	for e := range union {
		edges = append(edges, e)
	}
	rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
	if len(edges) > c.litMax {
		edges = edges[:c.litMax]
	}
	child.LitEdges = edges

	for ring := range child.Rings {
		src := a
		if rng.IntN(2) == 1 {
			src = b
		}
		child.Rings[ring].Emitters = append([]int(nil), src.Rings[ring].Emitters...)
		child.Rings[ring].Blockers = append([]int(nil), src.Rings[ring].Blockers...)
	}

	return []*puzzle.Puzzle{child}
}

// perturbator applies independent per-class mutations, each class
// probability scaled by the engine's strength parameter. It clones
// before mutating so elites and parents reused without crossover stay
// intact.
type perturbator struct{}

func (perturbator) Perturb(solution **puzzle.Puzzle, strength float64, rng *rand.Rand) {
	p := (*solution).Clone()

	if rng.Float64() < parameter.GAMutateLitEdge*strength {
		mutateLitEdges(rng, p)
	}

	for ring := range p.Rings {
		r := &p.Rings[ring]
		if rng.Float64() < parameter.GAMutateEmitterMove*strength {
			moveOccupant(rng, r, true)
		}
		if rng.Float64() < parameter.GAMutateEmitterAdd*strength {
			placeRandom(rng, r, true)
		}
		if rng.Float64() < parameter.GAMutateEmitterDrop*strength && len(r.Emitters) > 1 {
			r.Emitters = removeAt(r.Emitters, rng.IntN(len(r.Emitters)))
		}
		if rng.Float64() < parameter.GAMutateBlockerMove*strength && len(r.Blockers) > 0 {
			moveOccupant(rng, r, false)
		}
		if rng.Float64() < parameter.GAMutateBlockerAdd*strength {
			placeRandom(rng, r, false)
		}
		if rng.Float64() < parameter.GAMutateBlockerDrop*strength && len(r.Blockers) > 0 {
			r.Blockers = removeAt(r.Blockers, rng.IntN(len(r.Blockers)))
		}
	}

	*solution = p
}

// repairer restores the chromosome invariants before evaluation: no
// opposite lit-edge pairs, lit count clamped into the preset range, and
// every ring non-empty. A valid chromosome passes through unchanged.
func (g *Generator) repairer(preset Preset) genetic.RepairFunc[*puzzle.Puzzle] {
	return func(p *puzzle.Puzzle, rng *rand.Rand) {
		p.Normalize()

		// Edges six apart can never be lit together; drop one of each pair
		kept := p.LitEdges[:0]
		for _, e := range p.LitEdges {
			if !containsInt(kept, (e+parameter.PolygonSides/2)%parameter.PolygonSides) {
				kept = append(kept, e)
			}
		}
		p.LitEdges = kept

		// Clamp lit-edge count: trim random edges or pad with fresh ones
		for len(p.LitEdges) > preset.LitMax {
			p.LitEdges = removeAt(p.LitEdges, rng.IntN(len(p.LitEdges)))
		}
		for pad := 0; len(p.LitEdges) < preset.LitMin && pad < 4*parameter.PolygonSides; pad++ {
			e := rng.IntN(parameter.PolygonSides)
			if !containsInt(p.LitEdges, e) &&
				!containsInt(p.LitEdges, (e+parameter.PolygonSides/2)%parameter.PolygonSides) {
				p.LitEdges = append(p.LitEdges, e)
			}
		}

		// Every ring keeps at least one emitter
		for ring := range p.Rings {
			if len(p.Rings[ring].Emitters) == 0 {
				placeRandom(rng, &p.Rings[ring], true)
			}
		}

		p.Normalize()
	}
}

// --- Mutation Helpers ---

func mutateLitEdges(rng *rand.Rand, p *puzzle.Puzzle) {
	if rng.IntN(2) == 0 && len(p.LitEdges) > 1 {
		p.LitEdges = removeAt(p.LitEdges, rng.IntN(len(p.LitEdges)))
		return
	}
	e := rng.IntN(parameter.PolygonSides)
	if !containsInt(p.LitEdges, e) &&
		!containsInt(p.LitEdges, (e+parameter.PolygonSides/2)%parameter.PolygonSides) {
		p.LitEdges = append(p.LitEdges, e)
	}
}

// placeRandom adds an occupant at a random free slot, resampling on
// collision. No-op when the ring is full.
func placeRandom(rng *rand.Rand, r *puzzle.Ring, emitter bool) {
	free := r.FreeSlots()
	if len(free) == 0 {
		return
	}
	slot := free[rng.IntN(len(free))]
	if emitter {
		r.Emitters = append(r.Emitters, slot)
	} else {
		r.Blockers = append(r.Blockers, slot)
	}
}

// moveOccupant relocates one occupant to a random free slot.
func moveOccupant(rng *rand.Rand, r *puzzle.Ring, emitter bool) {
	set := r.Emitters
	if !emitter {
		set = r.Blockers
	}
	if len(set) == 0 {
		return
	}
	free := r.FreeSlots()
	if len(free) == 0 {
		return
	}
	idx := rng.IntN(len(set))
	set[idx] = free[rng.IntN(len(free))]
}

func randomEdges(rng *rand.Rand, n int) []int {
	perm := rng.Perm(parameter.PolygonSides)
	if n > len(perm) {
		n = len(perm)
	}
	return append([]int(nil), perm[:n]...)
}

func removeAt(vals []int, idx int) []int {
	return append(vals[:idx], vals[idx+1:]...)
}

func containsInt(vals []int, v int) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
