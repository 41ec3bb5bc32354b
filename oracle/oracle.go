// Package oracle decides whether ring-laser puzzles are solvable by
// simulating beam propagation under candidate rotation vectors. It is a
// pure function of the puzzle; callers own all caches.
package oracle

import (
	"math/rand/v2"
	"sync"

	"github.com/lixenwraith/laser-lock/geometry"
	"github.com/lixenwraith/laser-lock/parameter"
	"github.com/lixenwraith/laser-lock/puzzle"
)

// Config controls the rotation-space search strategy.
type Config struct {
	// Exhaustive enumerates all 12^3 rotation vectors. When false the
	// search samples SampleCount random vectors instead; a negative
	// answer is then only probabilistic.
	Exhaustive bool

	// SampleCount is the number of random vectors tried in sampled
	// mode. Zero means parameter.OracleSampleCount.
	SampleCount int

	// MaxChecks caps rotation vectors examined per query across both
	// modes. Zero means the mode's natural bound.
	MaxChecks int

	// Seed for sampled mode (0 for random).
	Seed uint64
}

// DefaultConfig returns the authoritative exhaustive configuration.
func DefaultConfig() Config {
	return Config{
		Exhaustive:  true,
		SampleCount: parameter.OracleSampleCount,
		MaxChecks:   parameter.OracleMaxChecks,
	}
}

// Oracle performs beam-propagation hit tests and rotation-space
// searches over a fixed board geometry. Safe for concurrent use: the
// sampled search derives a per-call rng from the seeded parent.
type Oracle struct {
	cfg    Config
	rng    *rand.Rand
	rngMu  sync.Mutex
	center geometry.Vec2
	verts  []geometry.Vec2
}

// New creates an oracle for the canonical board.
func New(cfg Config) *Oracle {
	if cfg.SampleCount <= 0 {
		cfg.SampleCount = parameter.OracleSampleCount
	}
	var rng *rand.Rand
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	center := geometry.Vec2{}
	return &Oracle{
		cfg:    cfg,
		rng:    rng,
		center: center,
		verts:  geometry.PolygonVertices(parameter.PolygonSides, parameter.PolygonRadius, center, 0),
	}
}

// obstacle kinds, ordered by narrative priority only
const (
	hitNothing = iota
	hitEdge
	hitBlocker
	hitEmitter
)

// HitEdges simulates every emitter under the given rotation vector and
// returns the sorted indices of edges receiving an unobstructed beam.
func (o *Oracle) HitEdges(p *puzzle.Puzzle, rot puzzle.RotationVector) []int {
	mask := o.hitMask(p, rot)
	edges := make([]int, 0, parameter.PolygonSides)
	for e := 0; e < parameter.PolygonSides; e++ {
		if mask&(1<<e) != 0 {
			edges = append(edges, e)
		}
	}
	return edges
}

// hitMask returns the hit edges as a bitmask for cheap superset tests.
func (o *Oracle) hitMask(p *puzzle.Puzzle, rot puzzle.RotationVector) uint16 {
	var mask uint16
	for ri := range p.Rings {
		for _, slot := range p.Rings[ri].Emitters {
			if edge, ok := o.castBeam(p, rot, ri, slot); ok {
				mask |= 1 << edge
			}
		}
	}
	return mask
}

// castBeam fires one emitter's beam through the center and resolves the
// nearest obstacle. Returns the struck edge index when the beam escapes
// every blocker and emitter housing on its path.
func (o *Oracle) castBeam(p *puzzle.Puzzle, rot puzzle.RotationVector, ring, slot int) (edge int, ok bool) {
	radius := p.Rings[ring].Radius
	worldAngle := geometry.SlotToAngle(slot + rot[ring])
	origin := geometry.PointOnCircle(o.center, radius, worldAngle)
	dir := o.center.Sub(origin).Normalize()

	nearestT := -1.0
	nearestKind := hitNothing
	nearestEdge := -1

	consider := func(t float64, kind, edge int) {
		if nearestT < 0 || t < nearestT {
			nearestT = t
			nearestKind = kind
			nearestEdge = edge
		}
	}

	// (d) polygon edges
	for e := 0; e < parameter.PolygonSides; e++ {
		a := o.verts[e]
		b := o.verts[(e+1)%parameter.PolygonSides]
		if t, hit := geometry.RaySegmentIntersection(origin, dir, a, b); hit {
			consider(t, hitEdge, e)
		}
	}

	// (a) blockers on the same ring: slot-based same-or-opposite test
	for _, bs := range p.Rings[ring].Blockers {
		bAngle := geometry.SlotToAngle(bs + rot[ring])
		if geometry.AngularDistance(bAngle, worldAngle) <= parameter.SlotAngularTolerance {
			consider(0, hitBlocker, -1)
		} else if geometry.AngularDistance(bAngle, worldAngle+180) <= parameter.SlotAngularTolerance {
			consider(2*radius, hitBlocker, -1)
		}
	}

	// (b) blockers on other rings: geometric, checked unconditionally
	for ri := range p.Rings {
		if ri == ring {
			continue
		}
		for _, bs := range p.Rings[ri].Blockers {
			pos := geometry.PointOnCircle(o.center, p.Rings[ri].Radius, geometry.SlotToAngle(bs+rot[ri]))
			if t, hit := geometry.RayCircleIntersection(origin, dir, pos, parameter.BlockerRadius); hit {
				consider(t, hitBlocker, -1)
			}
		}
	}

	// (c) every other emitter occludes as a physical obstacle
	for ri := range p.Rings {
		for _, es := range p.Rings[ri].Emitters {
			if ri == ring && es == slot {
				continue
			}
			pos := geometry.PointOnCircle(o.center, p.Rings[ri].Radius, geometry.SlotToAngle(es+rot[ri]))
			if t, hit := geometry.RayCircleIntersection(origin, dir, pos, parameter.EmitterRadius); hit {
				consider(t, hitEmitter, -1)
			}
		}
	}

	if nearestKind != hitEdge {
		return -1, false
	}
	return nearestEdge, true
}
