package parameter

// Board Topology
const (
	// PolygonSides is the number of edges on the playing field boundary
	PolygonSides = 12

	// SlotCount is the number of discrete angular positions per ring
	SlotCount = 12

	// SlotDegrees is the angular distance between adjacent slots
	SlotDegrees = 360.0 / SlotCount

	// SlotAngleOffset aligns slot centers with edge midpoints.
	// Slot k sits at 15 + 30k degrees so a beam fired through the center
	// exits through the midpoint of the opposite edge.
	SlotAngleOffset = 15.0
)

// Ring Geometry
const (
	RingCount = 3

	RingRadiusInner  = 50.0
	RingRadiusMiddle = 90.0
	RingRadiusOuter  = 130.0

	// PolygonRadius is the circumradius of the boundary polygon.
	// Must exceed the outer ring so every beam reaches an edge.
	PolygonRadius = 160.0
)

// RingRadii indexes the canonical radii innermost first.
var RingRadii = [RingCount]float64{RingRadiusInner, RingRadiusMiddle, RingRadiusOuter}

// Obstacle Dimensions
const (
	// BlockerRadius is the collision radius of a blocker disc
	BlockerRadius = 6.0

	// EmitterRadius is the collision radius of an emitter housing.
	// Slightly larger than a blocker: emitters occlude beams too.
	EmitterRadius = 8.0
)

// Angular Tolerances
const (
	// SlotAngularTolerance is the window for same-or-opposite slot tests.
	// Absorbs float accumulation from repeated 30-degree rotations.
	SlotAngularTolerance = 1.0

	// RayEpsilon rejects self-intersections at the ray origin
	RayEpsilon = 1e-6
)

// EdgeCaptureTolerance is the per-ring angular window used by the
// solution-space index when matching a beam exit angle to an edge
// midpoint. Inner beams travel further before exiting and tolerate more
// angular slack.
var EdgeCaptureTolerance = [RingCount]float64{12.0, 10.0, 8.0}
