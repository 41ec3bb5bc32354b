package parameter

// Difficulty Buckets
const (
	// DifficultyEasyCeiling is the overall score below which a puzzle
	// is bucketed easy
	DifficultyEasyCeiling = 0.3

	// DifficultyMediumCeiling is the overall score below which a
	// puzzle is bucketed medium; everything above is hard
	DifficultyMediumCeiling = 0.7
)

// Analyzer Weights (sum to 1)
const (
	DifficultyWeightDensity    = 0.25
	DifficultyWeightComplexity = 0.35
	DifficultyWeightCognitive  = 0.25
	DifficultyWeightAesthetics = 0.15
)

// Suggestion Thresholds
const (
	// EmitterDensityWarn triggers a fewer-emitters suggestion
	EmitterDensityWarn = 0.8

	// BlockerDensityWarn triggers a fewer-blockers suggestion
	BlockerDensityWarn = 0.6

	// LitEdgeLoadWarn triggers a fewer-targets suggestion
	LitEdgeLoadWarn = 0.75
)

// Constructor Defaults
const (
	// ConstructVarietyFraction bounds extra non-target emitters as a
	// fraction of the lit-edge count
	ConstructVarietyFraction = 0.5

	// ConstructBlockersPerRingMax is the cap on blockers placed per
	// ring by the constraint-based constructor
	ConstructBlockersPerRingMax = 2

	// ConstructMaxPlacementTries bounds slot resampling before the
	// constructor degrades to the fallback builder
	ConstructMaxPlacementTries = 24
)
