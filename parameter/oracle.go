package parameter

// Rotation Search
const (
	// RotationSteps is the number of discrete rotation states per ring
	RotationSteps = 12

	// RotationCombinations is the full search space (12^3)
	RotationCombinations = RotationSteps * RotationSteps * RotationSteps

	// OracleSampleCount is the number of random rotation vectors tried
	// in statistical (non-exhaustive) solvability mode
	OracleSampleCount = 500
)

// Search Budgets
const (
	// OracleMaxChecks caps rotation vectors examined per solvability
	// query. Zero means the mode's natural bound (1728 or SampleCount).
	OracleMaxChecks = 0
)
