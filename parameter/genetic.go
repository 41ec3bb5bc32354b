package parameter

// Genetic Algorithm - Engine Configuration
const (
	// GAPoolSize is the number of candidates in each population
	GAPoolSize = 60

	// GAPoolSizeCompact is the reduced pool for fast interactive runs
	GAPoolSizeCompact = 20

	// GAEliteRatio is the fraction of best performers copied verbatim
	GAEliteRatio = 0.1

	// GAMaxGenerations caps a single evolution run
	GAMaxGenerations = 40

	// GATournamentSize for selection pressure
	GATournamentSize = 3

	// GACrossoverRate is the probability offspring come from crossover
	// rather than a cloned parent
	GACrossoverRate = 0.8

	// GAMutationRate is the probability a chromosome is perturbed
	GAMutationRate = 0.25

	// GAParallelism bounds concurrent fitness evaluations
	GAParallelism = 4
)

// Genetic Algorithm - Convergence
const (
	// GAFitnessThreshold allows early exit once reached by a solvable
	// chromosome
	GAFitnessThreshold = 0.7

	// GAConvergencePatience is generations without improvement before
	// the run is declared converged
	GAConvergencePatience = 10
)

// Genetic Algorithm - Mutation Class Probabilities
const (
	GAMutateLitEdge     = 0.3
	GAMutateEmitterMove = 0.4
	GAMutateEmitterAdd  = 0.2
	GAMutateEmitterDrop = 0.15
	GAMutateBlockerMove = 0.3
	GAMutateBlockerAdd  = 0.2
	GAMutateBlockerDrop = 0.2
)

// Genetic Algorithm - Difficulty Match
const (
	// GADifficultySigma is the Gaussian falloff width (in rotation
	// steps) outside the preset's target range
	GADifficultySigma = 4.0
)
