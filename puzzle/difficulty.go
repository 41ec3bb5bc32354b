package puzzle

// Difficulty is the requested or measured tier of a puzzle.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty maps a user-supplied string to a tier. Unknown
// values fall back to Medium; generation always proceeds.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s)
	default:
		return Medium
	}
}

// ClampLitRange forces 1 <= min <= max <= 12, swapping when inverted.
func ClampLitRange(minLit, maxLit int) (int, int) {
	if minLit > maxLit {
		minLit, maxLit = maxLit, minLit
	}
	if minLit < 1 {
		minLit = 1
	}
	if maxLit < 1 {
		maxLit = 1
	}
	if maxLit > 12 {
		maxLit = 12
	}
	if minLit > maxLit {
		minLit = maxLit
	}
	return minLit, maxLit
}
