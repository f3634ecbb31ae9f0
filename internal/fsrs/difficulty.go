package fsrs

// DifficultyPolicy decides how a card's difficulty evolves. The step policy
// below is the default; a continuous weighted-update formulation (as used by
// full FSRS implementations) can be injected via WithDifficultyPolicy.
// Implementations must return values inside [1, 10].
type DifficultyPolicy interface {
	// Initial returns the difficulty assigned on a card's first review.
	Initial(r Rating) float64
	// Next returns the difficulty after reviewing a card whose current
	// difficulty is d.
	Next(d float64, r Rating) float64
}

// StepDifficulty is the default policy: Again raises difficulty by one,
// Easy lowers it by one, Hard and Good leave it unchanged, always clamped
// to [1, 10]. First reviews start from the midpoint and apply the same step.
type StepDifficulty struct{}

// initialDifficulty is the midpoint seed applied before the first step.
const initialDifficulty = 5.0

func (StepDifficulty) Initial(r Rating) float64 {
	return StepDifficulty{}.Next(initialDifficulty, r)
}

func (StepDifficulty) Next(d float64, r Rating) float64 {
	switch r {
	case Again:
		d++
	case Easy:
		d--
	}
	return clampDifficulty(d)
}
