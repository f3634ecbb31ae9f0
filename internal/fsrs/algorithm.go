package fsrs

import "math"

const (
	minDifficulty = 1.0
	maxDifficulty = 10.0

	// minStability is the floor applied after every stability update.
	// A configuration with a negative growth factor could otherwise drive
	// stability to zero and poison later retrievability calls.
	minStability = 0.1
)

// retrievability computes the recall-probability estimate
//
//	R = (1 + t / (9 S)) ^ -1
//
// for elapsed days t and stability S. R is 1 at t=0 and decays toward 0;
// larger stability slows the decay. S must be positive.
func retrievability(elapsedDays int, stability float64) float64 {
	return math.Pow(1+float64(elapsedDays)/(9*stability), -1)
}

// nextStability computes the post-review stability for a card that has been
// reviewed at least once:
//
//	S' = S * (1 + g(rating) * (11 - D) * R)
//
// Harder items (D near 10) grow more slowly; reviews at high retrievability
// grow faster (spacing effect). The result is floored at minStability.
func (p Params) nextStability(stability, difficulty, retr float64, r Rating) float64 {
	s := stability * (1 + p.growthFactor(r)*(maxDifficulty+1-difficulty)*retr)
	return math.Max(s, minStability)
}

func clampDifficulty(d float64) float64 {
	return math.Min(math.Max(d, minDifficulty), maxDifficulty)
}
