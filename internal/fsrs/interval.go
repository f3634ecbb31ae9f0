package fsrs

import (
	"math"
	"math/rand"
)

// nextInterval converts a stability into a whole-day base interval:
//
//	ivl = S * (retention^(1/9) - 1)
//	ivl = min(ivl, maximumInterval)
//	ivl = max(1, round(ivl))
//
// then perturbs it with fuzz when enabled. The Again and Hard paths in the
// scheduler bypass this entirely (fixed 1 day, previous-interval based).
func (p Params) nextInterval(stability float64, fuzz *rand.Rand) int {
	ivl := stability * (math.Pow(p.RequestRetention, 1.0/9.0) - 1)
	ivl = math.Min(ivl, float64(p.MaximumInterval))
	days := int(math.Round(ivl))
	if days < 1 {
		days = 1
	}
	if p.EnableFuzz && fuzz != nil {
		days = fuzzInterval(days, fuzz)
	}
	return days
}

// hardInterval is the conservative interval for a Hard rating, based on the
// previously scheduled interval rather than the fresh stability.
func hardInterval(prevScheduledDays int) int {
	days := int(math.Round(float64(prevScheduledDays) * 1.2))
	if days < 1 {
		days = 1
	}
	return days
}

// easyInterval applies the Easy bonus multiplier to the base interval.
func easyInterval(base int) int {
	days := int(math.Round(float64(base) * 1.3))
	if days < 1 {
		days = 1
	}
	return days
}

// fuzzInterval perturbs an interval uniformly within ±5% (at least ±1 day)
// so cards reviewed together do not all fall due on the same date.
// Intervals of 2 days or less are left alone.
func fuzzInterval(interval int, rng *rand.Rand) int {
	if interval <= 2 {
		return interval
	}
	fuzzRange := int(math.Round(float64(interval) * 0.05))
	if fuzzRange < 1 {
		fuzzRange = 1
	}
	interval += rng.Intn(2*fuzzRange+1) - fuzzRange
	if interval < 1 {
		interval = 1
	}
	return interval
}
