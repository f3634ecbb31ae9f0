package fsrs

import (
	"fmt"
	"math/rand"
	"time"
)

// Scheduler computes updated card state and the next due date from a card
// snapshot and a rating. It is pure apart from the optional fuzz draw, which
// comes from the injected random source, so independent cards can be
// reviewed concurrently without synchronization.
type Scheduler struct {
	params Params
	policy DifficultyPolicy
	rng    *rand.Rand
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithDifficultyPolicy replaces the default step difficulty policy.
func WithDifficultyPolicy(p DifficultyPolicy) Option {
	return func(s *Scheduler) { s.policy = p }
}

// WithRandSource sets the source used for interval fuzz. Tests pin this to
// a fixed seed; deterministic runs should instead disable fuzz in Params.
func WithRandSource(src rand.Source) Option {
	return func(s *Scheduler) { s.rng = rand.New(src) }
}

// NewScheduler creates a Scheduler from the given params.
func NewScheduler(p Params, opts ...Option) (*Scheduler, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		params: p,
		policy: StepDifficulty{},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Params returns the scheduler's configuration.
func (s *Scheduler) Params() Params {
	return s.params
}

// Review processes one review of the card at the given time. It returns the
// updated card and an immutable review log; the input card is not mutated.
//
// An out-of-range rating returns ErrInvalidRating; a snapshot violating the
// card invariants returns ErrMalformedCard. In both cases no log is emitted.
// Reviewing earlier than the due date is legitimate and not an error; clock
// skew that would make elapsed days negative is clamped to zero.
func (s *Scheduler) Review(card Card, rating Rating, now time.Time) (Card, ReviewLog, error) {
	if !rating.IsValid() {
		return Card{}, ReviewLog{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if err := card.validate(); err != nil {
		return Card{}, ReviewLog{}, err
	}

	c := card.clone()
	wasNew := c.State == New

	elapsed := 0
	if !wasNew {
		elapsed = elapsedDays(*c.LastReview, now)
	}
	c.ElapsedDays = elapsed

	// Memory model: stability and difficulty from the prior state.
	if wasNew {
		c.setStability(s.params.initialStability(rating))
		c.setDifficulty(clampDifficulty(s.policy.Initial(rating)))
	} else {
		retr := retrievability(elapsed, *card.Stability)
		c.setStability(s.params.nextStability(*card.Stability, *card.Difficulty, retr, rating))
		c.setDifficulty(clampDifficulty(s.policy.Next(*card.Difficulty, rating)))
	}

	// Interval from the updated stability, with rating adjustments.
	var days int
	switch rating {
	case Again:
		days = 1
	case Hard:
		days = hardInterval(card.ScheduledDays)
	case Good:
		days = s.params.nextInterval(*c.Stability, s.rng)
	case Easy:
		days = easyInterval(s.params.nextInterval(*c.Stability, s.rng))
	}

	// State machine: the first review leaves New permanently; a lapse on a
	// learned card routes through Relearning, everything else lands in
	// Review.
	switch {
	case wasNew && rating == Again:
		c.State = Learning
	case !wasNew && rating == Again:
		c.State = Relearning
		c.Lapses++
	default:
		c.State = Review
	}

	c.Reps++
	c.ScheduledDays = days
	c.Due = now.Add(time.Duration(days) * 24 * time.Hour)
	c.LastReview = &now

	log := ReviewLog{
		Rating:        rating,
		ScheduledDays: days,
		ElapsedDays:   elapsed,
		ReviewedAt:    now,
		State:         c.State,
	}
	return c, log, nil
}

// PreviewAll computes the hypothetical outcome of reviewing the card with
// each of the four ratings, without committing anything. Each branch starts
// from an independent copy of the input card, so results are identical to
// calling Review with that rating directly (exactly so when fuzz is
// disabled; with fuzz enabled the branches consume draws from the shared
// random source in rating order).
func (s *Scheduler) PreviewAll(card Card, now time.Time) (map[Rating]Card, error) {
	out := make(map[Rating]Card, 4)
	for _, r := range Ratings() {
		c, _, err := s.Review(card, r, now)
		if err != nil {
			return nil, err
		}
		out[r] = c
	}
	return out, nil
}

// Retrievability returns the current recall-probability estimate for the
// card, using its stored (pre-review) stability. A never-reviewed card has
// not decayed and reports 1.0.
func (s *Scheduler) Retrievability(card Card, now time.Time) float64 {
	if !card.Reviewed() || card.Stability == nil {
		return 1.0
	}
	return retrievability(elapsedDays(*card.LastReview, now), *card.Stability)
}

// elapsedDays is the whole-day gap between the last review and now,
// clamped at zero so clock skew never produces a negative elapsed time.
func elapsedDays(lastReview, now time.Time) int {
	days := int(now.Sub(lastReview).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
