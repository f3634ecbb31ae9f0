// Package fsrs implements the memory-modeling scheduler behind SUCA's
// spaced-repetition reviews: a power-law forgetting curve, a four-state
// card lifecycle, and interval arithmetic with deterministic clamping.
//
// The engine is pure: every operation is a function of the card snapshot,
// the rating, the review time and an immutable Params value. Persistence,
// transport and user interaction live with the caller.
//
//	s, err := fsrs.NewScheduler(fsrs.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	card := fsrs.NewCard(time.Now())
//	card, log, err := s.Review(card, fsrs.Good, time.Now())
package fsrs
