package fsrs

import (
	"fmt"
	"time"
)

// Card is the scheduling state of a single flashcard. It is a plain value:
// the scheduler takes a Card by value and returns a new one, so callers
// never observe mutation behind their back.
//
// Stability, Difficulty and LastReview are nil before the first review.
// Modeling "unset" explicitly (rather than a 0.0 sentinel) keeps the rest of
// the engine free of guard-against-zero checks; the storage layer translates
// nil to SQL NULL and back.
type Card struct {
	State         State      `json:"state"`
	Stability     *float64   `json:"stability"`   // days; nil before first review
	Difficulty    *float64   `json:"difficulty"`  // [1,10]; nil before first review
	ElapsedDays   int        `json:"elapsed_days"`
	ScheduledDays int        `json:"scheduled_days"`
	Reps          int        `json:"reps"`
	Lapses        int        `json:"lapses"`
	Due           time.Time  `json:"due"`
	LastReview    *time.Time `json:"last_review"` // nil before first review
}

// NewCard creates a never-reviewed card, due immediately.
func NewCard(now time.Time) Card {
	return Card{State: New, Due: now}
}

// Reviewed reports whether the card has completed at least one review.
func (c Card) Reviewed() bool {
	return c.LastReview != nil
}

// clone returns a deep copy of the card. Pointer fields are copied by value
// so the copy shares nothing with the original.
func (c Card) clone() Card {
	out := c
	if c.Stability != nil {
		v := *c.Stability
		out.Stability = &v
	}
	if c.Difficulty != nil {
		v := *c.Difficulty
		out.Difficulty = &v
	}
	if c.LastReview != nil {
		v := *c.LastReview
		out.LastReview = &v
	}
	return out
}

func (c *Card) setStability(s float64) {
	c.Stability = &s
}

func (c *Card) setDifficulty(d float64) {
	c.Difficulty = &d
}

// validate checks the card invariants on an input snapshot.
// A violation means the caller handed us a corrupt snapshot; the review is
// refused with ErrMalformedCard.
func (c Card) validate() error {
	if !c.State.IsValid() {
		return fmt.Errorf("%w: unknown state %d", ErrMalformedCard, int(c.State))
	}
	if c.State == New {
		if c.Stability != nil || c.Difficulty != nil || c.LastReview != nil {
			return fmt.Errorf("%w: new card carries review state", ErrMalformedCard)
		}
	} else {
		if c.LastReview == nil {
			return fmt.Errorf("%w: reviewed card missing last review timestamp", ErrMalformedCard)
		}
		if c.Stability == nil || c.Difficulty == nil {
			return fmt.Errorf("%w: reviewed card missing memory state", ErrMalformedCard)
		}
		if *c.Stability <= 0 {
			return fmt.Errorf("%w: stability %v not positive", ErrMalformedCard, *c.Stability)
		}
		if *c.Difficulty < minDifficulty || *c.Difficulty > maxDifficulty {
			return fmt.Errorf("%w: difficulty %v outside [%v, %v]",
				ErrMalformedCard, *c.Difficulty, minDifficulty, maxDifficulty)
		}
		if c.ScheduledDays < 1 {
			return fmt.Errorf("%w: scheduled days %d < 1", ErrMalformedCard, c.ScheduledDays)
		}
	}
	if c.Reps < 0 || c.Lapses < 0 || c.ElapsedDays < 0 {
		return fmt.Errorf("%w: negative counter", ErrMalformedCard)
	}
	return nil
}
