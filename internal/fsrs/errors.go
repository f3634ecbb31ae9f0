package fsrs

import "errors"

// Sentinel errors returned by the engine. Check with errors.Is:
//
//	if errors.Is(err, fsrs.ErrInvalidRating) { ... }
var (
	// ErrInvalidRating is returned when a rating outside Again..Easy is
	// supplied. The input card is left untouched and no log is produced.
	ErrInvalidRating = errors.New("fsrs: invalid rating")

	// ErrMalformedCard is returned when an input snapshot violates the
	// card invariants (negative stability, difficulty outside [1,10],
	// a reviewed card with no last-review timestamp, ...). The engine
	// refuses to compute from such a snapshot rather than repair it,
	// since silent fixes would mask upstream persistence bugs.
	ErrMalformedCard = errors.New("fsrs: malformed card")

	// ErrInvalidParams is returned by NewScheduler for configuration
	// values outside their domain.
	ErrInvalidParams = errors.New("fsrs: invalid params")
)
