package fsrs

import "time"

// ReviewLog records a single completed review. It is produced once per
// Review call and never read back by the engine; callers persist it for
// history and observability.
type ReviewLog struct {
	Rating        Rating    `json:"rating"`
	ScheduledDays int       `json:"scheduled_days"`
	ElapsedDays   int       `json:"elapsed_days"`
	ReviewedAt    time.Time `json:"reviewed_at"`
	State         State     `json:"state"` // state the card landed in
}
