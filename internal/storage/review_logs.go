package storage

import (
	"fmt"

	"github.com/SUCA-Team/SUCA-api/internal/fsrs"
)

// AppendReviewLog records one committed review for a card. Logs are
// append-only; nothing in the application ever updates or rewrites them.
func (db *DB) AppendReviewLog(fingerprint string, log fsrs.ReviewLog) error {
	_, err := db.conn.Exec(`
		INSERT INTO review_logs (card_fingerprint, rating, scheduled_days,
			elapsed_days, reviewed_at, state)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		fingerprint, int(log.Rating), log.ScheduledDays, log.ElapsedDays,
		encodeTime(log.ReviewedAt), int(log.State),
	)
	if err != nil {
		return fmt.Errorf("failed to append review log for card %s: %w", fingerprint, err)
	}
	return nil
}

// ReviewLogs returns a card's review history in review order.
func (db *DB) ReviewLogs(fingerprint string) ([]fsrs.ReviewLog, error) {
	rows, err := db.conn.Query(`
		SELECT rating, scheduled_days, elapsed_days, reviewed_at, state
		FROM review_logs WHERE card_fingerprint = ? ORDER BY id
	`, fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to get review logs for card %s: %w", fingerprint, err)
	}
	defer rows.Close()

	var logs []fsrs.ReviewLog
	for rows.Next() {
		var (
			log        fsrs.ReviewLog
			rating     int
			state      int
			reviewedAt string
		)
		if err := rows.Scan(&rating, &log.ScheduledDays, &log.ElapsedDays, &reviewedAt, &state); err != nil {
			return nil, fmt.Errorf("failed to scan review log row: %w", err)
		}
		r, err := fsrs.RatingFromInt(rating)
		if err != nil {
			return nil, fmt.Errorf("review log for card %s: %w", fingerprint, err)
		}
		st, err := fsrs.StateFromInt(state)
		if err != nil {
			return nil, fmt.Errorf("review log for card %s: %w", fingerprint, err)
		}
		log.Rating = r
		log.State = st
		log.ReviewedAt, err = decodeTime(reviewedAt)
		if err != nil {
			return nil, fmt.Errorf("review log for card %s: %w", fingerprint, err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
