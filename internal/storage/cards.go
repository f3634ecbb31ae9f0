package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SUCA-Team/SUCA-api/internal/domain"
	"github.com/SUCA-Team/SUCA-api/internal/fsrs"
)

// CardRecord is a stored card: content plus its scheduling snapshot.
type CardRecord struct {
	Fingerprint string
	Content     domain.Card
	Scheduling  fsrs.Card
	SourceID    sql.NullInt64
}

// InsertCard stores a card's content together with its initial scheduling
// snapshot (normally fsrs.NewCard at the time of import).
func (db *DB) InsertCard(content domain.Card, sourceID int64, snapshot fsrs.Card) error {
	fp := domain.Fingerprint(content)
	_, err := db.conn.Exec(`
		INSERT INTO cards (fingerprint, front, back, context, source_id,
			state, stability, difficulty, elapsed_days, scheduled_days,
			reps, lapses, due, last_review)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		fp, content.Front, content.Back, content.Context, sourceID,
		int(snapshot.State),
		nullFloat(snapshot.Stability),
		nullFloat(snapshot.Difficulty),
		snapshot.ElapsedDays, snapshot.ScheduledDays,
		snapshot.Reps, snapshot.Lapses,
		encodeTime(snapshot.Due),
		nullTime(snapshot.LastReview),
	)
	if err != nil {
		return fmt.Errorf("failed to insert card %s: %w", fp, err)
	}
	return nil
}

// FindCard retrieves a card by its fingerprint. Returns (nil, nil) when the
// card does not exist.
func (db *DB) FindCard(fingerprint string) (*CardRecord, error) {
	row := db.conn.QueryRow(cardSelect+` WHERE fingerprint = ?`, fingerprint)
	rec, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find card %s: %w", fingerprint, err)
	}
	return rec, nil
}

// FindCardByPrefix retrieves a card whose fingerprint starts with the
// given prefix. Returns (nil, nil) when nothing matches and an error when
// the prefix is ambiguous.
func (db *DB) FindCardByPrefix(prefix string) (*CardRecord, error) {
	rows, err := db.conn.Query(cardSelect+` WHERE fingerprint LIKE ? || '%' LIMIT 2`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find card by prefix %s: %w", prefix, err)
	}
	defer rows.Close()
	matches, err := collectCards(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous fingerprint prefix %s", prefix)
	}
}

// UpdateScheduling replaces a card's scheduling snapshot after a review.
func (db *DB) UpdateScheduling(fingerprint string, snapshot fsrs.Card) error {
	_, err := db.conn.Exec(`
		UPDATE cards
		SET state = ?, stability = ?, difficulty = ?, elapsed_days = ?,
			scheduled_days = ?, reps = ?, lapses = ?, due = ?, last_review = ?
		WHERE fingerprint = ?
	`,
		int(snapshot.State),
		nullFloat(snapshot.Stability),
		nullFloat(snapshot.Difficulty),
		snapshot.ElapsedDays, snapshot.ScheduledDays,
		snapshot.Reps, snapshot.Lapses,
		encodeTime(snapshot.Due),
		nullTime(snapshot.LastReview),
		fingerprint,
	)
	if err != nil {
		return fmt.Errorf("failed to update scheduling for card %s: %w", fingerprint, err)
	}
	return nil
}

// DueCards returns every card due at or before now, soonest first.
func (db *DB) DueCards(now time.Time) ([]CardRecord, error) {
	// datetime() normalizes the stored offsets, so cards written with
	// different zones still order and compare correctly.
	rows, err := db.conn.Query(cardSelect+` WHERE datetime(due) <= datetime(?) ORDER BY datetime(due)`,
		encodeTime(now.UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to get due cards: %w", err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// CardsBySource returns all cards imported from the given source.
func (db *DB) CardsBySource(sourceID int64) ([]CardRecord, error) {
	rows, err := db.conn.Query(cardSelect+` WHERE source_id = ?`, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for source ID %d: %w", sourceID, err)
	}
	defer rows.Close()
	return collectCards(rows)
}

// DeleteCard removes a card and its review history.
func (db *DB) DeleteCard(fingerprint string) error {
	if _, err := db.conn.Exec(`DELETE FROM review_logs WHERE card_fingerprint = ?`, fingerprint); err != nil {
		return fmt.Errorf("failed to delete review logs for card %s: %w", fingerprint, err)
	}
	if _, err := db.conn.Exec(`DELETE FROM cards WHERE fingerprint = ?`, fingerprint); err != nil {
		return fmt.Errorf("failed to delete card %s: %w", fingerprint, err)
	}
	return nil
}

const cardSelect = `
	SELECT fingerprint, front, back, context, source_id,
		state, stability, difficulty, elapsed_days, scheduled_days,
		reps, lapses, due, last_review
	FROM cards`

// collectCards drains a listing query. A malformed row is reported and
// skipped so one corrupt card cannot make the whole collection unreadable;
// point lookups via FindCard still surface the error.
func collectCards(rows *sql.Rows) ([]CardRecord, error) {
	var records []CardRecord
	for rows.Next() {
		rec, err := scanCard(rows)
		if err != nil {
			if errors.Is(err, fsrs.ErrMalformedCard) {
				slog.Warn("skipping malformed card row", "error", err)
				continue
			}
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func scanCard(r rowScanner) (*CardRecord, error) {
	var (
		rec        CardRecord
		state      int
		stability  sql.NullFloat64
		difficulty sql.NullFloat64
		due        string
		lastReview sql.NullString
	)
	err := r.Scan(
		&rec.Fingerprint,
		&rec.Content.Front, &rec.Content.Back, &rec.Content.Context,
		&rec.SourceID,
		&state, &stability, &difficulty,
		&rec.Scheduling.ElapsedDays, &rec.Scheduling.ScheduledDays,
		&rec.Scheduling.Reps, &rec.Scheduling.Lapses,
		&due, &lastReview,
	)
	if err != nil {
		return nil, err
	}

	st, err := fsrs.StateFromInt(state)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", rec.Fingerprint, err)
	}
	rec.Scheduling.State = st

	// NULL and the legacy 0.0 sentinel both mean "never reviewed": a real
	// stability is strictly positive, and retrievability must never be
	// computed from zero.
	if stability.Valid && stability.Float64 != 0 {
		v := stability.Float64
		rec.Scheduling.Stability = &v
	}
	if difficulty.Valid && difficulty.Float64 != 0 {
		v := difficulty.Float64
		rec.Scheduling.Difficulty = &v
	}

	rec.Scheduling.Due, err = decodeTime(due)
	if err != nil {
		return nil, fmt.Errorf("card %s due %q: %w", rec.Fingerprint, due, fsrs.ErrMalformedCard)
	}
	if lastReview.Valid {
		t, err := decodeTime(lastReview.String)
		if err != nil {
			return nil, fmt.Errorf("card %s last review %q: %w", rec.Fingerprint, lastReview.String, fsrs.ErrMalformedCard)
		}
		rec.Scheduling.LastReview = &t
	}
	return &rec, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*t), Valid: true}
}
