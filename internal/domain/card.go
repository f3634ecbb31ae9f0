package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Card is the content of a single flashcard: the prompt shown to the user,
// the expected answer, and optional supporting context. Scheduling state
// lives separately (internal/fsrs); the two are joined by Fingerprint.
type Card struct {
	Front   string
	Back    string
	Context string
}

// Normalize returns the canonical text of the card used for fingerprinting:
// each field lowercased, trimmed, with line endings unified, joined by
// newlines so fields cannot run into each other.
func Normalize(card Card) string {
	part := func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimSpace(s)
		return strings.ReplaceAll(s, "\r\n", "\n")
	}
	return strings.Join([]string{part(card.Front), part(card.Back), part(card.Context)}, "\n")
}

// Fingerprint returns the hex SHA-256 of the normalized card content.
// Editing a card's wording produces a new fingerprint, which the deck
// reconciler treats as a new card with fresh scheduling state.
func Fingerprint(card Card) string {
	sum := sha256.Sum256([]byte(Normalize(card)))
	return hex.EncodeToString(sum[:])
}
