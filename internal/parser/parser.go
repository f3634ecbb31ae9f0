// Package parser extracts flashcards from deck files.
//
// A deck file is plain markdown-ish text where cards are written as
// prefixed blocks:
//
//	Q: What is the capital of France?
//	A: Paris
//	C: Geography
//
// A block runs until the next prefix line. A new "Q:" line or a "---"
// separator starts a new card. Context ("C:") is optional.
package parser

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/SUCA-Team/SUCA-api/internal/domain"
)

const (
	frontPrefix   = "Q:"
	backPrefix    = "A:"
	contextPrefix = "C:"
	separator     = "---"
)

// ParseFile reads the file at path and extracts all cards from it.
func ParseFile(path string) ([]domain.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads deck text from r and extracts all cards. Text outside any
// card block is ignored. A card without a front is discarded.
func Parse(r io.Reader) ([]domain.Card, error) {
	var (
		cards   []domain.Card
		current domain.Card
		block   []string
		target  *string // field the current block belongs to; nil between cards
	)

	closeBlock := func() {
		if target != nil && len(block) > 0 {
			*target = strings.TrimRight(strings.Join(block, "\n"), "\n")
		}
		block = nil
	}
	closeCard := func() {
		closeBlock()
		if current.Front != "" {
			cards = append(cards, current)
		}
		current = domain.Card{}
		target = nil
	}
	openBlock := func(field *string, line, prefix string) {
		closeBlock()
		target = field
		block = append(block, strings.TrimPrefix(strings.TrimPrefix(line, prefix), " "))
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == separator:
			closeCard()
		case strings.HasPrefix(line, frontPrefix):
			closeCard() // a new front always starts a new card
			openBlock(&current.Front, line, frontPrefix)
		case strings.HasPrefix(line, backPrefix):
			openBlock(&current.Back, line, backPrefix)
		case strings.HasPrefix(line, contextPrefix):
			openBlock(&current.Context, line, contextPrefix)
		case target != nil:
			block = append(block, line)
		}
	}
	closeCard()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cards, nil
}
