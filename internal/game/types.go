// internal/game/types.go
//
// Core type definitions for the multi-board engine.
// Defines:
//   - LetterStatus: per-letter result of a guess (correct/present/absent).
//   - Status: coarse game state (playing/won/lost).
//   - WordSource: dictionary collaborator consumed by the engine.

package game

import "errors"

const (
	NumBoards  = 16 // boards solved in parallel
	WordLength = 5  // letters per word
	MaxGuesses = 21 // shared attempts across all boards
)

// LetterStatus represents the evaluation result for a single letter.
//   - "correct": letter is in the answer at this position.
//   - "present": letter is in the answer at another position.
//   - "absent":  letter is not (or no longer) available in the answer.
//
// The zero value means "no evidence yet".
type LetterStatus string

const (
	StatusAbsent  LetterStatus = "absent"
	StatusPresent LetterStatus = "present"
	StatusCorrect LetterStatus = "correct"
)

// rank orders statuses for monotonic upgrades.
func (s LetterStatus) rank() int {
	switch s {
	case StatusCorrect:
		return 3
	case StatusPresent:
		return 2
	case StatusAbsent:
		return 1
	}
	return 0
}

// Upgrade returns the stronger of s and o (correct > present > absent).
func (s LetterStatus) Upgrade(o LetterStatus) LetterStatus {
	if o.rank() > s.rank() {
		return o
	}
	return s
}

// Status is the progression state of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// WordSource supplies answers and validates guesses.
type WordSource interface {
	// PickAnswers returns n distinct answer words, uppercase.
	PickAnswers(n int) ([]string, error)
	// IsValidGuess reports whether word is in the dictionary.
	IsValidGuess(word string) bool
}

var (
	ErrGameOver      = errors.New("game finished")
	ErrInvalidGuess  = errors.New("invalid guess")
	ErrNotInWordList = errors.New("not in word list")
	ErrBadTargets    = errors.New("invalid target words")
)
