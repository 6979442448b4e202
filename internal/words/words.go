// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back
//     to the embedded defaults in the assets package.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply PickAnswers / IsValidGuess for game.WordSource.
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 uppercase letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//  1. Both paths set: answers from the first, allowed guesses from the second.
//  2. Only the allowed path set: that file is used for both lists.
//  3. Neither set: embedded assets/answers.txt + assets/allowed.txt.
package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/sedecordle/assets"
)

const wordLength = 5

// ErrNotEnoughAnswers is returned when more answers are requested than exist.
var ErrNotEnoughAnswers = errors.New("words: not enough answers")

// List is an immutable dictionary; safe for concurrent use.
type List struct {
	answers    []string            // canonical answers, input order, no duplicates
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
}

// NewList normalizes both lists (uppercase, 5 letters A–Z, de-duplicated)
// and makes every answer a valid guess.
func NewList(answers, allowed []string) *List {
	l := &List{
		answersSet: make(map[string]struct{}, len(answers)),
		allowedSet: make(map[string]struct{}, len(answers)+len(allowed)),
	}
	for _, w := range normalize(answers) {
		if _, dup := l.answersSet[w]; dup {
			continue
		}
		l.answers = append(l.answers, w)
		l.answersSet[w] = struct{}{}
		l.allowedSet[w] = struct{}{}
	}
	for _, w := range normalize(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l
}

// Load builds a List following the rules in the package comment.
// Returns an error if the answers list ends up empty.
func Load(answersPath, allowedPath string) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	l := NewList(ansList, allowList)
	if len(l.answers) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

// normalize uppercases, trims, and keeps only valid 5-letter words.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, w := range in {
		w = strings.ToUpper(strings.TrimSpace(w))
		if len(w) == wordLength && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is all uppercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// PickAnswers returns n distinct answers in cryptographically random order
// (partial Fisher–Yates over a copy of the answer list).
func (l *List) PickAnswers(n int) ([]string, error) {
	if n < 0 || n > len(l.answers) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrNotEnoughAnswers, n, len(l.answers))
	}
	pool := append([]string(nil), l.answers...)
	for i := 0; i < n; i++ {
		jBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool)-i)))
		if err != nil {
			return nil, err
		}
		j := i + int(jBig.Int64())
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}

// IsValidGuess reports whether w is a valid guess (answers ∪ guesses).
func (l *List) IsValidGuess(w string) bool {
	_, ok := l.allowedSet[strings.ToUpper(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToUpper(w)]
	return ok
}

// Answers returns a copy of the answer list.
func (l *List) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
