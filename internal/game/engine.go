// internal/game/engine.go
//
// Core game engine for a single 16-board session.
// Responsibilities:
//   - Create new games from a WordSource (16 distinct answers).
//   - Validate and apply guesses (length, alphabetic, dictionary).
//   - Score each guess against every unsolved board and fold the result
//     into the cumulative keyboard (see keyboard.go).
//   - Track state transitions: playing → won/lost.
//   - Hold the in-progress input buffer and the game clock.
//
// A Game is not safe for concurrent use; callers serialize access
// (the HTTP session store locks per game).
package game

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Game holds the state of a single session.
type Game struct {
	ID        string
	Mode      string   // "random" | "daily"
	Date      string   // daily date key, empty for random games
	Owner     string   // account that started the game, empty for guests
	Targets   []string // NumBoards uppercase answers, fixed at creation
	Guesses   []string // accepted guesses in order
	Current   string   // input buffer, not yet submitted
	Status    Status
	SolvedAt  map[int]int // board index → 1-based guess number that solved it
	Keys      *Keyboard
	StartedAt time.Time // zero until the first accepted guess
	EndedAt   time.Time // zero until the game is terminal
	Scored    bool      // claimed by a leaderboard submission

	words WordSource
	now   func() time.Time
}

// Option customizes a new Game.
type Option func(*Game)

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option { return func(g *Game) { g.now = now } }

// WithID sets a fixed identifier instead of a random one.
func WithID(id string) Option { return func(g *Game) { g.ID = id } }

// WithOwner records the account playing the game.
func WithOwner(userID string) Option { return func(g *Game) { g.Owner = userID } }

// WithDaily marks the game as the daily puzzle for date.
func WithDaily(date string) Option {
	return func(g *Game) { g.Mode, g.Date = "daily", date }
}

// Result describes the effect of one accepted guess.
type Result struct {
	Guess       string
	Marks       [][]LetterStatus // per board; nil for boards solved before this guess
	NewlySolved []int
	Status      Status
}

// New constructs a game with answers drawn from src.
func New(src WordSource, opts ...Option) (*Game, error) {
	targets, err := src.PickAnswers(NumBoards)
	if err != nil {
		return nil, fmt.Errorf("pick answers: %w", err)
	}
	return NewWithTargets(targets, src, opts...)
}

// NewWithTargets constructs a game with fixed answers. src may be nil, in
// which case any well-formed word is accepted as a guess.
func NewWithTargets(targets []string, src WordSource, opts ...Option) (*Game, error) {
	if len(targets) != NumBoards {
		return nil, fmt.Errorf("%w: need %d words, got %d", ErrBadTargets, NumBoards, len(targets))
	}
	norm := make([]string, len(targets))
	for i, t := range targets {
		t = Normalize(t)
		if len(t) != WordLength || !isAlpha(t) {
			return nil, fmt.Errorf("%w: %q", ErrBadTargets, targets[i])
		}
		norm[i] = t
	}
	g := &Game{
		ID:       uuid.NewString(),
		Mode:     "random",
		Targets:  norm,
		Guesses:  []string{},
		Status:   StatusPlaying,
		SolvedAt: make(map[int]int),
		Keys:     NewKeyboard(),
		words:    src,
		now:      time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

// Submit validates and scores a guess, mutating the game state.
//
// Validation rules (no state change on failure):
//   - Game must not be finished (ErrGameOver).
//   - Guess must be exactly WordLength letters A–Z (ErrInvalidGuess).
//   - Guess must be accepted by the WordSource (ErrNotInWordList).
//
// State transitions:
//   - All boards solved → won (takes precedence on the last attempt).
//   - Else MaxGuesses reached → lost.
func (g *Game) Submit(guess string) (*Result, error) {
	if g.Status.Terminal() {
		return nil, ErrGameOver
	}
	guess = Normalize(guess)
	if len(guess) != WordLength || !isAlpha(guess) {
		return nil, ErrInvalidGuess
	}
	if g.words != nil && !g.words.IsValidGuess(guess) {
		return nil, ErrNotInWordList
	}

	if g.StartedAt.IsZero() {
		g.StartedAt = g.now()
	}

	res := &Result{Guess: guess, Marks: make([][]LetterStatus, len(g.Targets))}
	for b, t := range g.Targets {
		if !g.IsSolved(b) {
			res.Marks[b] = ScoreGuess(guess, t)
		}
	}
	g.Keys.Apply(guess, g.Targets, g.IsSolved)

	g.Guesses = append(g.Guesses, guess)
	for b, t := range g.Targets {
		if !g.IsSolved(b) && t == guess {
			g.SolvedAt[b] = len(g.Guesses)
			res.NewlySolved = append(res.NewlySolved, b)
		}
	}

	if len(g.SolvedAt) == len(g.Targets) {
		g.Status = StatusWon
	} else if len(g.Guesses) >= MaxGuesses {
		g.Status = StatusLost
	}
	if g.Status.Terminal() {
		g.EndedAt = g.now()
	}
	res.Status = g.Status
	return res, nil
}

// AddLetter appends r to the input buffer. It reports false when the game is
// over, the buffer is full, or r is not a letter.
func (g *Game) AddLetter(r rune) bool {
	if g.Status.Terminal() || len(g.Current) >= WordLength {
		return false
	}
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return false
	}
	g.Current += string(r)
	return true
}

// Backspace removes the last buffered letter.
func (g *Game) Backspace() bool {
	if g.Status.Terminal() || g.Current == "" {
		return false
	}
	g.Current = g.Current[:len(g.Current)-1]
	return true
}

// SubmitCurrent submits the input buffer; the buffer is cleared only when the
// guess is accepted.
func (g *Game) SubmitCurrent() (*Result, error) {
	res, err := g.Submit(g.Current)
	if err != nil {
		return nil, err
	}
	g.Current = ""
	return res, nil
}

// IsSolved reports whether board b has been solved.
func (g *Game) IsSolved(b int) bool {
	_, ok := g.SolvedAt[b]
	return ok
}

// SolvedCount returns the number of solved boards.
func (g *Game) SolvedCount() int { return len(g.SolvedAt) }

// Solved returns the solved board indices in ascending order.
func (g *Game) Solved() []int {
	out := make([]int, 0, len(g.SolvedAt))
	for b := range g.SolvedAt {
		out = append(out, b)
	}
	sort.Ints(out)
	return out
}

// SolveOrder returns solved boards ordered by the guess that solved them.
func (g *Game) SolveOrder() []int {
	out := g.Solved()
	sort.SliceStable(out, func(i, j int) bool { return g.SolvedAt[out[i]] < g.SolvedAt[out[j]] })
	return out
}

// Row is one rendered guess on one board.
type Row struct {
	Word  string         `json:"word"`
	Marks []LetterStatus `json:"marks"`
}

// Rows returns the scored guesses of board b. A solved board stops at the row
// that solved it.
func (g *Game) Rows(b int) []Row {
	n := len(g.Guesses)
	if at, ok := g.SolvedAt[b]; ok {
		n = at
	}
	rows := make([]Row, 0, n)
	for _, w := range g.Guesses[:n] {
		rows = append(rows, Row{Word: w, Marks: ScoreGuess(w, g.Targets[b])})
	}
	return rows
}

// ElapsedSeconds returns whole seconds since the first guess, frozen once
// the game ends.
func (g *Game) ElapsedSeconds() int {
	if g.StartedAt.IsZero() {
		return 0
	}
	end := g.EndedAt
	if end.IsZero() {
		end = g.now()
	}
	return int(end.Sub(g.StartedAt) / time.Second)
}

// Message returns the end-of-game banner, or "" while playing.
func (g *Game) Message() string {
	switch g.Status {
	case StatusWon:
		return fmt.Sprintf("Congratulations! You solved all %d boards in %d guesses!", len(g.Targets), len(g.Guesses))
	case StatusLost:
		return fmt.Sprintf("Game Over! You solved %d/%d boards.", g.SolvedCount(), len(g.Targets))
	}
	return ""
}

// Normalize trims and uppercases a word.
func Normalize(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
