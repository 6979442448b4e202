package game

// Keyboard is the cumulative keyboard coloring for one game.
//
// Letters holds one aggregate status per letter; Boards holds the status of a
// letter on each individual board. Both only ever move upward
// (absent → present → correct).
type Keyboard struct {
	Letters map[string]LetterStatus
	Boards  map[string]map[int]LetterStatus
}

// NewKeyboard returns an empty keyboard.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		Letters: make(map[string]LetterStatus),
		Boards:  make(map[string]map[int]LetterStatus),
	}
}

// Apply folds the evidence of one guess into the keyboard.
//
// Each board for which solved(i) is false is scored with ScoreGuess; the
// status of a letter on a board is the strongest mark among the positions it
// occupies in the guess. The aggregate status of a letter is the strongest
// over all scored boards. Solved boards receive no further updates.
func (k *Keyboard) Apply(guess string, targets []string, solved func(int) bool) {
	overall := make(map[string]LetterStatus, len(guess))
	for b, target := range targets {
		if solved != nil && solved(b) {
			continue
		}
		marks := ScoreGuess(guess, target)
		perBoard := make(map[string]LetterStatus, len(guess))
		for i := 0; i < len(guess); i++ {
			l := guess[i : i+1]
			perBoard[l] = perBoard[l].Upgrade(marks[i])
		}
		for l, st := range perBoard {
			bs := k.Boards[l]
			if bs == nil {
				bs = make(map[int]LetterStatus)
				k.Boards[l] = bs
			}
			bs[b] = bs[b].Upgrade(st)
			overall[l] = overall[l].Upgrade(st)
		}
	}

	for i := 0; i < len(guess); i++ {
		l := guess[i : i+1]
		k.Letters[l] = k.Letters[l].Upgrade(StatusAbsent).Upgrade(overall[l])
	}
}

// Letter returns the aggregate status of letter l ("" when unused).
func (k *Keyboard) Letter(l string) LetterStatus { return k.Letters[l] }

// Board returns the status of letter l on board b ("" when no evidence).
func (k *Keyboard) Board(l string, b int) LetterStatus {
	return k.Boards[l][b]
}
