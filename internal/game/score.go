package game

// ScoreGuess implements the standard two-pass scoring for one board.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count the remaining (non-correct) target letters.
//
// Pass 2:
//   - For each non-correct guess letter: if the count for that letter is
//     still positive, mark present and decrement; otherwise absent.
//
// Guess and target must be uppercase A–Z of equal length; a length mismatch
// yields all-absent marks of the guess length.
func ScoreGuess(guess, target string) []LetterStatus {
	n := len(guess)
	res := make([]LetterStatus, n)
	if len(target) != n {
		for i := range res {
			res[i] = StatusAbsent
		}
		return res
	}

	var counts [26]int
	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = StatusCorrect
		} else if j := idx(target[i]); j >= 0 {
			counts[j]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == StatusCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && counts[j] > 0 {
			res[i] = StatusPresent
			counts[j]--
		} else {
			res[i] = StatusAbsent
		}
	}
	return res
}

// idx maps an uppercase ASCII letter to 0..25, or -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}

