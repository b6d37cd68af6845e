// internal/game/score.go
//
// Guess scoring against a resolved answer.
// Responsibilities:
//   - Validate a guess (five letters a-z).
//   - Mark each tile with the classic two-pass algorithm so repeated letters
//     are only credited as often as they appear in the answer.
//   - Render marks as a tile row for terminal output.

package game

import (
	"errors"
	"strings"

	"github.com/robalobadob/wordle-answer/internal/words"
)

// Mark is the result for a single letter in a guess.
type Mark string

const (
	MarkHit     Mark = "hit"     // right letter, right place
	MarkPresent Mark = "present" // in the answer, elsewhere
	MarkMiss    Mark = "miss"
)

// ErrInvalidGuess is returned for anything that is not five letters.
var ErrInvalidGuess = errors.New("invalid guess")

// Score marks guess against answer. Both are normalized first.
func Score(answer, guess string) ([]Mark, error) {
	a, ok := words.Normalize(answer)
	if !ok {
		return nil, ErrInvalidGuess
	}
	g, ok := words.Normalize(guess)
	if !ok {
		return nil, ErrInvalidGuess
	}
	return scoreGuess(strings.ToLower(a), strings.ToLower(g)), nil
}

// scoreGuess expects two lowercase a-z strings of equal length.
func scoreGuess(answer, guess string) []Mark {
	n := len(guess)
	res := make([]Mark, n)
	var counts [26]int

	// Pass 1: hits, and counts of the unmatched answer letters.
	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkHit
		} else {
			counts[answer[i]-'a']++
		}
	}

	// Pass 2: presents consume the remaining counts.
	for i := 0; i < n; i++ {
		if res[i] == MarkHit {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkMiss
		}
	}
	return res
}

// Solved reports whether every tile is a hit.
func Solved(m []Mark) bool {
	if len(m) == 0 {
		return false
	}
	for _, x := range m {
		if x != MarkHit {
			return false
		}
	}
	return true
}

// Tiles renders marks as a row of coloured squares.
func Tiles(m []Mark) string {
	var b strings.Builder
	for _, x := range m {
		switch x {
		case MarkHit:
			b.WriteString("🟩")
		case MarkPresent:
			b.WriteString("🟨")
		default:
			b.WriteString("⬜")
		}
	}
	return b.String()
}
