// internal/words/words.go
//
// Answer word rules shared by every extractor and store.
//
// Constraints:
//   • An answer is exactly 5 ASCII letters.
//   • Answers are stored uppercase; the HTTP API lowercases on the way out.
//   • Surrounding whitespace and punctuation left over from markup is trimmed
//     before validation, nothing else is repaired.

package words

import (
	"strings"
)

// Length is the number of letters in a Wordle answer.
const Length = 5

// Normalize trims, uppercases and validates w.
// ok is false unless the result is exactly Length letters A–Z.
func Normalize(w string) (string, bool) {
	w = strings.ToUpper(strings.Trim(w, " \t\r\n\"'“”‘’.,:;!?()[]"))
	if len(w) != Length || !isAlpha(w) {
		return "", false
	}
	return w, true
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
