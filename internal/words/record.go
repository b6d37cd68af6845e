// internal/words/record.go
//
// Record is one resolved puzzle: the date it ran, its puzzle number and the
// answer. Archive scrapes produce many of them; the service produces one.
//
// Records are keyed by (Date, PuzzleNumber). Date is a zero-padded
// YYYY-MM-DD key, so plain string comparison orders records by date.

package words

import "sort"

// Record represents a single resolved Wordle answer.
type Record struct {
	Date         string `json:"date"`         // "YYYY-MM-DD"
	PuzzleNumber int    `json:"puzzleNumber"` // 0 only for days before the first puzzle
	Answer       string `json:"answer"`       // 5 uppercase letters
}

type recordKey struct {
	date   string
	number int
}

// Dedupe drops records whose (Date, PuzzleNumber) was already seen, keeping
// the first occurrence. Answers are normalized on the way through; records
// whose answer does not normalize are dropped.
func Dedupe(in []Record) []Record {
	seen := make(map[recordKey]struct{}, len(in))
	out := make([]Record, 0, len(in))
	for _, r := range in {
		ans, ok := Normalize(r.Answer)
		if !ok {
			continue
		}
		k := recordKey{r.Date, r.PuzzleNumber}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		r.Answer = ans
		out = append(out, r)
	}
	return out
}

// SortNewestFirst orders records by Date descending. Ties keep input order.
func SortNewestFirst(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date > recs[j].Date })
}

// Find returns the first record for date.
func Find(recs []Record, date string) (Record, bool) {
	for _, r := range recs {
		if r.Date == date {
			return r, true
		}
	}
	return Record{}, false
}
