// internal/daily/daily.go
//
// Date helpers for the daily puzzle.
// Responsibilities:
//   - Canonical date keys (YYYY-MM-DD) used by stores, snapshots and the API.
//   - URL slugs in the formats answer sites embed in their article paths.
//   - The era switch: sites change their slug convention at a fixed cutoff,
//     and the wrong era's slug is a guaranteed 404.
//
// All dates are calendar dates; time-of-day and location are ignored.

package daily

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// KeyLayout is the canonical date key layout.
const KeyLayout = "2006-01-02"

// ErrInvalidDate is returned when a date string is not a real calendar date.
var ErrInvalidDate = errors.New("invalid date")

// DefaultCutoff is the first day beebom.com published answers under the
// day-month-year slug.
var DefaultCutoff = time.Date(2025, time.August, 23, 0, 0, 0, 0, time.UTC)

// Format selects a slug layout.
type Format int

const (
	// MonthDayYear renders "january-5-2025" (day without leading zero).
	MonthDayYear Format = iota
	// DayMonthYear renders "05-january-2025" (zero-padded day).
	DayMonthYear
)

// String returns the config name of the format.
func (f Format) String() string {
	switch f {
	case MonthDayYear:
		return "month-day-year"
	case DayMonthYear:
		return "day-month-year"
	}
	return "format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat maps a config name back to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month-day-year":
		return MonthDayYear, nil
	case "day-month-year":
		return DayMonthYear, nil
	}
	return 0, fmt.Errorf("unknown slug format %q", s)
}

// DateKey returns YYYY-MM-DD for t's calendar date.
func DateKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a YYYY-MM-DD key into a UTC midnight time.
// Values that do not name a real calendar date (2026-02-30) fail with ErrInvalidDate.
func ParseKey(s string) (time.Time, error) {
	t, err := time.Parse(KeyLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Day truncates t to its calendar date at UTC midnight, keeping the
// year/month/day as seen in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Human renders "January 5, 2026", the form used in article titles and search queries.
func Human(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Slug renders t in the given format.
func Slug(t time.Time, f Format) string {
	month := strings.ToLower(t.Month().String())
	switch f {
	case DayMonthYear:
		return fmt.Sprintf("%02d-%s-%d", t.Day(), month, t.Year())
	default:
		return fmt.Sprintf("%s-%d-%d", month, t.Day(), t.Year())
	}
}

// FormatFor picks the era-correct format: dates strictly before cutoff use
// MonthDayYear, dates on or after it use DayMonthYear.
func FormatFor(t, cutoff time.Time) Format {
	if Day(t).Before(Day(cutoff)) {
		return MonthDayYear
	}
	return DayMonthYear
}

// SlugFor is Slug(t, FormatFor(t, cutoff)).
func SlugFor(t, cutoff time.Time) string {
	return Slug(t, FormatFor(t, cutoff))
}

// FirstPuzzle is the day puzzle #0 ran; every later day adds one.
var FirstPuzzle = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// PuzzleNumber returns the puzzle number for t's calendar day, or 0 for days
// before the first puzzle.
func PuzzleNumber(t time.Time) int {
	d := Day(t)
	if d.Before(FirstPuzzle) {
		return 0
	}
	return int(d.Sub(FirstPuzzle).Hours() / 24)
}

// MonthByName resolves full ("january") or abbreviated ("jan", "sept") month
// names, case-insensitively.
func MonthByName(name string) (time.Month, bool) {
	n := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if len(n) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		if n == full || (len(n) <= len(full) && strings.HasPrefix(full, n)) {
			return m, true
		}
	}
	return 0, false
}
