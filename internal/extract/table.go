package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-answer/internal/daily"
	"github.com/robalobadob/wordle-answer/internal/words"
)

// yearHeader matches section headers such as "All January 2026 Wordle Answers".
var yearHeader = regexp.MustCompile(`(?i)\ball\s+([a-z]+)\s+(\d{4})\s+wordle\s+answers\b`)

// headerLabels are first/second cell texts that mark a column header row.
var headerLabels = []string{"date", "day", "#", "no.", "number", "puzzle", "wordle", "answer"}

// answerHolders are nested elements explicitly marked as carrying the real
// answer when the visible cell only shows a "reveal" control. Generic inline
// elements are not holders: "<b>Click</b> to reveal" has no answer.
const answerHolders = "[data-answer], [data-word], .answer, .hidden-answer, .spoiler, " +
	"[hidden], [style*='display:none'], [style*='display: none']"

// ParseArchive extracts every answer row from archive tables in doc.
//
// Headers and tables are walked in document order; each table takes its year
// from the nearest preceding "All <Month> <Year> Wordle Answers" header, or
// now's year when there is none. Rows that fail to yield a valid date, a
// positive puzzle number and a 5-letter answer are dropped individually.
// The result is deduplicated by (date, puzzle number) and sorted newest first.
func ParseArchive(doc *goquery.Document, now time.Time) []words.Record {
	year := now.Year()
	var (
		out     []words.Record
		dropped int
	)

	doc.Find("h1, h2, h3, h4, h5, h6, table").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) != "table" {
			if y, ok := headerYear(s.Text()); ok {
				year = y
			}
			return
		}
		s.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.ChildrenFiltered("td, th")
			if cells.Length() < 3 {
				return
			}
			c0 := CleanText(cells.Eq(0).Text())
			c1 := CleanText(cells.Eq(1).Text())
			if isHeaderRow(c0, c1) {
				return
			}
			rec, ok := parseRow(c0, c1, cells.Eq(2), year, now)
			if !ok {
				dropped++
				return
			}
			out = append(out, rec)
		})
	})

	if dropped > 0 {
		log.Debug().Int("dropped", dropped).Int("kept", len(out)).Msg("archive rows dropped")
	}
	out = words.Dedupe(out)
	words.SortNewestFirst(out)
	return out
}

// headerYear reads the governing year out of a section header.
func headerYear(text string) (int, bool) {
	m := yearHeader.FindStringSubmatch(CleanText(text))
	if m == nil {
		return 0, false
	}
	if _, ok := daily.MonthByName(m[1]); !ok {
		return 0, false
	}
	y, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return y, true
}

func isHeaderRow(c0, c1 string) bool {
	a, b := strings.ToLower(c0), strings.ToLower(c1)
	for _, l := range headerLabels {
		if a == l || b == l || strings.HasPrefix(b, l+" ") {
			return true
		}
	}
	return false
}

func parseRow(dateText, numText string, answerCell *goquery.Selection, year int, now time.Time) (words.Record, bool) {
	date, ok := ParseRowDate(dateText, year, now)
	if !ok {
		return words.Record{}, false
	}
	num, ok := parsePuzzleNumber(numText)
	if !ok {
		return words.Record{}, false
	}
	ans, ok := cellAnswer(answerCell)
	if !ok {
		return words.Record{}, false
	}
	return words.Record{Date: date, PuzzleNumber: num, Answer: ans}, true
}

// ParseRowDate normalizes archive date text ("January 5", "Mon, Jan 5th",
// "Jan 5, 2025", "Today") to a YYYY-MM-DD key. An explicit 4-digit year in
// the text wins over the governing year.
func ParseRowDate(text string, year int, now time.Time) (string, bool) {
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "today") {
		return daily.DateKey(now), true
	}

	var (
		month time.Month
		day   int
	)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\u00a0' || r == '/' || r == '-'
	})
	for _, f := range fields {
		if m, ok := daily.MonthByName(f); ok && month == 0 {
			month = m
			continue
		}
		n, err := strconv.Atoi(trimOrdinal(f))
		if err != nil {
			continue
		}
		switch {
		case n >= 1000:
			year = n
		case day == 0 && n >= 1 && n <= 31:
			day = n
		}
	}
	if month == 0 || day == 0 {
		return "", false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "", false
	}
	return daily.DateKey(t), true
}

func trimOrdinal(s string) string {
	s = strings.ToLower(s)
	for _, suf := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(s, suf) {
			return strings.TrimSuffix(s, suf)
		}
	}
	return s
}

func parsePuzzleNumber(text string) (int, bool) {
	text = strings.NewReplacer("#", "", ",", "", " ", "").Replace(text)
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// cellAnswer reads the answer from the visible cell text, falling back to
// nested holders when the cell shows a reveal placeholder. Neither present
// means the row cannot be trusted and is dropped.
func cellAnswer(cell *goquery.Selection) (string, bool) {
	if ans, ok := words.Normalize(CleanText(cell.Text())); ok {
		return ans, true
	}
	var (
		found string
		ok    bool
	)
	cell.Find(answerHolders).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"data-answer", "data-word"} {
			if v, has := s.Attr(attr); has {
				if found, ok = words.Normalize(v); ok {
					return false
				}
			}
		}
		found, ok = words.Normalize(CleanText(s.Text()))
		return !ok
	})
	return found, ok
}
