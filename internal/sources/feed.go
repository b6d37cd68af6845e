package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/robalobadob/wordle-answer/internal/config"
	"github.com/robalobadob/wordle-answer/internal/daily"
	"github.com/robalobadob/wordle-answer/internal/fetch"
)

// FeedScanner finds the day's article in RSS/Atom feeds.
type FeedScanner struct {
	parser  *gofeed.Parser
	fetcher fetch.Fetcher
	opts    fetch.Options
	feeds   []config.Feed
}

// NewFeedScanner fetches feeds through f.
func NewFeedScanner(f fetch.Fetcher, opts fetch.Options, feeds []config.Feed) *FeedScanner {
	return &FeedScanner{parser: gofeed.NewParser(), fetcher: f, opts: opts, feeds: feeds}
}

// Candidates returns items whose title names the puzzle and date, or whose
// link carries the date slug. Per-feed failures are returned alongside
// whatever the other feeds produced.
func (s *FeedScanner) Candidates(ctx context.Context, date time.Time) ([]Candidate, []error) {
	var (
		out  []Candidate
		errs []error
		seen = map[string]bool{}
	)
	for _, f := range s.feeds {
		page, err := s.fetcher.Fetch(ctx, f.URL, s.opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		feed, err := s.parser.ParseString(string(page.Body))
		if err != nil {
			errs = append(errs, fmt.Errorf("parsing feed %s: %w", f.URL, err))
			continue
		}
		for _, item := range feed.Items {
			if item.Link == "" || seen[item.Link] || !ItemMatches(item.Title, item.Link, date) {
				continue
			}
			seen[item.Link] = true
			out = append(out, Candidate{URL: item.Link, Source: f.Source, Origin: OriginFeed})
		}
	}
	return out, errs
}

// ItemMatches reports whether a feed item is the Wordle article for date.
func ItemMatches(title, link string, date time.Time) bool {
	t := strings.ToLower(title)
	if strings.Contains(t, "wordle") && strings.Contains(t, strings.ToLower(daily.Human(date))) {
		return true
	}
	l := strings.ToLower(link)
	if !strings.Contains(l, "wordle") {
		return false
	}
	return strings.Contains(l, daily.Slug(date, daily.MonthDayYear)) ||
		strings.Contains(l, daily.Slug(date, daily.DayMonthYear))
}
