// internal/sources/resolver.go
//
// Candidate article URLs for a date.
// Responsibilities:
//   - Known sites: build the era-correct article URL from each site's templates.
//   - Feeds and search results: discovered URLs, see feed.go and search.go.
//
// A candidate is only a guess; the answer service fetches and extracts it.

package sources

import (
	"context"
	"strings"
	"time"

	"github.com/robalobadob/wordle-answer/internal/config"
	"github.com/robalobadob/wordle-answer/internal/daily"
)

// Origin says how a candidate was discovered.
type Origin string

const (
	OriginKnown  Origin = "known"
	OriginFeed   Origin = "feed"
	OriginSearch Origin = "search"
)

// Candidate is one URL to try for a date.
type Candidate struct {
	URL    string `json:"url"`
	Source string `json:"source"` // site id; selects the extraction strategy
	Origin Origin `json:"origin"`
}

// Site is a known answer site with dated URL templates.
type Site struct {
	ID           string
	Domain       string
	Cutoff       time.Time
	Before       string
	BeforeFormat daily.Format
	After        string
	AfterFormat  daily.Format
}

// SiteFromConfig converts a catalogue entry. Formats default to
// month-day-year before the cutoff and day-month-year after it.
func SiteFromConfig(s config.Source) Site {
	site := Site{
		ID:           s.ID,
		Domain:       s.Domain,
		Cutoff:       s.CutoffDate(),
		Before:       s.Before,
		BeforeFormat: daily.MonthDayYear,
		After:        s.After,
		AfterFormat:  daily.DayMonthYear,
	}
	if f, err := daily.ParseFormat(s.BeforeFormat); err == nil {
		site.BeforeFormat = f
	}
	if f, err := daily.ParseFormat(s.AfterFormat); err == nil {
		site.AfterFormat = f
	}
	return site
}

// URL renders the era-correct article URL for date. A site without an after
// template keeps its before template for every date.
func (s Site) URL(date time.Time) string {
	tmpl, f := s.Before, s.BeforeFormat
	if s.After != "" && daily.FormatFor(date, s.Cutoff) == daily.DayMonthYear {
		tmpl, f = s.After, s.AfterFormat
	}
	return strings.ReplaceAll(tmpl, "{slug}", daily.Slug(date, f))
}

// Resolver lists candidates for a date: known sites first, then feeds, then
// search results. Feeds and search are optional.
type Resolver struct {
	sites  []Site
	feeds  *FeedScanner
	search *Searcher
}

// NewResolver keeps sites in the given order.
func NewResolver(sites ...Site) *Resolver {
	return &Resolver{sites: sites}
}

// NewResolverFromCatalogue builds a resolver over the enabled catalogue sources.
func NewResolverFromCatalogue(cat *config.Catalogue) *Resolver {
	var sites []Site
	for _, s := range cat.EnabledSources() {
		sites = append(sites, SiteFromConfig(s))
	}
	return NewResolver(sites...)
}

// WithFeeds enables feed discovery.
func (r *Resolver) WithFeeds(f *FeedScanner) *Resolver {
	r.feeds = f
	return r
}

// WithSearch enables the search-engine fallback.
func (r *Resolver) WithSearch(s *Searcher) *Resolver {
	r.search = s
	return r
}

// Known returns one candidate per site, in catalogue order.
func (r *Resolver) Known(date time.Time) []Candidate {
	out := make([]Candidate, 0, len(r.sites))
	for _, s := range r.sites {
		out = append(out, Candidate{URL: s.URL(date), Source: s.ID, Origin: OriginKnown})
	}
	return out
}

// Feed returns feed candidates, or nothing when feeds are not configured.
// Items from feeds without a source id are attributed by domain.
func (r *Resolver) Feed(ctx context.Context, date time.Time) ([]Candidate, []error) {
	if r.feeds == nil {
		return nil, nil
	}
	out, errs := r.feeds.Candidates(ctx, date)
	for i := range out {
		if out[i].Source == "" {
			out[i].Source = r.SourceFor(out[i].URL)
		}
	}
	return out, errs
}

// Search returns search-engine candidates, or nothing when search is disabled.
func (r *Resolver) Search(ctx context.Context, date time.Time) ([]Candidate, []error) {
	if r.search == nil {
		return nil, nil
	}
	return r.search.Candidates(ctx, date)
}

// SourceFor returns the id of the first site whose domain appears in link,
// or "" when none matches.
func (r *Resolver) SourceFor(link string) string {
	l := strings.ToLower(link)
	for _, s := range r.sites {
		if s.Domain != "" && strings.Contains(l, strings.ToLower(s.Domain)) {
			return s.ID
		}
	}
	return ""
}
