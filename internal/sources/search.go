package sources

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/robalobadob/wordle-answer/internal/config"
	"github.com/robalobadob/wordle-answer/internal/daily"
	"github.com/robalobadob/wordle-answer/internal/extract"
	"github.com/robalobadob/wordle-answer/internal/fetch"
)

// Engine is a search engine results page.
type Engine interface {
	Name() string
	SearchURL(query string) string
	// Links returns result hrefs in page order.
	Links(doc *goquery.Document) []string
}

// EngineByName returns the engine for "bing" or "google"; anything else is Bing.
func EngineByName(name string) Engine {
	if strings.EqualFold(name, "google") {
		return Google{}
	}
	return Bing{}
}

// Bing parses www.bing.com result pages.
type Bing struct{}

func (Bing) Name() string { return "bing" }

func (Bing) SearchURL(query string) string {
	return "https://www.bing.com/search?q=" + url.QueryEscape(query)
}

func (Bing) Links(doc *goquery.Document) []string {
	var out []string
	doc.Find("li.b_algo").Each(func(_ int, s *goquery.Selection) {
		if href := s.Find("h2 a").First().AttrOr("href", ""); href != "" {
			out = append(out, href)
			return
		}
		if href := s.Find("a").First().AttrOr("href", ""); href != "" {
			out = append(out, href)
		}
	})
	return out
}

// Google parses www.google.com result pages.
type Google struct{}

func (Google) Name() string { return "google" }

func (Google) SearchURL(query string) string {
	return "https://www.google.com/search?hl=en&q=" + url.QueryEscape(query)
}

func (Google) Links(doc *goquery.Document) []string {
	var out []string
	doc.Find("div.g").Each(func(_ int, s *goquery.Selection) {
		href := s.Find("a").First().AttrOr("href", "")
		if href == "" {
			return
		}
		// The no-JS page wraps results as /url?q=<target>&sa=...
		if strings.HasPrefix(href, "/url?") {
			if u, err := url.Parse(href); err == nil {
				href = u.Query().Get("q")
			}
		}
		out = append(out, href)
	})
	return out
}

// Searcher queries a search engine for the day's article on one domain.
type Searcher struct {
	engine  Engine
	fetcher fetch.Fetcher
	opts    fetch.Options
	cfg     config.Search
}

// NewSearcher builds a searcher for cfg.Domain through engine.
func NewSearcher(engine Engine, f fetch.Fetcher, opts fetch.Options, cfg config.Search) *Searcher {
	if cfg.MaxLinks <= 0 {
		cfg.MaxLinks = 5
	}
	return &Searcher{engine: engine, fetcher: f, opts: opts, cfg: cfg}
}

// Queries renders the configured query templates for date.
func (s *Searcher) Queries(date time.Time) []string {
	out := make([]string, 0, len(s.cfg.Queries))
	for _, q := range s.cfg.Queries {
		out = append(out, strings.ReplaceAll(q, "{date}", daily.Human(date)))
	}
	return out
}

// Candidates runs every query in order and merges their filtered links,
// without duplicates, up to the configured cap. Query failures are returned
// alongside.
func (s *Searcher) Candidates(ctx context.Context, date time.Time) ([]Candidate, []error) {
	var (
		errs  []error
		links []string
	)
	for _, q := range s.Queries(date) {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		page, err := s.fetcher.Fetch(ctx, s.engine.SearchURL(q), s.opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		doc, err := extract.Parse(page.Body)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		links = append(links, FilterLinks(s.engine.Links(doc), s.cfg.Domain, 0)...)
	}

	links = FilterLinks(links, s.cfg.Domain, s.cfg.MaxLinks)
	if len(links) == 0 {
		return nil, errs
	}
	out := make([]Candidate, 0, len(links))
	for _, l := range links {
		out = append(out, Candidate{URL: l, Source: s.cfg.Source, Origin: OriginSearch})
	}
	return out, errs
}

// FilterLinks keeps absolute http(s) links that mention domain, without
// duplicates, up to max.
func FilterLinks(links []string, domain string, max int) []string {
	var (
		out  []string
		seen = map[string]bool{}
	)
	domain = strings.ToLower(domain)
	for _, l := range links {
		l = strings.TrimSpace(l)
		u, err := url.Parse(l)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			continue
		}
		if domain != "" && !strings.Contains(strings.ToLower(u.Host), domain) {
			continue
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
