// internal/answer/service.go
//
// Answer resolution for a calendar date.
// Responsibilities:
//   - Consult the answer store, then walk candidates in order: known sites,
//     feeds, search results, and finally the archive snapshot.
//   - Fetch and extract each candidate with the strategy chosen for its source.
//   - Treat network and parse failures as candidate misses; the first valid
//     answer wins and is saved.
//
// Resolution is strictly sequential; spacing between fetches comes from the
// fetcher (see fetch.Paced). Absence is reported as ok=false; only a
// malformed date is an error.

package answer

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-answer/internal/archive"
	"github.com/robalobadob/wordle-answer/internal/daily"
	"github.com/robalobadob/wordle-answer/internal/extract"
	"github.com/robalobadob/wordle-answer/internal/fetch"
	"github.com/robalobadob/wordle-answer/internal/sources"
	"github.com/robalobadob/wordle-answer/internal/store"
	"github.com/robalobadob/wordle-answer/internal/words"
)

// Service resolves answers.
type Service struct {
	resolver   *sources.Resolver
	strategies *extract.Registry
	fetcher    fetch.Fetcher
	opts       fetch.Options
	store      store.Store
	archive    *archive.Cache

	now func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithStore persists resolved answers and serves repeat lookups.
func WithStore(s store.Store) Option { return func(svc *Service) { svc.store = s } }

// WithArchive enables the archive snapshot as the last resort.
func WithArchive(c *archive.Cache) Option { return func(svc *Service) { svc.archive = c } }

// WithClock replaces the time source used for "today".
func WithClock(now func() time.Time) Option { return func(svc *Service) { svc.now = now } }

// New builds a Service. strategies may be nil to use the default phrase matcher.
func New(r *sources.Resolver, strategies *extract.Registry, f fetch.Fetcher, opts fetch.Options, options ...Option) *Service {
	if strategies == nil {
		strategies = extract.NewRegistry()
	}
	svc := &Service{
		resolver:   r,
		strategies: strategies,
		fetcher:    f,
		opts:       opts,
		now:        time.Now,
	}
	for _, o := range options {
		o(svc)
	}
	return svc
}

// Today resolves the answer for the current calendar date.
func (s *Service) Today(ctx context.Context) (words.Record, bool) {
	return s.ForDate(ctx, daily.Day(s.now()))
}

// ForKey resolves a YYYY-MM-DD key. A malformed key fails with daily.ErrInvalidDate.
func (s *Service) ForKey(ctx context.Context, key string) (words.Record, bool, error) {
	t, err := daily.ParseKey(key)
	if err != nil {
		return words.Record{}, false, err
	}
	rec, ok := s.ForDate(ctx, t)
	return rec, ok, nil
}

// ForDate resolves the answer for date's calendar day.
func (s *Service) ForDate(ctx context.Context, date time.Time) (words.Record, bool) {
	date = daily.Day(date)
	key := daily.DateKey(date)
	logger := log.With().Str("date", key).Logger()

	if s.store != nil {
		rec, err := s.store.Get(ctx, key)
		if err == nil {
			logger.Debug().Msg("answer served from store")
			return rec, true
		}
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn().Err(err).Msg("store lookup failed")
		}
	}

	if rec, ok := s.try(ctx, date, s.resolver.Known(date)); ok {
		return s.save(ctx, rec), true
	}

	feed, errs := s.resolver.Feed(ctx, date)
	logMisses(key, "feed", errs)
	if rec, ok := s.try(ctx, date, feed); ok {
		return s.save(ctx, rec), true
	}

	search, errs := s.resolver.Search(ctx, date)
	logMisses(key, "search", errs)
	if rec, ok := s.try(ctx, date, search); ok {
		return s.save(ctx, rec), true
	}

	if s.archive != nil {
		rec, ok, err := s.archive.Lookup(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Msg("archive lookup failed")
		}
		if ok {
			return s.save(ctx, rec), true
		}
	}

	logger.Info().Msg("no answer found")
	return words.Record{}, false
}

func (s *Service) save(ctx context.Context, rec words.Record) words.Record {
	if s.store == nil {
		return rec
	}
	if err := s.store.Save(ctx, rec); err != nil {
		log.Warn().Err(err).Str("date", rec.Date).Msg("saving answer failed")
	}
	return rec
}

// try fetches candidates in order; the first valid answer wins. A page that
// does not print the puzzle number gets the one its date implies.
func (s *Service) try(ctx context.Context, date time.Time, cands []sources.Candidate) (words.Record, bool) {
	key := daily.DateKey(date)
	for _, c := range cands {
		if ctx.Err() != nil {
			return words.Record{}, false
		}
		m, err := s.attempt(ctx, c)
		if err != nil {
			logMiss(key, c, err)
			continue
		}
		num := m.PuzzleNumber
		if num == 0 {
			num = daily.PuzzleNumber(date)
		}
		log.Info().Str("date", key).Str("url", c.URL).Str("source", c.Source).
			Str("origin", string(c.Origin)).Str("answer", m.Answer).Int("puzzle", num).Msg("answer found")
		return words.Record{Date: key, PuzzleNumber: num, Answer: m.Answer}, true
	}
	return words.Record{}, false
}

// attempt fetches one candidate and extracts with its source's strategy.
func (s *Service) attempt(ctx context.Context, c sources.Candidate) (extract.Match, error) {
	page, err := s.fetcher.Fetch(ctx, c.URL, s.opts)
	if err != nil {
		return extract.Match{}, err
	}
	doc, err := extract.Parse(page.Body)
	if err != nil {
		return extract.Match{}, &extract.ParseError{Source: c.Source, Reason: err.Error()}
	}
	return s.strategies.Lookup(c.Source).Extract(doc)
}

// Recent lists stored answers newest first. Without a store it is empty.
func (s *Service) Recent(ctx context.Context, limit int) ([]words.Record, error) {
	if s.store == nil {
		return []words.Record{}, nil
	}
	return s.store.List(ctx, limit)
}

func logMiss(date string, c sources.Candidate, err error) {
	ev := log.Warn()
	var (
		pe *extract.ParseError
		fe *fetch.FetchError
	)
	if errors.As(err, &pe) || fetch.IsNotFound(err) {
		ev = log.Debug()
	}
	if errors.As(err, &fe) {
		ev = ev.Bool("timeout", fe.Timeout())
	}
	ev.Err(err).Str("date", date).Str("url", c.URL).Str("origin", string(c.Origin)).Msg("candidate missed")
}

func logMisses(date, stage string, errs []error) {
	for _, err := range errs {
		log.Warn().Err(err).Str("date", date).Str("stage", stage).Msg("candidate discovery failed")
	}
}
