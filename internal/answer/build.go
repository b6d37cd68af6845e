package answer

import (
	"fmt"
	"net/http"

	"github.com/robalobadob/wordle-answer/internal/archive"
	"github.com/robalobadob/wordle-answer/internal/config"
	"github.com/robalobadob/wordle-answer/internal/extract"
	"github.com/robalobadob/wordle-answer/internal/fetch"
	"github.com/robalobadob/wordle-answer/internal/sources"
	"github.com/robalobadob/wordle-answer/internal/store"
)

// Strategies registers a phrase strategy for every catalogue source that
// overrides the default pattern.
func Strategies(cat *config.Catalogue) (*extract.Registry, error) {
	reg := extract.NewRegistry()
	for _, s := range cat.EnabledSources() {
		if s.Pattern == "" {
			continue
		}
		p, err := extract.NewPhrase(s.ID, s.Pattern)
		if err != nil {
			return nil, err
		}
		reg.Register(p)
	}
	return reg, nil
}

// Components are the pieces Build wires together.
type Components struct {
	Service *Service
	Archive *archive.Cache
}

// Build wires a Service from cfg. Every network path shares one paced fetcher.
func Build(cfg *config.Config, st store.Store) (*Components, error) {
	var base fetch.Fetcher = fetch.NewHTTP(&http.Client{Timeout: cfg.FetchTimeout})
	if cfg.RenderJS {
		base = fetch.NewBrowser(cfg.ChromePath)
	}
	f := fetch.NewPaced(base, cfg.FetchPause)

	opts := fetch.DefaultOptions().WithTimeout(cfg.FetchTimeout)
	if cfg.UserAgent != "" {
		opts.UserAgent = cfg.UserAgent
	}

	reg, err := Strategies(&cfg.Catalogue)
	if err != nil {
		return nil, fmt.Errorf("source patterns: %w", err)
	}

	resolver := sources.NewResolverFromCatalogue(&cfg.Catalogue)
	if len(cfg.Catalogue.Feeds) > 0 {
		resolver.WithFeeds(sources.NewFeedScanner(f, opts, cfg.Catalogue.Feeds))
	}
	if cfg.SearchFallback {
		resolver.WithSearch(sources.NewSearcher(sources.EngineByName(cfg.SearchEngine), f, opts, cfg.Catalogue.Search))
	}

	cache := archive.NewCache(cfg.ArchiveURL, cfg.ArchiveSnapshot, cfg.ArchiveTTL, f, opts)

	options := []Option{WithStore(st)}
	if cache.Enabled() {
		options = append(options, WithArchive(cache))
	}
	return &Components{
		Service: New(resolver, reg, f, opts, options...),
		Archive: cache,
	}, nil
}
