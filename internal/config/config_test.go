package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle-answer/internal/daily"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CORS_ORIGINS", "FETCH_TIMEOUT", "FETCH_PAUSE", "STORE", "SEARCH_ENGINE", "ARCHIVE_URL", "ARCHIVE_TTL", "SOURCES_FILE", "FEED_URLS"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected port 8000, got %s", cfg.Port)
	}
	if diff := cmp.Diff([]string{"http://localhost:5173"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("CORS origins (-want +got):\n%s", diff)
	}
	if cfg.FetchTimeout != 10*time.Second || cfg.FetchPause != time.Second {
		t.Errorf("unexpected fetch timing %v / %v", cfg.FetchTimeout, cfg.FetchPause)
	}
	if cfg.ArchiveTTL != 24*time.Hour {
		t.Errorf("expected 24h archive TTL, got %v", cfg.ArchiveTTL)
	}
	if cfg.Store != "memory" {
		t.Errorf("expected memory store, got %s", cfg.Store)
	}

	srcs := cfg.Catalogue.EnabledSources()
	if len(srcs) != 1 || srcs[0].ID != "beebom" {
		t.Fatalf("expected the embedded beebom source, got %+v", srcs)
	}
	if !srcs[0].CutoffDate().Equal(daily.DefaultCutoff) {
		t.Errorf("unexpected cutoff %v", srcs[0].CutoffDate())
	}
	if cfg.Catalogue.Search.MaxLinks != 5 {
		t.Errorf("expected 5 search links, got %d", cfg.Catalogue.Search.MaxLinks)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SOURCES_FILE", "")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,,")
	t.Setenv("FETCH_TIMEOUT", "30")
	t.Setenv("FETCH_PAUSE", "250ms")
	t.Setenv("STORE", "SQLite")
	t.Setenv("SEARCH_FALLBACK", "true")
	t.Setenv("FEED_URLS", "https://beebom.com/feed/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("CORS origins (-want +got):\n%s", diff)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("bare seconds should parse, got %v", cfg.FetchTimeout)
	}
	if cfg.FetchPause != 250*time.Millisecond {
		t.Errorf("got pause %v", cfg.FetchPause)
	}
	if cfg.Store != "sqlite" || !cfg.SearchFallback {
		t.Errorf("got store=%s search=%v", cfg.Store, cfg.SearchFallback)
	}
	if n := len(cfg.Catalogue.Feeds); n != 1 || cfg.Catalogue.Feeds[0].URL != "https://beebom.com/feed/" {
		t.Errorf("expected FEED_URLS to add one feed, got %+v", cfg.Catalogue.Feeds)
	}
}

func TestLoadRejectsBadFeedURL(t *testing.T) {
	t.Setenv("SOURCES_FILE", "")
	t.Setenv("STORE", "")
	t.Setenv("FEED_URLS", "beebom.com/feed")
	if _, err := Load(); err == nil {
		t.Error("expected error for feed url without scheme")
	}
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("SOURCES_FILE", "")
	t.Setenv("FEED_URLS", "")
	t.Setenv("STORE", "etcd")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown store")
	}
}

func writeCatalogue(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadCatalogueFromFile(t *testing.T) {
	path := writeCatalogue(t, `
sources:
  - id: example
    domain: example.com
    enabled: true
    cutoff: "2024-01-01"
    before: "https://example.com/wordle-{slug}/"
  - id: disabled
    enabled: false
    before: "https://example.org/{slug}"
feeds:
  - url: https://example.com/feed/
    source: example
`)
	cat, err := LoadCatalogue(path)
	if err != nil {
		t.Fatalf("LoadCatalogue: %v", err)
	}
	if got := cat.EnabledSources(); len(got) != 1 || got[0].ID != "example" {
		t.Errorf("unexpected enabled sources %+v", got)
	}
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !cat.Sources[0].CutoffDate().Equal(want) {
		t.Errorf("cutoff = %v", cat.Sources[0].CutoffDate())
	}
	if len(cat.Feeds) != 1 {
		t.Errorf("expected 1 feed, got %d", len(cat.Feeds))
	}
}

func TestLoadCatalogueValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing id", "sources:\n  - before: \"https://x.com/{slug}\"\n"},
		{"missing slug", "sources:\n  - id: a\n    before: \"https://x.com/today\"\n"},
		{"bad scheme", "sources:\n  - id: a\n    before: \"ftp://x.com/{slug}\"\n"},
		{"bad format", "sources:\n  - id: a\n    before: \"https://x.com/{slug}\"\n    before_format: ymd\n"},
		{"bad cutoff", "sources:\n  - id: a\n    before: \"https://x.com/{slug}\"\n    cutoff: \"2025-02-30\"\n"},
		{"duplicate id", "sources:\n  - id: a\n    before: \"https://x.com/{slug}\"\n  - id: a\n    before: \"https://y.com/{slug}\"\n"},
		{"bad feed", "feeds:\n  - url: not-a-url\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCatalogue(writeCatalogue(t, tt.body)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	if got := SplitList(""); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, SplitList(" a ,b, ")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
