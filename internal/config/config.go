// internal/config/config.go
//
// Runtime configuration for the answer server and CLI.
// Responsibilities:
//   - Environment settings (PORT, LOG_LEVEL, CORS_ORIGINS, FETCH_*, FEED_URLS, ARCHIVE_*, STORE, ...)
//     with development defaults; `.env` is loaded by the caller through godotenv.
//   - The source catalogue (known sites, search fallback, feeds) from an
//     embedded YAML file, overridable with SOURCES_FILE.
//   - Default on-disk locations under the XDG cache/data directories.

package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle-answer/internal/daily"
)

//go:embed sources.yaml
var defaultSourcesFS embed.FS

const appDir = "wordle-answer"

// Source is one known answer site.
type Source struct {
	ID           string `yaml:"id"`
	Domain       string `yaml:"domain"`
	Enabled      bool   `yaml:"enabled"`
	Pattern      string `yaml:"pattern,omitempty"` // empty uses the default answer phrase
	Cutoff       string `yaml:"cutoff,omitempty"`  // YYYY-MM-DD; empty uses daily.DefaultCutoff
	Before       string `yaml:"before"`
	BeforeFormat string `yaml:"before_format,omitempty"`
	After        string `yaml:"after,omitempty"`
	AfterFormat  string `yaml:"after_format,omitempty"`
}

// CutoffDate returns the parsed era cutoff.
func (s Source) CutoffDate() time.Time {
	if s.Cutoff == "" {
		return daily.DefaultCutoff
	}
	t, err := daily.ParseKey(s.Cutoff)
	if err != nil {
		return daily.DefaultCutoff
	}
	return t
}

// Search configures the search-engine fallback.
type Search struct {
	Domain   string   `yaml:"domain"`
	Source   string   `yaml:"source"`
	MaxLinks int      `yaml:"max_links"`
	Queries  []string `yaml:"queries"`
}

// Feed is an RSS/Atom feed scanned for the day's article.
type Feed struct {
	URL    string `yaml:"url"`
	Source string `yaml:"source"`
}

// Catalogue is the YAML source catalogue.
type Catalogue struct {
	Sources []Source `yaml:"sources"`
	Search  Search   `yaml:"search"`
	Feeds   []Feed   `yaml:"feeds"`
}

// EnabledSources returns the sources marked enabled, in file order.
func (c *Catalogue) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Config is the full runtime configuration.
type Config struct {
	Port        string
	LogLevel    string
	LogFormat   string // "json" | "console"
	CORSOrigins []string

	FetchTimeout time.Duration
	FetchPause   time.Duration
	UserAgent    string
	RenderJS     bool
	ChromePath   string

	SearchFallback bool
	SearchEngine   string // "bing" | "google"

	ArchiveURL      string
	ArchiveSnapshot string
	ArchiveTTL      time.Duration

	Store     string // "memory" | "sqlite" | "redis"
	DBPath    string
	RedisAddr string

	AdminSecret string

	Catalogue Catalogue
}

// Load reads the environment and the source catalogue.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		CORSOrigins:     SplitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		FetchTimeout:    envDuration("FETCH_TIMEOUT", 10*time.Second),
		FetchPause:      envDuration("FETCH_PAUSE", time.Second),
		UserAgent:       os.Getenv("USER_AGENT"),
		RenderJS:        envBool("RENDER_JS", false),
		ChromePath:      os.Getenv("CHROME_PATH"),
		SearchFallback:  envBool("SEARCH_FALLBACK", false),
		SearchEngine:    strings.ToLower(getEnv("SEARCH_ENGINE", "bing")),
		ArchiveURL:      os.Getenv("ARCHIVE_URL"),
		ArchiveSnapshot: getEnv("ARCHIVE_SNAPSHOT", filepath.Join(xdg.CacheHome, appDir, "answers.json")),
		ArchiveTTL:      envDuration("ARCHIVE_TTL", 24*time.Hour),
		Store:           strings.ToLower(getEnv("STORE", "memory")),
		DBPath:          getEnv("DB_PATH", filepath.Join(xdg.DataHome, appDir, "answers.db")),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		AdminSecret:     os.Getenv("ADMIN_JWT_SECRET"),
	}

	cat, err := LoadCatalogue(os.Getenv("SOURCES_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Catalogue = *cat
	for _, u := range SplitList(os.Getenv("FEED_URLS")) {
		cfg.Catalogue.Feeds = append(cfg.Catalogue.Feeds, Feed{URL: u})
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadCatalogue parses the catalogue at path, or the embedded default when
// path is empty.
func LoadCatalogue(path string) (*Catalogue, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = defaultSourcesFS.ReadFile("sources.yaml")
		if err != nil {
			return nil, fmt.Errorf("reading embedded sources: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading sources %s: %w", path, err)
		}
	}

	var cat Catalogue
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing sources: %w", err)
	}
	if cat.Search.MaxLinks <= 0 {
		cat.Search.MaxLinks = 5
	}
	if err := validateCatalogue(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("STORE: unknown backend %q (valid: memory, sqlite, redis)", c.Store)
	}
	switch c.SearchEngine {
	case "bing", "google":
	default:
		return fmt.Errorf("SEARCH_ENGINE: unknown engine %q (valid: bing, google)", c.SearchEngine)
	}
	for i, f := range c.Catalogue.Feeds {
		if err := checkURL(f.URL); err != nil {
			return fmt.Errorf("feed %d: %w", i, err)
		}
	}
	if c.ArchiveURL != "" {
		if err := checkURL(c.ArchiveURL); err != nil {
			return fmt.Errorf("ARCHIVE_URL: %w", err)
		}
	}
	return nil
}

func validateCatalogue(cat *Catalogue) error {
	seen := map[string]bool{}
	for i, s := range cat.Sources {
		if s.ID == "" {
			return fmt.Errorf("source %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("source %q: duplicate id", s.ID)
		}
		seen[s.ID] = true
		if s.Before == "" {
			return fmt.Errorf("source %q: before template is required", s.ID)
		}
		for _, tmpl := range []string{s.Before, s.After} {
			if tmpl == "" {
				continue
			}
			if !strings.Contains(tmpl, "{slug}") {
				return fmt.Errorf("source %q: template %q has no {slug}", s.ID, tmpl)
			}
			if err := checkURL(strings.ReplaceAll(tmpl, "{slug}", "x")); err != nil {
				return fmt.Errorf("source %q: %w", s.ID, err)
			}
		}
		for _, f := range []string{s.BeforeFormat, s.AfterFormat} {
			if f == "" {
				continue
			}
			if _, err := daily.ParseFormat(f); err != nil {
				return fmt.Errorf("source %q: %w", s.ID, err)
			}
		}
		if s.Cutoff != "" {
			if _, err := daily.ParseKey(s.Cutoff); err != nil {
				return fmt.Errorf("source %q: cutoff: %w", s.ID, err)
			}
		}
	}
	for i, f := range cat.Feeds {
		if err := checkURL(f.URL); err != nil {
			return fmt.Errorf("feed %d: %w", i, err)
		}
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	return nil
}

// SplitList splits a comma-separated setting, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envDuration parses k as a Go duration ("10s") or a bare number of seconds.
func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func envBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
