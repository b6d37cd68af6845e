package archive

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-answer/internal/extract"
	"github.com/robalobadob/wordle-answer/internal/fetch"
	"github.com/robalobadob/wordle-answer/internal/words"
)

// DefaultTTL is how long a snapshot is served without a re-scrape.
const DefaultTTL = 24 * time.Hour

// Cache serves archive lookups from the snapshot, rebuilding it from the
// archive page when it is missing or older than the TTL.
type Cache struct {
	URL  string // archive page; empty disables rebuilding
	Path string // snapshot JSON path
	TTL  time.Duration

	fetcher fetch.Fetcher
	opts    fetch.Options
	now     func() time.Time

	mu   sync.Mutex
	snap *Snapshot
}

// NewCache builds a cache over the snapshot at path.
func NewCache(url, path string, ttl time.Duration, f fetch.Fetcher, opts fetch.Options) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{URL: url, Path: path, TTL: ttl, fetcher: f, opts: opts, now: time.Now}
}

// SetClock replaces the time source.
func (c *Cache) SetClock(now func() time.Time) { c.now = now }

// Enabled reports whether the archive can be rebuilt.
func (c *Cache) Enabled() bool { return c.URL != "" }

// Fresh reports whether snap can be served as-is.
func (c *Cache) Fresh(snap *Snapshot) bool {
	return snap != nil && snap.Age(c.now()) < c.TTL
}

// Records returns the archive rows, rebuilding a stale or missing snapshot
// first. A failed rebuild falls back to the stale snapshot when there is one.
func (c *Cache) Records(ctx context.Context) ([]words.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load()
	if err != nil {
		log.Warn().Err(err).Str("path", c.Path).Msg("archive snapshot unreadable")
	}
	if c.Fresh(snap) || !c.Enabled() {
		if snap == nil {
			return nil, nil
		}
		return snap.Records, nil
	}

	fresh, err := c.rebuild(ctx)
	if err != nil {
		if snap != nil {
			log.Warn().Err(err).Dur("age", snap.Age(c.now())).Msg("archive rebuild failed; serving stale snapshot")
			return snap.Records, nil
		}
		return nil, err
	}
	return fresh.Records, nil
}

// Lookup finds the record for date (YYYY-MM-DD).
func (c *Cache) Lookup(ctx context.Context, date string) (words.Record, bool, error) {
	recs, err := c.Records(ctx)
	if err != nil {
		return words.Record{}, false, err
	}
	r, ok := words.Find(recs, date)
	return r, ok, nil
}

// Refresh rebuilds the snapshot regardless of its age.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuild(ctx)
}

// load returns the in-memory snapshot, reading the file when the copy in
// memory is missing or stale (another process may have rewritten it).
func (c *Cache) load() (*Snapshot, error) {
	if c.Fresh(c.snap) {
		return c.snap, nil
	}
	snap, err := ReadSnapshot(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return c.snap, nil
	}
	if err != nil {
		return c.snap, err
	}
	c.snap = snap
	return snap, nil
}

// rebuild scrapes the archive page and replaces the snapshot. A page that
// yields no rows is a parse failure and leaves the old snapshot in place.
func (c *Cache) rebuild(ctx context.Context) (*Snapshot, error) {
	if !c.Enabled() {
		return nil, errors.New("archive url not configured")
	}
	page, err := c.fetcher.Fetch(ctx, c.URL, c.opts)
	if err != nil {
		return nil, err
	}
	doc, err := extract.Parse(page.Body)
	if err != nil {
		return nil, err
	}
	now := c.now()
	recs := extract.ParseArchive(doc, now)
	if len(recs) == 0 {
		return nil, &extract.ParseError{Source: "archive", Reason: "no answer rows found"}
	}

	snap := &Snapshot{UpdatedAt: now.UTC(), Source: c.URL, Records: recs}
	if err := WriteSnapshot(c.Path, snap); err != nil {
		return nil, err
	}
	c.snap = snap
	log.Info().Int("records", len(recs)).Str("path", c.Path).Msg("archive snapshot rebuilt")
	return snap, nil
}
