package fetch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Paced spaces calls to an inner Fetcher at least pause apart. One Paced is
// shared by every resolution path so the pause holds across them.
type Paced struct {
	inner Fetcher
	lim   *rate.Limiter
}

// NewPaced wraps inner. A zero pause disables spacing.
func NewPaced(inner Fetcher, pause time.Duration) *Paced {
	limit := rate.Inf
	if pause > 0 {
		limit = rate.Every(pause)
	}
	return &Paced{inner: inner, lim: rate.NewLimiter(limit, 1)}
}

// Fetch waits for its turn, then delegates. A context ending while waiting
// is reported as a *FetchError.
func (p *Paced) Fetch(ctx context.Context, url string, opts Options) (*Page, error) {
	if err := p.lim.Wait(ctx); err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return p.inner.Fetch(ctx, url, opts)
}
