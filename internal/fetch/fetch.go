// internal/fetch/fetch.go
//
// Page fetching for answer sources and search engines.
// Responsibilities:
//   - Options: an immutable fetch configuration (user agent, headers, timeout)
//     passed into every call instead of living on a shared session.
//   - HTTP: a plain net/http fetcher that decodes gzip/deflate/br/zstd bodies
//     itself, since it advertises those encodings explicitly.
//   - FetchError: every transport failure, timeout or non-2xx status comes
//     back as a *FetchError so callers can treat it as a candidate miss.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// DefaultUserAgent mimics a desktop browser; several answer sites serve a
// stripped page or a 403 to obvious bots.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// Options is the per-call fetch configuration. It is a value type; the
// header map is copied by WithHeader and never mutated in place.
type Options struct {
	UserAgent string
	Headers   map[string]string
	Timeout   time.Duration
}

// DefaultOptions returns browser-like headers and the default timeout.
func DefaultOptions() Options {
	return Options{
		UserAgent: DefaultUserAgent,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.5",
			"Accept-Encoding": "gzip, deflate, br, zstd",
		},
		Timeout: DefaultTimeout,
	}
}

// WithHeader returns a copy of o with k set to v.
func (o Options) WithHeader(k, v string) Options {
	h := make(map[string]string, len(o.Headers)+1)
	for hk, hv := range o.Headers {
		h[hk] = hv
	}
	h[k] = v
	o.Headers = h
	return o
}

// WithTimeout returns a copy of o with the given timeout.
func (o Options) WithTimeout(d time.Duration) Options {
	o.Timeout = d
	return o
}

// Page is a fetched document.
type Page struct {
	URL    string // final URL after redirects
	Status int
	Body   []byte
}

// Fetcher retrieves a page. Implementations must return *FetchError for
// every failure.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts Options) (*Page, error)
}

// HTTP fetches pages with net/http.
type HTTP struct {
	client *http.Client
}

// NewHTTP wraps client; nil uses a fresh client with no global timeout
// (each call bounds itself with Options.Timeout).
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTP{client: client}
}

// Fetch performs a GET bounded by opts.Timeout.
func (h *HTTP) Fetch(ctx context.Context, url string, opts Options) (*Page, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: err}
	}
	return &Page{URL: resp.Request.URL.String(), Status: resp.StatusCode, Body: body}, nil
}

// readBody decodes the response according to Content-Encoding.
func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(resp.Body)
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		reader = zr
	}
	body, err := io.ReadAll(io.LimitReader(reader, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
