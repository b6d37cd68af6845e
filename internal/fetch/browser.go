// internal/fetch/browser.go
//
// Headless-Chrome fetcher for answer pages that only render the answer with
// JavaScript. Enabled with RENDER_JS=true; each call starts and tears down
// its own browser so nothing is shared between fetches. Request headers from
// Options are sent with every request the page makes, except Accept-Encoding,
// which Chrome negotiates itself.

package fetch

import (
	"context"
	"errors"
	"strings"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Browser renders pages with chromedp and returns the resulting DOM.
type Browser struct {
	// ExecPath overrides the Chrome binary; empty lets chromedp find one.
	ExecPath string
}

// NewBrowser returns a Browser fetcher.
func NewBrowser(execPath string) *Browser {
	return &Browser{ExecPath: execPath}
}

// Fetch navigates to url, waits for <body>, and returns the outer HTML.
// Status is reported as 200 because the DevTools protocol run does not
// surface it; navigation errors become *FetchError.
func (b *Browser) Fetch(ctx context.Context, url string, opts Options) (*Page, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if b.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var html, location string
	var actions []chromedp.Action
	if h := extraHeaders(opts); len(h) > 0 {
		actions = append(actions, network.Enable(), network.SetExtraHTTPHeaders(h))
	}
	actions = append(actions,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	err := chromedp.Run(browserCtx, actions...)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if html == "" {
		return nil, &FetchError{URL: url, Err: errors.New("empty document")}
	}
	if location == "" {
		location = url
	}
	return &Page{URL: location, Status: 200, Body: []byte(html)}, nil
}

// extraHeaders converts opts.Headers for the DevTools protocol. The user
// agent is applied at launch, so only Headers are carried here.
func extraHeaders(opts Options) network.Headers {
	h := network.Headers{}
	for k, v := range opts.Headers {
		if strings.EqualFold(k, "Accept-Encoding") || strings.EqualFold(k, "User-Agent") {
			continue
		}
		h[k] = v
	}
	return h
}
