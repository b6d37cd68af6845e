package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// FetchError is a network failure: connection error, timeout or a non-2xx
// status. It never aborts a resolution, the caller moves to the next candidate.
type FetchError struct {
	URL    string
	Status int   // HTTP status, 0 when no response was received
	Err    error // underlying transport error, nil for status failures
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout reports whether the fetch ran out of time.
func (e *FetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// IsNotFound reports whether err is a 404/410 from the source, which for
// slug-built URLs usually means the wrong date era or an unpublished article.
func IsNotFound(err error) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Status == 404 || fe.Status == 410
}
