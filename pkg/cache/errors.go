package cache

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/matzehuels/dashforge/pkg/httputil"
)

// ErrUnavailable is returned when a cache backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// Backoff for network backends. Tests shorten retryDelay.
var (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond
)

// transient marks network-level failures (timeouts, refused connections)
// as retryable and passes every other error through.
func transient(err error) error {
	var ne net.Error
	if errors.As(err, &ne) {
		return &httputil.RetryableError{Err: err}
	}
	return err
}

// withRetry runs fn with the backend backoff, retrying only what
// [transient] marked.
func withRetry(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, retryAttempts, retryDelay, fn)
}
