package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashforge/pkg/buildinfo"
	dferrors "github.com/matzehuels/dashforge/pkg/errors"
)

const (
	// MaxBodySize caps a fetched document.
	MaxBodySize = 10 << 20

	defaultAttempts = 3
	defaultDelay    = time.Second
	defaultTimeout  = 30 * time.Second
)

// IsURL reports whether src names an http or https resource.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Option configures a [Fetcher].
type Option func(*Fetcher)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option { return func(f *Fetcher) { f.client = c } }

// WithCache enables response caching.
func WithCache(c *Cache) Option { return func(f *Fetcher) { f.cache = c } }

// WithRetry sets the attempt count and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(f *Fetcher) { f.attempts, f.delay = attempts, delay }
}

// WithLogger sets the logger for cache and retry events.
func WithLogger(l *log.Logger) Option { return func(f *Fetcher) { f.logger = l } }

// Fetcher downloads remote dashboard documents.
type Fetcher struct {
	client   *http.Client
	cache    *Cache
	logger   *log.Logger
	attempts int
	delay    time.Duration
}

// NewFetcher creates a Fetcher with a 30s client timeout and three attempts.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   log.New(io.Discard),
		attempts: defaultAttempts,
		delay:    defaultDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body at url, from cache when a fresh copy exists.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if !IsURL(url) {
		return nil, dferrors.New(dferrors.ErrCodeInvalidPath, "not an http(s) url: %s", url)
	}
	if f.cache != nil {
		resp, ok, err := f.cache.Get(url)
		switch {
		case ok:
			f.logger.Debug("remote cache hit", "url", url)
			return resp.Body, nil
		case errors.Is(err, ErrExpired):
			f.logger.Debug("remote cache expired", "url", url)
		case err != nil:
			f.logger.Warn("remote cache read failed", "url", url, "error", err)
		}
	}

	var resp Response
	err := Retry(ctx, f.attempts, f.delay, func() error {
		r, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(url, resp); err != nil {
			f.logger.Warn("remote cache write failed", "url", url, "error", err)
		}
	}
	return resp.Body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, dferrors.Wrap(dferrors.ErrCodeInvalidPath, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "dashforge/"+buildinfo.Version)

	res, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		return Response{}, &RetryableError{Err: fmt.Errorf("get %s: %w", url, err)}
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return Response{}, dferrors.New(dferrors.ErrCodeNotFound, "%s: 404 not found", url)
	case res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500:
		return Response{}, &RetryableError{Err: fmt.Errorf("get %s: %s", url, res.Status)}
	case res.StatusCode < 200 || res.StatusCode > 299:
		return Response{}, dferrors.New(dferrors.ErrCodeDecode, "get %s: %s", url, res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxBodySize+1))
	if err != nil {
		return Response{}, &RetryableError{Err: fmt.Errorf("read %s: %w", url, err)}
	}
	if len(body) > MaxBodySize {
		return Response{}, dferrors.New(dferrors.ErrCodeInvalidInput, "%s: body exceeds %d bytes", url, MaxBodySize)
	}
	return Response{
		URL:         url,
		ContentType: res.Header.Get("Content-Type"),
		Body:        body,
		FetchedAt:   time.Now().UTC(),
	}, nil
}
