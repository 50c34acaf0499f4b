// Package httputil fetches remote dashboard sources over HTTP.
//
// # Overview
//
// The render, import and edit commands accept an http(s) URL wherever they
// accept a file. This package provides the plumbing behind that:
//
//   - [Fetcher]: GET with a size limit, retries and an optional response cache
//   - [Cache]: File-based response caching with a TTL
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores response bodies under the dashforge cache directory, one
// file per URL. Expired entries are refetched; a fetch failure never falls
// back to a stale entry.
//
// # Retry
//
// Network errors, 5xx responses and 429 rate limits are retried. 404 maps
// to NOT_FOUND; every other non-2xx status fails immediately.
package httputil
