package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	dferrors "github.com/matzehuels/dashforge/pkg/errors"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"https://example.com/d.json", true},
		{"http://localhost:8080/x", true},
		{"dashboard.json", false},
		{"preset:sales", false},
		{"ftp://example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := IsURL(tt.src); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing user agent")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Remote"}`))
	}))
	defer srv.Close()

	body, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(body) != `{"title":"Remote"}` {
		t.Errorf("Fetch() = %s", body)
	}
}

func TestFetchStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode dferrors.Code
		wantHits int32
	}{
		{"not found", http.StatusNotFound, dferrors.ErrCodeNotFound, 1},
		{"bad request", http.StatusBadRequest, dferrors.ErrCodeDecode, 1},
		{"server error retried", http.StatusBadGateway, "", 3},
		{"rate limit retried", http.StatusTooManyRequests, "", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			f := NewFetcher(WithRetry(3, time.Millisecond))
			_, err := f.Fetch(context.Background(), srv.URL)
			if err == nil {
				t.Fatal("Fetch() should fail")
			}
			if tt.wantCode != "" && !dferrors.Is(err, tt.wantCode) {
				t.Errorf("code = %s, want %s", dferrors.GetCode(err), tt.wantCode)
			}
			if tt.wantCode == "" && !errors.As(err, new(*RetryableError)) {
				t.Errorf("err = %v, want RetryableError", err)
			}
			if got := hits.Load(); got != tt.wantHits {
				t.Errorf("requests = %d, want %d", got, tt.wantHits)
			}
		})
	}
}

func TestFetchRecoversAfterRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := NewFetcher(WithRetry(3, time.Millisecond)).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(body) != "ok" || hits.Load() != 2 {
		t.Errorf("body = %q after %d requests", body, hits.Load())
	}
}

func TestFetchUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("cached body"))
	}))
	defer srv.Close()

	c, _ := NewCache(t.TempDir(), time.Hour)
	f := NewFetcher(WithCache(c))
	for range 3 {
		body, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != "cached body" {
			t.Errorf("body = %q", body)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestFetchRejectsNonURL(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "dashboard.json")
	if !dferrors.Is(err, dferrors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}

func TestFetchBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, MaxBodySize+1))
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if !dferrors.Is(err, dferrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("Retry() = %v after %d calls", err, calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() = %v, want context.Canceled", err)
	}
}
