package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/dashforge/pkg/cache"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/observability"
	"github.com/matzehuels/dashforge/pkg/pipeline"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

func testDashboard(t *testing.T) []byte {
	t.Helper()
	d := ir.New("Revenue")
	d.Components = []*ir.Node{
		{ID: "rev", Type: registry.TypeStatCard, Props: ir.NewProps("title", "Revenue", "value", "$45,231")},
		{ID: "trend", Type: registry.TypeLineChart, Props: ir.NewProps("title", "Trend")},
	}
	data, err := ir.MarshalDashboard(d)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(Config{
		Now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url string, body []byte) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = strings.NewReader(string(body))
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res, data
}

func decodeError(t *testing.T, data []byte) errorDetail {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("decode error body %q: %v", data, err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	res, data := do(t, http.MethodGet, ts.URL+"/api/health", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	var h healthResponse
	if err := json.Unmarshal(data, &h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Build.Version == "" {
		t.Errorf("health = %+v", h)
	}
}

func TestRegistryRoutes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("all", func(t *testing.T) {
		_, data := do(t, http.MethodGet, ts.URL+"/api/registry", nil)
		var defs []registry.Definition
		if err := json.Unmarshal(data, &defs); err != nil {
			t.Fatal(err)
		}
		if len(defs) != len(registry.Default().Types()) {
			t.Errorf("got %d definitions", len(defs))
		}
	})

	t.Run("category", func(t *testing.T) {
		_, data := do(t, http.MethodGet, ts.URL+"/api/registry?category=nope", nil)
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("unknown category body = %s", data)
		}
	})

	t.Run("one", func(t *testing.T) {
		res, data := do(t, http.MethodGet, ts.URL+"/api/registry/"+registry.TypeStatCard, nil)
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status = %d", res.StatusCode)
		}
		var def registry.Definition
		if err := json.Unmarshal(data, &def); err != nil {
			t.Fatal(err)
		}
		if def.CodeName != "StatCard" {
			t.Errorf("codeName = %q", def.CodeName)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		res, data := do(t, http.MethodGet, ts.URL+"/api/registry/sparkline", nil)
		if res.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d", res.StatusCode)
		}
		if e := decodeError(t, data); e.Code != "NOT_FOUND" || !strings.Contains(e.Message, "sparkline") {
			t.Errorf("error = %+v", e)
		}
	})
}

func TestPresetRoutes(t *testing.T) {
	ts := newTestServer(t)

	_, data := do(t, http.MethodGet, ts.URL+"/api/presets", nil)
	if !strings.Contains(string(data), "analytics") {
		t.Errorf("presets = %s", data)
	}

	res, data := do(t, http.MethodGet, ts.URL+"/api/presets/analytics", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", res.StatusCode, data)
	}
	d, err := ir.UnmarshalDashboard(data)
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "Analytics Overview" || len(d.Components) == 0 {
		t.Errorf("preset = %q with %d components", d.Title, len(d.Components))
	}

	res, _ = do(t, http.MethodGet, ts.URL+"/api/presets/nope", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("missing preset status = %d", res.StatusCode)
	}
}

func TestRenderRoutes(t *testing.T) {
	ts := newTestServer(t)
	body := testDashboard(t)

	tests := []struct {
		name        string
		path        string
		contentType string
		want        string
	}{
		{"preview", "/api/preview", "text/html; charset=utf-8", "$45,231"},
		{"codegen", "/api/codegen", "text/plain; charset=utf-8", "<StatCard"},
		{"codegen import path", "/api/codegen?import_path=@acme/ui", "text/plain; charset=utf-8", "@acme/ui"},
		{"transfer", "/api/transfer", "application/json", `"exportedAt": "2024-01-02T03:04:05Z"`},
		{"transfer color", "/api/transfer?primary_color=%23ff0000", "application/json", "#ff0000"},
		{"export svg", "/api/export", "image/svg+xml", "<svg"},
		{"export vector", "/api/export?format=vector", "application/json", `"summary"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, data := do(t, http.MethodPost, ts.URL+tt.path, body)
			if res.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", res.StatusCode, data)
			}
			if got := res.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("content type = %q, want %q", got, tt.contentType)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("body does not contain %q:\n%s", tt.want, data)
			}
		})
	}
}

func TestRenderAcceptsTransferMessage(t *testing.T) {
	ts := newTestServer(t)
	d, _ := ir.UnmarshalDashboard(testDashboard(t))
	msg, err := transfer.Marshal(transfer.FromDashboard(d, transfer.Theme{}, time.Unix(0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	res, data := do(t, http.MethodPost, ts.URL+"/api/codegen", msg)
	if res.StatusCode != http.StatusOK || !strings.Contains(string(data), "<StatCard") {
		t.Errorf("status = %d body = %s", res.StatusCode, data)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)
	body := testDashboard(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   []byte
		status int
		code   string
	}{
		{"empty body", http.MethodPost, "/api/preview", []byte("  "), http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed json", http.MethodPost, "/api/preview", []byte("{"), http.StatusBadRequest, "DECODE_FAILED"},
		{"bad export format", http.MethodPost, "/api/export?format=gif", body, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad color", http.MethodPost, "/api/transfer?primary_color=red", body, http.StatusBadRequest, "INVALID_COLOR"},
		{"duplicate ids", http.MethodPost, "/api/preview",
			[]byte(`{"title":"x","components":[{"id":"a","type":"text","props":{}},{"id":"a","type":"text","props":{}}]}`),
			http.StatusBadRequest, "INVALID_TREE"},
		{"no route", http.MethodGet, "/api/nope", nil, http.StatusNotFound, "NOT_FOUND"},
		{"wrong method", http.MethodGet, "/api/preview", nil, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, data := do(t, tt.method, ts.URL+tt.path, tt.body)
			if res.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", res.StatusCode, tt.status, data)
			}
			if e := decodeError(t, data); e.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := New(Config{})
	req := httptest.NewRequest(http.MethodPost, "/api/preview", strings.NewReader(strings.Repeat(" ", MaxBodySize+1)))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
	if e := decodeError(t, rec.Body.Bytes()); e.Code != "INVALID_INPUT" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestImport(t *testing.T) {
	ts := newTestServer(t)
	d, _ := ir.UnmarshalDashboard(testDashboard(t))
	msg, _ := transfer.Marshal(transfer.FromDashboard(d, transfer.Theme{}, time.Unix(0, 0)))

	res, data := do(t, http.MethodPost, ts.URL+"/api/import", msg)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", res.StatusCode, data)
	}
	got, err := ir.UnmarshalDashboard(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Components) != 2 || got.Components[0].ID != "rev" {
		t.Errorf("imported components = %+v", got.Components)
	}

	res, data = do(t, http.MethodPost, ts.URL+"/api/import", []byte(`{"version":"1.0","components":"nope"}`))
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("bad import status = %d: %s", res.StatusCode, data)
	}
}

func TestRenderUsesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(nil, fc, nil, nil)
	ts := httptest.NewServer(New(Config{Runner: runner}).Handler())
	defer ts.Close()

	body := testDashboard(t)
	first, _ := do(t, http.MethodPost, ts.URL+"/api/codegen", body)
	second, _ := do(t, http.MethodPost, ts.URL+"/api/codegen", body)
	refreshed, _ := do(t, http.MethodPost, ts.URL+"/api/codegen?refresh=true", body)

	if got := first.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache = %q", got)
	}
	if got := second.Header.Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache = %q", got)
	}
	if got := refreshed.Header.Get("X-Cache"); got != "MISS" {
		t.Errorf("refresh X-Cache = %q", got)
	}
}

type recordingHooks struct {
	mu       sync.Mutex
	requests []string
	statuses []int
}

func (h *recordingHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	do(t, http.MethodGet, ts.URL+"/api/health", nil)
	do(t, http.MethodGet, ts.URL+"/api/registry/nope", nil)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.requests) != 2 || hooks.requests[0] != "GET /api/health" {
		t.Errorf("requests = %v", hooks.requests)
	}
	if len(hooks.statuses) != 2 || hooks.statuses[0] != http.StatusOK || hooks.statuses[1] != http.StatusNotFound {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}

func TestServeListenerShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(Config{}).ServeListener(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/health"
	var res *http.Response
	for i := 0; i < 50; i++ {
		if res, err = http.Get(url); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never answered: %v", err)
	}
	res.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ServeListener returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStatusFor(t *testing.T) {
	if statusFor("UNSUPPORTED") != http.StatusNotImplemented {
		t.Error("UNSUPPORTED should map to 501")
	}
	if statusFor("HOST_FAILURE") != http.StatusInternalServerError {
		t.Error("HOST_FAILURE should map to 500")
	}
}
