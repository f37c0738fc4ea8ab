package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogs(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/loads", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if !strings.Contains(buf.String(), "request complete") || !strings.Contains(buf.String(), "status_code=418") {
		t.Fatalf("expected completion log, got %q", buf.String())
	}
	if rec.ProviderCalls("http") != 0 {
		t.Fatalf("expected provider metrics untouched")
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	rr := testutil.Serve(handler, http.MethodGet, "/loads?date=2026-01-20", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Fatalf("expected generated uuid X-Request-ID, got %q", got)
	}
}

func TestLoggingMiddlewareKeepsValidIncomingID(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RequestIDFromContext(r.Context()) != "trace-42" {
			t.Fatalf("expected incoming id in context")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/games", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	if rr.Header().Get("X-Request-ID") != "trace-42" {
		t.Fatalf("expected incoming id echoed")
	}
	if !strings.Contains(buf.String(), "client_ip=198.51.100.1") {
		t.Fatalf("expected forwarded client ip logged, got %q", buf.String())
	}
}

func TestLoggingMiddlewareNilLoggerUsesDefault(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rr := testutil.Serve(LoggingMiddleware(nil, nil, next), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestRouteTemplateUsesMatchedRoute(t *testing.T) {
	var got string
	router := mux.NewRouter()
	router.HandleFunc("/loads/{team}", func(w http.ResponseWriter, r *http.Request) {
		got = routeTemplate(r)
	})
	testutil.Serve(router, http.MethodGet, "/loads/TOR", nil)
	if got != "/loads/{team}" {
		t.Fatalf("expected route template, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	if routeTemplate(req) != "unmatched" {
		t.Fatalf("expected unmatched label")
	}
}

func TestLoggingAsRouterMiddleware(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	router := mux.NewRouter()
	router.Use(Logging(logger, metrics.NewRecorder()))
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)
	if !strings.Contains(buf.String(), "path=/health") {
		t.Fatalf("expected request log, got %q", buf.String())
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
}

// Ensure responseWriter defaults status correctly.
func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := &responseWriter{ResponseWriter: rr, status: http.StatusOK}
	_, _ = ww.Write([]byte("ok"))
	ww.Flush()
	if ww.status != http.StatusOK {
		t.Fatalf("expected default status 200, got %d", ww.status)
	}
	if !rr.Flushed {
		t.Fatalf("expected flush to reach recorder")
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/loads", nil)
	rr := httptest.NewRecorder()

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(rr, req)
	}
}
