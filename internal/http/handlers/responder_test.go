package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/http/middleware"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/testutil"
)

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
}

func TestWriteErrorRequestID(t *testing.T) {
	silent, _ := testutil.NewBufferLogger()
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusBadRequest, "invalid date", nil)
	})

	cases := []struct {
		name    string
		handler http.Handler
		header  string
		want    func(string) bool
	}{
		{name: "header fallback", handler: failing, header: "from-header", want: func(id string) bool { return id == "from-header" }},
		{name: "none", handler: failing, want: func(id string) bool { return id == "" }},
		{name: "middleware replaces invalid", handler: middleware.LoggingMiddleware(silent, nil, failing), header: "bad id", want: func(id string) bool { return len(id) == 36 }},
		{name: "middleware keeps valid", handler: middleware.LoggingMiddleware(silent, nil, failing), header: "trace-7", want: func(id string) bool { return id == "trace-7" }},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/loads?date=bad", nil)
		if tc.header != "" {
			req.Header.Set("X-Request-ID", tc.header)
		}
		rr := testutil.ServeRequest(tc.handler, req)

		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		if got := rr.Header().Get("Content-Type"); got != "application/json" {
			t.Fatalf("%s: expected json content type, got %s", tc.name, got)
		}
		var body errorBody
		testutil.DecodeJSON(t, rr, &body)
		if body.Error != "invalid date" || !tc.want(body.RequestID) {
			t.Fatalf("%s: unexpected body %+v", tc.name, body)
		}
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusOK, make(chan int), logger)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if buf.Len() == 0 {
		t.Fatalf("expected encode failure logged")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	fallback, _ := testutil.NewBufferLogger()
	if got := loggerFromContext(nil, fallback); got != fallback {
		t.Fatalf("expected fallback for nil request")
	}
	req := httptest.NewRequest(http.MethodGet, "/health", nil).WithContext(context.Background())
	if got := loggerFromContext(req, fallback); got != fallback {
		t.Fatalf("expected fallback without a context logger")
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rr := testutil.Serve(NotFound(nil), http.MethodGet, "/missing", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	rr = testutil.Serve(MethodNotAllowed(nil), http.MethodDelete, "/loads", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
