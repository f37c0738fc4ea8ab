package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

type recorded struct {
	method string
	url    string
	header http.Header
	body   putRequest
}

type fakeGitHub struct {
	mu       sync.Mutex
	requests []recorded
	shas     map[string]string
	putCode  int
}

func (f *fakeGitHub) roundTrip(r *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := recorded{method: r.Method, url: r.URL.String(), header: r.Header.Clone()}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
	}
	f.requests = append(f.requests, rec)

	switch r.Method {
	case http.MethodGet:
		if sha, ok := f.shas[r.URL.Path]; ok {
			return response(http.StatusOK, `{"sha":"`+sha+`"}`), nil
		}
		return response(http.StatusNotFound, `{"message":"Not Found"}`), nil
	case http.MethodPut:
		code := f.putCode
		if code == 0 {
			code = http.StatusCreated
		}
		return response(code, `{"content":{}}`), nil
	}
	return response(http.StatusMethodNotAllowed, ""), nil
}

func newTestPublisher(t *testing.T, rt http.RoundTripper) *Publisher {
	t.Helper()
	p, err := New(Config{
		Token:      "secret",
		Owner:      "stat-trick-hockey",
		Repo:       "ig_pressure",
		APIURL:     "http://gh.test/",
		HTTPClient: &http.Client{Transport: rt},
	}, nil)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	return p
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRequiresCredentials(t *testing.T) {
	cases := []Config{
		{},
		{Token: "t", Owner: "o"},
		{Token: "t", Repo: "r"},
		{Owner: "o", Repo: "r"},
	}
	for _, cfg := range cases {
		if _, err := New(cfg, nil); !errors.Is(err, ErrNotConfigured) {
			t.Fatalf("expected ErrNotConfigured for %+v, got %v", cfg, err)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	p, err := New(Config{Token: "t", Owner: "o", Repo: "r"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.cfg.Branch != "main" || p.cfg.PagesDir != "docs" || p.cfg.Subdir != "ig_pressure" || p.cfg.APIURL != defaultAPIURL {
		t.Fatalf("unexpected defaults %+v", p.cfg)
	}
	if p.RepoPath("a.png") != "docs/ig_pressure/a.png" {
		t.Fatalf("unexpected repo path %s", p.RepoPath("a.png"))
	}
	if p.PagesURL("a.png") != "https://o.github.io/r/ig_pressure/a.png" {
		t.Fatalf("unexpected pages url %s", p.PagesURL("a.png"))
	}
}

func TestPublishImagesCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "ig_schedule_pressure_2026-01-20_p1.png", "one")
	second := writeFile(t, dir, "ig_schedule_pressure_2026-01-20_p2.png", "two")

	gh := &fakeGitHub{shas: map[string]string{
		"/repos/stat-trick-hockey/ig_pressure/contents/docs/ig_pressure/ig_schedule_pressure_2026-01-20_p2.png": "abc123",
	}}
	p := newTestPublisher(t, roundTripperFunc(gh.roundTrip))

	urls, err := p.PublishImages(context.Background(), "2026-01-20", []string{first, second})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	want := []string{
		"https://stat-trick-hockey.github.io/ig_pressure/ig_pressure/ig_schedule_pressure_2026-01-20_p1.png",
		"https://stat-trick-hockey.github.io/ig_pressure/ig_pressure/ig_schedule_pressure_2026-01-20_p2.png",
	}
	if len(urls) != 2 || urls[0] != want[0] || urls[1] != want[1] {
		t.Fatalf("unexpected urls %v", urls)
	}
	if len(gh.requests) != 4 {
		t.Fatalf("expected get+put per file, got %d requests", len(gh.requests))
	}

	get := gh.requests[0]
	if get.method != http.MethodGet || !strings.HasSuffix(get.url, "?ref=main") {
		t.Fatalf("unexpected sha lookup %+v", get)
	}
	if get.header.Get("Authorization") != "token secret" || get.header.Get("Accept") != "application/vnd.github+json" {
		t.Fatalf("unexpected headers %v", get.header)
	}

	create := gh.requests[1].body
	if create.SHA != "" || create.Branch != "main" {
		t.Fatalf("expected create without sha, got %+v", create)
	}
	if create.Message != "Publish schedule pressure images (2026-01-20): ig_schedule_pressure_2026-01-20_p1.png" {
		t.Fatalf("unexpected commit message %q", create.Message)
	}
	if decoded, _ := base64.StdEncoding.DecodeString(create.Content); string(decoded) != "one" {
		t.Fatalf("unexpected content %q", decoded)
	}

	update := gh.requests[3].body
	if update.SHA != "abc123" {
		t.Fatalf("expected update with existing sha, got %+v", update)
	}
}

func TestPublishStopsOnFailure(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.png", "x")
	gh := &fakeGitHub{putCode: http.StatusUnprocessableEntity}
	p := newTestPublisher(t, roundTripperFunc(gh.roundTrip))

	urls, err := p.PublishImages(context.Background(), "2026-01-20", []string{file, file})
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Fatalf("expected status error, got %v", err)
	}
	if len(urls) != 0 || len(gh.requests) != 2 {
		t.Fatalf("expected stop after first failure, urls=%v requests=%d", urls, len(gh.requests))
	}
}

func TestPublishMissingFile(t *testing.T) {
	p := newTestPublisher(t, roundTripperFunc(func(*http.Request) (*http.Response, error) {
		t.Fatalf("no request expected")
		return nil, nil
	}))
	if _, err := p.PublishImages(context.Background(), "2026-01-20", []string{"/no/such.png"}); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestPublishRateLimited(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.png", "x")
	p := newTestPublisher(t, roundTripperFunc(func(*http.Request) (*http.Response, error) {
		resp := response(http.StatusTooManyRequests, "")
		resp.Header.Set("Retry-After", "30")
		return resp, nil
	}))

	_, err := p.PublishImages(context.Background(), "2026-01-20", []string{file})
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.Provider != "github" || rl.RetryAfter.Seconds() != 30 {
		t.Fatalf("unexpected rate limit error %+v", rl)
	}
}

func TestLookupErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "a.png", "x")
	p := newTestPublisher(t, roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return response(http.StatusUnauthorized, `{"message":"Bad credentials"}`), nil
	}))
	_, err := p.PublishImages(context.Background(), "2026-01-20", []string{file})
	if err == nil || !strings.Contains(err.Error(), "Bad credentials") {
		t.Fatalf("expected lookup error with body, got %v", err)
	}
}
