package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/app/pressure"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/testutil"
)

type stubRunner struct {
	date string
	err  error
}

func (s *stubRunner) Today() string { return "2026-01-20" }

func (s *stubRunner) Run(ctx context.Context, date string) (pressure.RunResult, error) {
	_ = ctx
	s.date = date
	if s.err != nil {
		return pressure.RunResult{}, s.err
	}
	return pressure.RunResult{
		Report: fatigue.Report{Date: date, RunID: "run-1"},
		Slides: []string{"p1.png"},
	}, nil
}

func adminRequest(target, token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	h := NewAdminHandler(&stubRunner{}, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("/admin/refresh", "wrong"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRefreshDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubRunner{}, "", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("/admin/refresh", ""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRefreshRunsDate(t *testing.T) {
	runner := &stubRunner{}
	h := NewAdminHandler(runner, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("/admin/refresh?date=2026-01-18", "secret"))

	testutil.AssertStatus(t, rr, http.StatusOK)
	var body map[string]any
	testutil.DecodeJSON(t, rr, &body)
	if runner.date != "2026-01-18" || body["runId"] != "run-1" {
		t.Fatalf("unexpected refresh %v (ran %s)", body, runner.date)
	}
}

func TestAdminRefreshDefaultsToToday(t *testing.T) {
	runner := &stubRunner{}
	h := NewAdminHandler(runner, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("/admin/refresh", "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	if runner.date != "2026-01-20" {
		t.Fatalf("expected today, got %s", runner.date)
	}
}

func TestAdminRefreshRejectsInvalidDate(t *testing.T) {
	h := NewAdminHandler(&stubRunner{}, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("/admin/refresh?date=bad-date", "secret"))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestAdminRefreshUpstreamFailure(t *testing.T) {
	h := NewAdminHandler(&stubRunner{err: errors.New("down")}, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("/admin/refresh", "secret"))
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestAdminRefreshWithoutRunner(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("/admin/refresh", "secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
