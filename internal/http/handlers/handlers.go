package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/app/pressure"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/teams"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/poller"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// Reports is the read side of the pressure service.
type Reports interface {
	Today() string
	Cached(ctx context.Context, date string) (fatigue.Report, error)
}

// Handler wires HTTP routes to the pressure service.
type Handler struct {
	svc      Reports
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. A nil statusFn reports ready unconditionally.
func NewHandler(svc Reports, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// LoadsResponse is the body of GET /loads.
type LoadsResponse struct {
	Date        string             `json:"date"`
	RunID       string             `json:"runId"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Loads       []fatigue.TeamLoad `json:"loads"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Loads returns every playing team's load for ?date= (default today).
func (h *Handler) Loads(w nethttp.ResponseWriter, r *nethttp.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, LoadsResponse{
		Date:        report.Date,
		RunID:       report.RunID,
		GeneratedAt: report.GeneratedAt,
		Loads:       report.Loads.Sorted(),
	}, loggerFromContext(r, h.logger))
}

// TeamLoad returns one team's load; 404 when the team does not play that day.
func (h *Handler) TeamLoad(w nethttp.ResponseWriter, r *nethttp.Request) {
	raw := mux.Vars(r)["team"]
	team := teams.Normalize(raw)
	if team == teams.Unknown || strings.ContainsAny(raw, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid team", h.logger)
		return
	}
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	load, found := report.TeamLoad(team)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "team does not play on "+report.Date, h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, load, loggerFromContext(r, h.logger))
}

// Games returns the target date's games sorted by start time.
func (h *Handler) Games(w nethttp.ResponseWriter, r *nethttp.Request) {
	report, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, games.NewDaySchedule(report.Date, games.SortByStart(report.Games)), loggerFromContext(r, h.logger))
}

func (h *Handler) report(w nethttp.ResponseWriter, r *nethttp.Request) (fatigue.Report, bool) {
	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = h.svc.Today()
	} else if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return fatigue.Report{}, false
	}

	report, err := h.svc.Cached(r.Context(), date)
	switch {
	case err == nil:
		return report, true
	case errors.Is(err, pressure.ErrInvalidDate):
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
	case errors.Is(err, context.Canceled):
		writeError(w, r, nethttp.StatusServiceUnavailable, "request canceled", logger)
	default:
		logging.Warn(logger, "report unavailable", logging.FieldDate, date, "error", err)
		writeError(w, r, nethttp.StatusBadGateway, "schedule unavailable", logger)
	}
	return fatigue.Report{}, false
}
