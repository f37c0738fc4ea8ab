package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/app/pressure"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/http/requestutil"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/logging"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/timeutil"
)

// Runner regenerates the report, slides and publish pass for a date.
type Runner interface {
	Today() string
	Run(ctx context.Context, date string) (pressure.RunResult, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	runner Runner
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin route.
func NewAdminHandler(runner Runner, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		runner: runner,
		token:  token,
		logger: logger,
	}
}

// Refresh recomputes, renders and publishes the requested date (defaults to today).
// Guarded by a bearer token; returns 401 if missing or invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.runner == nil {
		writeError(w, r, http.StatusServiceUnavailable, "runner not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = h.runner.Today()
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin refresh invalid date", slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}

	result, err := h.runner.Run(r.Context(), date)
	if err != nil {
		logging.Warn(logger, "admin refresh failed", slog.String(logging.FieldDate, date), slog.Any("err", err))
		status := http.StatusBadGateway
		if errors.Is(err, pressure.ErrInvalidDate) {
			status = http.StatusBadRequest
		}
		writeError(w, r, status, "refresh failed", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":   result.Report.Date,
		"runId":  result.Report.RunID,
		"games":  len(result.Report.Games),
		"slides": result.Slides,
		"urls":   result.URLs,
		"status": "ok",
	}, logger)
	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldDate, date),
		slog.String(logging.FieldRunID, result.Report.RunID),
		slog.Int(logging.FieldCount, len(result.Slides)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(r.Header.Get("Authorization")), []byte(want)) == 1
}
