package handlers

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	apppredictions "github.com/preston-bernstein/nhl-odds-service/internal/app/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/poller"
	"github.com/preston-bernstein/nhl-odds-service/internal/prediction"
	"github.com/preston-bernstein/nhl-odds-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

const invalidDateMessage = "Date must be YYYY-MM-DD"

type nowFunc func() time.Time

// PredictionService is what the handlers need from the application layer.
type PredictionService interface {
	Predict(ctx context.Context, date string) (predictions.Day, error)
	History(ctx context.Context, date string) (predictions.Day, error)
}

// Config holds the handler's non-service dependencies.
type Config struct {
	// Location decides which calendar day "tomorrow" is when no date is given.
	Location     *time.Location
	DocumentPath string
	// Status reports the background refresher; nil means always ready.
	Status func() poller.Status
}

// Handler wires HTTP routes to the prediction service.
type Handler struct {
	svc          PredictionService
	loc          *time.Location
	documentPath string
	statusFn     func() poller.Status
	logger       *slog.Logger
	now          nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc PredictionService, cfg Config, logger *slog.Logger) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		svc:          svc,
		loc:          loc,
		documentPath: cfg.DocumentPath,
		statusFn:     cfg.Status,
		logger:       logger,
		now:          time.Now,
	}
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

// Predictions prices the requested date, defaulting to tomorrow in the configured timezone.
// The date is used as given; days without games return an empty list and a message.
func (h *Handler) Predictions(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	day, err := h.svc.Predict(r.Context(), date)
	if err != nil {
		if errors.Is(err, prediction.ErrInvalidDate) {
			writeError(w, r, nethttp.StatusBadRequest, invalidDateMessage, logger)
			return
		}
		logging.Warn(logger, "prediction run failed", logging.FieldDate, date, "err", err)
		writeError(w, r, nethttp.StatusBadGateway, "upstream data unavailable", logger)
		return
	}

	logging.Info(logger, "served predictions", logging.FieldDate, date, logging.FieldCount, len(day.Games))
	writeJSON(w, nethttp.StatusOK, day, logger)
}

// History replays archived results for a date.
func (h *Handler) History(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	day, err := h.svc.History(r.Context(), date)
	switch {
	case err == nil:
		writeJSON(w, nethttp.StatusOK, day, logger)
	case errors.Is(err, apppredictions.ErrHistoryDisabled):
		writeError(w, r, nethttp.StatusNotFound, "history is not enabled", logger)
	case errors.Is(err, prediction.ErrInvalidDate):
		writeError(w, r, nethttp.StatusBadRequest, invalidDateMessage, logger)
	default:
		logging.Warn(logger, "history lookup failed", logging.FieldDate, date, "err", err)
		writeError(w, r, nethttp.StatusInternalServerError, "history unavailable", logger)
	}
}

// Latest serves the persisted predictions document written by the CLI or the admin refresh.
func (h *Handler) Latest(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.documentPath == "" {
		writeError(w, r, nethttp.StatusNotFound, "no predictions document", logger)
		return
	}

	doc, err := snapshots.Load(h.documentPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, r, nethttp.StatusNotFound, "no predictions document", logger)
			return
		}
		logging.Warn(logger, "predictions document unreadable", "path", h.documentPath, "err", err)
		writeError(w, r, nethttp.StatusInternalServerError, "predictions document unreadable", logger)
		return
	}

	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		day, ok := snapshots.FindDay(doc, date)
		if !ok {
			writeError(w, r, nethttp.StatusNotFound, "date not in predictions document", logger)
			return
		}
		writeJSON(w, nethttp.StatusOK, day, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, doc, logger)
}

// dateParam reads ?date=, defaulting to tomorrow. It writes the 400 itself on bad input.
func (h *Handler) dateParam(w nethttp.ResponseWriter, r *nethttp.Request) (string, bool) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		return timeutil.Tomorrow(h.now(), h.loc), true
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, invalidDateMessage, loggerFromContext(r, h.logger))
		return "", false
	}
	return date, true
}
