package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/http/requestutil"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/prediction"
	"github.com/preston-bernstein/nhl-odds-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

// RangeRunner prices consecutive dates.
type RangeRunner interface {
	RunRange(ctx context.Context, start string, days int) ([]predictions.Day, error)
}

// AdminHandler exposes admin-only endpoints (document refresh).
type AdminHandler struct {
	runner RangeRunner
	writer snapshots.DocumentWriter
	token  string
	loc    *time.Location
	logger *slog.Logger
	now    nowFunc
	newID  func() string
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(runner RangeRunner, writer snapshots.DocumentWriter, token string, loc *time.Location, logger *slog.Logger) *AdminHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AdminHandler{
		runner: runner,
		writer: writer,
		token:  token,
		loc:    loc,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// RefreshDocument prices ?days= consecutive dates from ?date= (default tomorrow, one day)
// and rewrites the predictions document. Guarded by a bearer token.
func (h *AdminHandler) RefreshDocument(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.runner == nil || h.writer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "document writer not configured", logger)
		return
	}

	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if date == "" {
		date = timeutil.Tomorrow(h.now(), h.loc)
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin refresh invalid date", slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusBadRequest, invalidDateMessage, logger)
		return
	}
	days := 1
	if raw := strings.TrimSpace(q.Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "days must be an integer", logger)
			return
		}
		days = prediction.ClampDays(n)
	}

	runID := h.newID()
	results, err := h.runner.RunRange(r.Context(), date, days)
	if err != nil {
		if errors.Is(err, prediction.ErrInvalidDate) {
			writeError(w, r, http.StatusBadRequest, invalidDateMessage, logger)
			return
		}
		logging.Warn(logger, "admin refresh failed",
			slog.String(logging.FieldDate, date),
			slog.Int("days", days),
			slog.Any("err", err),
		)
		writeError(w, r, http.StatusBadGateway, "upstream data unavailable", logger)
		return
	}

	doc := predictions.NewDocument(runID, h.now(), results...)
	size, err := h.writer.WriteDocument(doc)
	if err != nil {
		logging.Warn(logger, "admin document write failed", slog.String(logging.FieldRunID, runID), slog.Any("err", err))
		writeError(w, r, http.StatusInternalServerError, "failed to write document", logger)
		return
	}

	games := 0
	for _, d := range results {
		games += len(d.Games)
	}
	logging.Info(logger, "admin document written",
		slog.String(logging.FieldRunID, runID),
		slog.String(logging.FieldDate, date),
		slog.Int("days", len(results)),
		slog.Int(logging.FieldCount, games),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"runId":  runID,
		"date":   date,
		"days":   len(results),
		"games":  games,
		"bytes":  size,
	}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	token, ok := requestutil.BearerToken(r)
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) == 1
}
