package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-odds-service/internal/archive"
	"github.com/preston-bernstein/nhl-odds-service/internal/cache"
	"github.com/preston-bernstein/nhl-odds-service/internal/config"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/poller"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers/fixture"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers/nhl"
	"github.com/preston-bernstein/nhl-odds-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-odds-service/internal/testutil"
)

type stubPoller struct {
	startCalls int
	stopCalls  int
	err        error
	status     poller.Status
}

func (p *stubPoller) Start(ctx context.Context) {
	_ = ctx
	p.startCalls++
}

func (p *stubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopCalls++
	return p.err
}

func (p *stubPoller) Status() poller.Status {
	return p.status
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Port:     "0",
		Provider: "fixture",
		Timezone: "UTC",
		Data: config.DataConfig{
			Dir:             dir,
			GoaliesPath:     filepath.Join(dir, "starting_goalies.json"),
			InjuriesPath:    filepath.Join(dir, "injuries.json"),
			PredictionsPath: filepath.Join(dir, snapshots.DocumentFile),
			StaticDir:       dir,
		},
	}
}

func TestServerServesHealthAndPredictions(t *testing.T) {
	provider := testutil.ProviderWithSlate(testutil.SampleGame(1, "2025-01-02", "COL", "DAL"))
	srv := newServerWithProvider(testConfig(t), nil, provider)
	router := srv.Handler()

	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/api/predictions?date=2025-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var day predictions.Day
	testutil.DecodeJSON(t, rr, &day)
	if day.Date != "2025-01-02" || len(day.Games) != 1 {
		t.Fatalf("unexpected day %+v", day)
	}
	if got := day.Games[0]; got.HomeTeam != "COL" || got.HomeAmericanOdds != -115 || got.AwayAmericanOdds != 102 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestServerMapsUpstreamFailureToBadGateway(t *testing.T) {
	provider := testutil.ProviderWithSlate()
	provider.ScheduleErr = errors.New("upstream down")
	srv := newServerWithProvider(testConfig(t), nil, provider)

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/api/predictions?date=2025-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestServerHistoryDisabledWithoutArchive(t *testing.T) {
	srv := newServerWithProvider(testConfig(t), nil, testutil.ProviderWithSlate())

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/api/predictions/history?date=2025-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestServerArchivesPredictions(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive = config.ArchiveConfig{Driver: archive.DriverSQLite, DSN: filepath.Join(cfg.Data.Dir, "history.db")}
	provider := testutil.ProviderWithSlate(testutil.SampleGame(7, "2025-01-02", "COL", "DAL"))
	srv := newServerWithProvider(cfg, nil, provider)
	defer srv.components.close(nil)

	if srv.components.archive == nil {
		t.Fatal("expected archive to open")
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/api/predictions?date=2025-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/api/predictions/history?date=2025-01-02", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var day predictions.Day
	testutil.DecodeJSON(t, rr, &day)
	if len(day.Games) != 1 || day.Games[0].GameID != 7 {
		t.Fatalf("unexpected history %+v", day)
	}
}

func TestServerAdminRouteRequiresToken(t *testing.T) {
	cfg := testConfig(t)
	srv := newServerWithProvider(cfg, nil, testutil.ProviderWithSlate())
	rr := testutil.Serve(srv.Handler(), http.MethodPost, "/admin/predictions/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	cfg.AdminToken = "secret"
	srv = newServerWithProvider(cfg, nil, testutil.ProviderWithSlate(testutil.SampleGame(1, "", "COL", "DAL")))
	req, _ := http.NewRequest(http.MethodPost, "/admin/predictions/refresh?date=2025-01-02&days=2", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr = testutil.ServeRequest(srv.Handler(), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	doc, err := snapshots.Load(cfg.Data.PredictionsPath)
	if err != nil {
		t.Fatalf("expected document written: %v", err)
	}
	if len(doc.Predictions) != 2 || doc.Predictions[1].Date != "2025-01-03" {
		t.Fatalf("unexpected document %+v", doc.Predictions)
	}

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/api/predictions/latest?date=2025-01-03", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestServerRefreshEnabledBuildsPoller(t *testing.T) {
	cfg := testConfig(t)
	if srv := newServerWithProvider(cfg, nil, testutil.ProviderWithSlate()); srv.poller != nil {
		t.Fatal("expected no poller when refresh is disabled")
	}

	cfg.Refresh = config.RefreshConfig{Enabled: true, Interval: time.Hour, Days: 1}
	srv := newServerWithProvider(cfg, nil, testutil.ProviderWithSlate())
	if srv.poller == nil {
		t.Fatal("expected poller when refresh is enabled")
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestSelectProvider(t *testing.T) {
	if _, ok := selectProvider(config.Config{Provider: "nhl"}, nil).(*nhl.Client); !ok {
		t.Fatal("expected nhl client")
	}
	if _, ok := selectProvider(config.Config{Provider: "fixture"}, nil).(*fixture.Provider); !ok {
		t.Fatal("expected fixture provider")
	}

	logger, buf := testutil.NewBufferLogger()
	if _, ok := selectProvider(config.Config{Provider: "unknown"}, logger).(*fixture.Provider); !ok {
		t.Fatal("expected fixture fallback")
	}
	if !strings.Contains(buf.String(), "unknown provider") {
		t.Fatalf("expected fallback warning, got %q", buf.String())
	}
}

func TestNewConstructsServer(t *testing.T) {
	cfg := testConfig(t)
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.metricsServer != nil {
		t.Fatal("expected no metrics server when metrics are disabled")
	}
}

func TestBuildCacheFallsBackToNoop(t *testing.T) {
	original := cacheOpener
	defer func() { cacheOpener = original }()
	cacheOpener = func(context.Context, config.CacheConfig) (cache.DayCache, error) {
		return nil, errors.New("connection refused")
	}

	if _, ok := buildCache(context.Background(), config.CacheConfig{}, nil).(cache.Noop); !ok {
		t.Fatal("expected noop cache when disabled")
	}

	logger, buf := testutil.NewBufferLogger()
	got := buildCache(context.Background(), config.CacheConfig{Enabled: true, RedisURL: "redis://localhost:1"}, logger)
	if _, ok := got.(cache.Noop); !ok {
		t.Fatalf("expected noop cache on failure, got %T", got)
	}
	if !strings.Contains(buf.String(), "redis cache unavailable") {
		t.Fatalf("expected warning, got %q", buf.String())
	}
}

func TestBuildArchiveDisablesOnFailure(t *testing.T) {
	if a := buildArchive(context.Background(), config.ArchiveConfig{}, nil); a != nil {
		t.Fatal("expected no archive without a driver")
	}
	if a := buildArchive(context.Background(), config.ArchiveConfig{Driver: "mysql", DSN: "x"}, nil); a != nil {
		t.Fatal("expected no archive for unsupported driver")
	}
}

func TestBuildComponentsToleratesBadTuning(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.TuningPath = filepath.Join(cfg.Data.Dir, "tuning.yaml")
	if err := writeFile(cfg.Model.TuningPath, "weights: [not, a, map]"); err != nil {
		t.Fatalf("write tuning: %v", err)
	}

	comps := buildComponents(context.Background(), cfg, nil)
	if comps.tuning.BookMargin != 0.03 {
		t.Fatalf("expected default margin, got %v", comps.tuning.BookMargin)
	}
	if comps.writer == nil || comps.writer.Path() != cfg.Data.PredictionsPath {
		t.Fatalf("unexpected writer %+v", comps.writer)
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &stubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.stopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.stopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownWithoutPoller(t *testing.T) {
	httpSrv := &testutil.StubHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, nil)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownStopsMetrics(t *testing.T) {
	metricsSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("metrics busy")}
	stopped := false
	srv := newServerWithDeps(config.Config{}, nil, &testutil.StubHTTPServer{}, nil)
	srv.metricsServer = metricsSrv
	srv.metricsStop = func(context.Context) error {
		stopped = true
		return errors.New("flush failed")
	}

	srv.gracefulShutdown()

	if !stopped {
		t.Fatal("expected metrics shutdown to run")
	}
	if metricsSrv.ShutdownCalls != 1 {
		t.Fatalf("expected metrics server Shutdown once, got %d", metricsSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &stubPoller{}
	blocking := &testutil.BlockingHTTPServer{Unblock: make(chan struct{})}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if p.stopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.stopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &stubPoller{err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.stopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.stopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, testutil.FailingHTTPServer(), &stubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &stubPoller{}
	httpSrv := testutil.ClosedHTTPServer()

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.startCalls != 1 {
		t.Fatalf("expected poller Start called once, got %d", plr.startCalls)
	}
	if plr.stopCalls != 1 {
		t.Fatalf("expected poller Stop called once, got %d", plr.stopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}
