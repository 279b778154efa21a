package server

import (
	"context"
	"log/slog"
	"net/http"

	apppredictions "github.com/preston-bernstein/nhl-odds-service/internal/app/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/config"
	httpserver "github.com/preston-bernstein/nhl-odds-service/internal/http"
	"github.com/preston-bernstein/nhl-odds-service/internal/http/handlers"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/metrics"
	"github.com/preston-bernstein/nhl-odds-service/internal/model"
	"github.com/preston-bernstein/nhl-odds-service/internal/odds"
	"github.com/preston-bernstein/nhl-odds-service/internal/poller"
	"github.com/preston-bernstein/nhl-odds-service/internal/prediction"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *apppredictions.Service
	components    components
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, storage and refresher.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	comps := buildComponents(context.Background(), cfg, logger)
	orch := prediction.New(provider, comps.inputs, model.New(comps.tuning.Weights), odds.NewBook(comps.tuning.BookMargin),
		prediction.WithLogger(logger),
		prediction.WithMetrics(recorder),
	)
	svc := buildService(orch, comps, logger, recorder)

	loc := timeutil.LoadLocation(cfg.Timezone)
	var plr Poller
	if cfg.Refresh.Enabled {
		plr = poller.New(orch, comps.writer, logger, poller.Config{
			Interval: cfg.Refresh.Interval,
			Days:     cfg.Refresh.Days,
			Location: loc,
		})
	}
	httpSrv := buildHTTPServer(cfg, svc, orch, comps, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		components:    comps,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildService(orch *prediction.Orchestrator, comps components, logger *slog.Logger, recorder *metrics.Recorder) *apppredictions.Service {
	opts := []apppredictions.Option{
		apppredictions.WithCache(comps.cache),
		apppredictions.WithLogger(logger),
		apppredictions.WithMetrics(recorder),
	}
	if comps.archive != nil {
		opts = append(opts, apppredictions.WithArchive(comps.archive))
	}
	return apppredictions.NewService(orch, opts...)
}

func buildHTTPServer(cfg config.Config, svc *apppredictions.Service, orch *prediction.Orchestrator, comps components, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	loc := timeutil.LoadLocation(cfg.Timezone)

	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	routes := httpserver.Routes{
		API: handlers.NewHandler(svc, handlers.Config{
			Location:     loc,
			DocumentPath: cfg.Data.PredictionsPath,
			Status:       statusFn,
		}, logger),
		Static: handlers.NewStaticHandler(cfg.Data.StaticDir, logger),
	}
	// Admin endpoints are only mounted when a token is configured.
	if cfg.AdminToken != "" {
		routes.Admin = handlers.NewAdminHandler(orch, comps.writer, cfg.AdminToken, loc, logger)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpserver.NewRouter(routes, logger, recorder),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the refresher and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	s.components.close(s.logger)

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
