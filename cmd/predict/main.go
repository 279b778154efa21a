package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nhl-odds-service/internal/archive"
	"github.com/preston-bernstein/nhl-odds-service/internal/config"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
	"github.com/preston-bernstein/nhl-odds-service/internal/logging"
	"github.com/preston-bernstein/nhl-odds-service/internal/model"
	"github.com/preston-bernstein/nhl-odds-service/internal/odds"
	"github.com/preston-bernstein/nhl-odds-service/internal/prediction"
	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
	"github.com/preston-bernstein/nhl-odds-service/internal/report"
	"github.com/preston-bernstein/nhl-odds-service/internal/server"
	"github.com/preston-bernstein/nhl-odds-service/internal/snapshots"
	"github.com/preston-bernstein/nhl-odds-service/internal/store"
	"github.com/preston-bernstein/nhl-odds-service/internal/timeutil"
)

const (
	appVersion = "dev"
	usageLine  = "usage: predict [--days N] [YYYY-MM-DD]"

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("invalid arguments")

// deps are the collaborators run needs; zero values are filled from cfg.
type deps struct {
	cfg      config.Config
	logger   *slog.Logger
	provider providers.DataProvider
	now      func() time.Time
	newRunID func() string
}

type options struct {
	date string
	days int
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "nhl-predict",
		Version: appVersion,
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, deps{cfg: cfg, logger: logger})
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, d deps) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		// The flag package prints its own usage; date errors need ours.
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usageLine)
		}
		return exitUsage
	}

	if d.now == nil {
		d.now = time.Now
	}
	if d.newRunID == nil {
		d.newRunID = uuid.NewString
	}
	if d.provider == nil {
		d.provider = server.NewProvider(d.cfg, d.logger)
	}
	if opts.date == "" {
		opts.date = timeutil.Tomorrow(d.now(), timeutil.LoadLocation(d.cfg.Timezone))
	}

	tuning, err := model.LoadTuning(d.cfg.Model.TuningPath)
	if err != nil {
		fmt.Fprintf(stderr, "load tuning: %v\n", err)
		return exitError
	}
	orch := prediction.New(
		d.provider,
		store.NewFileStore(d.cfg.Data.GoaliesPath, d.cfg.Data.InjuriesPath),
		model.New(tuning.Weights),
		odds.NewBook(tuning.BookMargin),
		prediction.WithLogger(d.logger),
	)

	runID := d.newRunID()
	days, err := orch.RunRange(logging.WithLogger(ctx, d.logger), opts.date, opts.days)
	if err != nil {
		fmt.Fprintf(stderr, "prediction failed: %v\n", err)
		return exitError
	}

	writer := snapshots.NewWriter(d.cfg.Data.PredictionsPath)
	size, err := writer.WriteDocument(predictions.NewDocument(runID, d.now(), days...))
	if err != nil {
		fmt.Fprintf(stderr, "write predictions: %v\n", err)
		return exitError
	}
	recordHistory(ctx, d, runID, days)

	err = report.Write(stdout, days, report.Options{
		Color: report.ColorEnabled(stdout),
		Path:  writer.Path(),
		Bytes: size,
	})
	if err != nil {
		return exitError
	}
	return exitOK
}

// parseArgs accepts flags before or after the optional date.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	days := fs.Int("days", 1, fmt.Sprintf("consecutive dates to price (1-%d)", prediction.MaxRangeDays))
	fs.Usage = func() {
		fmt.Fprintln(stderr, usageLine)
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return options{}, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}

	opts := options{days: prediction.ClampDays(*days)}
	switch len(positional) {
	case 0:
	case 1:
		if _, err := timeutil.ParseDate(positional[0]); err != nil {
			return options{}, fmt.Errorf("%w: date %q", errUsage, positional[0])
		}
		opts.date = positional[0]
	default:
		return options{}, fmt.Errorf("%w: unexpected %q", errUsage, positional[1])
	}
	return opts, nil
}

// recordHistory mirrors the run into the archive when one is configured. Failures only warn.
func recordHistory(ctx context.Context, d deps, runID string, days []predictions.Day) {
	if d.cfg.Archive.Driver == "" {
		return
	}
	a, err := archive.Open(ctx, d.cfg.Archive.Driver, d.cfg.Archive.DSN)
	if err != nil {
		logging.Warn(d.logger, "prediction archive unavailable", "err", err)
		return
	}
	defer a.Close()
	for _, day := range days {
		if err := a.Record(ctx, runID, day); err != nil {
			logging.Warn(d.logger, "archive record failed", logging.FieldDate, day.Date, "err", err)
		}
	}
}
