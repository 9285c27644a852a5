// Command crossrate converts an amount between currencies through a chain of exchange rates.
//
// Usage:
//
//	crossrate [flags] FILE...
//	crossrate history [-n N] [-journal-dir DIR]
//	crossrate setup
//
// Each FILE holds one conversion request followed by the known exchange rates.
// The rounded result of every file is printed on its own line, in argument order.
//
// Optional environment variables (also read from .env):
//
//	CROSSRATE_LOG_LEVEL, CROSSRATE_JOURNAL_DIR, CROSSRATE_JOURNAL, CROSSRATE_METRICS_FILE
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/crossrate/config"
	"github.com/vadiminshakov/crossrate/internal/converter"
	"github.com/vadiminshakov/crossrate/internal/domain"
	"github.com/vadiminshakov/crossrate/internal/input"
	"github.com/vadiminshakov/crossrate/internal/logger"
	"github.com/vadiminshakov/crossrate/internal/metrics"
	"github.com/vadiminshakov/crossrate/internal/render"
	"github.com/vadiminshakov/crossrate/internal/setup"
	"github.com/vadiminshakov/crossrate/internal/storage/journal"
	"github.com/vadiminshakov/crossrate/pkg/retrier"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

const usageText = `Usage:
  crossrate [flags] FILE...
  crossrate history [-n N] [-journal-dir DIR]
  crossrate setup

File should be formatted the following way:
EUR;550;JPY
6
AUD;CHF;0.9661
JPY;KRW;13.1151
EUR;CHF;1.2053
AUD;JPY;86.0305
EUR;USD;1.2989
JPY;INR;0.6571

First line means that you want to convert 550 EUR to JPY.
Second line means that you will provide 6 exchange rates.
Following lines are the exchange rates, for example 4th line means that you can exchange 1 JPY for 13.1151 KRW.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "history":
			return runHistory(args[1:], stdout, stderr)
		case "setup":
			return runSetup(stderr)
		}
	}
	return runConvert(ctx, args, stdout, stderr)
}

// result outcome of one input file.
type result struct {
	conv domain.Conversion
	err  error
}

func runConvert(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Get("crossrate", config.Convert, args, stderr, usageText)
	if err != nil {
		return configError(err, stderr)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	m := metrics.New()
	var svc converter.Service = converter.NewService()
	svc = converter.NewInstrumentingService(m, svc)
	if cfg.Journal {
		store, err := journal.NewWALStore(cfg.JournalDir)
		if err != nil {
			log.Error("failed to open conversion journal", zap.String("dir", cfg.JournalDir), zap.Error(err))
			fmt.Fprintln(stderr, render.Failure(cfg.JournalDir, err))
			return exitFailed
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("failed to close conversion journal", zap.Error(err))
			}
		}()
		svc = converter.NewJournalingService(store, log, svc)
	}
	svc = converter.NewLoggingService(log, svc)

	opts := input.Options{
		RejectDuplicatePairs: cfg.RejectDuplicatePairs,
		Retrier: retrier.New(
			retrier.WithMaxRetries(cfg.ReadRetries),
			retrier.WithInitialInterval(cfg.ReadRetryInterval),
			retrier.WithRetryIf(input.IsTransient),
		),
	}

	results := convertAll(ctx, log, svc, m, cfg.Files, cfg.Concurrency, opts)

	code := exitOK
	for i, res := range results {
		path := cfg.Files[i]
		if res.err != nil {
			code = exitFailed
			fmt.Fprintln(stderr, render.Failure(path, res.err))
			continue
		}
		if cfg.Explain {
			fmt.Fprintln(stdout, render.Explain(path, res.conv))
			continue
		}
		fmt.Fprintln(stdout, render.Amount(res.conv))
	}

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Error("failed to write metrics", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}

	return code
}

// convertAll converts every file independently, at most limit at a time.
// Results keep the order of files.
func convertAll(ctx context.Context, log *zap.Logger, svc converter.Service, m *metrics.Metrics,
	files []string, limit int, opts input.Options) []result {
	results := make([]result, len(files))

	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, path := range files {
		g.Go(func() error {
			begin := time.Now()
			doc, err := input.Load(ctx, path, opts)
			if err != nil {
				log.Warn("failed to read input", zap.String("file", path), zap.Error(err))
				m.ObserveConversion(converter.Outcome(err), 0, time.Since(begin))
				results[i] = result{err: err}
				return nil
			}

			conv, err := svc.Convert(converter.WithOrigin(ctx, path), doc.Quotes, doc.Request)
			results[i] = result{conv: conv, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func runHistory(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Get("crossrate history", config.History, args, stderr, usageText)
	if err != nil {
		return configError(err, stderr)
	}

	store, err := journal.NewWALStore(cfg.JournalDir)
	if err != nil {
		fmt.Fprintln(stderr, render.Failure(cfg.JournalDir, err))
		return exitFailed
	}
	defer store.Close()

	records, err := store.Last(cfg.Limit)
	if err != nil {
		fmt.Fprintln(stderr, render.Failure(cfg.JournalDir, err))
		return exitFailed
	}

	fmt.Fprintln(stdout, render.History(records))
	return exitOK
}

func runSetup(stderr io.Writer) int {
	if err := setup.RunTUI(setup.DefaultFilename); err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, setup.ErrCancelled) {
			return exitOK
		}
		return exitFailed
	}
	return exitOK
}

func configError(err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	fmt.Fprintln(stderr, err)
	if errors.Is(err, config.ErrUsage) {
		fmt.Fprint(stderr, usageText)
	}
	return exitUsage
}
