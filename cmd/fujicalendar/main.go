package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/yuru-sha/fuji-calendar-sub004/internal/align"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/api"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/config"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/ephemeris"
	"github.com/yuru-sha/fuji-calendar-sub004/internal/site"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cancel, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cancel context.CancelFunc, stdout io.Writer) error {
	// Optional .env file; plain environment variables apply when absent.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	sites, err := site.Load(cfg.SitesFile, logger)
	if err != nil {
		return fmt.Errorf("loading sites: %w", err)
	}
	logger.Info("loaded sites", "count", len(sites), "file", cfg.SitesFile)

	engine, err := align.NewEngine(cfg.Engine(), ephemeris.NewSunCalc(), align.FujiSummit, cfg.Location(), logger)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}

	start, err := cfg.Start(time.Now())
	if err != nil {
		return err
	}
	logger.Info("scan plan",
		"start", start.Format(time.DateOnly),
		"days", cfg.Days,
		"sites", len(sites),
		"interval", cfg.Engine().SearchInterval.String(),
	)

	srv := api.NewServer(cfg.HTTPAddr, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting ops listener", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops listener: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.HTTPServer().Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		// The batch is the unit of work; once it's written out, stop the
		// listener and exit.
		defer cancel()

		results := engine.SearchBatch(gctx, align.BatchRequest{
			Sites: sites,
			Start: start,
			Days:  cfg.Days,
		})

		var found int
		for _, r := range results {
			found += len(r.Events)
		}
		logger.Info("batch complete", "work_items", len(results), "events", found)

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		return nil
	})

	return g.Wait()
}
