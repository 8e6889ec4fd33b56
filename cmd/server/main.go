package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adboard/adboard-go/internal/config"
	"github.com/adboard/adboard-go/internal/httpx"
	"github.com/adboard/adboard-go/internal/ingest"
	"github.com/adboard/adboard-go/internal/insights"
	"github.com/adboard/adboard-go/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		logger.Error("bad settings file, using defaults", slog.String("err", err.Error()))
	}

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewStore(settings)
	fetcher := ingest.NewFetcher(cl, cfg, logger)
	refresher := ingest.NewRefresher(fetcher, st, logger)

	var gen insights.Generator
	if cfg.InsightsAPIKey != "" {
		gen = insights.NewOpenAI(&http.Client{Timeout: 30 * time.Second}, cfg.InsightsURL, cfg.InsightsAPIKey, cfg.InsightsModel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// First cycle up front, then on the interval. Manual runs via POST
	// /refresh/run use the same path.
	go func() {
		refresher.Run(ctx)
		t := time.NewTicker(cfg.RefreshInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				refresher.Run(ctx)
			}
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpx.NewRouter(logger, refresher, st, gen),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shCtx)
	}()

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
