package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradewatch/internal/collector"
	"tradewatch/internal/dashboard"
	"tradewatch/internal/economy"
	"tradewatch/internal/platform/config"
	"tradewatch/internal/platform/httpserver"
	"tradewatch/internal/platform/logger"
	"tradewatch/internal/platform/metrics"
	"tradewatch/internal/policy"
	"tradewatch/internal/risk"
	"tradewatch/internal/scenario"
	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	seed := flag.Bool("seed", false, "populate an empty database with sample data before serving")
	flag.Parse()

	cfg := config.FromEnv()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		loaded.ApplyEnv()
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := storage.CreateSchema(ctx, db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := storage.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed countries: %w", err)
	}

	tradeStore := trade.NewStore(db)
	econStore := economy.NewStore(db)
	polStore := policy.NewStore(db)
	scenStore := scenario.NewStore(db)

	if *seed {
		count, err := tradeStore.Count(ctx)
		if err != nil {
			return fmt.Errorf("check trade data: %w", err)
		}
		if count == 0 {
			c := collector.New(tradeStore, econStore, polStore, log, cfg.StartYear, cfg.EndYear)
			c.WorldBank = cfg.Keys.WorldBank != ""
			c.FREDKey = cfg.Keys.FRED
			if err := c.Run(ctx); err != nil {
				return fmt.Errorf("collect data: %w", err)
			}
		}
	}

	m := metrics.New()
	handler := dashboard.NewHandler(dashboard.Deps{
		DB:        db,
		Trade:     trade.NewService(tradeStore),
		TradeRows: tradeStore,
		Economy:   economy.NewService(econStore),
		EconRows:  econStore,
		Policies:  policy.NewService(polStore),
		PolRows:   polStore,
		Risks:     risk.NewService(tradeStore, econStore),
		Scenarios: scenario.NewService(scenStore, econStore),
		Metrics:   m,
		Logger:    log,
		StaticDir: cfg.StaticDir,
	})

	srv := httpserver.New(cfg.Addr(), handler.Routes())
	log.Info("starting dashboard server", "addr", cfg.Addr(), "database", cfg.DatabaseURL)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
