package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"tradewatch/internal/collector"
	"tradewatch/internal/economy"
	"tradewatch/internal/export"
	"tradewatch/internal/platform/config"
	"tradewatch/internal/platform/logger"
	"tradewatch/internal/platform/metrics"
	"tradewatch/internal/policy"
	"tradewatch/internal/risk"
	"tradewatch/internal/storage"
	"tradewatch/internal/trade"
)

// main runs the one-shot pipeline: schema, reference data, sample and live
// collection, risk scoring, and the Excel workbook.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	skipData := flag.Bool("skip-data", false, "skip data collection")
	skipAnalysis := flag.Bool("skip-analysis", false, "skip risk analysis")
	skipExcel := flag.Bool("skip-excel", false, "skip the Excel workbook")
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

	ctx := context.Background()
	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	log.Info("creating schema", "database", cfg.DatabaseURL)
	if err := storage.CreateSchema(ctx, db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	log.Info("seeding reference countries")
	if err := storage.Seed(ctx, db); err != nil {
		return fmt.Errorf("seed countries: %w", err)
	}

	tradeStore := trade.NewStore(db)
	econStore := economy.NewStore(db)
	polStore := policy.NewStore(db)
	riskService := risk.NewService(tradeStore, econStore)

	if !*skipData {
		c := collector.New(tradeStore, econStore, polStore, log, cfg.StartYear, cfg.EndYear)
		c.WorldBank = cfg.Keys.WorldBank != ""
		c.FREDKey = cfg.Keys.FRED
		if err := c.Run(ctx); err != nil {
			return fmt.Errorf("collect data: %w", err)
		}
		log.Info("data collection complete")
	}

	g, gctx := errgroup.WithContext(ctx)
	if !*skipAnalysis {
		g.Go(func() error {
			log.Info("scoring country risk")
			assessments, err := riskService.Assessments(gctx, storage.Filter{})
			if err != nil {
				return fmt.Errorf("risk analysis: %w", err)
			}
			if err := risk.NewStore(db).Persist(gctx, assessments); err != nil {
				return fmt.Errorf("persist risk scores: %w", err)
			}
			log.Info("risk scores persisted", "countries", len(assessments))
			return nil
		})
	}
	if !*skipExcel {
		exporter := export.New(db, tradeStore, econStore, polStore, riskService, log, metrics.New(), cfg.OutputDir)
		g.Go(func() error {
			path, err := exporter.Build(gctx)
			if err != nil {
				return fmt.Errorf("excel workbook: %w", err)
			}
			log.Info("workbook ready", "path", path)
			return nil
		})
		g.Go(func() error {
			paths, err := exporter.Plots(gctx)
			if err != nil {
				return fmt.Errorf("chart plots: %w", err)
			}
			log.Info("charts rendered", "paths", paths)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("setup complete")
	return nil
}
