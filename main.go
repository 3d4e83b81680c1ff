package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-connection/config"
	"flight-connection/models"
	"flight-connection/scheduler"
	"flight-connection/scraper/flightaware"
	"flight-connection/scraper/wikipedia"
	"flight-connection/services"
	"flight-connection/storage"
	"flight-connection/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	watch := flag.Bool("watch", false, "re-run the estimate on SCHEDULE until interrupted")
	browser := flag.Bool("browser", false, "load flight pages in headless Chrome")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-watch] [-browser] <flight_code_leg_1> <flight_code_leg_2>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		return 2
	}
	leg1Code, leg2Code := flag.Arg(0), flag.Arg(1)

	// ================== Bootstrap ====================
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *browser {
		cfg.FetchMode = config.FetchModeBrowser
	}
	logger := utils.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Layover estimate for %s -> %s", leg1Code, leg2Code)
	logger.Info("Fetch mode: %s | Rate delay: %dms | Retries: %d",
		cfg.FetchMode, cfg.RateLimitDelay, cfg.MaxRetries)

	// =============== Airline codes ===================================
	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	airlines, err := storage.LoadAirlineTable(ctx,
		storage.NewAirlineCache(cfg.AirlineCodesFile),
		wikipedia.NewScraper(cfg.AirlineCodesURL, timeout, logger),
		logger)
	if err != nil {
		// Non-fatal: codes are then only stripped and validated
		logger.Warn("Airline code table unavailable, IATA codes will not be converted: %v", err)
	} else {
		logger.Info("Airline code table: %d airlines", airlines.Len())
	}

	// =================== Storage ========================================
	var stores []storage.EstimateStorage
	if cfg.CSVFilePath != "" {
		stores = append(stores, storage.NewCSVWriter(cfg.CSVFilePath, logger))
	}
	if cfg.DatabaseURL != "" {
		pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL: %v", err)
			return 1
		}
		defer pgWriter.Close()

		if err := pgWriter.Migrate(ctx); err != nil {
			logger.Error("Failed to migrate DB schema: %v", err)
			return 1
		}
		stores = append(stores, pgWriter)
	}

	// =============== Estimator ===================================
	fetcher := flightaware.NewScraper(cfg, flightaware.NewLoader(cfg), logger)
	policy := services.ExhaustedFail
	if cfg.ExhaustedPolicy == config.ExhaustedSkip {
		policy = services.ExhaustedSkip
	}
	estimator := services.NewEstimator(fetcher, airlines, services.EstimatorOptions{
		Policy:           policy,
		TightThreshold:   time.Duration(cfg.TightConnectionMin) * time.Minute,
		RateLimitDelayMs: cfg.RateLimitDelay,
	}, logger)

	job := func(ctx context.Context) error {
		est, err := estimator.Estimate(ctx, leg1Code, leg2Code)
		if err != nil {
			return err
		}
		services.PrintEstimateReport(os.Stdout, est)
		return save(ctx, stores, est, logger)
	}

	// ==== One-shot ============================
	if !*watch {
		if err := job(ctx); err != nil {
			logger.Error("%v", err)
			return 1
		}
		return 0
	}

	// ==== Watch ============================
	watcher := scheduler.New(fmt.Sprintf("%s/%s", leg1Code, leg2Code), cfg.Schedule, job, logger)
	if err := watcher.RunOnce(ctx); err != nil {
		logger.Error("%v", err)
	}
	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Watcher failed: %v", err)
		return 1
	}
	s := watcher.Stats()
	logger.Info("Stopped after %d successful and %d failed runs", s.Succeeded, s.Failed)
	return 0
}

// save fans est out to every store. CSV failures are only logged.
func save(ctx context.Context, stores []storage.EstimateStorage, est *models.Estimate, logger *utils.Logger) error {
	for _, st := range stores {
		err := st.SaveEstimate(ctx, est)
		if err == nil {
			continue
		}
		if _, ok := st.(*storage.CSVWriter); ok {
			logger.Error("Failed to write CSV: %v", err)
			// Non-fatal: continue to DB storage
			continue
		}
		return fmt.Errorf("failed to store estimate %s: %w", est.ID, err)
	}
	return nil
}
