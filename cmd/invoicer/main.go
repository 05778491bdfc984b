package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	appbilling "github.com/usagebill/invoicer/internal/application/billing"
	"github.com/usagebill/invoicer/internal/domain/billing"
	"github.com/usagebill/invoicer/internal/infrastructure/config"
	"github.com/usagebill/invoicer/internal/infrastructure/ingest"
	"github.com/usagebill/invoicer/internal/infrastructure/logger"
	"github.com/usagebill/invoicer/internal/interfaces/cli"
)

func main() {
	// Parse flags
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// Resolve input path: explicit argument, else configured default,
	// else a usage.json next to the working directory
	inputPath := resolveInputPath(flag.Args(), cfg)

	// Pricing schedule comes from configuration; defaults match the
	// standard schedule in the billing domain
	schedule, err := cfg.Pricing.Schedule()
	if err != nil {
		log.Fatal("Invalid pricing configuration", zap.Error(err))
	}

	service := appbilling.NewInvoiceRunService(
		ingest.NewRecordLoader(ingest.WithMaxReasons(cfg.Ingest.MaxReasons)),
		billing.NewCalculator(schedule),
		log,
	)

	run, err := service.RunFile(inputPath)
	if err != nil {
		// Batch-level failure: no partial results, non-zero exit
		log.Error("Batch load failed", zap.String("input", inputPath), zap.Error(err))
		if errors.Is(err, ingest.ErrInputNotFound) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v (input %s)\n", err, inputPath)
		}
		os.Exit(1)
	}

	// A completed run exits zero even when every entry was rejected
	renderer := cli.NewRenderer(os.Stdout)
	if err := renderer.RenderRun(run); err != nil {
		log.Error("Failed to render run", zap.Error(err))
		os.Exit(1)
	}
}

// resolveInputPath picks the usage file for this run
func resolveInputPath(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if _, err := os.Stat(cfg.Ingest.InputPath); err == nil {
		return cfg.Ingest.InputPath
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, "usage.json")
	}
	return cfg.Ingest.InputPath
}

func printUsage() {
	fmt.Println(`Usage Invoicer

Usage:
  invoicer [flags] [input-file]

Reads a JSON array of usage entries, prints one invoice line per valid
entry and one rejection line per malformed entry. Exits 0 on any
completed run, 1 only when the input cannot be loaded at all.

Flags:
  -log-level string     Log level: debug, info, warn, error (overrides config)

Configuration:
  config.toml in the working directory, overridden by INVOICER_* environment
  variables (e.g. INVOICER_LOG_LEVEL, INVOICER_INGEST_INPUT_PATH).

Examples:
  # Invoice the default usage.json
  invoicer

  # Invoice a specific file with debug logging
  invoicer -log-level debug testdata/usage.json`)
}
