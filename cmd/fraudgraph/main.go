// fraudgraph runs the fraud-ring transaction-graph analysis engine.
//
// Two modes:
//
//	fraudgraph analyze -input batch.json [-output report.json]
//	    Runs one analysis pass over a JSON transaction batch and prints the
//	    report. The out-of-scope CSV ingestor is assumed to have already
//	    produced batch.json; this command never reads CSV directly.
//
//	fraudgraph serve
//	    Starts the optional HTTP status surface (internal/statusapi) so a
//	    long-running batch can be submitted and watched over HTTP/WebSocket
//	    instead of run once from the command line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fraudgraph/engine/internal/archive"
	"github.com/fraudgraph/engine/internal/config"
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/engine"
	"github.com/fraudgraph/engine/internal/statusapi"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: fraudgraph <analyze|serve> [flags]")
	fmt.Println()
	fmt.Println("  analyze -input batch.json [-output report.json] [-config fraudgraph.yaml]")
	fmt.Println("      run one analysis pass and print the report")
	fmt.Println()
	fmt.Println("  serve [-config fraudgraph.yaml]")
	fmt.Println("      start the HTTP status/control surface")
}

func setupLogger(appCfg config.AppConfig) *slog.Logger {
	level := slog.LevelInfo
	switch appCfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if os.Getenv("FRAUDGRAPH_DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if appCfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func loadAppConfig(path string) config.AppConfig {
	loader, err := config.NewLoader(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return loader.Config()
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	input := fs.String("input", "-", "path to a JSON transaction batch, or - for stdin")
	output := fs.String("output", "-", "path to write the JSON report, or - for stdout")
	configPath := fs.String("config", "", "optional YAML config file")
	archivePath := fs.String("archive", "", "optional SQLite path to save the report under (disabled if empty)")
	_ = fs.Parse(args)

	appCfg := loadAppConfig(*configPath)
	logger := setupLogger(appCfg)

	var reader io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			logger.Error("failed to open input", "path", *input, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	}

	var req struct {
		Transactions []domain.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(reader).Decode(&req); err != nil {
		logger.Error("failed to decode transaction batch", "error", err)
		os.Exit(1)
	}

	engineCfg := appCfg.Engine.ToDomain()
	engineCfg.ProgressCallback = func(stage domain.Stage, message string, percent float64) {
		logger.Info("stage progress", "stage", stage, "message", message, "percent", percent)
	}

	result, err := engine.New(engineCfg).Analyze(context.Background(), req.Transactions)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	logger.Info("analysis complete",
		"run_id", result.RunID,
		"suspicious_accounts", result.Report.Summary.SuspiciousAccountsFlagged,
		"fraud_rings", result.Report.Summary.FraudRingsDetected,
		"processing_time_seconds", result.Report.Summary.ProcessingTimeSeconds,
	)

	if *archivePath != "" {
		store, err := archive.Open("sqlite", *archivePath)
		if err != nil {
			logger.Error("failed to open archive", "error", err)
		} else {
			defer store.Close()
			if err := store.SaveReport(context.Background(), result.RunID, result.Report); err != nil {
				logger.Error("failed to archive report", "error", err)
			}
		}
	}

	payload, err := json.MarshalIndent(result.Report, "", "  ")
	if err != nil {
		logger.Error("failed to encode report", "error", err)
		os.Exit(1)
	}

	if *output == "-" {
		fmt.Println(string(payload))
		return
	}
	if err := os.WriteFile(*output, payload, 0o644); err != nil {
		logger.Error("failed to write report", "path", *output, "error", err)
		os.Exit(1)
	}
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "optional YAML config file")
	_ = fs.Parse(args)

	appCfg := loadAppConfig(*configPath)
	logger := setupLogger(appCfg)

	logger.Info("starting fraudgraph", "version", Version)

	var store *archive.Store
	if appCfg.Archive.Driver != "" {
		target := appCfg.Archive.SQLitePath
		if appCfg.Archive.Driver == "postgres" {
			target = appCfg.Archive.PostgresDSN
		}
		var err error
		store, err = archive.Open(appCfg.Archive.Driver, target)
		if err != nil {
			logger.Error("failed to open report archive, continuing without it", "error", err)
			store = nil
		} else {
			defer store.Close()
			logger.Info("report archive ready", "driver", appCfg.Archive.Driver)
		}
	}

	engineCfg := appCfg.Engine.ToDomain()
	srv := statusapi.NewServer(appCfg.Server.Host, appCfg.Server.Port, engineCfg, store, Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	printBanner(appCfg, Version)

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	logger.Info("fraudgraph shutdown complete")
}

func printBanner(appCfg config.AppConfig, version string) {
	fmt.Println()
	fmt.Println("  fraudgraph - fraud-ring transaction-graph analysis engine")
	fmt.Printf("  version %s\n", version)
	fmt.Printf("  listening on http://%s:%d\n", appCfg.Server.Host, appCfg.Server.Port)
	fmt.Println()
	fmt.Println("  endpoints:")
	fmt.Println("    POST /analyze       - run one analysis pass over a transaction batch")
	fmt.Println("    GET  /runs          - list archived runs")
	fmt.Println("    GET  /runs/{id}     - fetch an archived report")
	fmt.Println("    GET  /ws/progress   - stream stage progress over a websocket")
	fmt.Println("    GET  /healthz       - liveness probe")
	fmt.Println("    GET  /readyz        - readiness probe")
	fmt.Println("    GET  /metrics       - Prometheus metrics")
	fmt.Println()
}
