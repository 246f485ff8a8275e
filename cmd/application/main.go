package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"plingsync/config"
	"plingsync/internal/pling/business/models"
	"plingsync/internal/pling/business/services"
	"plingsync/internal/pling/business/services/jobs"
	"plingsync/internal/pling/business/services/runner"
	"plingsync/internal/pling/clients"
	"plingsync/internal/pling/storage"
	"plingsync/metrics"
	"plingsync/pkg/dbconnect"
	"plingsync/pkg/dbconnect/postgres"
	"plingsync/pkg/logger"
	"plingsync/pkg/sheet"
)

func main() {
	_ = godotenv.Load()

	var (
		jobKind    = flag.String("job", "", "job kind: prices, stock, packages, product-translations, translations")
		file       = flag.String("file", "", "path to the CSV export")
		configPath = flag.String("config", "", "path to a yaml config file")
		server     = flag.String("server", "", "pling server base URL")
		key        = flag.String("key", "", "pling API key")
		locale     = flag.String("locale", "", "locale code, eg de_DE")
		workers    = flag.Int("workers", 0, "concurrent batch dispatchers (batching jobs only)")
		comma      = flag.String("comma", ",", "CSV field separator")
		encodingIn = flag.String("encoding", "", "source encoding: utf-8, windows-1251 or latin-1")
		metricsOn  = flag.String("metrics-listen", "", "optional address exposing prometheus metrics, eg :9090")
	)
	flag.Parse()

	cfg := config.FromEnv()
	if *configPath != "" {
		fileCfg, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
		overlay(cfg, fileCfg)
	}
	if *server != "" {
		cfg.Pling.Server = *server
	}
	if *key != "" {
		cfg.Pling.ApiKey = *key
	}
	if *locale != "" {
		cfg.Pling.Locale = *locale
	}
	if *workers > 0 {
		cfg.Pling.Workers = *workers
	}
	cfg.Pling.ApplyDefaults()

	if err := cfg.Pling.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if *jobKind == "" {
		log.Fatal("Missing -job")
	}
	if *file == "" {
		log.Fatal("Missing -file")
	}

	job, err := jobs.New(*jobKind, cfg.Pling.Locale, cfg.Pling.ChunkSize)
	if err != nil {
		log.Fatalf("Cannot start: %v", err)
	}

	rows, err := readRows(*file, *comma, *encodingIn)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	_log := logger.NewLogger(os.Stdout, "[plingsync]")
	_log.Log("read %d rows from %s", len(rows), *file)
	_log.Log("sending to %s", cfg.Pling.Server)

	if *metricsOn != "" {
		go func() {
			if err := http.ListenAndServe(*metricsOn, metrics.MetricsHandler()); err != nil {
				_log.Log("metrics endpoint stopped: %v", err)
			}
		}()
	}

	auth := services.NewTokenAuth(cfg.Pling.ApiKey)
	client := clients.NewBaseClient(cfg.Pling.Server, auth, os.Stdout, "[PlingClient]")

	r := runner.NewRunner(job, client, os.Stdout, runner.Config{
		Workers:          cfg.Pling.Workers,
		RequestRateLimit: cfg.Pling.RequestRateLimit,
		Progress: func(processed, total int) {
			_log.Log("progress %d/%d", processed, total)
		},
	})

	report := r.Run(context.Background(), rows)
	renderReport(_log, report)

	if cfg.Postgres.Enabled() {
		archiveReport(cfg.Postgres, report, _log)
	}

	if report.Status != models.RunSucceeded {
		os.Exit(1)
	}
}

func readRows(path, comma, sourceEncoding string) ([]models.Row, error) {
	separator := ','
	if comma != "" {
		separator = rune(comma[0])
	}
	processor, err := sheet.NewProcessor(separator, sourceEncoding)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetRows, err := processor.Extract(f)
	if err != nil {
		return nil, err
	}

	rows := make([]models.Row, 0, len(sheetRows))
	for _, sr := range sheetRows {
		rows = append(rows, models.NewRow(sr.LineNo, sr.Cells))
	}
	return rows, nil
}

// overlay copies non-empty yaml values over the env-derived base.
func overlay(base, file *config.AppConfig) {
	if file.Pling.Server != "" {
		base.Pling.Server = file.Pling.Server
	}
	if file.Pling.ApiKey != "" {
		base.Pling.ApiKey = file.Pling.ApiKey
	}
	if file.Pling.Locale != "" {
		base.Pling.Locale = file.Pling.Locale
	}
	if file.Pling.ChunkSize > 0 {
		base.Pling.ChunkSize = file.Pling.ChunkSize
	}
	if file.Pling.Workers > 0 {
		base.Pling.Workers = file.Pling.Workers
	}
	if file.Pling.RequestRateLimit > 0 {
		base.Pling.RequestRateLimit = file.Pling.RequestRateLimit
	}
	if file.Postgres.DBName != "" {
		base.Postgres = file.Postgres
	}
}

func renderReport(_log logger.Logger, report *models.RunReport) {
	switch {
	case report.Status == models.RunValidationFailed:
		_log.Log("your data contains %d invalid rows, nothing was sent:", len(report.Invalid))
		for _, row := range report.Invalid {
			_log.Log("  line %d %s: %s", row.LineNo, rowKey(row), row.ValidationMessage)
		}
	case report.Job == "translations":
		// The generic translation job reports every row, sent or not,
		// with its collected error list.
		for _, outcome := range report.Outcomes {
			_log.Log("  line %d %s: sent=%s errors=%s",
				outcome.Row.LineNo, rowKey(outcome.Row), sentFlag(outcome), outcome.Reason)
		}
	case report.Status == models.RunSyncFailed:
		_log.Log("some updates were not successful:")
		for _, outcome := range report.Failures {
			_log.Log("  line %d %s: %s", outcome.Row.LineNo, rowKey(outcome.Row), outcome.Reason)
		}
	default:
		_log.Log("all updates finished successfully")
	}
	_log.Log("total %d, sent %d, skipped %d, failed %d",
		report.Total, report.Sent, report.Skipped, report.Failed)
}

func sentFlag(outcome models.Outcome) string {
	if outcome.Status == models.RowSent {
		return "yes"
	}
	return "no"
}

func rowKey(row models.Row) string {
	for _, field := range []string{"sku", "parent_sku", "id"} {
		if !row.IsEmpty(field) {
			return field + "=" + row.String(field)
		}
	}
	return ""
}

func archiveReport(pgConfig config.PostgresConfig, report *models.RunReport, _log logger.Logger) {
	var connector dbconnect.Database = postgres.NewPgConnector(pgConfig)
	db, err := connector.Connect()
	if err != nil {
		_log.Log("run history not recorded: %v", err)
		return
	}
	defer db.Close()

	repo := storage.NewRunRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		_log.Log("run history not recorded: %v", err)
		return
	}
	if err := repo.SaveReport(report); err != nil {
		_log.Log("run history not recorded: %v", err)
		return
	}
	_log.Log("run recorded in history")
}
