package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/corpatlas-org/corpatlas/api"
	"github.com/corpatlas-org/corpatlas/config"
	"github.com/corpatlas-org/corpatlas/dataset"
	"github.com/corpatlas-org/corpatlas/engine"
	"github.com/corpatlas-org/corpatlas/logger"
)

// ============================================================================
// CORPATLAS CLI — Query the global companies dataset
// ============================================================================

const version = "0.1.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "Path to YAML config file")
	filePath := flag.String("file", "", "Path to companies CSV (overrides config)")
	snapshotPath := flag.String("snapshot", "", "Path to SQLite snapshot to load instead of CSV")
	continent := flag.String("continent", "", "Continent filter for ranking")
	metricStr := flag.String("metric", "", "Ranking metric: sales, profits, assets, market_value")
	topN := flag.Int("top", 0, "Top N companies (5-50)")
	xAxis := flag.String("x", "sales", "Scatter/correlation X metric")
	yAxis := flag.String("y", "profits", "Scatter/correlation Y metric")
	format := flag.String("format", "json", "Output format: json, pretty, text, csv")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	serve := flag.Bool("serve", false, "Run the HTTP API server")
	importSnapshot := flag.String("import-snapshot", "", "Import the CSV into a SQLite snapshot at this path and exit")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `corpatlas — query layer for the global companies dataset

Usage:
  corpatlas --file companies.csv --continent Asia --metric profits --top 10
  corpatlas --file companies.csv --continent Europe --metric sales --top 25 --format csv --out top25.csv
  corpatlas --file companies.csv --import-snapshot companies.db
  corpatlas --snapshot companies.db --serve
  corpatlas --config config.yaml --serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  CORPATLAS_PORT, CORPATLAS_CSV_PATH, CORPATLAS_SNAPSHOT_PATH,
  CORPATLAS_LOG_LEVEL, CORPATLAS_LOG_FORMAT, CORPATLAS_LOG_FILE
  (.env files are loaded when present)

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  text      Human-readable summary only
  csv       Ranked table as CSV (ready for Sheets/Excel)
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("corpatlas %s\n", version)
		os.Exit(0)
	}

	// .env is optional; real environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("Config: %v", err)
	}
	if *filePath != "" {
		cfg.Data.CSVPath = *filePath
	}
	if *snapshotPath != "" {
		cfg.Data.SnapshotPath = *snapshotPath
	}

	log := logger.New(cfg.Logging)

	// ── Load dataset (once per process) ───────────────────────────────────
	ds, err := loadDataset(cfg, *snapshotPath != "")
	if err != nil {
		fatalf("Dataset: %v", err)
	}
	log.WithFields(logger.Fields{
		"records":    ds.Len(),
		"continents": len(ds.Continents()),
	}).Info("dataset loaded")

	// ── Import mode ───────────────────────────────────────────────────────
	if *importSnapshot != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := dataset.ImportSnapshot(ctx, *importSnapshot, ds); err != nil {
			fatalf("Import snapshot: %v", err)
		}
		log.WithField("path", *importSnapshot).Info("snapshot imported")
		return
	}

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		runServer(cfg, ds, log)
		return
	}

	// ── Query mode: one invocation, one query ─────────────────────────────
	params, err := buildParams(cfg, *continent, *metricStr, *topN, *xAxis, *yAxis, ds)
	if err != nil {
		fatalf("Parameters: %v", err)
	}

	result, err := engine.Execute(params, ds,
		engine.WithLogger(logger.WithComponent(log, "engine")),
	)
	if err != nil {
		fatalf("Query: %v", err)
	}

	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	renderResult(writer, result, *format)
}

// loadDataset picks the configured source: SQLite snapshot when requested or
// configured without a CSV, memoized CSV loader otherwise.
func loadDataset(cfg config.Config, preferSnapshot bool) (*dataset.Dataset, error) {
	useSnapshot := cfg.Data.SnapshotPath != "" && (preferSnapshot || cfg.Data.CSVPath == "")
	if useSnapshot {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return dataset.OpenSnapshot(ctx, cfg.Data.SnapshotPath)
	}
	return dataset.NewLoader(cfg.Data.CSVPath).Load()
}

// buildParams merges flags over config defaults.
func buildParams(cfg config.Config, continent, metricStr string, topN int, xAxis, yAxis string, ds *dataset.Dataset) (engine.Params, error) {
	params := engine.Params{
		Continent: cfg.Defaults.Continent,
		TopN:      cfg.Defaults.TopN,
	}

	metricName := cfg.Defaults.Metric
	if metricStr != "" {
		metricName = metricStr
	}
	metric, err := engine.ParseMetric(metricName)
	if err != nil {
		return params, err
	}
	params.Metric = metric

	if continent != "" {
		params.Continent = continent
	}
	if params.Continent == "" {
		if continents := ds.Continents(); len(continents) > 0 {
			params.Continent = continents[0]
		}
	}
	if topN != 0 {
		params.TopN = topN
	}

	if params.XAxis, err = engine.ParseMetric(xAxis); err != nil {
		return params, err
	}
	if params.YAxis, err = engine.ParseMetric(yAxis); err != nil {
		return params, err
	}

	return params, nil
}

// runServer blocks until SIGINT/SIGTERM, then drains and exits.
func runServer(cfg config.Config, ds *dataset.Dataset, log *logrus.Logger) {
	defaults := api.Defaults{
		Continent: cfg.Defaults.Continent,
		TopN:      cfg.Defaults.TopN,
	}
	if m, err := engine.ParseMetric(cfg.Defaults.Metric); err == nil {
		defaults.Metric = m
	}

	handler := api.NewHandler(ds, defaults, logger.WithComponent(log, "api"))
	server := api.NewServer(handler, cfg.Server.Port, logger.WithComponent(log, "http"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.WithField("port", cfg.Server.Port).Info("api listening")
		return server.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("server stopped")
	}
}

// ============================================================================
// OUTPUT RENDERING
// ============================================================================

func renderResult(w *os.File, result *engine.Result, format string) {
	switch format {
	case "csv":
		writeTableCSV(w, result.Table)
	case "text":
		fmt.Fprintln(w, result.Summary)
		for _, row := range result.Ranked {
			fmt.Fprintf(w, "%3d. %-40s %10.2f  (%s)\n", row.Rank, row.Company, row.Value, row.Country)
		}
		fmt.Fprintln(w, result.Relationship)
		fmt.Fprintf(w, "Average Sales: %.2fB | Average Profit: %.2fB\n",
			result.Means["Sales"], result.Means["Profit"])
	case "pretty":
		writeJSON(w, result, true)
	default:
		writeJSON(w, result, false)
	}
}

func writeTableCSV(w *os.File, table *engine.TableData) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if table == nil || len(table.Columns) == 0 {
		cw.Write([]string{"Result", "No data"})
		return
	}

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
}

func writeJSON(w *os.File, v interface{}, pretty bool) {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
