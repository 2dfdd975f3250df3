// Command ingest loads developer survey CSV exports into the
// market_benchmarks collection.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/careeriq/internal/adapters/mq/queue"
	"github.com/okian/careeriq/internal/adapters/mq/worker"
	"github.com/okian/careeriq/internal/adapters/repository"
	"github.com/okian/careeriq/internal/config"
	"github.com/okian/careeriq/internal/domain/dedupe"
	"github.com/okian/careeriq/internal/domain/model"
	"github.com/okian/careeriq/pkg/logger"
)

// Ingestion pipeline configuration constants.
const (
	batchSize      = 1000
	queueCapacity  = 10000
	enqueueBackoff = 10 * time.Millisecond
	drainTimeout   = 5 * time.Minute
	defaultWorkers = 4
)

// Survey export column names.
const (
	colCountry    = "Country"
	colExperience = "WorkExp"
	colRole       = "DevType"
	colSalary     = "ConvertedCompYearly"
	colLanguages  = "LanguageHaveWorkedWith"
	colDatabases  = "DatabaseHaveWorkedWith"
	colPlatforms  = "PlatformHaveWorkedWith"
	colFrameworks = "WebframeHaveWorkedWith"
)

func main() {
	file := flag.String("file", "", "path to the survey CSV export")
	sourceYear := flag.Int("source-year", time.Now().Year(), "survey publication year")
	workers := flag.Int("workers", defaultWorkers, "number of insert workers")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()
	ctx := context.Background()

	if *file == "" {
		log.Error(ctx, "missing -file argument")
		os.Exit(1)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	store, err := repository.Connect(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Error(ctx, "failed to connect to store", logger.Error(err))
		os.Exit(1)
	}
	defer func() {
		_ = store.Close(context.Background())
	}()

	f, err := os.Open(*file)
	if err != nil {
		log.Error(ctx, "failed to open survey file", logger.Error(err))
		os.Exit(1)
	}
	defer f.Close()

	result, err := ingest(ctx, store, f, *sourceYear, *workers)
	if err != nil {
		log.Error(ctx, "ingestion failed", logger.Error(err))
		os.Exit(1)
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Error(ctx, "failed to ensure indexes", logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "ingestion complete",
		logger.Int("inserted", int(result.inserted)),
		logger.Int("skipped", result.skipped),
		logger.Int("duplicates", result.duplicates),
		logger.Int("sourceYear", *sourceYear),
	)
}

type ingestResult struct {
	inserted   int64
	skipped    int
	duplicates int
}

// ingest streams parsed rows through a bounded queue into a pool of
// batch-insert workers. Duplicate rows within the file are dropped.
func ingest(ctx context.Context, store worker.Inserter, r io.Reader, sourceYear, workers int) (ingestResult, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return ingestResult{}, err
	}
	cols := indexColumns(header)

	q := queue.NewInMemoryQueue(queue.WithCapacity(queueCapacity))
	pool := worker.NewPool(workers, q, store, worker.WithBatchSize(batchSize))
	pool.Start(ctx)

	deduper := dedupe.NewInMemoryDeduper()
	var res ingestResult

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			_ = q.Close()
			return res, err
		}
		rec, ok := parseRow(row, cols, sourceYear)
		if !ok {
			res.skipped++
			continue
		}
		if deduper.SeenAndRecord(ctx, dedupe.Fingerprint(rec)) {
			res.duplicates++
			continue
		}
		if err := enqueue(ctx, q, rec); err != nil {
			_ = q.Close()
			return res, err
		}
	}

	_ = q.Close()

	drainCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	if err := pool.Wait(drainCtx); err != nil {
		return res, err
	}
	res.inserted = pool.Inserted()
	return res, nil
}

// enqueue retries on backpressure until the queue accepts the record
// or ctx is canceled.
func enqueue(ctx context.Context, q queue.Queue, rec model.SurveyRecord) error {
	for !q.Enqueue(ctx, rec) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(enqueueBackoff):
		}
	}
	return nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func parseRow(row []string, cols map[string]int, sourceYear int) (model.SurveyRecord, bool) {
	country := field(row, cols, colCountry)
	role := firstSegment(field(row, cols, colRole))
	if country == "" || role == "" {
		return model.SurveyRecord{}, false
	}

	years, ok := parseExperience(field(row, cols, colExperience))
	if !ok {
		return model.SurveyRecord{}, false
	}

	salary, err := strconv.ParseFloat(field(row, cols, colSalary), 64)
	if err != nil || salary <= 0 {
		return model.SurveyRecord{}, false
	}

	return model.SurveyRecord{
		Country:         country,
		Role:            role,
		YearsExperience: years,
		Salary:          salary,
		Languages:       splitList(field(row, cols, colLanguages)),
		Databases:       splitList(field(row, cols, colDatabases)),
		Platforms:       splitList(field(row, cols, colPlatforms)),
		Frameworks:      splitList(field(row, cols, colFrameworks)),
		SourceYear:      sourceYear,
	}, true
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if v == "NA" {
		return ""
	}
	return v
}

// parseExperience normalizes the survey's free-form experience column.
func parseExperience(v string) (float64, bool) {
	switch v {
	case "":
		return 0, false
	case "Less than 1 year":
		return 0.5, true
	case "More than 50 years":
		return 50, true
	}
	years, err := strconv.ParseFloat(v, 64)
	if err != nil || years < 0 {
		return 0, false
	}
	return years, true
}

// firstSegment takes the first entry of a semicolon-separated value.
func firstSegment(v string) string {
	if i := strings.IndexByte(v, ';'); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
