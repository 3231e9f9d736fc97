package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/storage/postgres"
)

func main() {
	var (
		dataDir     string
		pattern     string
		databaseURL string
		batchSize   int
		expected    uint
		dryRun      bool
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing catalog dumps")
	flag.StringVar(&pattern, "pattern", "*.jsonl.gz", "glob matching catalog dump files inside data-dir")
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.IntVar(&batchSize, "batch-size", 500, "items per upsert batch")
	flag.UintVar(&expected, "expected-items", 1_000_000, "expected number of distinct items, sizes the bloom filter")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and deduplicate without writing to the database")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" && !dryRun {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := options{batchSize: batchSize, expectedItems: expected}
	if err := run(ctx, filepath.Join(dataDir, pattern), databaseURL, dryRun, opts); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, glob, databaseURL string, dryRun bool, opts options) error {
	files, err := filepath.Glob(glob)
	if err != nil {
		return errors.Wrapf(err, "match %s", glob)
	}
	if len(files) == 0 {
		return errors.Errorf("no files match %s", glob)
	}

	var w itemWriter = discardWriter{}
	if !dryRun {
		slog.Info("connecting to database")

		pool, err := postgres.NewPool(ctx, databaseURL)
		if err != nil {
			return errors.Wrap(err, "connect to database")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}
		w = postgres.NewCatalogWriter(pool)
	}

	slog.Info("ingesting catalog dumps", slog.Int("files", len(files)), slog.Bool("dry_run", dryRun))

	in := newIngester(w, opts)
	if err := in.ingestFiles(ctx, files); err != nil {
		return err
	}

	s := in.stats()
	slog.Info("ingest summary",
		slog.Int64("lines", s.lines),
		slog.Int64("written", s.written),
		slog.Int64("duplicates", s.duplicates),
		slog.Int64("invalid", s.invalid),
	)
	return nil
}

type discardWriter struct{}

func (discardWriter) UpsertItems(context.Context, []catalog.Item) error { return nil }
