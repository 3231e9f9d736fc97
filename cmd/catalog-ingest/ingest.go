package main

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/storage/seed"
)

const (
	maxLineBytes  = 1 << 20
	progressEvery = 100_000
)

type itemWriter interface {
	UpsertItems(ctx context.Context, items []catalog.Item) error
}

type options struct {
	batchSize     int
	expectedItems uint
}

type ingestStats struct {
	lines, written, duplicates, invalid int64
}

// ingester streams catalog dumps, one JSON product per line, and writes the
// valid items in batches. An ID seen in an earlier line, in any file, is
// skipped.
type ingester struct {
	w         itemWriter
	ids       *idSet
	batchSize int

	lines      atomic.Int64
	written    atomic.Int64
	duplicates atomic.Int64
	invalid    atomic.Int64
}

func newIngester(w itemWriter, opts options) *ingester {
	if opts.batchSize < 1 {
		opts.batchSize = 500
	}
	return &ingester{
		w:         w,
		ids:       newIDSet(opts.expectedItems),
		batchSize: opts.batchSize,
	}
}

func (in *ingester) stats() ingestStats {
	return ingestStats{
		lines:      in.lines.Load(),
		written:    in.written.Load(),
		duplicates: in.duplicates.Load(),
		invalid:    in.invalid.Load(),
	}
}

// ingestFiles processes every file concurrently.
func (in *ingester) ingestFiles(ctx context.Context, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			return in.ingestFile(ctx, f)
		})
	}
	return g.Wait()
}

func (in *ingester) ingestFile(ctx context.Context, path string) error {
	batch := make([]catalog.Item, 0, in.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := in.w.UpsertItems(ctx, batch); err != nil {
			return errors.Wrapf(err, "write batch from %s", path)
		}
		in.written.Add(int64(len(batch)))
		batch = batch[:0]
		return nil
	}

	var n int64
	err := streamGzFile(ctx, path, func(line []byte) error {
		n++
		if in.lines.Add(1)%progressEvery == 0 {
			slog.Info("ingest progress", slog.Int64("lines", in.lines.Load()), slog.Int("distinct", in.ids.len()))
		}
		if len(line) == 0 {
			return nil
		}

		it, err := seed.DecodeItem(jx.DecodeBytes(line))
		if err != nil {
			in.invalid.Add(1)
			slog.Warn("skipping invalid line",
				slog.String("file", path),
				slog.Int64("line", n),
				slog.String("error", err.Error()),
			)
			return nil
		}
		if !in.ids.add(it.ID) {
			in.duplicates.Add(1)
			return nil
		}

		batch = append(batch, it)
		if len(batch) >= in.batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	slog.Info("file complete", slog.String("file", path), slog.Int64("lines", n))
	return nil
}

// streamGzFile opens a gzip-compressed file and calls fn for each line.
// The line slice is only valid during the call.
func streamGzFile(ctx context.Context, path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(scanner.Bytes()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}

	return nil
}
