// Package internal provides the converter initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/mibig-secmet/bgconvert/internal/convert"
	"github.com/mibig-secmet/bgconvert/internal/legacy"
	"github.com/mibig-secmet/bgconvert/internal/seqrecord"
	"github.com/mibig-secmet/bgconvert/internal/storage"
)

// Run converts the configured input with the given options. The input may
// be a single v3 JSON file or a directory of them; directories are
// converted concurrently and every per-document failure is reported.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	if app.input == "" || app.output == "" {
		return fmt.Errorf("input and output paths are required")
	}

	cfg := app.config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("input", app.input),
		slog.String("output", app.output),
		slog.Int("workers", cfg.Convert.Workers),
		slog.String("log_level", cfg.App.LogLevel.String()))

	records := map[string]*seqrecord.Record{}
	if cfg.Convert.RecordIndex != "" {
		loaded, err := seqrecord.LoadRecords(cfg.Convert.RecordIndex)
		if err != nil {
			return fmt.Errorf("load record index: %w", err)
		}
		for _, record := range loaded {
			records[record.ID] = record
		}
		logger.Info("Record index loaded",
			slog.String("path", cfg.Convert.RecordIndex),
			slog.Int("records", len(records)))
	}

	info, err := os.Stat(app.input)
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return convertSingle(app.input, app.output, records)
	}
	return convertBatch(ctx, cfg, app.input, app.output, records, logger)
}

// convertSingle converts one v3 document file to one v4 document file.
func convertSingle(input, output string, records map[string]*seqrecord.Record) error {
	in, err := storage.NewFS(filepath.Dir(input))
	if err != nil {
		return err
	}
	outDir := filepath.Dir(output)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := storage.NewFS(outDir)
	if err != nil {
		return err
	}
	return convertDocument(in, out, filepath.Base(input), filepath.Base(output), records)
}

// convertBatch converts every .json file under input, mirroring the
// relative layout under output. Failures do not stop the batch; they are
// collected and returned together.
func convertBatch(ctx context.Context, cfg *Config, input, output string, records map[string]*seqrecord.Record, logger *slog.Logger) error {
	in, err := storage.NewFS(input)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := storage.NewFS(output)
	if err != nil {
		return err
	}

	docs, err := in.List("")
	if err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		failures *multierror.Error
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Convert.Workers)

	for _, doc := range docs {
		doc := doc
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := convertDocument(in, out, doc.Path, doc.Path, records); err != nil {
				logger.Error("Conversion failed",
					slog.String("document", doc.Path),
					slog.String("error", err.Error()))
				mu.Lock()
				failures = multierror.Append(failures, fmt.Errorf("%s: %w", doc.Path, err))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if failures != nil {
		return fmt.Errorf("%d of %d documents failed: %w", failures.Len(), len(docs), failures.ErrorOrNil())
	}

	logger.Info("Batch conversion complete", slog.Int("documents", len(docs)))
	return nil
}

// convertDocument reads one v3 document, converts it, and writes the v4
// result. The matching sequence record, when available, provides gene
// coordinates and translations.
func convertDocument(in, out storage.Provider, inPath, outPath string, records map[string]*seqrecord.Record) error {
	data, err := in.Read(inPath)
	if err != nil {
		return err
	}

	v3, err := legacy.Parse(data)
	if err != nil {
		return err
	}

	record := recordFor(v3, records)
	entry, err := convert.Convert(v3, record)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(entry, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding v4 document: %w", err)
	}
	return out.Write(outPath, payload)
}

// recordFor looks up the sequence record for a document's locus, trying
// the versioned accession first and the bare accession second.
func recordFor(v3 *legacy.Everything, records map[string]*seqrecord.Record) *seqrecord.Record {
	if v3.Cluster.Loci == nil {
		return nil
	}
	accession := v3.Cluster.Loci.Accession
	if record, ok := records[accession]; ok {
		return record
	}
	bare, _, found := strings.Cut(accession, ".")
	if !found {
		return nil
	}
	return records[bare]
}
