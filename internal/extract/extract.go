// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract converts an Apple Health export.xml into one CSV file per
// record kind. A run loads the document, shortens Record type names,
// counts entries, opens one sink per discovered kind and writes every row
// in document order.
package extract

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/health-extract/internal/census"
	"github.com/pdiddy/health-extract/internal/document"
	"github.com/pdiddy/health-extract/internal/schema"
	"github.com/pdiddy/health-extract/internal/store"
	"github.com/pdiddy/health-extract/pkg/types"
)

// Run extracts cfg.InputPath into cfg.OutputDir (default "data") and
// returns the run summary. Any failure aborts the run; files already
// written are left in place and the SQLite load, if any, is rolled back.
func Run(ctx context.Context, cfg types.ExtractionConfig, log *zap.Logger) (_ *Summary, err error) {
	if log == nil {
		log = zap.NewNop()
	}

	entries, c, err := load(cfg.InputPath, log)
	if err != nil {
		return nil, err
	}

	outDir := cfg.OutputDirOrDefault()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var db *store.Store
	if cfg.SQLitePath != "" {
		db, err = store.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
	}

	sinks := newSinkSet()
	defer func() {
		if cerr := sinks.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	for _, s := range c.Sinks() {
		if err := sinks.open(ctx, outDir, s, db); err != nil {
			return nil, err
		}
	}
	log.Debug("sinks open", zap.Int("count", len(sinks.order)), zap.String("dir", outDir))

	if err := writeRows(ctx, entries, sinks); err != nil {
		return nil, err
	}
	if err := sinks.verify(c); err != nil {
		return nil, err
	}

	if err := sinks.Close(); err != nil {
		return nil, err
	}
	if db != nil {
		if err := db.Commit(); err != nil {
			return nil, err
		}
	}

	summary := newSummary(cfg.InputPath, c)
	for _, t := range sinks.order {
		summary.Outputs = append(summary.Outputs, Output{
			Name:   t.Name,
			Schema: t.Kind.String(),
			Path:   t.csv.path,
			Rows:   t.csv.rows,
		})
		log.Info("wrote data",
			zap.String("kind", t.Name),
			zap.Int("rows", t.csv.rows),
			zap.String("path", t.csv.path))
	}
	if db != nil {
		summary.Database = db.Path()
	}

	if cfg.SummaryFile != "" {
		if err := summary.WriteFile(cfg.SummaryFile); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// Inspect loads and counts the document at path without writing anything.
func Inspect(ctx context.Context, path string, log *zap.Logger) (*Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, c, err := load(path, log)
	if err != nil {
		return nil, err
	}
	return newSummary(path, c), nil
}

// load runs the stages that precede any output: parse, normalize, count.
func load(path string, log *zap.Logger) ([]types.Entry, *census.Census, error) {
	raw, err := document.Load(path)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("document loaded", zap.String("path", path), zap.Int("entries", len(raw)))

	entries, err := census.Normalize(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("normalizing %s: %w", path, err)
	}

	c := census.Classify(entries)
	log.Debug("entries classified",
		zap.Int("record_types", c.RecordTypes.Len()),
		zap.Int("other_types", c.OtherTypes.Len()),
		zap.Strings("unknown_tags", c.Unknown))
	for _, tag := range c.Unknown {
		log.Warn("unknown node type", zap.String("tag", tag), zap.Int("count", c.Tags.Count(tag)))
	}
	return entries, c, nil
}

// writeRows makes the second pass over entries, sending each row-bearing
// entry to the sinks of its kind in document order.
func writeRows(ctx context.Context, entries []types.Entry, sinks *sinkSet) error {
	var values []schema.Value
	for i, e := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name, _, ok := census.SinkName(e)
		if !ok {
			continue
		}
		t, found := sinks.byName[name]
		if !found {
			return fmt.Errorf("entry %d: no output opened for %q", i, name)
		}

		values = values[:0]
		for _, f := range t.fields {
			var v schema.Value
			if text, ok := e.Attr(f.Name); ok {
				v = schema.Present(text)
			}
			values = append(values, v)
		}
		if err := t.write(values); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}
