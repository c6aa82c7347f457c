// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/notes2md/internal/convert"
	"github.com/pdiddy/notes2md/internal/filename"
	"github.com/pdiddy/notes2md/internal/ledger"
	"github.com/pdiddy/notes2md/internal/logging"
	"github.com/pdiddy/notes2md/internal/markdown"
	"github.com/pdiddy/notes2md/internal/output"
	"github.com/pdiddy/notes2md/internal/source"
	"github.com/pdiddy/notes2md/pkg/types"
)

// autoDetect selects the decoder from the shape of the source path.
const autoDetect = ""

// runConversion verifies both paths, decodes the export named by format
// (or detected from the source path), converts every note and dispatches
// the results to cfg.DestDir. Progress goes to out and failed-note
// diagnostics to diag.
func runConversion(ctx context.Context, cfg types.ConversionConfig, format string, out, diag io.Writer, logs *logging.Provider) (output.Summary, error) {
	log := logs.Get("convert")
	started := time.Now().UTC()

	if err := source.VerifyDest(cfg.DestDir); err != nil {
		return output.Summary{}, err
	}

	var dec source.Decoder
	var err error
	if format == autoDetect {
		dec, err = source.Open(cfg.SourcePath)
	} else {
		dec, err = source.ForKind(format, cfg.SourcePath)
	}
	if err != nil {
		return output.Summary{}, err
	}

	batch, err := dec.Decode()
	if err != nil {
		return output.Summary{}, err
	}
	log.Info("export decoded", "source", batch.Source, "path", cfg.SourcePath, "active", batch.Active, "trashed", batch.Trashed)

	result := convert.Convert(batch, convert.Options{
		Deriver:     filename.New(cfg.FilenameStyle),
		Render:      markdown.Options{ExtendedMeta: cfg.ExtendedMeta},
		SkipTrashed: cfg.SkipTrashed,
	}, out)

	deps := output.Deps{
		Writer:   output.NewFileWriter(cfg.DestDir, cfg.OnCollision),
		Reporter: output.NewReporter(diag),
		Logger:   logs.Get("output"),
		Out:      out,
		DryRun:   cfg.DryRun,
	}

	var store *ledger.Store
	if cfg.LedgerPath != "" && !cfg.DryRun {
		store, err = ledger.Open(cfg.LedgerPath)
		if err != nil {
			return output.Summary{}, err
		}
		defer store.Close()
		deps.Tracker = store
		log.Debug("ledger opened", "path", store.Path())
	}

	summary, err := output.Dispatch(ctx, result, deps)
	if err != nil {
		return summary, err
	}

	if store != nil {
		run := types.RunSummary{
			Source:     batch.Source,
			SourcePath: cfg.SourcePath,
			Active:     batch.Active,
			Trashed:    batch.Trashed,
			Written:    summary.Written,
			Skipped:    summary.Skipped,
			Failed:     summary.Failed,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
		}
		if err := store.RecordRun(ctx, run); err != nil {
			return summary, err
		}
	}

	if summary.HasFailures() {
		return summary, fmt.Errorf("%d note(s) failed conversion", summary.Failed)
	}
	return summary, nil
}
