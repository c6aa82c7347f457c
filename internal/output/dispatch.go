// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/notes2md/internal/convert"
	"github.com/pdiddy/notes2md/internal/logging"
	"github.com/pdiddy/notes2md/pkg/types"
)

// Tracker remembers per-note outcomes across runs. The ledger package
// implements it.
type Tracker interface {
	Lookup(ctx context.Context, noteID string) (types.LedgerRecord, bool, error)
	Record(ctx context.Context, rec types.LedgerRecord) error
}

// Deps collects the collaborators Dispatch hands items to.
type Deps struct {
	Writer   *FileWriter
	Reporter *Reporter

	// Tracker is optional. When set, notes with an ID whose rendered
	// document matches the last written record are skipped, and changed
	// notes are rewritten in place.
	Tracker Tracker

	// Logger is optional.
	Logger logging.Logger

	// Out receives one progress line per note and the summary.
	Out io.Writer

	// DryRun prints each document to Out instead of writing it.
	DryRun bool
}

// Summary counts the outcomes of one dispatch.
type Summary struct {
	Written int
	Skipped int
	Failed  int
}

// Total returns the number of notes dispatched.
func (s Summary) Total() int {
	return s.Written + s.Skipped + s.Failed
}

// HasFailures reports whether any note failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Dispatch writes every converted item and reports every failed one, in
// order. Per-note failures are counted and processing continues; a ledger
// error or context cancellation stops the run.
func Dispatch(ctx context.Context, result convert.Result, d Deps) (Summary, error) {
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Reporter == nil {
		d.Reporter = NewReporter(d.Out)
	}

	var summary Summary
	for i, item := range result.Items {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		label := item.Note.ID
		if label == "" {
			label = fmt.Sprintf("note %d", i+1)
		}
		rec := types.LedgerRecord{
			NoteID:   item.Note.ID,
			Source:   result.Source,
			Title:    item.Note.Title(),
			Created:  item.Note.Created,
			Modified: item.Note.Modified,
			Trashed:  item.Note.Trashed,
		}

		if !item.OK() {
			d.Reporter.Report(item, item.Err)
			fmt.Fprintf(d.Out, "failed:  %s (%v)\n", label, item.Err)
			d.Logger.Warn("note failed", "note", label, "error", item.Err)
			summary.Failed++
			rec.Status = types.NoteFailed
			rec.Reason = item.Err.Error()
			if err := d.record(ctx, rec); err != nil {
				return summary, err
			}
			continue
		}

		if d.DryRun {
			fmt.Fprintf(d.Out, "==> %s%s <==\n%s\n", item.Filename, Ext, item.Markdown)
			summary.Written++
			continue
		}

		name, status, err := d.deliver(ctx, item)
		switch {
		case err != nil && isLedgerError(err):
			return summary, err
		case err != nil:
			fmt.Fprintf(d.Out, "failed:  %s (%v)\n", label, err)
			d.Logger.Error("write failed", "note", label, "error", err)
			summary.Failed++
			rec.Status = types.NoteFailed
			rec.Reason = err.Error()
		case status == types.NoteSkipped && name != "":
			// Unchanged since the last run; the existing record stands.
			fmt.Fprintf(d.Out, "skipped: %s (unchanged)\n", name)
			d.Logger.Debug("note unchanged", "note", label, "file", name)
			summary.Skipped++
			continue
		case status == types.NoteSkipped:
			fmt.Fprintf(d.Out, "skipped: %s%s (already exists)\n", item.Filename, Ext)
			d.Logger.Debug("note skipped", "note", label, "file", item.Filename+Ext)
			summary.Skipped++
			rec.Status = types.NoteSkipped
			rec.Reason = ErrExists.Error()
		default:
			fmt.Fprintf(d.Out, "written: %s\n", name)
			d.Logger.Debug("note written", "note", label, "file", name)
			summary.Written++
			rec.Status = types.NoteWritten
			rec.Filename = name
			rec.Digest = Digest(item.Markdown)
		}
		if err := d.record(ctx, rec); err != nil {
			return summary, err
		}
	}

	fmt.Fprintf(d.Out, "\nSummary: %d written, %d skipped, %d failed (total: %d)\n",
		summary.Written, summary.Skipped, summary.Failed, summary.Total())
	d.Logger.Info("dispatch complete", "written", summary.Written, "skipped", summary.Skipped, "failed", summary.Failed)
	return summary, nil
}

// ledgerError marks tracker failures so Dispatch can tell them from
// per-note write failures.
type ledgerError struct{ err error }

func (e *ledgerError) Error() string { return e.err.Error() }
func (e *ledgerError) Unwrap() error { return e.err }

func isLedgerError(err error) bool {
	var le *ledgerError
	return errors.As(err, &le)
}

// deliver writes one converted item. It returns the file name used, or for
// an unchanged note the name of the file already holding it. A skip caused
// by the collision policy returns an empty name.
func (d Deps) deliver(ctx context.Context, item convert.Item) (string, types.NoteStatus, error) {
	if d.Tracker != nil && item.Note.ID != "" {
		prev, ok, err := d.Tracker.Lookup(ctx, item.Note.ID)
		if err != nil {
			return "", "", &ledgerError{err: err}
		}
		if ok && prev.Status == types.NoteWritten && prev.Filename != "" && d.Writer.Exists(prev.Filename) {
			if prev.Digest == Digest(item.Markdown) {
				return prev.Filename, types.NoteSkipped, nil
			}
			return prev.Filename, types.NoteWritten, d.Writer.Replace(prev.Filename, item.Markdown)
		}
	}

	name, err := d.Writer.Write(item.Filename, item.Markdown)
	if errors.Is(err, ErrExists) {
		return "", types.NoteSkipped, nil
	}
	if err != nil {
		return "", "", err
	}
	return name, types.NoteWritten, nil
}

// Digest identifies a rendered document so reruns can tell whether the file
// on disk is current.
func Digest(markdown string) string {
	sum := sha256.Sum256([]byte(markdown))
	return hex.EncodeToString(sum[:])
}

func (d Deps) record(ctx context.Context, rec types.LedgerRecord) error {
	if d.Tracker == nil || rec.NoteID == "" {
		return nil
	}
	rec.UpdatedAt = time.Now().UTC()
	if err := d.Tracker.Record(ctx, rec); err != nil {
		return fmt.Errorf("recording %s in ledger: %w", rec.NoteID, err)
	}
	return nil
}
