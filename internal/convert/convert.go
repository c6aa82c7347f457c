// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a decoded batch of notes into filename and Markdown
// pairs. It performs no file I/O; writing and reporting belong to the
// output package.
package convert

import (
	"fmt"
	"io"

	"github.com/pdiddy/notes2md/internal/markdown"
	"github.com/pdiddy/notes2md/pkg/types"
)

// Deriver produces a base filename for a note title.
type Deriver interface {
	Derive(title string) (string, error)
}

// Options configures a conversion.
type Options struct {
	// Deriver computes base filenames. Required.
	Deriver Deriver

	// Render is passed through to markdown.Render.
	Render markdown.Options

	// SkipTrashed leaves trashed notes out of the result.
	SkipTrashed bool
}

// Item is the outcome for one note. Markdown is always set; Filename is set
// only when Err is nil.
type Item struct {
	Note     types.Note
	Filename string
	Markdown string
	Err      error
}

// OK reports whether the note converted.
func (i Item) OK() bool {
	return i.Err == nil
}

// Result holds the outcome of converting one batch.
type Result struct {
	Source  string
	Items   []Item
	Active  int
	Trashed int
}

// Total returns the number of notes processed.
func (r Result) Total() int {
	return len(r.Items)
}

// Succeeded returns the number of notes that produced a filename.
func (r Result) Succeeded() int {
	n := 0
	for _, it := range r.Items {
		if it.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of notes whose filename could not be derived.
func (r Result) Failed() int {
	return r.Total() - r.Succeeded()
}

// HasFailures reports whether any note failed.
func (r Result) HasFailures() bool {
	return r.Failed() > 0
}

// Convert processes the batch in order. It writes the active and trashed
// counts to w before the first note, then derives a filename and renders
// each note. A note whose filename cannot be derived is recorded with its
// error and rendered Markdown; it never stops the batch.
func Convert(batch types.Batch, opts Options, w io.Writer) Result {
	fmt.Fprintf(w, "active:%d, trashed:%d\n", batch.Active, batch.Trashed)

	result := Result{
		Source:  batch.Source,
		Items:   make([]Item, 0, len(batch.Notes)),
		Active:  batch.Active,
		Trashed: batch.Trashed,
	}
	for _, n := range batch.Notes {
		if opts.SkipTrashed && n.Trashed {
			continue
		}
		result.Items = append(result.Items, ConvertNote(n, opts))
	}
	return result
}

// ConvertNote derives the filename and renders a single note.
func ConvertNote(n types.Note, opts Options) Item {
	item := Item{
		Note:     n,
		Markdown: markdown.Render(n, opts.Render),
	}
	name, err := opts.Deriver.Derive(n.Title())
	if err != nil {
		item.Err = err
		return item
	}
	item.Filename = name
	return item
}
