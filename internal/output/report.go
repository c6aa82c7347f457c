// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"

	"github.com/pdiddy/notes2md/internal/convert"
)

// Reporter prints diagnostics for notes that could not be written.
type Reporter struct {
	w io.Writer
}

// NewReporter returns a Reporter printing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report prints the note's rendered Markdown followed by the reason it
// failed, so the note can still be inspected or copied by hand.
func (r *Reporter) Report(item convert.Item, reason error) {
	fmt.Fprintf(r.w, "ERROR processing Note:\n%s\n", item.Markdown)
	fmt.Fprintf(r.w, "reason: %v\n\n", reason)
}
