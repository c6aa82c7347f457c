// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// DecodeError reports an export that is structurally invalid. It is fatal
// for the whole batch.
type DecodeError struct {
	// Source names the export being decoded (a path or format name).
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidFilenameError reports a note whose title cannot produce a usable
// filename. It affects only that note.
type InvalidFilenameError struct {
	Title string
}

func (e *InvalidFilenameError) Error() string {
	return fmt.Sprintf("title: '%s' is not valid for a filename", e.Title)
}
