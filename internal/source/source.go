// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source selects an export decoder for a path and verifies the
// source and destination paths before a run.
package source

import (
	"fmt"
	"os"

	"github.com/pdiddy/notes2md/internal/source/applenotes"
	"github.com/pdiddy/notes2md/internal/source/simplenote"
	"github.com/pdiddy/notes2md/pkg/types"
)

// Decoder turns one export into a Batch of notes. Simplenote and Apple Notes
// implement it; the rest of the pipeline sees only the Batch.
type Decoder interface {
	// Name returns the export format name.
	Name() string

	// Decode reads the whole export. It fails with *types.DecodeError when
	// the export is structurally invalid.
	Decode() (types.Batch, error)
}

var (
	_ Decoder = (*simplenote.Decoder)(nil)
	_ Decoder = (*applenotes.Decoder)(nil)
)

// Open returns the decoder for path: a file is a Simplenote export and a
// directory is an Apple Notes export.
func Open(path string) (Decoder, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, VerifySource(path, types.SourceFile)
	}
	if info.IsDir() {
		if err := VerifySource(path, types.SourceDirectory); err != nil {
			return nil, err
		}
		return applenotes.New(path), nil
	}
	if err := VerifySource(path, types.SourceFile); err != nil {
		return nil, err
	}
	return simplenote.New(path), nil
}

// ForKind returns the decoder for an explicitly chosen format after checking
// that path has the matching shape.
func ForKind(format, path string) (Decoder, error) {
	switch format {
	case simplenote.SourceName:
		if err := VerifySource(path, types.SourceFile); err != nil {
			return nil, err
		}
		return simplenote.New(path), nil
	case applenotes.SourceName:
		if err := VerifySource(path, types.SourceDirectory); err != nil {
			return nil, err
		}
		return applenotes.New(path), nil
	}
	return nil, fmt.Errorf("unsupported source format %q", format)
}
