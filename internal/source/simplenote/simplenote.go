// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package simplenote decodes Simplenote JSON exports into notes.
package simplenote

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/notes2md/pkg/types"
)

// SourceName is the Batch.Source value for Simplenote exports.
const SourceName = "simplenote"

const (
	keyActive  = "activeNotes"
	keyTrashed = "trashedNotes"

	// zipEntry is where Simplenote's "Export notes" archive keeps the JSON.
	zipEntry = "source/notes.json"
)

// Decoder reads a Simplenote export from disk. Path may name the JSON file
// itself or the zip archive Simplenote produces.
type Decoder struct {
	Path string
}

// New returns a Decoder for the export at path.
func New(path string) *Decoder {
	return &Decoder{Path: path}
}

// Name returns the export format name.
func (d *Decoder) Name() string { return SourceName }

// Decode reads and parses the export.
func (d *Decoder) Decode() (types.Batch, error) {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(d.Path), ".zip") {
		data, err = readZip(d.Path)
	} else {
		data, err = os.ReadFile(d.Path)
	}
	if err != nil {
		return types.Batch{}, &types.DecodeError{Source: d.Path, Err: err}
	}

	batch, err := Parse(data)
	if err != nil {
		var de *types.DecodeError
		if errors.As(err, &de) {
			de.Source = d.Path
		}
		return types.Batch{}, err
	}
	return batch, nil
}

func readZip(path string) ([]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != zipEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", zipEntry, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("archive has no %s", zipEntry)
}

// Parse decodes a Simplenote export blob. It fails with a *types.DecodeError
// when the blob is not a JSON object holding both the activeNotes and
// trashedNotes arrays. Individual records never fail: missing or mistyped
// fields decode as empty values.
func Parse(data []byte) (types.Batch, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return types.Batch{}, &types.DecodeError{Source: SourceName, Err: err}
	}

	active, err := records(top, keyActive)
	if err != nil {
		return types.Batch{}, err
	}
	trashed, err := records(top, keyTrashed)
	if err != nil {
		return types.Batch{}, err
	}

	activeNotes := make([]types.Note, len(active))
	for i, r := range active {
		activeNotes[i] = toNote(r, false)
	}
	trashedNotes := make([]types.Note, len(trashed))
	for i, r := range trashed {
		trashedNotes[i] = toNote(r, true)
	}

	return types.NewBatch(SourceName, activeNotes, trashedNotes), nil
}

func records(top map[string]json.RawMessage, key string) ([]json.RawMessage, error) {
	raw, ok := top[key]
	if !ok || isNull(raw) {
		return nil, &types.DecodeError{Source: SourceName, Err: fmt.Errorf("missing %q array", key)}
	}
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &types.DecodeError{Source: SourceName, Err: fmt.Errorf("%q is not an array: %w", key, err)}
	}
	return out, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// toNote converts one raw record. Each field is decoded on its own so that a
// bad field only blanks itself.
func toNote(raw json.RawMessage, trashed bool) types.Note {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		fields = nil
	}

	n := types.Note{
		ID:       stringField(fields, "id"),
		Content:  stringField(fields, "content"),
		Created:  stringField(fields, "creationDate"),
		Modified: stringField(fields, "lastModified"),
		Trashed:  trashed,
		Tags:     stringsField(fields, "tags"),
	}

	var pinned bool
	if v, ok := fields["pinned"]; ok && json.Unmarshal(v, &pinned) == nil {
		n.Pinned = pinned
	}
	for _, t := range stringsField(fields, "systemTags") {
		if t == "pinned" {
			n.Pinned = true
		}
	}
	return n
}

func stringField(fields map[string]json.RawMessage, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

func stringsField(fields map[string]json.RawMessage, key string) []string {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(v, &raw); err != nil {
		return nil
	}
	var out []string
	for _, r := range raw {
		var s string
		if json.Unmarshal(r, &s) == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}
