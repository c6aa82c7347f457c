// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package applenotes decodes an Apple Notes iCloud export directory into
// notes. Every text or Markdown file below the export root is one note;
// files under a "Recently Deleted" folder are trashed.
package applenotes

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/notes2md/pkg/types"
)

// SourceName is the Batch.Source value for Apple Notes exports.
const SourceName = "applenotes"

// trashFolder is the folder name iCloud uses for deleted notes.
const trashFolder = "Recently Deleted"

var noteExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// Decoder reads an Apple Notes export rooted at Dir.
type Decoder struct {
	Dir string
}

// New returns a Decoder for the export directory dir.
func New(dir string) *Decoder {
	return &Decoder{Dir: dir}
}

// Name returns the export format name.
func (d *Decoder) Name() string { return SourceName }

// Decode walks the export directory. Notes are returned in lexical path
// order, active before trashed.
func (d *Decoder) Decode() (types.Batch, error) {
	info, err := os.Stat(d.Dir)
	if err != nil {
		return types.Batch{}, &types.DecodeError{Source: d.Dir, Err: err}
	}
	if !info.IsDir() {
		return types.Batch{}, &types.DecodeError{Source: d.Dir, Err: fmt.Errorf("not a directory")}
	}

	var active, trashed []types.Note
	err = filepath.WalkDir(d.Dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != d.Dir && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !noteExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(d.Dir, path)
		if err != nil {
			return err
		}
		note, err := readNote(path, entry)
		if err != nil {
			return err
		}
		note.ID = filepath.ToSlash(rel)
		note.Trashed = inTrash(rel)

		if note.Trashed {
			trashed = append(trashed, note)
		} else {
			active = append(active, note)
		}
		return nil
	})
	if err != nil {
		return types.Batch{}, &types.DecodeError{Source: d.Dir, Err: err}
	}

	return types.NewBatch(SourceName, active, trashed), nil
}

func inTrash(rel string) bool {
	dir := filepath.Dir(rel)
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == trashFolder {
			return true
		}
	}
	return false
}

// noteMeta is the optional front matter some exporters add to note files.
type noteMeta struct {
	Created   string   `yaml:"created"`
	Modified  string   `yaml:"modified"`
	Favorited bool     `yaml:"favorited"`
	Pinned    bool     `yaml:"pinned"`
	Tags      []string `yaml:"tags"`
}

func readNote(path string, entry fs.DirEntry) (types.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Note{}, fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := entry.Info()
	if err != nil {
		return types.Note{}, fmt.Errorf("stat %s: %w", path, err)
	}
	mtime := info.ModTime().UTC().Format(time.RFC3339)

	note := types.Note{
		Content:  string(data),
		Created:  mtime,
		Modified: mtime,
	}

	if !bytes.HasPrefix(data, []byte("---")) {
		return note, nil
	}

	var meta noteMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// Not front matter after all; keep the file verbatim.
		return note, nil
	}
	note.Content = string(body)
	if meta.Created != "" {
		note.Created = meta.Created
	}
	if meta.Modified != "" {
		note.Modified = meta.Modified
	}
	note.Favorited = meta.Favorited
	note.Pinned = meta.Pinned
	note.Tags = meta.Tags
	return note, nil
}
