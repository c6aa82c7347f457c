// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes converted notes to the destination directory,
// reports failed notes, and drives a batch through both.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/notes2md/pkg/types"
)

// Ext is the extension appended to every base filename.
const Ext = ".md"

// ErrExists is returned by FileWriter.Write under CollisionSkip when the
// target file is already present.
var ErrExists = errors.New("file already exists")

// FileWriter writes Markdown documents into a destination directory.
type FileWriter struct {
	dir    string
	policy types.CollisionPolicy
}

// NewFileWriter returns a writer for dir using policy.
func NewFileWriter(dir string, policy types.CollisionPolicy) *FileWriter {
	if policy == "" {
		policy = types.CollisionSuffix
	}
	return &FileWriter{dir: dir, policy: policy}
}

// Dir returns the destination directory.
func (w *FileWriter) Dir() string { return w.dir }

// Write stores text under base+Ext, applying the collision policy, and
// returns the file name actually used (relative to the directory).
func (w *FileWriter) Write(base, text string) (string, error) {
	name := base + Ext
	if w.Exists(name) {
		switch w.policy {
		case types.CollisionSkip:
			return name, ErrExists
		case types.CollisionSuffix:
			name = w.nextFree(base)
		}
	}
	return name, w.Replace(name, text)
}

// Replace writes text to name, overwriting any existing file.
func (w *FileWriter) Replace(name, text string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether name is present in the directory.
func (w *FileWriter) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(w.dir, name))
	return err == nil
}

// nextFree finds "base (n).md" with the smallest free n >= 1.
func (w *FileWriter) nextFree(base string) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s (%d)%s", base, i, Ext)
		if !w.Exists(name) {
			return name
		}
	}
}
