// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pdiddy/notes2md/pkg/types"
)

// VerifyDest checks that dir exists, is a directory, and accepts new files.
func VerifyDest(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("dest_dir: '%s' not found", dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("dest_dir: '%s' must be a directory", dir)
	}

	tmp, err := os.CreateTemp(dir, ".notes2md-write-*")
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("dest_dir: '%s' not writable", dir)
		}
		return err
	}
	name := tmp.Name()
	tmp.Close()
	os.Remove(name)
	return nil
}

// VerifySource checks that path exists, has the wanted kind, and can be
// opened for reading.
func VerifySource(path string, want types.SourceKind) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("source_path: '%s' not found", path)
		}
		return err
	}

	switch {
	case info.IsDir():
		if want != types.SourceDirectory {
			return fmt.Errorf("source_path: '%s' is a directory but file was required", path)
		}
		if _, err := os.ReadDir(path); err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return fmt.Errorf("source_path: '%s' directory access denied", path)
			}
			return err
		}
		return nil
	case info.Mode().IsRegular():
		if want != types.SourceFile {
			return fmt.Errorf("source_path: '%s' is a file but directory was required", path)
		}
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return fmt.Errorf("source_path: '%s' file access denied", path)
			}
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("source_path: '%s' is not a file or directory", path)
	}
}
