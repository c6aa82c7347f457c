// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// SourceKind identifies the shape of an export on disk.
type SourceKind string

const (
	// SourceFile is a single file (Simplenote JSON or zip archive).
	SourceFile SourceKind = "file"
	// SourceDirectory is a directory tree (Apple Notes iCloud export).
	SourceDirectory SourceKind = "directory"
)

// FilenameStyle selects how note titles become base filenames.
type FilenameStyle string

const (
	// FilenameTitle keeps the title readable, replacing only unsafe characters.
	FilenameTitle FilenameStyle = "title"
	// FilenameSlug lowercases and hyphenates the title.
	FilenameSlug FilenameStyle = "slug"
)

// ParseFilenameStyle validates a style name. Empty selects FilenameTitle.
func ParseFilenameStyle(s string) (FilenameStyle, error) {
	switch FilenameStyle(s) {
	case "", FilenameTitle:
		return FilenameTitle, nil
	case FilenameSlug:
		return FilenameSlug, nil
	}
	return "", fmt.Errorf("unsupported filename style %q: use title or slug", s)
}

// CollisionPolicy decides what happens when a target file already exists.
type CollisionPolicy string

const (
	// CollisionSuffix appends " (1)", " (2)", ... until the name is free.
	CollisionSuffix CollisionPolicy = "suffix"
	// CollisionOverwrite replaces the existing file.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionSkip leaves the existing file and skips the note.
	CollisionSkip CollisionPolicy = "skip"
)

// ParseCollisionPolicy validates a policy name. Empty selects CollisionSuffix.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", CollisionSuffix:
		return CollisionSuffix, nil
	case CollisionOverwrite:
		return CollisionOverwrite, nil
	case CollisionSkip:
		return CollisionSkip, nil
	}
	return "", fmt.Errorf("unsupported collision policy %q: use suffix, overwrite, or skip", s)
}

// ConversionConfig holds the settings for one conversion run.
type ConversionConfig struct {
	// SourcePath is the export file or directory.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// DestDir is the existing, writable directory receiving Markdown files.
	DestDir string `json:"dest_dir" yaml:"dest_dir"`

	// FilenameStyle selects title or slug base names (default title).
	FilenameStyle FilenameStyle `json:"filename_style" yaml:"filename_style"`

	// OnCollision selects the collision policy (default suffix).
	OnCollision CollisionPolicy `json:"on_collision" yaml:"on_collision"`

	// ExtendedMeta adds deleted, pinned and tags keys to the front matter.
	ExtendedMeta bool `json:"extended_meta" yaml:"extended_meta"`

	// SkipTrashed leaves trashed notes out of the conversion.
	SkipTrashed bool `json:"skip_trashed" yaml:"skip_trashed"`

	// DryRun prints rendered documents instead of writing them.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// LedgerPath is the SQLite ledger location. Empty disables the ledger.
	LedgerPath string `json:"ledger" yaml:"ledger"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is one of console, json, pretty (default console).
	Format string `json:"format" yaml:"format"`
}
