// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// NoteStatus records the outcome of converting one note.
type NoteStatus string

const (
	NoteWritten NoteStatus = "written"
	NoteSkipped NoteStatus = "skipped"
	NoteFailed  NoteStatus = "failed"
)

// LedgerRecord is the persisted outcome for one source note.
type LedgerRecord struct {
	NoteID    string     `json:"note_id" yaml:"note_id"`
	Source    string     `json:"source" yaml:"source"`
	Title     string     `json:"title" yaml:"title"`
	Filename  string     `json:"filename,omitempty" yaml:"filename,omitempty"`
	Created   string     `json:"created" yaml:"created"`
	Modified  string     `json:"modified" yaml:"modified"`
	Trashed   bool       `json:"trashed" yaml:"trashed"`
	Digest    string     `json:"digest,omitempty" yaml:"digest,omitempty"`
	Status    NoteStatus `json:"status" yaml:"status"`
	Reason    string     `json:"reason,omitempty" yaml:"reason,omitempty"`
	UpdatedAt time.Time  `json:"updated_at" yaml:"updated_at"`
}

// RunSummary is the persisted summary of one conversion run.
type RunSummary struct {
	Source     string    `json:"source" yaml:"source"`
	SourcePath string    `json:"source_path" yaml:"source_path"`
	Active     int       `json:"active" yaml:"active"`
	Trashed    int       `json:"trashed" yaml:"trashed"`
	Written    int       `json:"written" yaml:"written"`
	Skipped    int       `json:"skipped" yaml:"skipped"`
	Failed     int       `json:"failed" yaml:"failed"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}
