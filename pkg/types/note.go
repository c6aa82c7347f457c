// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Note is the source-independent representation of a single exported note.
// Both decoders produce it; the filename deriver and renderer only read it.
type Note struct {
	// ID identifies the note within its export (Simplenote "id", or the
	// path relative to an Apple Notes export root). May be empty.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Created is the creation timestamp exactly as the export wrote it.
	Created string `json:"created" yaml:"created"`

	// Modified is the last-modified timestamp exactly as the export wrote it.
	Modified string `json:"modified" yaml:"modified"`

	// Content is the raw note body.
	Content string `json:"content" yaml:"content"`

	// Trashed is true when the export marked the note as deleted.
	Trashed bool `json:"trashed" yaml:"trashed"`

	// Favorited is true when the export marked the note as a favorite.
	Favorited bool `json:"favorited,omitempty" yaml:"favorited,omitempty"`

	// Pinned is true when the export marked the note as pinned.
	Pinned bool `json:"pinned,omitempty" yaml:"pinned,omitempty"`

	// Tags lists the note's tags in export order.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Title returns the note title: the first line of Content with leading
// heading markers and surrounding whitespace removed. It is empty when that
// line carries no text.
func (n Note) Title() string {
	return DeriveTitle(n.Content)
}

// DeriveTitle computes a note title from its content.
func DeriveTitle(content string) string {
	first, _, _ := strings.Cut(content, "\n")
	first = strings.TrimSpace(first)
	first = strings.TrimLeft(first, "#")
	return strings.TrimSpace(first)
}

// Batch is the decoded contents of one export.
type Batch struct {
	// Source names the export format ("simplenote", "applenotes").
	Source string

	// Notes holds active notes followed by trashed notes, each group in
	// export order.
	Notes []Note

	// Active and Trashed count the notes in each group.
	Active  int
	Trashed int
}

// NewBatch builds a Batch from the active and trashed groups, preserving
// their order.
func NewBatch(source string, active, trashed []Note) Batch {
	notes := make([]Note, 0, len(active)+len(trashed))
	notes = append(notes, active...)
	notes = append(notes, trashed...)
	return Batch{
		Source:  source,
		Notes:   notes,
		Active:  len(active),
		Trashed: len(trashed),
	}
}
