// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown renders notes as Markdown documents with YAML front matter.
package markdown

import (
	"fmt"
	"strings"

	"github.com/pdiddy/notes2md/pkg/types"
)

const delimiter = "---\n"

// Options adjusts the front matter.
type Options struct {
	// ExtendedMeta appends deleted, favorited, pinned and tags keys after
	// modified when the note carries them.
	ExtendedMeta bool
}

// Render serializes n as front matter followed by the note content. The
// title, created and modified keys always appear in that order with quoted
// values; the content follows the closing delimiter byte for byte. Invalid
// UTF-8 in front matter values becomes U+FFFD.
func Render(n types.Note, opts Options) string {
	var b strings.Builder
	b.Grow(len(n.Content) + 128)

	b.WriteString(delimiter)
	writeString(&b, "title", n.Title())
	writeString(&b, "created", n.Created)
	writeString(&b, "modified", n.Modified)
	if opts.ExtendedMeta {
		writeExtended(&b, n)
	}
	b.WriteString(delimiter)
	b.WriteString(n.Content)
	return b.String()
}

func writeExtended(b *strings.Builder, n types.Note) {
	if n.Trashed {
		b.WriteString("deleted: true\n")
	}
	if n.Favorited {
		b.WriteString("favorited: true\n")
	}
	if n.Pinned {
		b.WriteString("pinned: true\n")
	}
	if len(n.Tags) == 0 {
		return
	}
	b.WriteString("tags: [")
	for i, tag := range n.Tags {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(tag))
	}
	b.WriteString("]\n")
}

func writeString(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s: %s\n", key, quote(value))
}

// quote renders value as a YAML double-quoted scalar. Go escapes and YAML
// escapes agree once the value is valid UTF-8.
func quote(value string) string {
	return fmt.Sprintf("%q", strings.ToValidUTF8(value, "\uFFFD"))
}
