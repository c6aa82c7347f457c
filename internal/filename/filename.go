// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filename derives filesystem-safe base names from note titles.
package filename

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-slug"

	"github.com/pdiddy/notes2md/pkg/types"
)

// maxBytes leaves room for a collision suffix and the .md extension within
// the common 255-byte name limit.
const maxBytes = 200

// reserved holds Windows device names that cannot be used as a file stem.
var reserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Deriver turns titles into base filenames (no extension).
type Deriver struct {
	Style types.FilenameStyle
}

// New returns a Deriver for style.
func New(style types.FilenameStyle) Deriver {
	return Deriver{Style: style}
}

// Derive returns the base filename for title. The slug style transliterates
// accented letters and then keeps ASCII letters and digits only, so a title
// in a script without a mapping (such as CJK) fails. It fails with
// *types.InvalidFilenameError when nothing usable remains.
func (d Deriver) Derive(title string) (string, error) {
	var name string
	switch d.Style {
	case types.FilenameSlug:
		s, err := slug.Normalize(transliterate(title))
		if err != nil {
			return "", &types.InvalidFilenameError{Title: title}
		}
		name = s
	default:
		name = Sanitize(title)
	}

	name = truncate(name, maxBytes)
	if name == "" {
		return "", &types.InvalidFilenameError{Title: title}
	}
	return guardReserved(name), nil
}

// charMap is go-slug's embedded transliteration table.
var charMap = sync.OnceValues(slug.GetCharMap)

// transliterate replaces runes that have an ASCII spelling in charMap.
func transliterate(title string) string {
	m, err := charMap()
	if err != nil {
		return title
	}
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if v, ok := m[string(r)]; ok {
			b.WriteString(v)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Sanitize applies the title-style rules: it keeps the last slash-separated
// segment holding a legal character other than spaces and dots, replaces
// characters that are illegal on common filesystems with '_', and strips
// leading and trailing dots and spaces. The result is empty when no segment
// qualifies.
func Sanitize(title string) string {
	s := usableSegment(title)
	if s == "" {
		return ""
	}

	s = strings.Map(func(r rune) rune {
		if illegal(r) {
			return '_'
		}
		return r
	}, s)

	s = strings.TrimLeft(s, " .")
	s = strings.TrimRight(s, " .")
	s = strings.TrimSpace(s)

	return guardReserved(s)
}

// guardReserved appends '_' to names whose stem is a Windows device name.
func guardReserved(s string) string {
	if reserved[strings.ToUpper(stem(s))] {
		return s + "_"
	}
	return s
}

func illegal(r rune) bool {
	switch r {
	case '\\', ':', '*', '?', '"', '<', '>', '|':
		return true
	}
	return r == utf8.RuneError || unicode.IsControl(r)
}

// usableSegment returns the last '/'-separated segment of s, trimmed, that
// carries at least one legal rune besides dots and whitespace.
func usableSegment(s string) string {
	parts := strings.Split(s, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(parts[i]); hasLegal(p) {
			return p
		}
	}
	return ""
}

func hasLegal(s string) bool {
	for _, r := range s {
		if r != '.' && !unicode.IsSpace(r) && !illegal(r) {
			return true
		}
	}
	return false
}

func stem(s string) string {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimRight(s[:n], " .")
}
