// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filename

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notes2md/pkg/types"
)

func TestDeriveTitleStyle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "simple", title: "A Simple Filename", want: "A Simple Filename"},
		{name: "strips surrounding spaces", title: "  A Title With Spaces  ", want: "A Title With Spaces"},
		{name: "question and colon", title: "A: Simple? Filename", want: "A_ Simple_ Filename"},
		{name: "url uses last segment", title: "https://www.rust-lang.org/learn/get-started", want: "get-started"},
		{name: "url with trailing slash", title: "http://example.com/name-with-trailing-slash/", want: "name-with-trailing-slash"},
		{name: "leading dots", title: ". ..Some Title", want: "Some Title"},
		{name: "trailing dots", title: "Ends with dots...", want: "Ends with dots"},
		{name: "backslash and reserved punctuation", title: `a\b*c"d<e>f|g`, want: "a_b_c_d_e_f_g"},
		{name: "null byte", title: "nul\x00byte", want: "nul_byte"},
		{name: "tab", title: "tab\there", want: "tab_here"},
		{name: "windows device name", title: "CON", want: "CON_"},
		{name: "windows device name with extension", title: "aux.txt", want: "aux.txt_"},
		{name: "unicode kept", title: "Café résumé 日本", want: "Café résumé 日本"},
		{name: "real underscores kept", title: "___", want: "___"},
		{name: "mixed illegal keeps legal runes", title: "?a?", want: "_a_"},
		{name: "illegal-only last segment falls back", title: "foo/???", want: "foo"},
		{name: "trailing question segment", title: "Meeting notes / ?", want: "Meeting notes"},
		{name: "url ending in dots", title: "https://example.com/...", want: "example.com"},
		{name: "middle segment wins over empty tail", title: "a/b/ . /", want: "b"},
	}

	d := New(types.FilenameTitle)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Derive(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveRejectsUnusableTitles(t *testing.T) {
	titles := []string{"", "   ", "/", "///", ". ..", "...", "???", ":*|", "\x00", " / . / "}

	d := New(types.FilenameTitle)
	for _, title := range titles {
		t.Run(fmt.Sprintf("%q", title), func(t *testing.T) {
			_, err := d.Derive(title)
			require.Error(t, err)
			var fe *types.InvalidFilenameError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, title, fe.Title)
		})
	}
}

func TestDeriveEmptyTitleMessage(t *testing.T) {
	_, err := New(types.FilenameTitle).Derive("")
	require.Error(t, err)
	assert.Equal(t, "title: '' is not valid for a filename", err.Error())
}

func TestDeriveTruncatesOnRuneBoundary(t *testing.T) {
	title := strings.Repeat("é", 150) // 300 bytes
	got, err := New(types.FilenameTitle).Derive(title)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(got), maxBytes)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 100), got)
}

// Any title carrying a letter, wherever it sits, yields a safe, non-empty name.
func TestDeriveSafeForLetterTitles(t *testing.T) {
	alphabet := []string{"a", "Z", " ", "/", "\\", "\x00", ":", ".", "#", "-", "é", "?", "\n"}
	d := New(types.FilenameTitle)

	for i := 0; i < 500; i++ {
		n := i%11 + 1
		parts := make([]string, 0, n+1)
		for j := 0; j < n; j++ {
			parts = append(parts, alphabet[(i*7+j*13)%len(alphabet)])
		}
		at := i % (n + 1)
		parts = append(parts[:at], append([]string{"x"}, parts[at:]...)...)
		title := strings.Join(parts, "")

		got, err := d.Derive(title)
		require.NoError(t, err, "title %q", title)
		assert.NotEmpty(t, got)
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, "\\")
		assert.NotContains(t, got, "\x00")
		assert.Equal(t, strings.TrimSpace(got), got)
	}
}

func TestDeriveSlugStyle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "words", title: "Hello World Notes", want: "hello-world-notes"},
		{name: "accents transliterated", title: "Café résumé", want: "cafe-resume"},
		{name: "ampersand", title: "Tom & Jerry", want: "tom-and-jerry"},
		{name: "windows device name", title: "CON", want: "con_"},
		{name: "lowercase device name", title: "nul", want: "nul_"},
	}

	d := New(types.FilenameSlug)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Derive(tt.title)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveSlugStyleRejects(t *testing.T) {
	d := New(types.FilenameSlug)
	for _, title := range []string{"", "   ", "日本語", "???"} {
		t.Run(fmt.Sprintf("%q", title), func(t *testing.T) {
			_, err := d.Derive(title)
			var fe *types.InvalidFilenameError
			assert.True(t, errors.As(err, &fe))
		})
	}
}
