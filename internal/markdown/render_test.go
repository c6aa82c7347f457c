// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notes2md/pkg/types"
)

func sampleNote() types.Note {
	return types.Note{
		Created:  "2022-01-13T22:36:18.906Z",
		Modified: "2022-01-14T07:36:50.656Z",
		Content:  "# A title\nThis is a\ngreat piece of\nsample content!",
	}
}

func TestRenderSample(t *testing.T) {
	want := `---
title: "A title"
created: "2022-01-13T22:36:18.906Z"
modified: "2022-01-14T07:36:50.656Z"
---
# A title
This is a
great piece of
sample content!`

	assert.Equal(t, want, Render(sampleNote(), Options{}))
}

// splitDocument separates the front matter block from the body.
func splitDocument(t *testing.T, doc string) (string, string) {
	t.Helper()
	require.True(t, strings.HasPrefix(doc, "---\n"), "document must open with a delimiter")
	rest := doc[len("---\n"):]
	i := strings.Index(rest, "\n---\n")
	require.GreaterOrEqual(t, i, 0, "document must close the front matter")
	return rest[:i+1], rest[i+len("\n---\n"):]
}

// frontMatterKeys returns the mapping keys in order along with each value's
// scalar style and decoded value.
func frontMatterKeys(t *testing.T, fm string) ([]string, []yaml.Style, []string) {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(fm), &doc))
	require.Len(t, doc.Content, 1)
	m := doc.Content[0]
	require.Equal(t, yaml.MappingNode, m.Kind)

	var keys []string
	var styles []yaml.Style
	var values []string
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
		styles = append(styles, m.Content[i+1].Style)
		values = append(values, m.Content[i+1].Value)
	}
	return keys, styles, values
}

func TestRenderRoundTrip(t *testing.T) {
	notes := []types.Note{
		sampleNote(),
		{Content: ""},
		{Content: "\n\nbody after blank title line\n"},
		{Created: "x", Modified: "y", Content: `# Quotes "inside" and \backslash\` + "\n\n| table | row |\n---\nnot front matter\n"},
		{Content: "# Tab\there and café ☕\n```go\nfunc main() {}\n```"},
		{Content: "trailing newlines\n\n\n"},
	}

	for _, n := range notes {
		doc := Render(n, Options{})
		fm, body := splitDocument(t, doc)

		keys, styles, values := frontMatterKeys(t, fm)
		assert.Equal(t, []string{"title", "created", "modified"}, keys)
		for _, s := range styles {
			assert.Equal(t, yaml.DoubleQuotedStyle, s)
		}
		assert.Equal(t, []string{n.Title(), n.Created, n.Modified}, values)
		assert.Equal(t, n.Content, body)
	}
}

func TestRenderExtendedMeta(t *testing.T) {
	n := sampleNote()
	n.Trashed = true
	n.Favorited = true
	n.Pinned = true
	n.Tags = []string{"Personal", `Quo"ted`}

	doc := Render(n, Options{ExtendedMeta: true})
	fm, body := splitDocument(t, doc)

	var meta struct {
		Title    string   `yaml:"title"`
		Created  string   `yaml:"created"`
		Modified string   `yaml:"modified"`
		Deleted   bool     `yaml:"deleted"`
		Favorited bool     `yaml:"favorited"`
		Pinned    bool     `yaml:"pinned"`
		Tags     []string `yaml:"tags"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(fm), &meta))
	assert.Equal(t, "A title", meta.Title)
	assert.True(t, meta.Deleted)
	assert.True(t, meta.Favorited)
	assert.True(t, meta.Pinned)
	assert.Equal(t, []string{"Personal", `Quo"ted`}, meta.Tags)
	assert.Equal(t, n.Content, body)

	keys, _, _ := frontMatterKeys(t, fm)
	assert.Equal(t, []string{"title", "created", "modified", "deleted", "favorited", "pinned", "tags"}, keys)
}

func TestRenderExtendedMetaOmitsUnsetKeys(t *testing.T) {
	doc := Render(sampleNote(), Options{ExtendedMeta: true})
	assert.Equal(t, Render(sampleNote(), Options{}), doc)
}

func TestRenderIgnoresExtendedFieldsByDefault(t *testing.T) {
	n := sampleNote()
	n.Trashed = true
	n.Tags = []string{"a"}

	fm, _ := splitDocument(t, Render(n, Options{}))
	keys, _, _ := frontMatterKeys(t, fm)
	assert.Equal(t, []string{"title", "created", "modified"}, keys)
}

func TestRenderRepairsInvalidUTF8InFrontMatter(t *testing.T) {
	n := types.Note{
		Content:  "Caf\xe9 notes\nbody \xff",
		Created:  "2020\x80",
		Modified: "ctrl\x01\x7f",
	}
	doc := Render(n, Options{})
	fm, body := splitDocument(t, doc)

	var meta struct {
		Title    string `yaml:"title"`
		Created  string `yaml:"created"`
		Modified string `yaml:"modified"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(fm), &meta))
	assert.Equal(t, "Caf\uFFFD notes", meta.Title)
	assert.Equal(t, "2020\uFFFD", meta.Created)
	assert.Equal(t, "ctrl\x01\x7f", meta.Modified)
	assert.Equal(t, n.Content, body, "body is never rewritten")
}
