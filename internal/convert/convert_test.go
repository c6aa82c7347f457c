// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notes2md/internal/filename"
	"github.com/pdiddy/notes2md/internal/markdown"
	"github.com/pdiddy/notes2md/internal/source/simplenote"
	"github.com/pdiddy/notes2md/pkg/types"
)

// fakeDeriver returns canned names or errors per title.
type fakeDeriver struct {
	errs  map[string]error
	calls []string
}

func (f *fakeDeriver) Derive(title string) (string, error) {
	f.calls = append(f.calls, title)
	if err, ok := f.errs[title]; ok {
		return "", err
	}
	return "name-" + title, nil
}

func defaultOptions() Options {
	return Options{Deriver: filename.New(types.FilenameTitle)}
}

func TestConvertSample(t *testing.T) {
	batch, err := simplenote.Parse([]byte(`{"activeNotes":[{"content":"# A title\nThis is a\ngreat piece of\nsample content!","creationDate":"2022-01-13T22:36:18.906Z","lastModified":"2022-01-14T07:36:50.656Z"}],"trashedNotes":[]}`))
	require.NoError(t, err)

	var log bytes.Buffer
	result := Convert(batch, defaultOptions(), &log)

	assert.Equal(t, "active:1, trashed:0\n", log.String())
	require.Len(t, result.Items, 1)
	item := result.Items[0]
	require.True(t, item.OK())
	assert.Equal(t, "A title", item.Filename)
	assert.Equal(t, "---\ntitle: \"A title\"\ncreated: \"2022-01-13T22:36:18.906Z\"\nmodified: \"2022-01-14T07:36:50.656Z\"\n---\n# A title\nThis is a\ngreat piece of\nsample content!", item.Markdown)
	assert.Equal(t, 1, result.Succeeded())
	assert.Equal(t, 0, result.Failed())
}

func TestConvertEmptyContentFails(t *testing.T) {
	batch := types.NewBatch("simplenote", []types.Note{{Content: "", Created: "c", Modified: "m"}}, nil)

	result := Convert(batch, defaultOptions(), &bytes.Buffer{})

	assert.Equal(t, 1, result.Total())
	assert.Equal(t, 1, result.Failed())
	assert.Equal(t, 0, result.Succeeded())
	assert.True(t, result.HasFailures())

	item := result.Items[0]
	var fe *types.InvalidFilenameError
	require.True(t, errors.As(item.Err, &fe))
	assert.Empty(t, item.Filename)
	assert.Equal(t, "---\ntitle: \"\"\ncreated: \"c\"\nmodified: \"m\"\n---\n", item.Markdown)
}

func TestConvertContinuesAfterFailure(t *testing.T) {
	notes := []types.Note{
		{Content: "First"},
		{Content: ""},
		{Content: "\nblank first line"},
		{Content: "# Fourth\nbody"},
	}
	batch := types.NewBatch("simplenote", notes, nil)

	result := Convert(batch, defaultOptions(), &bytes.Buffer{})

	require.Len(t, result.Items, 4)
	var outcomes []string
	for _, it := range result.Items {
		outcomes = append(outcomes, fmt.Sprintf("%s|%v", it.Filename, it.OK()))
	}
	assert.Equal(t, []string{"First|true", "|false", "|false", "Fourth|true"}, outcomes)
	assert.Equal(t, 2, result.Succeeded())
	assert.Equal(t, 2, result.Failed())
}

func TestConvertPreservesOrderAndCallsDeriverPerNote(t *testing.T) {
	deriver := &fakeDeriver{errs: map[string]error{"bad": errors.New("boom")}}
	notes := []types.Note{{Content: "one"}, {Content: "bad"}, {Content: "two"}}
	trashed := []types.Note{{Content: "three", Trashed: true}}
	batch := types.NewBatch("simplenote", notes, trashed)

	result := Convert(batch, Options{Deriver: deriver}, &bytes.Buffer{})

	assert.Equal(t, []string{"one", "bad", "two", "three"}, deriver.calls)
	require.Len(t, result.Items, 4)
	assert.Equal(t, "name-one", result.Items[0].Filename)
	assert.EqualError(t, result.Items[1].Err, "boom")
	assert.Equal(t, "name-three", result.Items[3].Filename)
	assert.True(t, result.Items[3].Note.Trashed)
}

func TestConvertSkipTrashed(t *testing.T) {
	batch := types.NewBatch("simplenote",
		[]types.Note{{Content: "kept"}},
		[]types.Note{{Content: "gone", Trashed: true}},
	)

	var log bytes.Buffer
	opts := defaultOptions()
	opts.SkipTrashed = true
	result := Convert(batch, opts, &log)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "kept", result.Items[0].Filename)
	assert.Equal(t, 1, result.Trashed)
	assert.Equal(t, "active:1, trashed:1\n", log.String())
}

func TestConvertReportsCountsBeforeNotes(t *testing.T) {
	var active, trashed []types.Note
	for i := 0; i < 597; i++ {
		active = append(active, types.Note{Content: fmt.Sprintf("Note %d", i)})
	}
	for i := 0; i < 17; i++ {
		trashed = append(trashed, types.Note{Content: fmt.Sprintf("Trashed %d", i), Trashed: true})
	}
	batch := types.NewBatch("simplenote", active, trashed)

	var log bytes.Buffer
	deriver := &orderCheckingDeriver{log: &log, t: t}
	result := Convert(batch, Options{Deriver: deriver}, &log)

	assert.True(t, strings.HasPrefix(log.String(), "active:597, trashed:17\n"))
	assert.Equal(t, 614, result.Total())
	assert.Equal(t, 614, result.Succeeded())
}

// orderCheckingDeriver fails the test if a note is processed before the
// counts line has been written.
type orderCheckingDeriver struct {
	log *bytes.Buffer
	t   *testing.T
}

func (o *orderCheckingDeriver) Derive(title string) (string, error) {
	if !strings.HasPrefix(o.log.String(), "active:") {
		o.t.Errorf("note %q processed before counts were reported", title)
	}
	return title, nil
}

func TestConvertNoteRendersWithOptions(t *testing.T) {
	n := types.Note{Content: "Tagged", Tags: []string{"x"}}
	opts := defaultOptions()
	opts.Render = markdown.Options{ExtendedMeta: true}

	item := ConvertNote(n, opts)
	require.True(t, item.OK())
	assert.Contains(t, item.Markdown, "tags: [\"x\"]\n")
}
