// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.ogg")
	in := singlePageStream(t, sampleTag())
	require.NoError(t, os.WriteFile(path, in, 0o640))

	c := &Codec{}
	tag := tagWithCommentSize(t, 70000)
	res, err := c.WriteFile(path, tag)
	require.NoError(t, err)
	assert.Equal(t, StrategySplitMerged, res.Strategy)

	got, err := c.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, tag, got)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.ogg")
	good := singlePageStream(t, sampleTag())
	pages, _ := parsePages(t, good)
	in := good[:pages[1].header.Offset]
	require.NoError(t, os.WriteFile(path, in, 0o644))

	_, err := (&Codec{}).WriteFile(path, sampleTag())
	assert.True(t, errors.Is(err, ErrFormat), "got %v", err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, after)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestReadFileMissing(t *testing.T) {
	_, err := (&Codec{}).ReadFile(filepath.Join(t.TempDir(), "missing.ogg"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
