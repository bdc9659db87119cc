package mbz

import (
	"testing"

	"github.com/dhowden/oggtag"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tag := &oggtag.Tag{Fields: []oggtag.Field{
		{Key: "TITLE", Value: "x"},
		{Key: "MUSICBRAINZ_TRACKID", Value: "track-1"},
		{Key: "musicbrainz_trackid", Value: "track-2"},
		{Key: "MusicBrainz Album Id", Value: "album"},
		{Key: "ACOUSTID_ID", Value: "acoustid"},
	}}

	i := Extract(tag)
	assert.Equal(t, &Info{
		AcoustID: "acoustid",
		Album:    "album",
		Track:    "track-1",
	}, i)
}

func TestApply(t *testing.T) {
	tag := &oggtag.Tag{Fields: []oggtag.Field{
		{Key: "MUSICBRAINZ_TRACKID", Value: "old"},
		{Key: "TITLE", Value: "x"},
	}}
	Apply(tag, &Info{Track: "new", Artist: "artist"})

	assert.Equal(t, []oggtag.Field{
		{Key: "MUSICBRAINZ_TRACKID", Value: "new"},
		{Key: "TITLE", Value: "x"},
		{Key: "MUSICBRAINZ_ARTISTID", Value: "artist"},
	}, tag.Fields)
	assert.Equal(t, "artist", Extract(tag).Artist)
}
