// Package mbz extracts MusicBrainz Picard-specific tags from vorbis comments.
// See https://picard.musicbrainz.org/docs/mappings/ for more information.
package mbz

import (
	"strings"

	"github.com/dhowden/oggtag"
)

// Info is a structure which contains MusicBrainz identifier information.
type Info struct {
	AcoustID     string
	Album        string
	AlbumArtist  string
	Artist       string
	ReleaseGroup string
	Track        string
	ReleaseTrack string
}

// Supported MusicBrainz tag names
const (
	TagAcoustID     = "acoustid_id"
	TagAlbum        = "musicbrainz_albumid"
	TagAlbumArtist  = "musicbrainz_albumartistid"
	TagArtist       = "musicbrainz_artistid"
	TagReleaseGroup = "musicbrainz_releasegroupid"
	TagTrack        = "musicbrainz_trackid"
	TagReleaseTrack = "musicbrainz_releasetrackid"
)

// Mapping between the internal picard tag names and aliases.
var tags = map[string]string{
	TagAcoustID:     "Acoustid Id",
	TagAlbum:        "MusicBrainz Album Id",
	TagAlbumArtist:  "MusicBrainz Album Artist Id",
	TagArtist:       "MusicBrainz Artist Id",
	TagReleaseGroup: "MusicBrainz Release Group Id",
	TagTrack:        "MusicBrainz Track Id",
	TagReleaseTrack: "MusicBrainz Release Track Id",
}

func (i *Info) set(t, v string) {
	switch t {
	case TagAcoustID:
		i.AcoustID = v
	case TagAlbum:
		i.Album = v
	case TagAlbumArtist:
		i.AlbumArtist = v
	case TagArtist:
		i.Artist = v
	case TagReleaseGroup:
		i.ReleaseGroup = v
	case TagTrack:
		i.Track = v
	case TagReleaseTrack:
		i.ReleaseTrack = v
	}
}

// Set the MusicBrainz tag to the given value. t is matched case-insensitively
// against both the vorbis field names and their Picard aliases.
func (i *Info) Set(t, v string) {
	t = strings.ToLower(t)
	if _, ok := tags[t]; ok {
		i.set(t, v)
		return
	}

	for k, tt := range tags {
		if strings.ToLower(tt) == t {
			i.set(k, v)
			return
		}
	}
}

// Extract tags created by MusicBrainz Picard which can be used with with the MusicBrainz and LastFM APIs.
// Where a field repeats, the first value wins.
func Extract(t *oggtag.Tag) *Info {
	i := &Info{}
	for j := len(t.Fields) - 1; j >= 0; j-- {
		f := t.Fields[j]
		i.Set(f.Key, f.Value)
	}
	return i
}

// Apply writes the non-empty identifiers in i to t, replacing existing values.
func Apply(t *oggtag.Tag, i *Info) {
	for _, kv := range [][2]string{
		{TagAcoustID, i.AcoustID},
		{TagAlbum, i.Album},
		{TagAlbumArtist, i.AlbumArtist},
		{TagArtist, i.Artist},
		{TagReleaseGroup, i.ReleaseGroup},
		{TagTrack, i.Track},
		{TagReleaseTrack, i.ReleaseTrack},
	} {
		if kv[1] != "" {
			t.Set(strings.ToUpper(kv[0]), kv[1])
		}
	}
}
