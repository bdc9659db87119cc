// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Common field names.
// See https://wiki.xiph.org/Field_names
const (
	FieldTitle       = "TITLE"
	FieldAlbum       = "ALBUM"
	FieldArtist      = "ARTIST"
	FieldAlbumArtist = "ALBUMARTIST"
	FieldPerformer   = "PERFORMER"
	FieldComposer    = "COMPOSER"
	FieldGenre       = "GENRE"
	FieldDate        = "DATE"
	FieldTrackNumber = "TRACKNUMBER"
	FieldTrackTotal  = "TRACKTOTAL"
	FieldDiscNumber  = "DISCNUMBER"
	FieldDiscTotal   = "DISCTOTAL"
	FieldComment     = "COMMENT"
	FieldLyrics      = "LYRICS"
	FieldPicture     = "METADATA_BLOCK_PICTURE"
)

// Title returns the title of the track.
func (t *Tag) Title() string {
	return t.Get(FieldTitle)
}

// Album returns the album name of the track.
func (t *Tag) Album() string {
	return t.Get(FieldAlbum)
}

// Artist returns the artist name of the track.
func (t *Tag) Artist() string {
	// PERFORMER
	// The artist(s) who performed the work. In classical music this would be the
	// conductor, orchestra, soloists. In an audio book it would be the actor who
	// did the reading. In popular music this is typically the same as the ARTIST
	// and is omitted.
	if p := t.Get(FieldPerformer); p != "" {
		return p
	}
	return t.Get(FieldArtist)
}

// AlbumArtist returns the album artist name of the track.
func (t *Tag) AlbumArtist() string {
	return t.Get(FieldAlbumArtist)
}

// Composer returns the composer of the track.
func (t *Tag) Composer() string {
	// ARTIST
	// The artist generally considered responsible for the work. In popular music
	// this is usually the performing band or singer. For classical music it would
	// be the composer. For an audio book it would be the author of the original text.
	if c := t.Get(FieldComposer); c != "" {
		return c
	}
	if t.Get(FieldPerformer) == "" {
		return ""
	}
	return t.Get(FieldArtist)
}

// Genre returns the genre of the track.
func (t *Tag) Genre() string {
	return t.Get(FieldGenre)
}

// Year returns the year from the leading digits of DATE, or 0.
func (t *Tag) Year() int {
	d := t.Get(FieldDate)
	if len(d) < 4 {
		return 0
	}
	y, _ := strconv.Atoi(d[:4])
	return y
}

// Track returns the track number and total tracks, or zero values if unavailable.
func (t *Tag) Track() (int, int) {
	return numberAndTotal(t.Get(FieldTrackNumber), t.Get(FieldTrackTotal))
}

// Disc returns the disc number and total discs, or zero values if unavailable.
func (t *Tag) Disc() (int, int) {
	return numberAndTotal(t.Get(FieldDiscNumber), t.Get(FieldDiscTotal))
}

// numberAndTotal handles both "3" + "6" and the common "3/6" form.
func numberAndTotal(number, total string) (int, int) {
	if i := strings.IndexByte(number, '/'); i >= 0 {
		if total == "" {
			total = number[i+1:]
		}
		number = number[:i]
	}
	x, _ := strconv.Atoi(strings.TrimSpace(number))
	n, _ := strconv.Atoi(strings.TrimSpace(total))
	return x, n
}

// Comment returns the comment, or an empty string if unavailable.
func (t *Tag) Comment() string {
	return t.Get(FieldComment)
}

// Lyrics returns the lyrics, or an empty string if unavailable.
func (t *Tag) Lyrics() string {
	return t.Get(FieldLyrics)
}

// Picture returns the first METADATA_BLOCK_PICTURE which can be decoded, or nil.
func (t *Tag) Picture() *Picture {
	for _, v := range t.GetAll(FieldPicture) {
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			continue
		}
		p, err := readPictureBlock(bytes.NewReader(b))
		if err != nil {
			continue
		}
		return p
	}
	return nil
}

// Raw returns the fields keyed by lower-cased name. Repeated keys keep the first
// value, and the vendor string is stored as "vendor".
func (t *Tag) Raw() map[string]interface{} {
	raw := make(map[string]interface{}, len(t.Fields)+1)
	raw["vendor"] = t.Vendor
	for _, f := range t.Fields {
		k := strings.ToLower(f.Key)
		if _, ok := raw[k]; !ok {
			raw[k] = f.Value
		}
	}
	return raw
}

var pictureTypes = map[byte]string{
	0x00: "Other",
	0x01: "32x32 pixels 'file icon' (PNG only)",
	0x02: "Other file icon",
	0x03: "Cover (front)",
	0x04: "Cover (back)",
	0x05: "Leaflet page",
	0x06: "Media (e.g. lable side of CD)",
	0x07: "Lead artist/lead performer/soloist",
	0x08: "Artist/performer",
	0x09: "Conductor",
	0x0A: "Band/Orchestra",
	0x0B: "Composer",
	0x0C: "Lyricist/text writer",
	0x0D: "Recording Location",
	0x0E: "During recording",
	0x0F: "During performance",
	0x10: "Movie/video screen capture",
	0x11: "A bright coloured fish",
	0x12: "Illustration",
	0x13: "Band/artist logotype",
	0x14: "Publisher/Studio logotype",
}

// Picture is a type which represents an attached picture extracted from metadata.
type Picture struct {
	Ext         string // Extension of the picture file.
	MIMEType    string // MIMEType of the picture.
	Type        string // Type of the picture (see pictureTypes).
	Description string // Description.
	Data        []byte // Raw picture data.
}

// String returns a string representation of the underlying Picture instance.
func (p Picture) String() string {
	return fmt.Sprintf("Picture{Ext: %v, MIMEType: %v, Type: %v, Description: %v, Data.Size: %v}",
		p.Ext, p.MIMEType, p.Type, p.Description, len(p.Data))
}

// readPictureBlock reads a FLAC picture block, which is what vorbis comments
// carry (base64 encoded) in METADATA_BLOCK_PICTURE.
// See https://xiph.org/flac/format.html#metadata_block_picture
func readPictureBlock(r *bytes.Reader) (*Picture, error) {
	b, err := readInt(r, 4)
	if err != nil {
		return nil, err
	}
	pictureType, ok := pictureTypes[byte(b)]
	if !ok {
		return nil, fmt.Errorf("invalid picture type: %v", b)
	}

	mime, err := readPictureString(r)
	if err != nil {
		return nil, err
	}

	ext := ""
	switch mime {
	case "image/jpeg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	case "image/gif":
		ext = "gif"
	}

	desc, err := readPictureString(r)
	if err != nil {
		return nil, err
	}

	// We skip width <32>, height <32>, colorDepth <32>, coloresUsed <32>
	if _, err = r.Seek(16, io.SeekCurrent); err != nil {
		return nil, err
	}

	dataLen, err := readInt(r, 4)
	if err != nil {
		return nil, err
	}
	if dataLen > r.Len() {
		return nil, fmt.Errorf("picture data length %d exceeds block", dataLen)
	}
	data, err := readBytes(r, uint(dataLen))
	if err != nil {
		return nil, err
	}

	return &Picture{
		Ext:         ext,
		MIMEType:    mime,
		Type:        pictureType,
		Description: desc,
		Data:        data,
	}, nil
}

func readPictureString(r *bytes.Reader) (string, error) {
	n, err := readInt(r, 4)
	if err != nil {
		return "", err
	}
	if n > r.Len() {
		return "", fmt.Errorf("picture string length %d exceeds block", n)
	}
	return readString(r, uint(n))
}
