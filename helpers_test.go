// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Vorbis identification header packet type.
const idType byte = 1

const (
	testSerial = 0x1234abcd
	testVendor = "test vendor"

	// Bytes of a framed vorbis comment packet holding a single DESCRIPTION
	// field, not counting the field value.
	testCommentOverhead = 7 + 4 + len(testVendor) + 4 + 4 + len("DESCRIPTION=") + 1
)

type testPage struct {
	flags   byte
	granule uint64
	packets []packet
}

func complete(b []byte) packet {
	return packet{data: b, complete: true}
}

// fragments splits b into packets of the given sizes followed by the
// remainder. Only the last one is complete, so sizes must be multiples of 255.
func fragments(b []byte, sizes ...int) []packet {
	var out []packet
	for _, n := range sizes {
		out = append(out, packet{data: b[:n]})
		b = b[n:]
	}
	return append(out, complete(b))
}

// buildTestStream serialises pages with sequence numbers starting at 0.
func buildTestStream(t *testing.T, pages []testPage) []byte {
	t.Helper()

	var out []byte
	for i, p := range pages {
		var infos []PacketInfo
		var payload []byte
		for _, pk := range p.packets {
			infos = append(infos, PacketInfo{Length: len(pk.data), Complete: pk.complete})
			payload = append(payload, pk.data...)
		}
		segments := packetSegments(infos)
		require.LessOrEqual(t, len(segments), MaxSegments, "test page %d has too many segments", i)

		h := &PageHeader{
			HeaderType: p.flags,
			GranulePos: p.granule,
			Serial:     testSerial,
			Sequence:   uint32(i),
			Segments:   segments,
		}
		out = append(out, buildPage(h, payload)...)
	}
	return out
}

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

func identPacket() []byte {
	b := []byte{idType, 'v', 'o', 'r', 'b', 'i', 's'}
	b = append(b, 0, 0, 0, 0, 2)       // version, channels
	b = append(b, 0x44, 0xac, 0, 0)    // sample rate
	b = append(b, make([]byte, 12)...) // bitrates
	return append(b, 0xb8, 1)          // block sizes, framing
}

func setupPacket(n int) []byte {
	return append([]byte{setupType, 'v', 'o', 'r', 'b', 'i', 's'}, pattern(n-7, 0x55)...)
}

func tagWithCommentSize(t *testing.T, n int) *Tag {
	t.Helper()
	require.GreaterOrEqual(t, n, testCommentOverhead)

	tag := &Tag{Vendor: testVendor}
	tag.Add("DESCRIPTION", strings.Repeat("d", n-testCommentOverhead))
	return tag
}

func framedComment(t *testing.T, tag *Tag) []byte {
	t.Helper()
	body, err := EncodeComment(tag)
	require.NoError(t, err)
	return VorbisProfile.frame(body)
}

func sampleTag() *Tag {
	return &Tag{
		Vendor: testVendor,
		Fields: []Field{
			{"TITLE", "Test Title"},
			{"ARTIST", "Test Artist"},
			{"ARTIST", "Second Artist"},
			{"ALBUM", "Test Album"},
			{"TRACKNUMBER", "3"},
			{"TRACKTOTAL", "6"},
			{"DATE", "2000-01-02"},
		},
	}
}

// audioPages returns n audio pages of two 300 byte packets each, the last one
// flagged end of stream.
func audioPages(n int) []testPage {
	var pages []testPage
	for i := 0; i < n; i++ {
		p := testPage{
			granule: uint64(1024 * (i + 1)),
			packets: []packet{
				complete(pattern(300, byte(i))),
				complete(pattern(300, byte(i+100))),
			},
		}
		if i == n-1 {
			p.flags = FlagLast
		}
		pages = append(pages, p)
	}
	return pages
}

// vorbisStream builds a stream with an identification page, the given header
// pages and three audio pages.
func vorbisStream(t *testing.T, header ...testPage) []byte {
	t.Helper()
	pages := []testPage{{flags: FlagFirst, packets: []packet{complete(identPacket())}}}
	pages = append(pages, header...)
	pages = append(pages, audioPages(3)...)
	return buildTestStream(t, pages)
}

// singlePageStream has the comment and setup headers sharing page 2.
func singlePageStream(t *testing.T, tag *Tag) []byte {
	t.Helper()
	return vorbisStream(t, testPage{packets: []packet{
		complete(framedComment(t, tag)),
		complete(setupPacket(3000)),
	}})
}

type parsedPage struct {
	header  *PageHeader
	raw     []byte
	payload []byte
}

// parsePages reads every page of b, checking each checksum, and returns the
// pages and any trailing non-Ogg bytes.
func parsePages(t *testing.T, b []byte) ([]parsedPage, []byte) {
	t.Helper()

	r := bytes.NewReader(b)
	var pages []parsedPage
	for {
		off := int64(len(b) - r.Len())
		h, err := ReadPageHeader(r)
		if err != nil {
			require.True(t, errors.Is(err, ErrFormat), "unexpected error: %v", err)
			return pages, b[off:]
		}
		end := h.End()
		require.LessOrEqual(t, end, int64(len(b)), "truncated page at %d", off)
		raw := b[off:end]
		require.True(t, validChecksum(raw), "bad checksum on page %d at offset %d", h.Sequence, off)

		pages = append(pages, parsedPage{header: h, raw: raw, payload: raw[h.HeaderLen():]})
		_, err = r.Seek(end, io.SeekStart)
		require.NoError(t, err)
	}
}

// requireContiguous checks that page sequence numbers increase by one.
func requireContiguous(t *testing.T, pages []parsedPage) {
	t.Helper()
	for i, p := range pages {
		require.Equal(t, uint32(i), p.header.Sequence, "page %d", i)
	}
}

// audioAfterHeader returns the pages after the header region.
func audioAfterHeader(t *testing.T, c *Codec, b []byte) []parsedPage {
	t.Helper()
	hs, err := c.ReadHeaderSizes(bytes.NewReader(b))
	require.NoError(t, err)

	pages, _ := parsePages(t, b)
	var out []parsedPage
	for _, p := range pages {
		if p.header.Offset >= hs.HeaderEnd {
			out = append(out, p)
		}
	}
	return out
}

// requireAudioPreserved checks that the pages after the header region carry
// the same payloads, flags and granule positions.
func requireAudioPreserved(t *testing.T, c *Codec, in, out []byte) {
	t.Helper()
	want := audioAfterHeader(t, c, in)
	got := audioAfterHeader(t, c, out)
	require.Equal(t, len(want), len(got))
	for i := range want {
		require.Equal(t, want[i].payload, got[i].payload, "audio page %d payload", i)
		require.Equal(t, want[i].header.Segments, got[i].header.Segments, "audio page %d segments", i)
		require.Equal(t, want[i].header.HeaderType, got[i].header.HeaderType, "audio page %d flags", i)
		require.Equal(t, want[i].header.GranulePos, got[i].header.GranulePos, "audio page %d granule", i)
	}
}

func writeTag(t *testing.T, c *Codec, tag *Tag, in []byte) ([]byte, *WriteResult) {
	t.Helper()
	out := &bytes.Buffer{}
	res, err := c.Write(tag, bytes.NewReader(in), out)
	require.NoError(t, err)
	return out.Bytes(), res
}
