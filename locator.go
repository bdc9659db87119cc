// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"io"
)

// HeaderSizes describes where the comment and setup header packets live in a
// stream. It is computed by walking the page headers, without holding the
// packets in memory.
type HeaderSizes struct {
	CommentStart int64 // Offset of the page which starts the comment packet.
	SetupStart   int64 // Offset of the page which starts the setup packet.
	HeaderEnd    int64 // Offset just past the last page of the header region.

	CommentSize int // Length of the comment packet, signature included.
	SetupSize   int // Length of the setup packet; 0 for codecs without one.

	// Extra holds the packets which follow the setup header on the last header
	// page (typically the first audio packet). They are kept byte for byte.
	Extra []PacketInfo

	Pages         int    // Number of pages from CommentStart to HeaderEnd.
	FirstSequence uint32 // Sequence number of the page at CommentStart.
	LastSequence  uint32 // Sequence number of the last header page.
	LastGranule   uint64 // Granule position of the last header page.
}

// ExtraSize returns the number of bytes in the extra packets.
func (hs *HeaderSizes) ExtraSize() int {
	n := 0
	for _, p := range hs.Extra {
		n += p.Length
	}
	return n
}

// ExtraContinues returns true if the last extra packet continues onto the page
// after the header region.
func (hs *HeaderSizes) ExtraContinues() bool {
	return len(hs.Extra) > 0 && !hs.Extra[len(hs.Extra)-1].Complete
}

// SinglePage returns true if the comment packet, setup packet and any extra
// packets all sit on one page whose last packet is complete.
func (hs *HeaderSizes) SinglePage() bool {
	return hs.Pages == 1 && !hs.ExtraContinues()
}

// trailingPackets returns the layout of the setup packet and extra packets.
func (hs *HeaderSizes) trailingPackets(p Profile) []PacketInfo {
	var packets []PacketInfo
	if p.HasSetupHeader() {
		packets = append(packets, PacketInfo{Length: hs.SetupSize, Complete: true})
	}
	return append(packets, hs.Extra...)
}

// seekPage reads the page header at off.
func seekPage(r io.ReadSeeker, off int64) (*PageHeader, error) {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}
	return ReadPageHeader(r)
}

// nextContinuedPage reads the page following h, which must continue the
// packet h ends with.
func nextContinuedPage(r io.ReadSeeker, h *PageHeader) (*PageHeader, []PacketInfo, error) {
	next, err := seekPage(r, h.End())
	if err != nil {
		return nil, nil, err
	}
	if !next.IsContinued() {
		return nil, nil, formatError(next.Offset, "expected page continuing packet from previous page")
	}
	packets := next.Packets()
	if len(packets) == 0 {
		return nil, nil, formatError(next.Offset, "empty continuation page")
	}
	return next, packets, nil
}

// signature gathers the first bytes of a packet, which may be split over
// several pages.
type signature struct {
	want int
	b    []byte
}

func (s *signature) collect(r io.ReadSeeker, off int64, avail int) error {
	need := s.want - len(s.b)
	if need > avail {
		need = avail
	}
	if need <= 0 {
		return nil
	}
	b, err := readBytesAt(r, off, need)
	if err != nil {
		return err
	}
	s.b = append(s.b, b...)
	return nil
}

// readSecondPage reads the identification header page and the header of the
// page which follows it.
func readSecondPage(r io.ReadSeeker) (first, second *PageHeader, err error) {
	first, err = seekPage(r, 0)
	if err != nil {
		return nil, nil, err
	}
	second, err = seekPage(r, first.End())
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

// readRawCommentPacket returns the comment packet, signature included,
// reassembled from as many pages as it spans.
func (c *Codec) readRawCommentPacket(r io.ReadSeeker) ([]byte, error) {
	p := c.profile()

	_, h, err := readSecondPage(r)
	if err != nil {
		return nil, err
	}
	packets := h.Packets()
	if len(packets) == 0 {
		return nil, formatError(h.Offset, "no vorbis comment header")
	}

	buf := &bytes.Buffer{}
	if _, err = io.CopyN(buf, r, int64(packets[0].Length)); err != nil {
		return nil, truncated(err, h.Offset)
	}
	if buf.Len() >= len(p.CommentPrefix) && !p.IsCommentHeader(buf.Bytes()) {
		return nil, formatError(h.Offset, "no vorbis comment header")
	}

	for len(packets) == 1 && !packets[0].Complete {
		h, packets, err = nextContinuedPage(r, h)
		if err != nil {
			return nil, err
		}
		if _, err = io.CopyN(buf, r, int64(packets[0].Length)); err != nil {
			return nil, truncated(err, h.Offset)
		}
	}

	if !p.IsCommentHeader(buf.Bytes()) {
		return nil, formatError(-1, "no vorbis comment header")
	}
	return buf.Bytes(), nil
}

// ReadHeaderSizes walks the header pages of r and reports where the comment and
// setup packets are. r is left at an unspecified position.
func (c *Codec) ReadHeaderSizes(r io.ReadSeeker) (*HeaderSizes, error) {
	p := c.profile()

	_, h, err := readSecondPage(r)
	if err != nil {
		return nil, err
	}
	packets := h.Packets()
	if len(packets) == 0 {
		return nil, formatError(h.Offset, "no vorbis comment header")
	}

	hs := &HeaderSizes{
		CommentStart:  h.Offset,
		CommentSize:   packets[0].Length,
		Pages:         1,
		FirstSequence: h.Sequence,
	}

	sig := &signature{want: len(p.CommentPrefix)}
	if err := sig.collect(r, h.PayloadOffset(), packets[0].Length); err != nil {
		return nil, truncated(err, h.Offset)
	}

	for len(packets) == 1 && !packets[0].Complete {
		h, packets, err = nextContinuedPage(r, h)
		if err != nil {
			return nil, err
		}
		if err := sig.collect(r, h.PayloadOffset(), packets[0].Length); err != nil {
			return nil, truncated(err, h.Offset)
		}
		hs.CommentSize += packets[0].Length
		hs.Pages++
	}
	if !p.IsCommentHeader(sig.b) {
		return nil, formatError(hs.CommentStart, "no vorbis comment header")
	}

	// h is the page on which the comment packet ends.
	rest := packets[1:]
	restOffset := h.PayloadOffset() + int64(packets[0].Length)

	if !p.HasSetupHeader() {
		hs.SetupStart = h.Offset
		hs.finish(h, rest)
		return hs, nil
	}

	if len(rest) == 0 {
		// The comment packet filled its last page: the setup header starts the
		// next one.
		h, err = seekPage(r, h.End())
		if err != nil {
			return nil, err
		}
		if h.IsContinued() {
			return nil, formatError(h.Offset, "unexpected continued page before vorbis setup header")
		}
		rest = h.Packets()
		if len(rest) == 0 {
			return nil, formatError(h.Offset, "no vorbis setup header")
		}
		restOffset = h.PayloadOffset()
		hs.Pages++
	}

	hs.SetupStart = h.Offset
	hs.SetupSize = rest[0].Length

	sig = &signature{want: len(p.SetupPrefix)}
	if err := sig.collect(r, restOffset, rest[0].Length); err != nil {
		return nil, truncated(err, h.Offset)
	}

	for len(rest) == 1 && !rest[0].Complete {
		h, rest, err = nextContinuedPage(r, h)
		if err != nil {
			return nil, err
		}
		if err := sig.collect(r, h.PayloadOffset(), rest[0].Length); err != nil {
			return nil, truncated(err, h.Offset)
		}
		hs.SetupSize += rest[0].Length
		hs.Pages++
	}
	if !p.IsSetupHeader(sig.b) {
		return nil, formatError(hs.SetupStart, "no vorbis setup header")
	}

	hs.finish(h, rest[1:])
	return hs, nil
}

func (hs *HeaderSizes) finish(last *PageHeader, extra []PacketInfo) {
	hs.Extra = extra
	hs.HeaderEnd = last.End()
	hs.LastSequence = last.Sequence
	hs.LastGranule = last.GranulePos
}

// extractSetupAndExtraPackets returns the setup packet and the extra packets
// which follow it, reassembled from the pages starting at hs.SetupStart.
func (c *Codec) extractSetupAndExtraPackets(r io.ReadSeeker, hs *HeaderSizes) (setup []byte, extra [][]byte, err error) {
	p := c.profile()

	h, err := seekPage(r, hs.SetupStart)
	if err != nil {
		return nil, nil, err
	}
	packets := h.Packets()
	if len(packets) == 0 {
		return nil, nil, formatError(h.Offset, "no vorbis setup header")
	}

	// Skip the tail of the comment packet when it shares the page.
	if h.Offset == hs.CommentStart || h.IsContinued() || !p.HasSetupHeader() {
		if _, err = r.Seek(int64(packets[0].Length), io.SeekCurrent); err != nil {
			return nil, nil, err
		}
		packets = packets[1:]
	}

	if p.HasSetupHeader() {
		if len(packets) == 0 {
			return nil, nil, formatError(h.Offset, "no vorbis setup header")
		}
		buf := &bytes.Buffer{}
		if _, err = io.CopyN(buf, r, int64(packets[0].Length)); err != nil {
			return nil, nil, truncated(err, h.Offset)
		}
		for len(packets) == 1 && !packets[0].Complete {
			h, packets, err = nextContinuedPage(r, h)
			if err != nil {
				return nil, nil, err
			}
			if _, err = io.CopyN(buf, r, int64(packets[0].Length)); err != nil {
				return nil, nil, truncated(err, h.Offset)
			}
		}
		if !p.IsSetupHeader(buf.Bytes()) {
			return nil, nil, formatError(hs.SetupStart, "no vorbis setup header")
		}
		setup = buf.Bytes()
		packets = packets[1:]
	}

	if len(packets) != len(hs.Extra) {
		return nil, nil, formatError(h.Offset, "header pages changed while reading")
	}
	for _, pk := range packets {
		b, err := readBytes(r, uint(pk.Length))
		if err != nil {
			return nil, nil, truncated(err, h.Offset)
		}
		extra = append(extra, b)
	}
	return setup, extra, nil
}

// truncated converts a short read into a *FormatError.
func truncated(err error, offset int64) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return formatError(offset, "truncated ogg page")
	}
	return err
}
