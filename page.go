// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"encoding/binary"
	"errors"
	"io"
)

// Ogg page layout constants.
// See http://www.xiph.org/ogg/doc/framing.html
const (
	PageHeaderSize = 27                           // Fixed part of the page header.
	MaxSegmentSize = 255                          // Largest lacing value.
	MaxSegments    = 255                          // Largest segment table.
	MaxPagePayload = MaxSegmentSize * MaxSegments // 65025 bytes.

	capturePattern = "OggS"

	sequenceOffset = 18
	checksumOffset = 22
)

// Header type flags.
const (
	FlagContinued byte = 0x01 // First packet continues one from the previous page.
	FlagFirst     byte = 0x02 // Beginning of stream.
	FlagLast      byte = 0x04 // End of stream.
)

// PageHeader is the header of a single Ogg page.
type PageHeader struct {
	Offset     int64 // Offset of the capture pattern in the stream.
	Version    byte
	HeaderType byte
	GranulePos uint64
	Serial     uint32
	Sequence   uint32
	Checksum   uint32
	Segments   []byte
}

// PacketInfo describes one packet (or packet fragment) on a page.
type PacketInfo struct {
	Length   int
	Complete bool // false if the packet continues onto the next page
}

// ReadPageHeader reads the page header at the current position of r.  On return r
// is positioned at the start of the page payload.
func ReadPageHeader(r io.ReadSeeker) (*PageHeader, error) {
	offset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	b, err := readBytes(r, PageHeaderSize)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, formatError(offset, "truncated ogg page header")
		}
		return nil, err
	}
	if string(b[0:4]) != capturePattern {
		return nil, formatError(offset, "expected 'OggS'")
	}

	h := &PageHeader{
		Offset:     offset,
		Version:    b[4],
		HeaderType: b[5],
		GranulePos: binary.LittleEndian.Uint64(b[6:14]),
		Serial:     binary.LittleEndian.Uint32(b[14:18]),
		Sequence:   binary.LittleEndian.Uint32(b[18:22]),
		Checksum:   binary.LittleEndian.Uint32(b[22:26]),
	}

	h.Segments, err = readBytes(r, uint(b[26]))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, formatError(offset, "truncated ogg segment table")
		}
		return nil, err
	}
	return h, nil
}

// HeaderLen returns the length of the header including the segment table.
func (h *PageHeader) HeaderLen() int {
	return PageHeaderSize + len(h.Segments)
}

// PayloadLen returns the length of the page payload.
func (h *PageHeader) PayloadLen() int {
	n := 0
	for _, s := range h.Segments {
		n += int(s)
	}
	return n
}

// PayloadOffset returns the offset of the payload in the stream.
func (h *PageHeader) PayloadOffset() int64 {
	return h.Offset + int64(h.HeaderLen())
}

// End returns the offset just past the page.
func (h *PageHeader) End() int64 {
	return h.PayloadOffset() + int64(h.PayloadLen())
}

// IsContinued returns true if the first packet on the page started on a
// previous page.
func (h *PageHeader) IsContinued() bool {
	return h.HeaderType&FlagContinued != 0
}

// Packets splits the segment table into packets. The last entry is incomplete
// if the final lacing value is 255.
func (h *PageHeader) Packets() []PacketInfo {
	var packets []PacketInfo
	n := 0
	for _, s := range h.Segments {
		n += int(s)
		if s < MaxSegmentSize {
			packets = append(packets, PacketInfo{Length: n, Complete: true})
			n = 0
		}
	}
	if len(h.Segments) > 0 && h.Segments[len(h.Segments)-1] == MaxSegmentSize {
		packets = append(packets, PacketInfo{Length: n})
	}
	return packets
}

// LastPacketIncomplete returns true if the last packet on the page continues onto
// the following page.
func (h *PageHeader) LastPacketIncomplete() bool {
	return len(h.Segments) > 0 && h.Segments[len(h.Segments)-1] == MaxSegmentSize
}

// Bytes returns the serialised header, including the segment table and the
// stored checksum.
func (h *PageHeader) Bytes() []byte {
	b := make([]byte, h.HeaderLen())
	copy(b[0:4], capturePattern)
	b[4] = h.Version
	b[5] = h.HeaderType
	binary.LittleEndian.PutUint64(b[6:14], h.GranulePos)
	binary.LittleEndian.PutUint32(b[14:18], h.Serial)
	binary.LittleEndian.PutUint32(b[18:22], h.Sequence)
	binary.LittleEndian.PutUint32(b[22:26], h.Checksum)
	b[26] = byte(len(h.Segments))
	copy(b[27:], h.Segments)
	return b
}

// buildPage returns a complete page made from h and payload with a freshly
// computed checksum. h.Checksum is updated to match.
func buildPage(h *PageHeader, payload []byte) []byte {
	b := append(h.Bytes(), payload...)
	setChecksum(b)
	h.Checksum = binary.LittleEndian.Uint32(b[checksumOffset:])
	return b
}
