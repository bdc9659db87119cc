// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

// CreateSegments returns the lacing values for a packet of length bytes.
//
// Every full 255 byte block gets a 255 entry followed by a terminal entry holding
// the remainder. When length is a multiple of 255 the terminal 0 entry is only
// added if mustTerminate is set, leaving the packet open to continue on the next
// page otherwise. A zero length packet is a single 0 entry.
func CreateSegments(length int, mustTerminate bool) []byte {
	if length == 0 {
		return []byte{0}
	}

	n := length / MaxSegmentSize
	rem := length % MaxSegmentSize

	segments := make([]byte, n, n+1)
	for i := range segments {
		segments[i] = MaxSegmentSize
	}
	if rem != 0 || mustTerminate {
		segments = append(segments, byte(rem))
	}
	return segments
}

// segmentCount returns len(CreateSegments(length, mustTerminate)) without
// allocating.
func segmentCount(length int, mustTerminate bool) int {
	n := length / MaxSegmentSize
	if length%MaxSegmentSize != 0 || mustTerminate || length == 0 {
		n++
	}
	return n
}

// packetSegments returns the segment table for a run of packets laid out one
// after the other on a single page.
func packetSegments(packets []PacketInfo) []byte {
	var segments []byte
	for _, p := range packets {
		segments = append(segments, CreateSegments(p.Length, p.Complete)...)
	}
	return segments
}

func packetsSegmentCount(packets []PacketInfo) int {
	n := 0
	for _, p := range packets {
		n += segmentCount(p.Length, p.Complete)
	}
	return n
}
