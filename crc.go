// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"encoding/binary"
)

// Ogg uses the CRC-32 polynomial 0x04C11DB7 without bit reflection and with a
// zero initial value, so hash/crc32 (reflected, IEEE) cannot be used here.
var crcTable = func() *[256]uint32 {
	const poly = 0x04c11db7

	var table [256]uint32
	for i := range table {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = (r << 1) ^ poly
			} else {
				r <<= 1
			}
		}
		table[i] = r
	}
	return &table
}()

// Checksum returns the Ogg CRC-32 of b.
func Checksum(b []byte) uint32 {
	var crc uint32
	for _, x := range b {
		crc = (crc << 8) ^ crcTable[byte(crc>>24)^x]
	}
	return crc
}

// setChecksum zeroes the checksum field of the page held in b, computes the
// checksum over the whole page and stores it back in the field.
func setChecksum(b []byte) {
	copy(b[checksumOffset:checksumOffset+4], []byte{0, 0, 0, 0})
	binary.LittleEndian.PutUint32(b[checksumOffset:], Checksum(b))
}

// validChecksum reports whether the checksum stored in page b is correct.
// b is left unchanged.
func validChecksum(b []byte) bool {
	if len(b) < PageHeaderSize {
		return false
	}
	c := append([]byte(nil), b...)
	setChecksum(c)
	return bytes.Equal(c[checksumOffset:checksumOffset+4], b[checksumOffset:checksumOffset+4])
}
