// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// Sum creates a checksum of the audio data in the Ogg Vorbis stream provided by
// the io.ReadSeeker which is metadata invariant: it covers the payloads of the
// pages after the header region, so it is unchanged by Write.
func Sum(r io.ReadSeeker) (string, error) {
	return (&Codec{}).Sum(r)
}

// Sum is like the package level Sum, for the codec profile.
func (c *Codec) Sum(r io.ReadSeeker) (string, error) {
	hs, err := c.ReadHeaderSizes(r)
	if err != nil {
		return "", err
	}

	h := blake3.New()

	// Extra packets on the last header page are audio data too.
	if n := hs.ExtraSize(); n > 0 {
		b, err := readBytesAt(r, hs.HeaderEnd-int64(n), n)
		if err != nil {
			return "", truncated(err, hs.HeaderEnd)
		}
		h.Write(b)
	}

	off := hs.HeaderEnd
	for {
		if _, err := r.Seek(off, io.SeekStart); err != nil {
			return "", fmt.Errorf("error seeking to %d: %w", off, err)
		}
		ph, err := ReadPageHeader(r)
		if err != nil {
			if errors.Is(err, ErrFormat) {
				// End of stream, or trailing non-Ogg data.
				break
			}
			return "", err
		}
		if _, err := io.CopyN(h, r, int64(ph.PayloadLen())); err != nil {
			return "", truncated(err, ph.Offset)
		}
		off = ph.End()
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
