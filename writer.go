// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// WriteResult reports how a stream was rewritten.
type WriteResult struct {
	Strategy        Strategy
	HeaderPages     int   // Pages written for the header region.
	SequenceShift   int64 // Amount added to the sequence number of each later page.
	RenumberedPages int   // Pages after the header region which were renumbered; 0 when SequenceShift is 0.
	TrailerBytes    int64 // Non-Ogg bytes found after the last page, copied as is.
}

// Write writes the Ogg Vorbis stream from src to dst with its comment header
// replaced by t.
func Write(t *Tag, src io.ReadSeeker, dst io.Writer) error {
	_, err := (&Codec{}).Write(t, src, dst)
	return err
}

// Write writes the stream from src to dst with its comment header replaced by t.
// Audio pages are copied unchanged apart from their sequence numbers and
// checksums. dst should be discarded if an error is returned.
func (c *Codec) Write(t *Tag, src io.ReadSeeker, dst io.Writer) (*WriteResult, error) {
	p := c.profile()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log := c.log()

	body, err := EncodeComment(t)
	if err != nil {
		return nil, err
	}
	comment := p.frame(body)

	hs, err := c.ReadHeaderSizes(src)
	if err != nil {
		return nil, err
	}
	setup, extra, err := c.extractSetupAndExtraPackets(src, hs)
	if err != nil {
		return nil, err
	}

	first, second, err := readSecondPage(src)
	if err != nil {
		return nil, err
	}

	srcLen, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}

	w := &countingWriter{w: dst}

	// The identification header page is copied unchanged.
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.CopyN(w, src, first.End()); err != nil {
		return nil, truncated(err, 0)
	}

	s := ChooseStrategy(hs, p, len(comment))
	log.WithFields(logrus.Fields{
		"strategy":     s,
		"oldComment":   hs.CommentSize,
		"newComment":   len(comment),
		"setup":        hs.SetupSize,
		"extraPackets": len(hs.Extra),
		"oldPages":     hs.Pages,
	}).Debug("rewriting ogg comment header")

	var trailing []packet
	if p.HasSetupHeader() {
		trailing = append(trailing, packet{data: setup, complete: true})
	}
	for i, b := range extra {
		trailing = append(trailing, packet{data: b, complete: hs.Extra[i].Complete})
	}

	pages := layout(s, comment, trailing)
	if (s == StrategyReplacePage || s == StrategyRenumberSinglePage) && len(pages) != 1 {
		return nil, fmt.Errorf("%v layout produced %d pages", s, len(pages))
	}

	var headerBytes int64
	for i, pl := range pages {
		h := &PageHeader{
			Version:    second.Version,
			HeaderType: second.HeaderType,
			GranulePos: second.GranulePos,
			Serial:     second.Serial,
			Sequence:   second.Sequence + uint32(i),
			Segments:   pl.segments,
		}
		if i > 0 {
			h.HeaderType = 0
		}
		if pl.continued {
			h.HeaderType |= FlagContinued
		}
		if i == len(pages)-1 {
			h.GranulePos = hs.LastGranule
		}

		n, err := w.Write(buildPage(h, pl.payload))
		if err != nil {
			return nil, err
		}
		headerBytes += int64(n)
	}

	res := &WriteResult{
		Strategy:      s,
		HeaderPages:   len(pages),
		SequenceShift: int64(second.Sequence) + int64(len(pages)-1) - int64(hs.LastSequence),
	}

	copied, trailer, err := copyAndRenumber(w, src, hs.HeaderEnd, res.SequenceShift)
	if err != nil {
		return nil, err
	}
	if res.SequenceShift != 0 {
		res.RenumberedPages = copied
	}
	res.TrailerBytes = trailer
	if trailer > 0 {
		log.WithField("bytes", trailer).Warn("found non-ogg data after last page, copied unchanged")
	}

	srcAudio := srcLen - (hs.HeaderEnd - hs.CommentStart)
	dstAudio := w.n - headerBytes
	if srcAudio != dstAudio {
		return nil, &WriteIntegrityError{Source: srcAudio, Destination: dstAudio}
	}

	log.WithFields(logrus.Fields{
		"headerPages":   res.HeaderPages,
		"sequenceShift": res.SequenceShift,
		"renumbered":    res.RenumberedPages,
	}).Debug("ogg comment header rewritten")
	return res, nil
}

// copyAndRenumber copies the pages of src starting at off to w, adding shift to
// each page sequence number and recomputing the checksum. Pages are copied as is
// when shift is 0. Anything after the
// last page which is not an Ogg page is copied unchanged and counted as
// trailer.
func copyAndRenumber(w io.Writer, src io.ReadSeeker, off int64, shift int64) (pages int, trailer int64, err error) {
	for {
		if _, err := src.Seek(off, io.SeekStart); err != nil {
			return pages, 0, err
		}
		h, err := ReadPageHeader(src)
		if err != nil {
			if !errors.Is(err, ErrFormat) {
				return pages, 0, err
			}
			if _, err := src.Seek(off, io.SeekStart); err != nil {
				return pages, 0, err
			}
			trailer, err = io.Copy(w, src)
			return pages, trailer, err
		}

		page := make([]byte, h.HeaderLen()+h.PayloadLen())
		copy(page, h.Bytes())
		if _, err := io.ReadFull(src, page[h.HeaderLen():]); err != nil {
			return pages, 0, truncated(err, h.Offset)
		}

		if shift != 0 {
			binary.LittleEndian.PutUint32(page[sequenceOffset:], uint32(int64(h.Sequence)+shift))
			setChecksum(page)
		}
		if _, err := w.Write(page); err != nil {
			return pages, 0, err
		}
		pages++
		off = h.End()
	}
}
