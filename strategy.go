// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

// Strategy is the page layout used to write a new comment packet.
type Strategy int

const (
	// StrategyReplacePage rewrites page 2 in place. Everything after it is
	// copied unchanged.
	StrategyReplacePage Strategy = iota

	// StrategyRenumberSinglePage packs the header region, which used to span
	// several pages, onto one page and renumbers the pages after it.
	StrategyRenumberSinglePage

	// StrategySplitMerged spreads the comment over several pages, with the
	// setup header and extra packets sharing the last of them.
	StrategySplitMerged

	// StrategySplitSeparate spreads the comment over several pages and starts
	// the setup header and extra packets on a page of their own.
	StrategySplitSeparate
)

var strategyNames = map[Strategy]string{
	StrategyReplacePage:        "replace-page",
	StrategyRenumberSinglePage: "renumber-single-page",
	StrategySplitMerged:        "split-merged",
	StrategySplitSeparate:      "split-separate",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return "unknown"
}

// ChooseStrategy picks the layout for a comment packet of newCommentLen bytes
// (signature and framing bit included) given the layout of the original
// header region.
func ChooseStrategy(hs *HeaderSizes, p Profile, newCommentLen int) Strategy {
	// An extra packet running into the audio pages can only be carried over
	// unchanged on a page of its own.
	if hs.ExtraContinues() {
		return StrategySplitSeparate
	}

	trailing := packetsSegmentCount(hs.trailingPackets(p))
	if segmentCount(newCommentLen, true)+trailing <= MaxSegments {
		if hs.SinglePage() {
			return StrategyReplacePage
		}
		return StrategyRenumberSinglePage
	}

	rem := newCommentLen % MaxPagePayload
	if segmentCount(rem, true)+trailing <= MaxSegments {
		return StrategySplitMerged
	}
	return StrategySplitSeparate
}

// packet is a packet's data and whether it ends within the data given.
type packet struct {
	data     []byte
	complete bool
}

// pageLayout is the segment table and payload of a page to be written, before
// header fields are assigned.
type pageLayout struct {
	continued bool
	segments  []byte
	payload   []byte
}

// paginate lays packets out over as few pages as possible, filling each page
// up to MaxSegments lacing values and splitting packets across pages where
// needed.
func paginate(packets []packet) []pageLayout {
	var pages []pageLayout
	cur := pageLayout{}

	flush := func(continued bool) {
		pages = append(pages, cur)
		cur = pageLayout{continued: continued}
	}

	for _, p := range packets {
		data := p.data
		for {
			avail := MaxSegments - len(cur.segments)
			if segmentCount(len(data), p.complete) <= avail {
				cur.segments = append(cur.segments, CreateSegments(len(data), p.complete)...)
				cur.payload = append(cur.payload, data...)
				break
			}
			if avail == 0 {
				flush(len(data) < len(p.data))
				continue
			}
			n := avail * MaxSegmentSize
			cur.segments = append(cur.segments, CreateSegments(n, false)...)
			cur.payload = append(cur.payload, data[:n]...)
			data = data[n:]
			flush(true)
		}
	}
	if len(cur.segments) > 0 {
		pages = append(pages, cur)
	}
	return pages
}

// layout returns the new header pages for the strategy.
func layout(s Strategy, comment []byte, trailing []packet) []pageLayout {
	all := append([]packet{{data: comment, complete: true}}, trailing...)

	switch s {
	case StrategySplitSeparate:
		pages := paginate(all[:1])
		if len(trailing) > 0 {
			pages = append(pages, paginate(trailing)...)
		}
		return pages
	default:
		return paginate(all)
	}
}
