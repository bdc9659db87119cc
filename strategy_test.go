// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseStrategy(t *testing.T) {
	single := &HeaderSizes{CommentSize: 200, SetupSize: 3000, Pages: 1}
	spread := &HeaderSizes{CommentSize: 200, SetupSize: 3000, Pages: 2}
	continuing := &HeaderSizes{CommentSize: 200, SetupSize: 3000, Pages: 1,
		Extra: []PacketInfo{{Length: 510, Complete: false}}}

	// The setup header takes 12 segments.
	fitsWithSetup := (MaxSegments-12)*MaxSegmentSize - 1

	tests := []struct {
		name string
		hs   *HeaderSizes
		n    int
		want Strategy
	}{
		{"same size", single, 200, StrategyReplacePage},
		{"grows within page", single, fitsWithSetup, StrategyReplacePage},
		{"shrinks onto one page", spread, 200, StrategyRenumberSinglePage},
		{"grows past page", single, fitsWithSetup + 1, StrategySplitSeparate},
		{"70000 bytes", single, 70000, StrategySplitMerged},
		{"exact page multiple", single, MaxPagePayload, StrategySplitMerged},
		{"remainder too big for setup", single, MaxPagePayload + fitsWithSetup + 1, StrategySplitSeparate},
		{"extra packet continues", continuing, 200, StrategySplitSeparate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ChooseStrategy(tt.hs, VorbisProfile, tt.n), tt.name)
	}
}

func TestChooseStrategyOpus(t *testing.T) {
	hs := &HeaderSizes{CommentSize: 200, Pages: 1}
	assert.Equal(t, StrategyReplacePage, ChooseStrategy(hs, OpusProfile, MaxPagePayload-1))
	assert.Equal(t, StrategySplitMerged, ChooseStrategy(hs, OpusProfile, 3*MaxPagePayload))
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "replace-page", StrategyReplacePage.String())
	assert.Equal(t, "split-separate", StrategySplitSeparate.String())
	assert.Equal(t, "unknown", Strategy(99).String())
}

func TestPaginate(t *testing.T) {
	comment := pattern(70000, 1)
	setup := setupPacket(3000)

	pages := paginate([]packet{complete(comment), complete(setup)})
	require.Len(t, pages, 2)

	assert.False(t, pages[0].continued)
	assert.Len(t, pages[0].segments, MaxSegments)
	assert.Equal(t, bytes.Repeat([]byte{255}, MaxSegments), pages[0].segments)
	assert.Equal(t, comment[:MaxPagePayload], pages[0].payload)

	assert.True(t, pages[1].continued)
	assert.Equal(t, append(CreateSegments(70000-MaxPagePayload, true), CreateSegments(3000, true)...), pages[1].segments)
	assert.Equal(t, append(append([]byte{}, comment[MaxPagePayload:]...), setup...), pages[1].payload)
}

func TestPaginateExactPage(t *testing.T) {
	pages := paginate([]packet{complete(pattern(MaxPagePayload, 0))})
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].payload, MaxPagePayload)
	assert.True(t, pages[1].continued)
	assert.Equal(t, []byte{0}, pages[1].segments)
	assert.Empty(t, pages[1].payload)
}

func TestPaginateSplitsAtPageBoundary(t *testing.T) {
	// 254 segments of the first packet leave room for a single segment.
	first := pattern(254*MaxSegmentSize-1, 0)
	second := pattern(300, 1)

	pages := paginate([]packet{complete(first), complete(second)})
	require.Len(t, pages, 2)
	assert.Len(t, pages[0].segments, MaxSegments)
	assert.Equal(t, byte(MaxSegmentSize), pages[0].segments[MaxSegments-1])
	assert.True(t, pages[1].continued)
	assert.Equal(t, []byte{45}, pages[1].segments)
}

func TestLayoutSplitSeparate(t *testing.T) {
	comment := pattern(1000, 0)
	trailing := []packet{complete(setupPacket(500)), {data: pattern(510, 2)}}

	pages := layout(StrategySplitSeparate, comment, trailing)
	require.Len(t, pages, 2)
	assert.Equal(t, CreateSegments(1000, true), pages[0].segments)
	assert.False(t, pages[1].continued)
	assert.Equal(t, append(CreateSegments(500, true), 255, 255), pages[1].segments)
}
