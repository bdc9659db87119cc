// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"errors"
)

// Vorbis header packet types.
// See http://www.xiph.org/vorbis/doc/Vorbis_I_spec.html#x1-610004.2
const (
	commentType byte = 3
	setupType   byte = 5
)

// Profile describes how a codec frames its comment and setup header packets
// inside an Ogg stream.
type Profile struct {
	Name string

	// CommentPrefix is the signature which starts the comment packet.
	CommentPrefix []byte

	// SetupPrefix is the signature which starts the setup packet. Codecs without
	// a setup header (Opus) leave it empty.
	SetupPrefix []byte

	// FramingBit is set when the comment packet ends with a 0x01 framing byte.
	FramingBit bool
}

var (
	// VorbisProfile is the profile for Ogg Vorbis files.
	VorbisProfile = Profile{
		Name:          "vorbis",
		CommentPrefix: []byte{commentType, 'v', 'o', 'r', 'b', 'i', 's'},
		SetupPrefix:   []byte{setupType, 'v', 'o', 'r', 'b', 'i', 's'},
		FramingBit:    true,
	}

	// OpusProfile is the profile for Ogg Opus files (RFC 7845).
	OpusProfile = Profile{
		Name:          "opus",
		CommentPrefix: []byte("OpusTags"),
	}
)

// Validate returns an error if the profile cannot be used.
func (p Profile) Validate() error {
	if len(p.CommentPrefix) == 0 {
		return errors.New("profile must have a comment prefix")
	}
	return nil
}

// HasSetupHeader returns true if the codec has a setup header following the
// comment header.
func (p Profile) HasSetupHeader() bool {
	return len(p.SetupPrefix) > 0
}

// IsCommentHeader returns true if b starts with the comment packet signature.
func (p Profile) IsCommentHeader(b []byte) bool {
	return bytes.HasPrefix(b, p.CommentPrefix)
}

// IsSetupHeader returns true if b starts with the setup packet signature.
func (p Profile) IsSetupHeader(b []byte) bool {
	return p.HasSetupHeader() && bytes.HasPrefix(b, p.SetupPrefix)
}

// frame wraps an encoded comment body into a complete comment packet.
func (p Profile) frame(body []byte) []byte {
	b := make([]byte, 0, len(p.CommentPrefix)+len(body)+1)
	b = append(b, p.CommentPrefix...)
	b = append(b, body...)
	if p.FramingBit {
		b = append(b, 0x01)
	}
	return b
}
