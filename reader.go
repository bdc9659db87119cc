// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Codec reads and writes the comment header of an Ogg stream. The zero value
// handles Ogg Vorbis and logs nothing.
//
// A Codec holds no per-stream state; each call walks the stream afresh.
type Codec struct {
	// Profile selects the codec framing. The zero Profile means VorbisProfile.
	Profile Profile

	// Logger receives diagnostics. Nil discards them.
	Logger logrus.FieldLogger
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (c *Codec) profile() Profile {
	if len(c.Profile.CommentPrefix) == 0 {
		return VorbisProfile
	}
	return c.Profile
}

func (c *Codec) log() logrus.FieldLogger {
	if c.Logger == nil {
		return discardLogger
	}
	return c.Logger.WithField("profile", c.profile().Name)
}

// Read reads the vorbis comment from the Ogg Vorbis stream r.
// See http://www.xiph.org/vorbis/doc/Vorbis_I_spec.html
// and http://www.xiph.org/ogg/doc/framing.html for details.
func Read(r io.ReadSeeker) (*Tag, error) {
	return (&Codec{}).Read(r)
}

// Read reads the comment header from r, returning a non-nil error if r is not a
// valid stream for the codec profile.
func (c *Codec) Read(r io.ReadSeeker) (*Tag, error) {
	p := c.profile()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b, err := c.readRawCommentPacket(r)
	if err != nil {
		return nil, err
	}
	t, err := DecodeComment(b[len(p.CommentPrefix):])
	if err != nil {
		return nil, err
	}
	c.log().WithField("fields", len(t.Fields)).Debug("read ogg comment header")
	return t, nil
}
