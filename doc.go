// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oggtag reads and rewrites the vorbis comment header of Ogg Vorbis
// (and Ogg Opus) files.
//
// Writing replaces the comment packet, keeping the setup header and any other
// packets sharing its page byte for byte. Depending on how the size of the new
// comment compares with the old one, page 2 is replaced in place, or the header
// region is laid out on a new number of pages and the sequence numbers (and
// checksums) of the audio pages after it are updated. Audio payloads are never
// modified.
//
// See http://www.xiph.org/ogg/doc/framing.html and
// https://www.xiph.org/vorbis/doc/v-comment.html for the formats.
package oggtag
