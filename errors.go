// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched (via errors.Is) by every *FormatError.
	ErrFormat = errors.New("invalid ogg stream")

	// ErrWriteIntegrity is matched (via errors.Is) by every *WriteIntegrityError.
	ErrWriteIntegrity = errors.New("ogg rewrite failed integrity check")
)

// FormatError is returned when the stream does not have the expected structure:
// a missing capture pattern, a packet without the expected signature, or a
// stream which ends in the middle of a page.
type FormatError struct {
	Offset int64  // Byte offset at which the problem was detected, or -1.
	Reason string // Description of the problem.
}

func (e *FormatError) Error() string {
	if e.Offset < 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s (offset %d)", e.Reason, e.Offset)
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func formatError(offset int64, format string, args ...interface{}) error {
	return &FormatError{
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}

// WriteIntegrityError is returned by Write when the number of non-header bytes
// written to the destination differs from the number read from the source.
// The destination must be discarded.
type WriteIntegrityError struct {
	Source      int64 // Bytes outside the header region in the source.
	Destination int64 // Bytes outside the header region in the destination.
}

func (e *WriteIntegrityError) Error() string {
	return fmt.Sprintf("file written counts don't match: source has %d bytes of audio data, destination has %d",
		e.Source, e.Destination)
}

// Is reports whether target is ErrWriteIntegrity.
func (e *WriteIntegrityError) Is(target error) bool {
	return target == ErrWriteIntegrity
}
