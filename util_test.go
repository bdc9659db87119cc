// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"io"
	"testing"
)

func TestGetInt(t *testing.T) {
	tests := []struct {
		input  []byte
		output int
	}{
		{
			[]byte{},
			0,
		},
		{
			[]byte{0x01},
			1,
		},
		{
			[]byte{0xF1, 0xF2},
			0xF1F2,
		},
		{
			[]byte{0xF1, 0xF2, 0xF3},
			0xF1F2F3,
		},
		{
			[]byte{0xF1, 0xF2, 0xF3, 0xF4},
			0xF1F2F3F4,
		},
	}

	for ii, tt := range tests {
		got := getInt(tt.input)
		if got != tt.output {
			t.Errorf("[%d] getInt(%v) = %v, expected %v", ii, tt.input, got, tt.output)
		}
	}
}

func TestReadUint32LittleEndian(t *testing.T) {
	got, err := readUint32LittleEndian(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0x04030201 {
		t.Errorf("readUint32LittleEndian() = %#x, expected %#x", got, 0x04030201)
	}

	if _, err := readUint32LittleEndian(bytes.NewReader([]byte{0x01})); err != io.ErrUnexpectedEOF {
		t.Errorf("readUint32LittleEndian(short) error = %v, expected %v", err, io.ErrUnexpectedEOF)
	}
}

func TestReadBytesAt(t *testing.T) {
	r := bytes.NewReader([]byte("0123456789"))
	got, err := readBytesAt(r, 3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "3456" {
		t.Errorf("readBytesAt(3, 4) = %q, expected %q", got, "3456")
	}

	next, err := readBytes(r, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(next) != "7" {
		t.Errorf("reader left at %q, expected %q", next, "7")
	}

	if _, err := readBytesAt(r, 8, 4); err == nil {
		t.Errorf("readBytesAt past the end: expected error")
	}
}

func TestCountingWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &countingWriter{w: buf}
	io.WriteString(w, "hello")
	io.WriteString(w, ", world")
	if w.n != int64(buf.Len()) {
		t.Errorf("countingWriter counted %d bytes, expected %d", w.n, buf.Len())
	}
}
