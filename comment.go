// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// DefaultVendor is the vendor string used by NewTag.
const DefaultVendor = "oggtag"

// Field is a single KEY=VALUE vorbis comment.
type Field struct {
	Key   string
	Value string
}

func (f Field) String() string {
	return f.Key + "=" + f.Value
}

// Tag is a vorbis comment: a vendor string and an ordered list of fields.
// Keys may repeat, and are compared case-insensitively.
// See https://www.xiph.org/vorbis/doc/v-comment.html
type Tag struct {
	Vendor string
	Fields []Field
}

// NewTag returns an empty tag with the default vendor string.
func NewTag() *Tag {
	return &Tag{Vendor: DefaultVendor}
}

// Get returns the first value for key, or "" if there is none.
func (t *Tag) Get(key string) string {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Key, key) {
			return f.Value
		}
	}
	return ""
}

// GetAll returns every value for key in the order they appear.
func (t *Tag) GetAll(key string) []string {
	var values []string
	for _, f := range t.Fields {
		if strings.EqualFold(f.Key, key) {
			values = append(values, f.Value)
		}
	}
	return values
}

// Add appends a field.
func (t *Tag) Add(key, value string) {
	t.Fields = append(t.Fields, Field{Key: key, Value: value})
}

// Set replaces all values of key. The new values take the position of the first
// existing field with that key, or are appended if there was none.
func (t *Tag) Set(key string, values ...string) {
	pos := -1
	fields := t.Fields[:0:0]
	for _, f := range t.Fields {
		if strings.EqualFold(f.Key, key) {
			if pos < 0 {
				pos = len(fields)
			}
			continue
		}
		fields = append(fields, f)
	}
	if pos < 0 {
		pos = len(fields)
	}

	add := make([]Field, len(values))
	for i, v := range values {
		add[i] = Field{Key: key, Value: v}
	}
	t.Fields = append(fields[:pos], append(add, fields[pos:]...)...)
}

// Delete removes all fields with the given key.
func (t *Tag) Delete(key string) {
	t.Set(key)
}

// Keys returns the distinct keys (upper-cased) in order of first appearance.
func (t *Tag) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, f := range t.Fields {
		k := strings.ToUpper(f.Key)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

// validKey reports whether k is a legal field name: printable ASCII 0x20
// through 0x7D, excluding '='.
func validKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if c < 0x20 || c > 0x7d || c == '=' {
			return false
		}
	}
	return true
}

// DecodeComment parses a vorbis comment body (the comment packet without its
// signature prefix). Trailing bytes, such as the framing bit, are ignored.
func DecodeComment(b []byte) (*Tag, error) {
	r := bytes.NewReader(b)

	vendor, err := readLengthPrefixed(r, "vendor string")
	if err != nil {
		return nil, err
	}
	t := &Tag{Vendor: vendor}

	n, err := readUint32LittleEndian(r)
	if err != nil {
		return nil, formatError(-1, "truncated vorbis comment count")
	}
	// Each field takes at least 4 bytes, so a larger count is bogus.
	if int64(n)*4 > int64(r.Len()) {
		return nil, formatError(-1, "vorbis comment count %d exceeds packet size", n)
	}

	for i := uint32(0); i < n; i++ {
		s, err := readLengthPrefixed(r, fmt.Sprintf("vorbis comment %d", i))
		if err != nil {
			return nil, err
		}
		k, v, err := parseComment(s)
		if err != nil {
			return nil, err
		}
		t.Fields = append(t.Fields, Field{Key: k, Value: v})
	}
	return t, nil
}

func readLengthPrefixed(r *bytes.Reader, what string) (string, error) {
	n, err := readUint32LittleEndian(r)
	if err != nil {
		return "", formatError(-1, "truncated %s length", what)
	}
	if int64(n) > int64(r.Len()) {
		return "", formatError(-1, "truncated %s", what)
	}
	s, err := readString(r, uint(n))
	if err != nil {
		return "", formatError(-1, "truncated %s", what)
	}
	return s, nil
}

func parseComment(c string) (k, v string, err error) {
	kv := strings.SplitN(c, "=", 2)
	if len(kv) != 2 {
		err = formatError(-1, "vorbis comment must contain '='")
		return
	}
	k = kv[0]
	v = kv[1]
	return
}

// EncodeComment serialises the tag as a vorbis comment body (without signature
// prefix or framing bit).
func EncodeComment(t *Tag) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeLengthPrefixed(buf, t.Vendor); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(t.Fields))); err != nil {
		return nil, err
	}
	for _, f := range t.Fields {
		if !validKey(f.Key) {
			return nil, fmt.Errorf("invalid vorbis comment field name %q", f.Key)
		}
		if err := writeLengthPrefixed(buf, f.String()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeLengthPrefixed(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}
