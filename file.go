// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oggtag

import (
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// ReadFile reads the comment header of the named file.
func (c *Codec) ReadFile(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return c.Read(f)
}

// WriteFile replaces the comment header of the named file with t. The new file
// is written next to the original and renamed over it only once it has been
// written completely, so the original is untouched if an error is returned.
func (c *Codec) WriteFile(path string, t *Tag) (res *WriteResult, err error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	res, err = c.Write(t, src, tmp)
	if err != nil {
		return nil, multierr.Append(err, tmp.Close())
	}
	if err = tmp.Chmod(fi.Mode().Perm()); err != nil {
		return nil, multierr.Append(err, tmp.Close())
	}
	if err = tmp.Sync(); err != nil {
		return nil, multierr.Append(err, tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return nil, err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return nil, err
	}
	return res, nil
}
