// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The sum tool constructs a checksum of the audio data in an Ogg file, excluding
the comment header.
*/
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dhowden/oggtag"
)

var cli struct {
	Opus  bool     `help:"Read the files as Ogg Opus."`
	Files []string `arg:"" type:"existingfile" help:"Files to checksum."`
}

func main() {
	ctx := kong.Parse(&cli, kong.Name("sum"), kong.UsageOnError())

	c := &oggtag.Codec{}
	if cli.Opus {
		c.Profile = oggtag.OpusProfile
	}

	failed := false
	for _, path := range cli.Files {
		h, err := sumFile(c, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v: error constructing checksum: %v\n", path, err)
			failed = true
			continue
		}
		if len(cli.Files) == 1 {
			fmt.Println(h)
			continue
		}
		fmt.Printf("%v  %v\n", h, path)
	}
	if failed {
		ctx.Exit(1)
	}
}

func sumFile(c *oggtag.Codec, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return c.Sum(f)
}
