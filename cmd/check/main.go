// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The check tool reads the comment headers of full music collections (iTunes or
directory tree of files), optionally checking that rewriting each one leaves
the audio untouched.
*/
package main

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dhowden/itl"
	"github.com/sirupsen/logrus"
)

var cli struct {
	ITLXML  string `name:"itl-xml" xor:"source" required:"" help:"iTunes Library XML path."`
	Path    string `xor:"source" required:"" type:"existingdir" help:"Path to directory containing audio files."`
	Verify  bool   `help:"Rewrite each file in memory and check the audio checksum is unchanged."`
	Jobs    int    `short:"j" help:"Files to process at once (default: number of CPUs)."`
	Verbose bool   `short:"v" help:"Log every file."`
}

func decodeLocation(l string) (string, error) {
	u, err := url.ParseRequestURI(l)
	if err != nil {
		return "", err
	}
	// Annoyingly this doesn't replace &#38; (&)
	path := strings.Replace(u.Path, "&#38;", "&", -1)
	return path, nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("check"),
		kong.Description("Check the comment headers of a music collection."),
		kong.UsageOnError(),
	)

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cli.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	var paths []string
	var err error
	if cli.ITLXML != "" {
		paths, err = libraryPaths(cli.ITLXML)
	} else {
		paths, err = walkPath(cli.Path)
	}
	ctx.FatalIfErrorf(err)

	jobs := cli.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	p := newProcessor(log, cli.Verify)
	ctx.FatalIfErrorf(p.run(paths, jobs))
	fmt.Print(p)
}

// isOgg reports whether path has an Ogg audio file extension.
func isOgg(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".oga", ".opus":
		return true
	}
	return false
}

func walkPath(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isOgg(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

func libraryPaths(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := itl.ReadFromXML(f)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, t := range l.Tracks {
		loc, err := decodeLocation(t.Location)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if isOgg(loc) {
			paths = append(paths, loc)
		}
	}
	return paths, nil
}
