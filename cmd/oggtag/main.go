// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
The oggtag tool reads and rewrites the vorbis comment header of Ogg Vorbis and
Ogg Opus files.
*/
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/dhowden/oggtag"
)

// Globals are the flags shared by every command.
type Globals struct {
	Profile     string `short:"p" enum:"vorbis,opus" default:"vorbis" help:"Codec profile (${enum})."`
	ProfileFile string `name:"profile-file" type:"existingfile" help:"YAML file describing a custom codec profile; overrides --profile."`
	Verbose     int    `short:"v" type:"counter" help:"Log more detail (repeat for debug output)."`
}

// codec returns the codec for the selected profile, logging to stderr.
func (g *Globals) codec() (*oggtag.Codec, error) {
	p := oggtag.VorbisProfile
	if g.Profile == "opus" {
		p = oggtag.OpusProfile
	}
	if g.ProfileFile != "" {
		var err error
		p, err = loadProfile(g.ProfileFile)
		if err != nil {
			return nil, err
		}
	}
	return &oggtag.Codec{Profile: p, Logger: newLogger(g.Verbose)}, nil
}

func newLogger(verbose int) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	switch {
	case verbose >= 2:
		l.SetLevel(logrus.DebugLevel)
	case verbose == 1:
		l.SetLevel(logrus.InfoLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

var cli struct {
	Globals

	Show  ShowCmd  `cmd:"" help:"Print the comment header of a file."`
	Set   SetCmd   `cmd:"" help:"Rewrite the comment header of a file."`
	Sizes SizesCmd `cmd:"" help:"Print the layout of the header pages of a file."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("oggtag"),
		kong.Description("Read and rewrite Ogg Vorbis comment headers."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
