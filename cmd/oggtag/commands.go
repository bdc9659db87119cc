// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dhowden/oggtag"
	"github.com/dhowden/oggtag/mbz"
)

// ShowCmd prints the comment header of a file.
type ShowCmd struct {
	File string `arg:"" type:"existingfile" help:"Ogg file to read."`
	Raw  bool   `help:"Show every raw comment field."`
	MBZ  bool   `name:"mbz" help:"Extract MusicBrainz tag data (if available)."`
}

func (s *ShowCmd) Run(g *Globals) error {
	c, err := g.codec()
	if err != nil {
		return err
	}
	t, err := c.ReadFile(s.File)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	printMetadata(os.Stdout, t)

	if s.Raw {
		fmt.Println()
		fmt.Printf("Vendor: %q\n", t.Vendor)
		for _, f := range t.Fields {
			if strings.EqualFold(f.Key, oggtag.FieldPicture) {
				fmt.Printf("%v: (%v of base64 data)\n", f.Key, humanize.Bytes(uint64(len(f.Value))))
				continue
			}
			fmt.Printf("%v: %#v\n", f.Key, f.Value)
		}
	}

	if s.MBZ {
		b, err := json.MarshalIndent(mbz.Extract(t), "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling MusicBrainz info: %w", err)
		}
		fmt.Printf("\nMusicBrainz Info:\n%v\n", string(b))
	}
	return nil
}

func printMetadata(w io.Writer, t *oggtag.Tag) {
	fmt.Fprintf(w, " Title: %v\n", t.Title())
	fmt.Fprintf(w, " Album: %v\n", t.Album())
	fmt.Fprintf(w, " Artist: %v\n", t.Artist())
	fmt.Fprintf(w, " Album Artist: %v\n", t.AlbumArtist())
	fmt.Fprintf(w, " Composer: %v\n", t.Composer())
	fmt.Fprintf(w, " Genre: %v\n", t.Genre())
	fmt.Fprintf(w, " Year: %v\n", t.Year())

	track, trackCount := t.Track()
	fmt.Fprintf(w, " Track: %v of %v\n", track, trackCount)

	disc, discCount := t.Disc()
	fmt.Fprintf(w, " Disc: %v of %v\n", disc, discCount)

	fmt.Fprintf(w, " Picture: %v\n", t.Picture())
	fmt.Fprintf(w, " Lyrics: %v\n", t.Lyrics())
}

// SetCmd rewrites the comment header of a file.
type SetCmd struct {
	File   string   `arg:"" type:"existingfile" help:"Ogg file to rewrite."`
	Tags   []string `name:"tag" short:"t" sep:"none" placeholder:"KEY=VALUE" help:"Field to set. Repeat a key to give it several values."`
	Delete []string `short:"d" sep:"none" placeholder:"KEY" help:"Field to remove."`
	Clear  bool     `help:"Remove all existing fields first."`
	Vendor *string  `help:"Replace the vendor string."`
}

func (s *SetCmd) Run(g *Globals) error {
	c, err := g.codec()
	if err != nil {
		return err
	}
	t, err := c.ReadFile(s.File)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}

	if err := s.apply(t); err != nil {
		return err
	}

	res, err := c.WriteFile(s.File, t)
	if err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	fmt.Printf("%v: %v, %v header page(s), sequence shift %+d, %v page(s) renumbered\n",
		s.File, res.Strategy, res.HeaderPages, res.SequenceShift, humanize.Comma(int64(res.RenumberedPages)))
	if res.TrailerBytes > 0 {
		fmt.Printf("%v: kept %v of trailing data\n", s.File, humanize.Bytes(uint64(res.TrailerBytes)))
	}
	return nil
}

// apply edits t as described by the command flags.
func (s *SetCmd) apply(t *oggtag.Tag) error {
	if s.Clear {
		t.Fields = nil
	}
	if s.Vendor != nil {
		t.Vendor = *s.Vendor
	}
	for _, k := range s.Delete {
		t.Delete(k)
	}

	var keys []string
	values := make(map[string][]string)
	for _, kv := range s.Tags {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid field %q: expected KEY=VALUE", kv)
		}
		k = strings.ToUpper(k)
		if _, ok := values[k]; !ok {
			keys = append(keys, k)
		}
		values[k] = append(values[k], v)
	}
	for _, k := range keys {
		t.Set(k, values[k]...)
	}
	return nil
}

// SizesCmd prints the layout of the header pages of a file.
type SizesCmd struct {
	File        string `arg:"" type:"existingfile" help:"Ogg file to inspect."`
	CommentSize int    `name:"comment-size" help:"Also show the strategy for a comment packet of this many bytes."`
}

func (s *SizesCmd) Run(g *Globals) error {
	c, err := g.codec()
	if err != nil {
		return err
	}
	f, err := os.Open(s.File)
	if err != nil {
		return err
	}
	defer f.Close()

	hs, err := c.ReadHeaderSizes(f)
	if err != nil {
		return fmt.Errorf("error reading header pages: %w", err)
	}
	sum, err := c.Sum(f)
	if err != nil {
		return fmt.Errorf("error constructing checksum: %w", err)
	}

	printSizes(os.Stdout, hs)
	fmt.Printf(" Audio Sum: %v\n", sum)

	sizes := []int{hs.CommentSize}
	if s.CommentSize > 0 {
		sizes = append(sizes, s.CommentSize)
	}
	sort.Ints(sizes)
	for _, n := range sizes {
		fmt.Printf(" Strategy for %v comment: %v\n", humanize.Bytes(uint64(n)), oggtag.ChooseStrategy(hs, c.Profile, n))
	}
	return nil
}

func printSizes(w io.Writer, hs *oggtag.HeaderSizes) {
	fmt.Fprintf(w, " Comment: %v at offset %v\n", humanize.Bytes(uint64(hs.CommentSize)), humanize.Comma(hs.CommentStart))
	fmt.Fprintf(w, " Setup: %v at offset %v\n", humanize.Bytes(uint64(hs.SetupSize)), humanize.Comma(hs.SetupStart))
	fmt.Fprintf(w, " Extra Packets: %v (%v)\n", len(hs.Extra), humanize.Bytes(uint64(hs.ExtraSize())))
	fmt.Fprintf(w, " Header Pages: %v (sequence %v to %v)\n", hs.Pages, hs.FirstSequence, hs.LastSequence)
	fmt.Fprintf(w, " Header End: %v\n", humanize.Comma(hs.HeaderEnd))
}
