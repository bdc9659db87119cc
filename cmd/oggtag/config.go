// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dhowden/oggtag"
)

// profileFile is the YAML form of a codec profile:
//
//	name: vorbis
//	comment_prefix: "\x03vorbis"
//	setup_prefix: "\x05vorbis"
//	framing_bit: true
type profileFile struct {
	Name          string `yaml:"name"`
	CommentPrefix string `yaml:"comment_prefix"`
	SetupPrefix   string `yaml:"setup_prefix"`
	FramingBit    bool   `yaml:"framing_bit"`
}

func loadProfile(path string) (oggtag.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return oggtag.Profile{}, err
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (oggtag.Profile, error) {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return oggtag.Profile{}, fmt.Errorf("error parsing profile: %w", err)
	}

	p := oggtag.Profile{
		Name:          pf.Name,
		CommentPrefix: []byte(pf.CommentPrefix),
		FramingBit:    pf.FramingBit,
	}
	if pf.SetupPrefix != "" {
		p.SetupPrefix = []byte(pf.SetupPrefix)
	}
	if p.Name == "" {
		p.Name = "custom"
	}
	if err := p.Validate(); err != nil {
		return oggtag.Profile{}, err
	}
	return p, nil
}
