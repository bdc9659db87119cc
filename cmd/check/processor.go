// Copyright 2015, David Howden
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dhowden/oggtag"
)

type processor struct {
	log    logrus.FieldLogger
	verify bool

	mu             sync.Mutex
	files          int
	bytes          uint64
	decodingErrors map[string]int
	verifyErrors   map[string]int
	strategies     map[oggtag.Strategy]int
}

func newProcessor(log logrus.FieldLogger, verify bool) *processor {
	return &processor{
		log:            log,
		verify:         verify,
		decodingErrors: make(map[string]int),
		verifyErrors:   make(map[string]int),
		strategies:     make(map[oggtag.Strategy]int),
	}
}

func (p *processor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v files, %v\n", humanize.Comma(int64(p.files)), humanize.Bytes(p.bytes))
	writeCounts(&b, "read errors", p.decodingErrors)
	writeCounts(&b, "verify errors", p.verifyErrors)

	if len(p.strategies) > 0 {
		fmt.Fprintln(&b, "strategies:")
		for s := oggtag.StrategyReplacePage; s <= oggtag.StrategySplitSeparate; s++ {
			if n := p.strategies[s]; n > 0 {
				fmt.Fprintf(&b, "  %v : %v\n", s, n)
			}
		}
	}
	return b.String()
}

func writeCounts(b *strings.Builder, title string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(b, "%v:\n", title)
	for _, k := range keys {
		fmt.Fprintf(b, "  %v : %v\n", k, m[k])
	}
}

// run processes paths with at most jobs files in flight.
func (p *processor) run(paths []string, jobs int) error {
	var g errgroup.Group
	g.SetLimit(jobs)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			p.do(path)
			return nil
		})
	}
	return g.Wait()
}

func codecFor(path string, log logrus.FieldLogger) *oggtag.Codec {
	c := &oggtag.Codec{Logger: log.WithField("path", path)}
	if strings.EqualFold(filepath.Ext(path), ".opus") {
		c.Profile = oggtag.OpusProfile
	}
	return c
}

func (p *processor) do(path string) {
	b, err := os.ReadFile(path)
	if err != nil {
		p.decodingError(path, "error opening file", err)
		return
	}
	p.mu.Lock()
	p.files++
	p.bytes += uint64(len(b))
	p.mu.Unlock()

	c := codecFor(path, p.log)
	t, err := c.Read(bytes.NewReader(b))
	if err != nil {
		p.decodingError(path, err.Error(), err)
		return
	}
	p.log.WithFields(logrus.Fields{"path": path, "fields": len(t.Fields)}).Debug("read comment header")

	if !p.verify {
		return
	}
	s, err := verify(c, t, b)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.log.WithError(err).WithField("path", path).Warn("verify failed")
		p.verifyErrors[err.Error()]++
		return
	}
	p.strategies[s]++
}

func (p *processor) decodingError(path, key string, err error) {
	p.log.WithError(err).WithField("path", path).Warn("read failed")
	p.mu.Lock()
	p.decodingErrors[key]++
	p.mu.Unlock()
}

// verify rewrites b with t and checks that the audio checksum is unchanged and
// the new comment header reads back.
func verify(c *oggtag.Codec, t *oggtag.Tag, b []byte) (oggtag.Strategy, error) {
	before, err := c.Sum(bytes.NewReader(b))
	if err != nil {
		return 0, fmt.Errorf("sum: %w", err)
	}

	out := &bytes.Buffer{}
	res, err := c.Write(t, bytes.NewReader(b), out)
	if err != nil {
		return 0, fmt.Errorf("write: %w", err)
	}

	after, err := c.Sum(bytes.NewReader(out.Bytes()))
	if err != nil {
		return 0, fmt.Errorf("sum after write: %w", err)
	}
	if before != after {
		return 0, fmt.Errorf("audio checksum changed")
	}
	if _, err := c.Read(bytes.NewReader(out.Bytes())); err != nil {
		return 0, fmt.Errorf("read after write: %w", err)
	}
	return res.Strategy, nil
}
