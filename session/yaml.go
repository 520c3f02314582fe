// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/emer/trialgen/blocks"
	"github.com/emer/trialgen/oddball"
	"gopkg.in/yaml.v3"
)

// ErrBadCatalog is returned for a catalog file that does not decode.
var ErrBadCatalog = errors.New("session: invalid catalog file")

// CatalogFile is the on-disk form of a catalog:
//
//	sessions:
//	  my_session:
//	    blocks:
//	      - type: standard_oddball
//	        duration_minutes: 10
//	        label: Main
//	        oddball_config:
//	          - {type: orientation_45, rate: 1.35}
//	        rounding: PerTypeRounding
//	aliases:
//	  mine: my_session
type CatalogFile struct {
	Sessions map[string]SessionEntry `yaml:"sessions"`
	Aliases  map[string]string       `yaml:"aliases"`
}

// SessionEntry is one session in a catalog file.
type SessionEntry struct {
	Blocks []BlockEntry `yaml:"blocks"`
}

// BlockEntry is one block in a catalog file.
type BlockEntry struct {
	Type     string         `yaml:"type"`
	Minutes  float64        `yaml:"duration_minutes"`
	Label    string         `yaml:"label"`
	Oddballs []oddball.Rate `yaml:"oddball_config"`
	Movie    *MovieEntry    `yaml:"movie"`
	Repeats  int            `yaml:"repeats"`
	Rounding string         `yaml:"rounding"`
	Overflow string         `yaml:"overflow"`
}

// MovieEntry is the movie section of a block entry.
type MovieEntry struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Seconds float64 `yaml:"duration_seconds"`
	Repeats int     `yaml:"repeats"`
}

// Spec converts the entry into a block spec.
func (be *BlockEntry) Spec() (blocks.Spec, error) {
	sp := blocks.Spec{
		Type:     be.Type,
		Minutes:  be.Minutes,
		Label:    be.Label,
		Oddballs: be.Oddballs,
		Repeats:  be.Repeats,
	}
	if be.Label == "" {
		sp.Label = be.Type
	}
	if be.Movie != nil {
		sp.Movie = &blocks.MovieParams{Width: be.Movie.Width, Height: be.Movie.Height, Seconds: be.Movie.Seconds, Repeats: be.Movie.Repeats}
	}
	if be.Rounding != "" {
		var rd oddball.Rounding
		if err := rd.FromString(be.Rounding); err != nil || rd >= oddball.RoundingN {
			return sp, fmt.Errorf("%w: %s rounding %q", ErrBadCatalog, be.Type, be.Rounding)
		}
		sp.Rounding = &rd
	}
	if be.Overflow != "" {
		var ov oddball.Overflow
		if err := ov.FromString(be.Overflow); err != nil || ov >= oddball.OverflowN {
			return sp, fmt.Errorf("%w: %s overflow %q", ErrBadCatalog, be.Type, be.Overflow)
		}
		sp.Overflow = &ov
	}
	return sp, sp.Validate()
}

// ReadYAML adds the sessions and aliases of a catalog file to ct,
// replacing definitions of the same name. Unknown keys are errors.
func (ct *Catalog) ReadYAML(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cf CatalogFile
	if err := dec.Decode(&cf); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrBadCatalog, err)
	}
	for nm, se := range cf.Sessions {
		if len(se.Blocks) == 0 {
			return fmt.Errorf("%w: session %q has no blocks", ErrBadCatalog, nm)
		}
		df := &Def{Name: nm, Blocks: make([]blocks.Spec, len(se.Blocks))}
		for i := range se.Blocks {
			sp, err := se.Blocks[i].Spec()
			if err != nil {
				return fmt.Errorf("session %q block %d: %w", nm, i+1, err)
			}
			df.Blocks[i] = sp
		}
		ct.Add(df)
	}
	for alias, nm := range cf.Aliases {
		ct.Alias(alias, nm)
	}
	return nil
}

// OpenYAML reads a catalog file, see ReadYAML.
func (ct *Catalog) OpenYAML(fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := ct.ReadYAML(f); err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return nil
}
