// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/emer/trialgen/blocks"
	"github.com/emer/trialgen/oddball"
)

// ErrUnknownSession is returned for a session name missing from the catalog.
var ErrUnknownSession = errors.New("session: unknown session type")

// Def is a named, ordered list of block specs.
type Def struct {
	Name   string        `desc:"session type name"`
	Blocks []blocks.Spec `desc:"blocks in presentation order"`
}

// Minutes returns the nominal session duration.
func (df *Def) Minutes() float64 {
	mins := 0.0
	for i := range df.Blocks {
		mins += df.Blocks[i].Minutes
	}
	return mins
}

// Catalog holds the session definitions available by name.
type Catalog struct {
	defs    map[string]*Def
	aliases map[string]string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{defs: map[string]*Def{}, aliases: map[string]string{}}
}

// Add adds or replaces a definition.
func (ct *Catalog) Add(df *Def) {
	ct.defs[df.Name] = df
}

// Alias makes alias resolve to name.
func (ct *Catalog) Alias(alias, name string) {
	ct.aliases[alias] = name
}

// Names returns the sorted definition names, without aliases.
func (ct *Catalog) Names() []string {
	nms := make([]string, 0, len(ct.defs))
	for nm := range ct.defs {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}

// Lookup returns the definition for name or alias. The error for an
// unknown name lists the available names.
func (ct *Catalog) Lookup(name string) (*Def, error) {
	if to, ok := ct.aliases[name]; ok {
		name = to
	}
	if df, ok := ct.defs[name]; ok {
		return df, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSession, name, strings.Join(ct.Names(), ", "))
}

var (
	visualOddballs = []oddball.Rate{
		{Type: "orientation_45", PerMinute: 1.35},
		{Type: "orientation_90", PerMinute: 1.35},
		{Type: "halt", PerMinute: 1.35},
		{Type: "omission", PerMinute: 1.35},
	}
	motorOddballs = []oddball.Rate{
		{Type: "motor_orientation_45", PerMinute: 1.35},
		{Type: "motor_orientation_90", PerMinute: 1.35},
		{Type: "motor_halt", PerMinute: 1.35},
		{Type: "motor_omission", PerMinute: 1.35},
	}
	jitterOddballs = []oddball.Rate{
		{Type: "jitter_150", PerMinute: 1.35},
		{Type: "jitter_350", PerMinute: 1.35},
	}
)

// fullSession returns the standard 9-block session around a 26 minute
// main block.
func fullSession(name string, main blocks.Spec) *Def {
	main.Minutes = 26
	return &Def{Name: name, Blocks: []blocks.Spec{
		{Type: "standard_control", Minutes: 6.4, Label: "Control block 1.1"},
		main,
		{Type: "standard_control", Minutes: 6.4, Label: "Control block 1.2"},
		{Type: "sequential_control_block", Minutes: 4.7, Label: "Control block 2"},
		{Type: "jitter_control", Minutes: 6.4, Label: "Control block 3"},
		{Type: "open_loop_prerecorded", Minutes: 6.4, Label: "Control block 4", Oddballs: motorOddballs},
		{Type: "movie_trippy", Minutes: 5, Label: "Trippy", Movie: &blocks.MovieParams{Width: 120, Height: 95, Seconds: 150, Repeats: 2}},
		{Type: "movie_zebra", Minutes: 5, Label: "Zebra", Movie: &blocks.MovieParams{Width: 120, Height: 95, Seconds: 300, Repeats: 1}},
		{Type: "rf_mapping", Minutes: 5, Label: "RF mapping"},
	}}
}

// shortTest covers every main block type with at least one oddball of each
// configured kind, in about 5 minutes.
func shortTest() *Def {
	return &Def{Name: "short_test", Blocks: []blocks.Spec{
		{Type: "standard_oddball", Minutes: 1.0, Label: "Std mismatch (test)", Oddballs: visualOddballs},
		{Type: "motor_oddball", Minutes: 1.0, Label: "Motor mismatch (test)", Oddballs: motorOddballs},
		{Type: "sequential_oddball", Minutes: 0.75, Label: "Seq mismatch (test)", Oddballs: visualOddballs},
		{Type: "jitter_oddball", Minutes: 0.75, Label: "Duration mismatch (test)", Oddballs: jitterOddballs},
		{Type: "open_loop_prerecorded", Minutes: 0.75, Label: "Open loop (test)", Oddballs: motorOddballs},
		{Type: "movie_trippy", Minutes: 0.25, Label: "Trippy (test)", Movie: &blocks.MovieParams{Width: 120, Height: 95, Seconds: 15, Repeats: 1}},
		{Type: "movie_zebra", Minutes: 0.25, Label: "Zebra (test)", Movie: &blocks.MovieParams{Width: 120, Height: 95, Seconds: 15, Repeats: 1}},
		{Type: "rf_mapping", Minutes: 0.25, Label: "RF mapping (test)", Repeats: 1},
	}}
}

// Builtin returns the catalog of built-in session types.
func Builtin() *Catalog {
	ct := NewCatalog()
	ct.Add(shortTest())
	ct.Add(fullSession("visual_mismatch", blocks.Spec{Type: "standard_oddball", Label: "Standard mismatch block", Oddballs: visualOddballs}))
	ct.Add(fullSession("sensorimotor_mismatch", blocks.Spec{Type: "motor_oddball", Label: "Sensory-motor mismatch block", Oddballs: motorOddballs}))
	ct.Add(fullSession("sequence_mismatch", blocks.Spec{Type: "sequential_oddball", Label: "Sequence mismatch block", Oddballs: visualOddballs}))
	ct.Add(fullSession("duration_mismatch", blocks.Spec{Type: "jitter_oddball", Label: "Duration mismatch block", Oddballs: jitterOddballs}))
	ct.Add(fullSession("sequence_mismatch_no_oddball", blocks.Spec{Type: "sequential_long", Label: "Sequence long block (no oddball)"}))
	ct.Add(fullSession("sensorimotor_mismatch_no_oddball", blocks.Spec{Type: "motor_long", Label: "Sensory-motor long block (no oddball)"}))
	ct.Alias("sensorimotor_no_oddball", "sensorimotor_mismatch_no_oddball")
	ct.Alias("sequence_no_oddball", "sequence_mismatch_no_oddball")
	return ct
}
