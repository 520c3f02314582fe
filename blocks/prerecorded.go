// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocks

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/emer/trialgen/oddball"
	"github.com/emer/trialgen/phases"
	"github.com/emer/trialgen/seeds"
	"github.com/emer/trialgen/stim"
)

// ErrNoLoader is returned when a prerecorded block has no phase loader.
var ErrNoLoader = errors.New("blocks: prerecorded block without a phase loader")

// Prerecorded generates open_loop_prerecorded: a recorded wheel phase trace
// replayed open loop at the pool's sample rate, with motor oddballs injected
// afterwards at trial-index positions.
type Prerecorded struct {
	Loader *phases.Loader
	Log    *slog.Logger
}

func (gn *Prerecorded) Sequenced() bool { return false }

// Scheduler returns the trial-index scheduler for sp.
func (gn *Prerecorded) Scheduler(sp *Spec) *oddball.Scheduler {
	var pr oddball.Params
	pr.TrialDefaults()
	pr.Rounding = sp.RoundingOr(pr.Rounding)
	pr.Overflow = sp.OverflowOr(pr.Overflow)
	return oddball.NewScheduler(pr, gn.Log)
}

func (gn *Prerecorded) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	if gn.Loader == nil {
		return nil, ErrNoLoader
	}
	phs, err := gn.Loader.Load(sp.Seconds(), variant)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sp.Type, err)
	}
	trials := make([]stim.Trial, len(phs))
	for i, ph := range phs {
		tr := stim.ClosedLoop(sp.Type, stim.Radians(ph))
		tr.TrialType = "prerecorded"
		trials[i] = tr
	}
	gn.Inject(trials, sp, variant)
	return trials, nil
}

// Inject replaces scheduled trials with motor oddball events in place.
// Positions and types come from a generator seeded with
// variant + seeds.Injection. Phase and block type are kept.
func (gn *Prerecorded) Inject(trials []stim.Trial, sp *Spec, variant int) {
	if len(trials) == 0 || len(sp.Oddballs) == 0 {
		return
	}
	rnd := seeds.NewRand(seeds.Offset(variant, seeds.Injection))
	pls := gn.Scheduler(sp).Schedule(len(trials), sp.Oddballs, sp.Minutes, rnd)
	for _, pl := range pls {
		od, ok := stim.Oddball(pl.Type)
		if !ok {
			continue
		}
		tr := &trials[pl.Pos]
		od.Orientation.Apply(&tr.Orientation)
		od.Contrast.Apply(&tr.Contrast)
		if od.TrialType == "motor_halt" {
			tr.TemporalFreq = 0
		} else {
			tr.TemporalFreq = 2
		}
		tr.Duration = stim.StdDuration
		tr.TrialType = od.TrialType
	}
}
