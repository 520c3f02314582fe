// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocks

import (
	"fmt"

	"github.com/emer/trialgen/oddball"
	"github.com/emer/trialgen/seeds"
	"github.com/emer/trialgen/stim"
)

// Discrete generates standard_oddball and jitter_oddball: a pool of
// standard 343 ms trials with rare oddball trials, shuffled.
//
// The number of standards is the total trial count minus the oddball count
// under the block's Rounding policy (AggregateRounding by default), while
// each type contributes its own floor(rate * minutes) oddball trials. With
// aggregate rounding the block can therefore come out a few trials short
// of the total.
type Discrete struct{}

func (gn *Discrete) Sequenced() bool { return false }

// Counts returns the total, standard and per-type oddball counts for sp.
func (gn *Discrete) Counts(sp *Spec) (total, nstd int, per []int) {
	total = int(sp.Seconds() / stim.StdPeriod)
	nodd := sp.RoundingOr(oddball.AggregateRounding).Count(sp.Oddballs, sp.Minutes)
	nstd = max(0, total-nodd)
	per = make([]int, len(sp.Oddballs))
	for i, r := range sp.Oddballs {
		per[i] = oddball.PerType(r.PerMinute, sp.Minutes)
	}
	return
}

func (gn *Discrete) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	if len(sp.Oddballs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoOddballs, sp.Type)
	}
	rnd := seeds.ForBlock(variant, seeds.Discrete, sp.Type)
	_, nstd, per := gn.Counts(sp)
	trials := make([]stim.Trial, 0, nstd)
	for i := 0; i < nstd; i++ {
		trials = append(trials, stim.Standard(sp.Type))
	}
	for i, r := range sp.Oddballs {
		od, _ := stim.Oddball(r.Type)
		for j := 0; j < per[i]; j++ {
			tr := stim.Standard(sp.Type)
			od.Apply(&tr)
			trials = append(trials, tr)
		}
	}
	seeds.Shuffle(trials, rnd)
	return trials, nil
}
