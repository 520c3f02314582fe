// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/emer/trialgen/seeds"
	"github.com/emer/trialgen/stim"
)

// NOrients is the number of control orientations, every 22.5 degrees.
const NOrients = 14

// SeqControlRepeats is the default repeat count of sequential_control_block.
const SeqControlRepeats = 70

// JitterDurations are the stimulus durations of jitter_control, seconds.
var JitterDurations = []float64{0.050, 0.100, 0.200, 0.343}

// ControlOrients returns the 14 control orientations: 0, 22.5 .. 292.5.
func ControlOrients() []float64 {
	ors := make([]float64, NOrients)
	for i := range ors {
		ors[i] = float64(i) * 22.5
	}
	return ors
}

// tuningPool returns the orientation + omission + halt condition pool,
// each condition repeated reps times, built on the given base trial.
func tuningPool(base stim.Trial, reps int) []stim.Trial {
	ors := ControlOrients()
	pool := make([]stim.Trial, 0, (len(ors)+2)*reps)
	for _, ori := range ors {
		for i := 0; i < reps; i++ {
			tr := base
			tr.Orientation = ori
			tr.TrialType = "single"
			pool = append(pool, tr)
		}
	}
	for i := 0; i < reps; i++ {
		tr := base
		tr.Contrast = 0
		tr.TrialType = "omission"
		pool = append(pool, tr)
	}
	for i := 0; i < reps; i++ {
		tr := base
		tr.TemporalFreq = 0
		tr.TrialType = "halt"
		pool = append(pool, tr)
	}
	return pool
}

// StdControl generates standard_control: orientation tuning with 343 ms
// stimuli, repeated to fill the block.
type StdControl struct{}

func (gn *StdControl) Sequenced() bool { return false }

// Repeats returns the per-condition repeat count for minutes.
func (gn *StdControl) Repeats(minutes float64) int {
	return max(1, int(minutes*60/float64(NOrients+2)/stim.StdPeriod))
}

func (gn *StdControl) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	rnd := seeds.ForBlock(variant, seeds.General, sp.Type)
	pool := tuningPool(stim.Standard(sp.Type), gn.Repeats(sp.Minutes))
	seeds.Shuffle(pool, rnd)
	return pool, nil
}

// JitterControl generates jitter_control: duration tuning over JitterDurations.
type JitterControl struct{}

func (gn *JitterControl) Sequenced() bool { return false }

// Repeats returns the per-duration repeat count for minutes.
func (gn *JitterControl) Repeats(minutes float64) int {
	return max(1, int(minutes*60/(float64(len(JitterDurations))*stim.StdPeriod)))
}

func (gn *JitterControl) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	rnd := seeds.ForBlock(variant, seeds.General, sp.Type)
	reps := gn.Repeats(sp.Minutes)
	trials := make([]stim.Trial, 0, len(JitterDurations)*reps)
	for _, dur := range JitterDurations {
		for i := 0; i < reps; i++ {
			tr := stim.Standard(sp.Type)
			tr.Duration = dur
			tr.TrialType = "single"
			trials = append(trials, tr)
		}
	}
	seeds.Shuffle(trials, rnd)
	return trials, nil
}

// SeqControl generates sequential_control_block: the sequence step
// stimuli (250 ms, no delay) presented in shuffled order, outside of
// any sequence structure. The repeat count is fixed rather than derived
// from the duration.
type SeqControl struct{}

func (gn *SeqControl) Sequenced() bool { return false }

func (gn *SeqControl) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	reps := sp.Repeats
	if reps == 0 {
		reps = SeqControlRepeats
	}
	rnd := seeds.ForBlock(variant, seeds.General, sp.Type)
	pool := tuningPool(stim.SeqStep(sp.Type), reps)
	seeds.Shuffle(pool, rnd)
	return pool, nil
}
