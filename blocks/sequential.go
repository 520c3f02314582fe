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

// SeqPeriod is the duration of one 5-step sequence, seconds.
const SeqPeriod = stim.SeqLen * stim.SeqDuration

// DeviantStep is the 0-based step replaced in an oddball sequence.
const DeviantStep = 2

// StdPattern is the orientation of each stimulus step of a standard sequence.
var StdPattern = [stim.SeqLen - 1]float64{90, 45, 0, 45}

// Pattern is one sequence to emit: the oddball type replacing the deviant
// step, or "" for a standard sequence.
type Pattern struct {
	Deviant string
}

// Steps returns the 5 trials of the sequence for given block type:
// four stimulus steps then the terminal sequence omission.
func (pt Pattern) Steps(blockType string) []stim.Trial {
	trs := make([]stim.Trial, 0, stim.SeqLen)
	for i, ori := range StdPattern {
		tr := stim.SeqStep(blockType)
		tr.Orientation = ori
		if i == DeviantStep && pt.Deviant != "" {
			switch pt.Deviant {
			case "orientation_45":
				tr.Orientation = 45
				tr.TrialType = "orientation_45"
			case "orientation_90":
				tr.Orientation = 90
				tr.TrialType = "orientation_90"
			case "halt":
				// the halted step is a flat field
				tr.Orientation = 0
				tr.SpatialFreq = 0
				tr.TrialType = "halt"
			case "omission":
				tr.Orientation = 0
				tr.Contrast = 0
				tr.TrialType = "omission"
			}
		}
		trs = append(trs, tr)
	}
	end := stim.SeqStep(blockType)
	end.Contrast = 0
	end.TrialType = "sequence_omission"
	return append(trs, end)
}

// SeqDeviants are the oddball types usable within a sequence.
var SeqDeviants = map[string]bool{
	"orientation_45": true,
	"orientation_90": true,
	"halt":           true,
	"omission":       true,
}

// SeqOddball generates sequential_oddball: standard sequences with a subset
// of deviant sequences, in shuffled sequence order. Steps within a sequence
// are never reordered.
//
// The number of deviant sequences is floor(sum of rates * minutes) under
// the default AggregateRounding, split evenly across the configured types.
// The remainder of that split is dropped, so the block can come out a few
// sequences short.
type SeqOddball struct{}

func (gn *SeqOddball) Sequenced() bool { return true }

// Patterns returns the unshuffled sequence list for sp: standards first,
// then deviants in rate order.
func (gn *SeqOddball) Patterns(sp *Spec) ([]Pattern, error) {
	if len(sp.Oddballs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoOddballs, sp.Type)
	}
	for _, r := range sp.Oddballs {
		if !SeqDeviants[r.Type] {
			return nil, fmt.Errorf("%w: %q cannot replace a sequence step", ErrUnknownOddball, r.Type)
		}
	}
	nseq := int(sp.Seconds() / SeqPeriod)
	nodd := sp.RoundingOr(oddball.AggregateRounding).Count(sp.Oddballs, sp.Minutes)
	nstd := max(0, nseq-nodd)
	per := nodd / len(sp.Oddballs)
	pts := make([]Pattern, 0, nstd+per*len(sp.Oddballs))
	for i := 0; i < nstd; i++ {
		pts = append(pts, Pattern{})
	}
	for _, r := range sp.Oddballs {
		for i := 0; i < per; i++ {
			pts = append(pts, Pattern{Deviant: r.Type})
		}
	}
	return pts, nil
}

func (gn *SeqOddball) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	pts, err := gn.Patterns(sp)
	if err != nil {
		return nil, err
	}
	rnd := seeds.ForBlock(variant, seeds.Discrete, sp.Type)
	seeds.Shuffle(pts, rnd)
	trials := make([]stim.Trial, 0, len(pts)*stim.SeqLen)
	for _, pt := range pts {
		trials = append(trials, pt.Steps(sp.Type)...)
	}
	return trials, nil
}

// SeqLong generates sequential_long: the standard sequence repeated to fill
// the block, with no oddballs and no randomness.
type SeqLong struct{}

func (gn *SeqLong) Sequenced() bool { return true }

func (gn *SeqLong) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	nseq := int(sp.Seconds() / SeqPeriod)
	std := Pattern{}.Steps(sp.Type)
	trials := make([]stim.Trial, 0, nseq*stim.SeqLen)
	for i := 0; i < nseq; i++ {
		trials = append(trials, std...)
	}
	return trials, nil
}
