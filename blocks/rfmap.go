// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocks

import (
	"github.com/emer/trialgen/seeds"
	"github.com/emer/trialgen/stim"
)

// RFMapping generates rf_mapping: small gratings at every position of a
// square grid, at each of a few orientations, repeated and shuffled.
type RFMapping struct {
	Extent   int       `def:"40" desc:"grid spans -Extent..Extent degrees on both axes"`
	Step     int       `def:"10" desc:"grid step, degrees"`
	Orients  []float64 `desc:"orientations presented at each position"`
	Repeats  int       `def:"5" desc:"default repeats of each position x orientation"`
	Size     float64   `def:"20" desc:"grating diameter, degrees"`
	Contrast float64   `def:"0.8"`
	SF       float64   `def:"0.08" desc:"spatial frequency, cycles per degree"`
	TF       float64   `def:"4" desc:"temporal frequency, Hz"`
	Sweep    float64   `def:"0.25" desc:"presentation duration, seconds; no blank between"`
}

func (gn *RFMapping) Defaults() {
	gn.Extent = 40
	gn.Step = 10
	gn.Orients = []float64{0, 45, 90}
	gn.Repeats = 5
	gn.Size = 20
	gn.Contrast = 0.8
	gn.SF = 0.08
	gn.TF = 4
	gn.Sweep = 0.25
}

func (gn *RFMapping) Sequenced() bool { return false }

// Positions returns the grid positions, x major.
func (gn *RFMapping) Positions() [][2]float64 {
	var pos [][2]float64
	for x := -gn.Extent; x <= gn.Extent; x += gn.Step {
		for y := -gn.Extent; y <= gn.Extent; y += gn.Step {
			pos = append(pos, [2]float64{float64(x), float64(y)})
		}
	}
	return pos
}

func (gn *RFMapping) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	pr := *gn
	if pr.Step == 0 {
		pr.Defaults()
	}
	reps := sp.Repeats
	if reps == 0 {
		reps = pr.Repeats
	}
	rnd := seeds.ForBlock(variant, seeds.General, sp.Type)
	pos := pr.Positions()
	trials := make([]stim.Trial, 0, len(pos)*len(pr.Orients)*reps)
	for _, xy := range pos {
		for _, ori := range pr.Orients {
			for i := 0; i < reps; i++ {
				trials = append(trials, stim.Trial{
					Contrast:     pr.Contrast,
					DiameterX:    pr.Size,
					DiameterY:    pr.Size,
					Duration:     pr.Sweep,
					Orientation:  ori,
					SpatialFreq:  pr.SF,
					TemporalFreq: pr.TF,
					X:            xy[0],
					Y:            xy[1],
					TrialType:    "rf_mapping",
					BlockType:    sp.Type,
				})
			}
		}
	}
	seeds.Shuffle(trials, rnd)
	return trials, nil
}
