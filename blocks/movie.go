// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocks

import "github.com/emer/trialgen/stim"

// MovieBlockType is the block type label of all movie_* blocks.
const MovieBlockType = "movie"

// Movie generates movie_* blocks: one record per playback. The presentation
// engine expands each record into frames, so nothing is expanded here.
type Movie struct{}

func (gn *Movie) Sequenced() bool { return false }

func (gn *Movie) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	mp := sp.MovieOrDefaults()
	trials := make([]stim.Trial, mp.Repeats)
	for i := range trials {
		trials[i] = stim.Trial{
			Contrast:  1,
			DiameterX: float64(mp.Width),
			DiameterY: float64(mp.Height),
			Duration:  mp.Seconds,
			TrialType: "single",
			BlockType: MovieBlockType,
		}
	}
	return trials, nil
}
