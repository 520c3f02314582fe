// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim defines the trial record that the presentation engine plays back,
the default parameter sets for each family of blocks, and the canonical
oddball type table.

A Trial is one row of the output table: one timed stimulus-update
instruction. Parameter fields are set by the block generators; the
enrichment fields (block / trial / sequence numbering) are set only by the
session assembler.
*/
package stim

import (
	"strconv"
)

// FullField is the default stimulus extent in degrees (full field).
const FullField = 360

// Fixed timing constants shared across block generators.
const (
	// StdDuration is the stimulus duration of a standard trial, in seconds.
	StdDuration = 0.343

	// StdPeriod is the standard trial period: stimulus + equal delay.
	StdPeriod = 0.686

	// SeqDuration is the duration of each step in a 5-step sequence.
	SeqDuration = 0.250

	// SeqLen is the number of trials in a sequence (4 stimuli + omission).
	SeqLen = 5

	// FrameRate is the master frame rate of closed-loop blocks, Hz.
	FrameRate = 60

	// UpdateRate is the grating update rate of closed-loop blocks, Hz.
	UpdateRate = 30
)

// Phase is the grating phase of a trial: either a fixed value in radians
// or the wheel-controlled closed-loop phase.
type Phase struct {
	Wheel bool    `desc:"phase is driven by the running wheel at playback"`
	Rad   float64 `desc:"phase in radians when not wheel-driven"`
}

// WheelPhase returns the closed-loop phase.
func WheelPhase() Phase { return Phase{Wheel: true} }

// Radians returns a fixed phase.
func Radians(r float64) Phase { return Phase{Rad: r} }

func (ph Phase) String() string {
	if ph.Wheel {
		return "wheel"
	}
	return FormatNum(ph.Rad)
}

// Trial is one stimulus-update instruction.
type Trial struct {
	Contrast     float64 `desc:"grating contrast, 0 = blank (omission)"`
	Delay        float64 `desc:"blank interval before the stimulus, seconds"`
	DiameterX    float64 `desc:"horizontal extent, degrees (pixels for movies)"`
	DiameterY    float64 `desc:"vertical extent, degrees (pixels for movies)"`
	Duration     float64 `desc:"stimulus duration, seconds"`
	Orientation  float64 `desc:"grating orientation, degrees"`
	SpatialFreq  float64 `desc:"spatial frequency, cycles per degree"`
	TemporalFreq float64 `desc:"temporal frequency, Hz (0 = static / halt)"`
	X            float64 `desc:"horizontal screen position, degrees"`
	Y            float64 `desc:"vertical screen position, degrees"`
	Phase        Phase   `desc:"grating phase"`
	TrialType    string  `desc:"trial type label, e.g. standard, omission, orientation_45"`
	BlockType    string  `desc:"block type label"`

	BlockNumber     int     `desc:"1-based block index in the session"`
	BlockLabel      string  `desc:"human readable block label"`
	BlockMinutes    float64 `desc:"nominal block duration, minutes"`
	TrialNumber     int     `desc:"1-based trial index across the whole session"`
	SequenceNumber  int     `desc:"1-based sequence index within a sequenced block, else 0"`
	TrialInSequence int     `desc:"1..5 position within the sequence, else 0"`
}

// Standard returns the default parameters of a standard (343 ms) trial.
func Standard(blockType string) Trial {
	return Trial{
		Contrast:     1,
		Delay:        StdDuration,
		DiameterX:    FullField,
		DiameterY:    FullField,
		Duration:     StdDuration,
		SpatialFreq:  0.04,
		TemporalFreq: 2,
		TrialType:    "standard",
		BlockType:    blockType,
	}
}

// SeqStep returns the default parameters of a sequence step (250 ms, no delay).
func SeqStep(blockType string) Trial {
	return Trial{
		Contrast:     1,
		DiameterX:    FullField,
		DiameterY:    FullField,
		Duration:     SeqDuration,
		SpatialFreq:  0.04,
		TemporalFreq: 2,
		TrialType:    "standard",
		BlockType:    blockType,
	}
}

// ClosedLoop returns the default parameters of a closed-loop grating update
// lasting one update period (1/30 s).
func ClosedLoop(blockType string, ph Phase) Trial {
	return Trial{
		Contrast:    1,
		DiameterX:   FullField,
		DiameterY:   FullField,
		Duration:    1.0 / UpdateRate,
		SpatialFreq: 0.04,
		Phase:       ph,
		TrialType:   "standard",
		BlockType:   blockType,
	}
}

// IsOddball returns true if the trial type is anything other than the
// standard condition of its block.
func (tr *Trial) IsOddball() bool {
	switch tr.TrialType {
	case "standard", "single", "prerecorded", "sequence_omission", "rf_mapping":
		return false
	}
	return true
}

// FormatNum formats a number with the shortest representation that
// round-trips, without exponent.
func FormatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
