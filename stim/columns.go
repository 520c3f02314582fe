// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import "strconv"

// SessionColumns are the bookkeeping columns, written first.
var SessionColumns = []string{
	"Block_Number", "Block_Label", "Block_Duration_Minutes",
	"Trial_Number", "Sequence_Number", "Trial_In_Sequence",
}

// ParamColumns are the stimulus parameter columns. The presentation engine
// reads them by position: never reorder.
var ParamColumns = []string{
	"Contrast", "Delay", "DiameterX", "DiameterY", "Duration", "Orientation",
	"Spatial_Frequency", "Temporal_Frequency", "X", "Y",
	"Phase", "Trial_Type", "Block_Type",
}

// Columns returns the full output column order.
func Columns() []string {
	cols := make([]string, 0, len(SessionColumns)+len(ParamColumns))
	cols = append(cols, SessionColumns...)
	return append(cols, ParamColumns...)
}

// Values returns the trial's cells in Columns() order.
func (tr *Trial) Values() []string {
	return []string{
		strconv.Itoa(tr.BlockNumber),
		tr.BlockLabel,
		FormatNum(tr.BlockMinutes),
		strconv.Itoa(tr.TrialNumber),
		strconv.Itoa(tr.SequenceNumber),
		strconv.Itoa(tr.TrialInSequence),
		FormatNum(tr.Contrast),
		FormatNum(tr.Delay),
		FormatNum(tr.DiameterX),
		FormatNum(tr.DiameterY),
		FormatNum(tr.Duration),
		FormatNum(tr.Orientation),
		FormatNum(tr.SpatialFreq),
		FormatNum(tr.TemporalFreq),
		FormatNum(tr.X),
		FormatNum(tr.Y),
		tr.Phase.String(),
		tr.TrialType,
		tr.BlockType,
	}
}
