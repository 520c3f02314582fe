// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnsOrder(t *testing.T) {
	cols := Columns()
	require.Len(t, cols, 19)
	assert.Equal(t, "Block_Number", cols[0])
	assert.Equal(t, "Trial_In_Sequence", cols[5])
	assert.Equal(t, "Contrast", cols[6])
	assert.Equal(t, "Phase", cols[16])
	assert.Equal(t, "Block_Type", cols[18])
}

func TestValuesAlignWithColumns(t *testing.T) {
	tr := Standard("standard_oddball")
	tr.BlockNumber = 2
	tr.BlockLabel = "Std"
	tr.BlockMinutes = 6.4
	tr.TrialNumber = 17
	vals := tr.Values()
	require.Len(t, vals, len(Columns()))
	assert.Equal(t, []string{
		"2", "Std", "6.4", "17", "0", "0",
		"1", "0.343", "360", "360", "0.343", "0",
		"0.04", "2", "0", "0",
		"0", "standard", "standard_oddball",
	}, vals)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "wheel", WheelPhase().String())
	assert.Equal(t, "1.5", Radians(1.5).String())
	assert.Equal(t, "0", Phase{}.String())
	assert.Equal(t, "0.00001", FormatNum(1e-5))
}

func TestOddballApply(t *testing.T) {
	od, ok := Oddball("motor_orientation_90")
	require.True(t, ok)
	assert.Equal(t, "motor_orientation_90", od.Name)

	tr := Standard("standard_oddball")
	od.Apply(&tr)
	assert.Equal(t, 90.0, tr.Orientation)
	assert.Equal(t, 0.0, tr.Delay)
	assert.Equal(t, 2.0, tr.TemporalFreq)
	assert.Equal(t, "motor_orientation_90", tr.TrialType)
	assert.Equal(t, 1.0, tr.Contrast)

	jt, _ := Oddball("jitter_150")
	tr = Standard("jitter_oddball")
	jt.Apply(&tr)
	assert.Equal(t, 0.150, tr.Duration)
	assert.Equal(t, "jitter", tr.TrialType)

	_, ok = Oddball("nope")
	assert.False(t, ok)
	assert.Len(t, OddballNames(), 10)
}
