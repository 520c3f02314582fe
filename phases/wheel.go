// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package phases

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/trialgen/table"
)

// Wheel geometry used to convert wheel rotation into grating phase.
const (
	// WheelRadius is the running wheel radius, in meters.
	WheelRadius = 0.36

	// GratingSF is the grating spatial frequency, in cycles per degree.
	GratingSF = 0.04
)

// Pool file column names, in order.
const (
	IndexCol   = "Index"
	TimeCol    = "Timestamp"
	WheelCol   = "Wheel_Degrees"
	DegreesCol = "Phase_Degrees"
)

// ErrLengthMismatch is returned by BuildPool when timestamps and wheel
// readings differ in length.
var ErrLengthMismatch = errors.New("phases: timestamps and wheel readings differ in length")

// WheelToPhase converts a cumulative wheel rotation in degrees to a grating
// phase, returned both in degrees [0, 360) and radians [0, 2pi).
func WheelToPhase(wheelDeg float64) (deg, rad float64) {
	// arc length travelled, divided by the length of one grating cycle
	arc := 2 * math.Pi * WheelRadius * wheelDeg
	cycle := math.Tan((1 / GratingSF) * math.Pi / 180)
	deg = math.Mod(arc/cycle, 360)
	if deg < 0 {
		deg += 360
	}
	rad = deg * math.Pi / 180
	return
}

// PoolSchema returns the schema of a phase pool file.
func PoolSchema() etable.Schema {
	return etable.Schema{
		{IndexCol, etensor.INT64, nil, nil},
		{TimeCol, etensor.FLOAT64, nil, nil},
		{WheelCol, etensor.FLOAT64, nil, nil},
		{DegreesCol, etensor.FLOAT64, nil, nil},
		{RadiansCol, etensor.FLOAT64, nil, nil},
	}
}

// PoolTable converts a wheel recording into a pool table, sorted by timestamp.
func PoolTable(stamps, wheel []float64) (*etable.Table, error) {
	if len(stamps) != len(wheel) {
		return nil, fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(stamps), len(wheel))
	}
	idx := make([]int, len(stamps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return stamps[idx[a]] < stamps[idx[b]] })

	dt := &etable.Table{}
	dt.SetMetaData("name", "PhasePool")
	dt.SetMetaData("desc", "prerecorded running phase")
	dt.SetFromSchema(PoolSchema(), len(stamps))
	for r, i := range idx {
		deg, rad := WheelToPhase(wheel[i])
		dt.SetCellFloat(IndexCol, r, float64(r))
		dt.SetCellFloat(TimeCol, r, stamps[i])
		dt.SetCellFloat(WheelCol, r, wheel[i])
		dt.SetCellFloat(DegreesCol, r, deg)
		dt.SetCellFloat(RadiansCol, r, rad)
	}
	return dt, nil
}

// BuildPool writes a pool file for the given wheel recording to w.
func BuildPool(w io.Writer, stamps, wheel []float64) error {
	dt, err := PoolTable(stamps, wheel)
	if err != nil {
		return err
	}
	return table.WriteCSV(w, dt)
}

// ReadWheel reads the Timestamp and Wheel_Degrees columns of a raw
// wheel recording.
func ReadWheel(r io.Reader) (stamps, wheel []float64, err error) {
	dt, err := ReadTable(r)
	if err != nil {
		return nil, nil, fmt.Errorf("phases: reading wheel recording: %w", err)
	}
	for _, nm := range []string{TimeCol, WheelCol} {
		if dt.ColIdx(nm) < 0 {
			return nil, nil, fmt.Errorf("phases: wheel recording has no %s column", nm)
		}
	}
	stamps = make([]float64, dt.Rows)
	wheel = make([]float64, dt.Rows)
	for i := 0; i < dt.Rows; i++ {
		stamps[i] = dt.CellFloat(TimeCol, i)
		wheel[i] = dt.CellFloat(WheelCol, i)
	}
	return stamps, wheel, nil
}
