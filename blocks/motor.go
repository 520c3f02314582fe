// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocks

import (
	"log/slog"
	"math"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/trialgen/oddball"
	"github.com/emer/trialgen/seeds"
	"github.com/emer/trialgen/stim"
)

// Closed-loop blocks run at stim.FrameRate and emit a grating update on
// every FrameStep-th frame only.
const FrameStep = stim.FrameRate / stim.UpdateRate

// DefaultMotorRate is the aggregate oddball rate per minute of a
// motor_oddball block without configured rates. All its events fall back
// to the default type.
const DefaultMotorRate = 8.0

// Frames returns the number of frames for a closed-loop block.
func Frames(sp *Spec) int {
	return int(sp.Seconds() * stim.FrameRate)
}

// MotorLong generates motor_long: an uninterrupted closed-loop stream with
// wheel-driven phase.
type MotorLong struct{}

func (gn *MotorLong) Sequenced() bool { return false }

func (gn *MotorLong) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	n := Frames(sp)
	trials := make([]stim.Trial, 0, n/FrameStep+1)
	for fr := 0; fr < n; fr += FrameStep {
		trials = append(trials, stim.ClosedLoop(sp.Type, stim.WheelPhase()))
	}
	return trials, nil
}

// WheelSim simulates running-wheel phase for motor_control blocks: a random
// velocity kick once per second, with friction and a velocity limit.
type WheelSim struct {
	Kick     float64 `def:"0.05" desc:"standard deviation of the per-second velocity kick, radians per frame"`
	Friction float64 `def:"0.95" desc:"velocity multiplier applied after each kick"`
	MaxVel   float64 `def:"0.3" desc:"absolute velocity limit, radians per frame"`
	Every    int     `def:"60" desc:"frames between kicks"`
}

func (ws *WheelSim) Defaults() {
	ws.Kick = 0.05
	ws.Friction = 0.95
	ws.MaxVel = 0.3
	ws.Every = stim.FrameRate
}

// Run returns the phase in [0, 2pi) for each of n frames.
func (ws *WheelSim) Run(n int, rnd erand.Rand) []float64 {
	phs := make([]float64, n)
	ph, vel := 0.0, 0.0
	for fr := 0; fr < n; fr++ {
		if fr%ws.Every == 0 {
			vel += rnd.NormFloat64(-1) * ws.Kick
			vel *= ws.Friction
			vel = math.Max(-ws.MaxVel, math.Min(ws.MaxVel, vel))
		}
		ph = math.Mod(ph+vel, 2*math.Pi)
		if ph < 0 {
			ph += 2 * math.Pi
		}
		phs[fr] = ph
	}
	return phs
}

// MotorControl generates motor_control: a closed-loop stream whose phase
// comes from a simulated wheel instead of the live wheel.
type MotorControl struct {
	Wheel WheelSim `view:"inline" desc:"wheel simulation parameters"`
}

func (gn *MotorControl) Sequenced() bool { return false }

func (gn *MotorControl) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	ws := gn.Wheel
	if ws.Every == 0 {
		ws.Defaults()
	}
	rnd := seeds.ForBlock(variant, seeds.Motor, sp.Type)
	phs := ws.Run(Frames(sp), rnd)
	trials := make([]stim.Trial, 0, len(phs)/FrameStep+1)
	for fr := 0; fr < len(phs); fr += FrameStep {
		trials = append(trials, stim.ClosedLoop(sp.Type, stim.Radians(phs[fr])))
	}
	return trials, nil
}

// MotorOddball generates motor_oddball: a wheel-driven closed-loop stream
// in which oddball events occupy reserved spans of frames, scheduled in
// frame-index space.
type MotorOddball struct {
	Log *slog.Logger
}

func (gn *MotorOddball) Sequenced() bool { return false }

// Scheduler returns the frame-index scheduler for sp.
func (gn *MotorOddball) Scheduler(sp *Spec) *oddball.Scheduler {
	var pr oddball.Params
	pr.FrameDefaults()
	pr.Rounding = sp.RoundingOr(pr.Rounding)
	pr.Overflow = sp.OverflowOr(pr.Overflow)
	return oddball.NewScheduler(pr, gn.Log)
}

// Event returns the trial of a motor oddball event of given type.
// Parameters the type does not override keep the drifting full-contrast
// grating defaults.
func Event(blockType, typ string) stim.Trial {
	od, _ := stim.Oddball(typ)
	tr := stim.ClosedLoop(blockType, stim.WheelPhase())
	tr.Contrast = od.Contrast.Or(1)
	tr.Orientation = od.Orientation.Or(0)
	tr.TemporalFreq = od.TemporalFreq.Or(2)
	tr.Duration = stim.StdDuration
	tr.TrialType = od.TrialType
	return tr
}

func (gn *MotorOddball) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	n := Frames(sp)
	sc := gn.Scheduler(sp)
	rnd := seeds.ForBlock(variant, seeds.Motor, sp.Type)
	var pls []oddball.Placement
	if len(sp.Oddballs) == 0 {
		pos := sc.Place(n, oddball.PerType(DefaultMotorRate, sp.Minutes), rnd)
		pls = sc.Assign(pos, nil)
	} else {
		pls = sc.Schedule(n, sp.Oddballs, sp.Minutes, rnd)
	}

	trials := make([]stim.Trial, 0, n/FrameStep+1)
	oi := 0
	for fr := 0; fr < n; {
		for oi < len(pls) && pls[oi].Pos < fr {
			oi++ // swallowed by a previous event span
		}
		if oi < len(pls) && pls[oi].Pos == fr {
			trials = append(trials, Event(sp.Type, pls[oi].Type))
			fr += sc.Span
			oi++
			continue
		}
		if fr%FrameStep == 0 {
			trials = append(trials, stim.ClosedLoop(sp.Type, stim.WheelPhase()))
		}
		fr++
	}
	return trials, nil
}
