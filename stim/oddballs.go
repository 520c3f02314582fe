// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import "sort"

// Override is an optional parameter value.
type Override struct {
	Set bool
	Val float64
}

// To returns an Override that sets v.
func To(v float64) Override { return Override{Set: true, Val: v} }

// Apply writes the value into *dst if set.
func (ov Override) Apply(dst *float64) {
	if ov.Set {
		*dst = ov.Val
	}
}

// Or returns the value if set, else def.
func (ov Override) Or(def float64) float64 {
	if ov.Set {
		return ov.Val
	}
	return def
}

// OddballDef is the canonical parameter change for one oddball type.
type OddballDef struct {
	Name         string   `desc:"well-known oddball type name used in block configs"`
	TrialType    string   `desc:"resulting Trial_Type label"`
	Orientation  Override `desc:"orientation override, degrees"`
	Contrast     Override `desc:"contrast override"`
	TemporalFreq Override `desc:"temporal frequency override, Hz"`
	Duration     Override `desc:"duration override, seconds"`
	Delay        Override `desc:"delay override, seconds"`
	Motor        bool     `desc:"closed-loop (motor) variant"`
}

// Apply sets all overridden parameters and the trial type on tr.
func (od *OddballDef) Apply(tr *Trial) {
	od.Orientation.Apply(&tr.Orientation)
	od.Contrast.Apply(&tr.Contrast)
	od.TemporalFreq.Apply(&tr.TemporalFreq)
	od.Duration.Apply(&tr.Duration)
	od.Delay.Apply(&tr.Delay)
	tr.TrialType = od.TrialType
}

// Oddballs is the static oddball type table.
var Oddballs = map[string]OddballDef{
	"orientation_45": {TrialType: "orientation_45", Orientation: To(45)},
	"orientation_90": {TrialType: "orientation_90", Orientation: To(90)},
	"halt":           {TrialType: "halt", TemporalFreq: To(0)},
	"omission":       {TrialType: "omission", Contrast: To(0)},
	"jitter_150":     {TrialType: "jitter", Duration: To(0.150)},
	"jitter_350":     {TrialType: "jitter", Duration: To(0.350)},

	// motor variants keep distinct labels
	"motor_halt":           {TrialType: "motor_halt", TemporalFreq: To(0), Delay: To(0), Motor: true},
	"motor_omission":       {TrialType: "motor_omission", Contrast: To(0), Delay: To(0), Motor: true},
	"motor_orientation_45": {TrialType: "motor_orientation_45", Orientation: To(45), Delay: To(0), TemporalFreq: To(2), Motor: true},
	"motor_orientation_90": {TrialType: "motor_orientation_90", Orientation: To(90), Delay: To(0), TemporalFreq: To(2), Motor: true},
}

func init() {
	for nm, od := range Oddballs {
		od.Name = nm
		Oddballs[nm] = od
	}
}

// Oddball returns the definition for name.
func Oddball(name string) (OddballDef, bool) {
	od, ok := Oddballs[name]
	return od, ok
}

// OddballNames returns the sorted list of known oddball types.
func OddballNames() []string {
	nms := make([]string, 0, len(Oddballs))
	for nm := range Oddballs {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	return nms
}
