// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oddball

import (
	"math"

	"github.com/goki/ki/kit"
)

// Rate is the requested frequency of one oddball type.
type Rate struct {
	Type      string  `yaml:"type" desc:"oddball type name, see stim.Oddballs"`
	PerMinute float64 `yaml:"rate" desc:"events per minute"`
}

// Rounding determines how an aggregate oddball count is derived
// from a set of per-type rates.
type Rounding int32

//go:generate stringer -type=Rounding

const (
	// AggregateRounding floors the summed rate: floor(sum(rate) * minutes).
	AggregateRounding Rounding = iota

	// PerTypeRounding floors each type separately: sum(floor(rate * minutes)).
	PerTypeRounding

	RoundingN
)

var KiT_Rounding = kit.Enums.AddEnum(RoundingN, kit.NotBitFlag, nil)

func (ev Rounding) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Rounding) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// Count returns the number of oddballs for given rates over minutes.
func (ev Rounding) Count(rates []Rate, minutes float64) int {
	if ev == PerTypeRounding {
		n := 0
		for _, r := range rates {
			n += PerType(r.PerMinute, minutes)
		}
		return n
	}
	return PerType(SumRates(rates), minutes)
}

// PerType returns floor(rate * minutes), never negative.
func PerType(rate, minutes float64) int {
	n := int(math.Floor(rate * minutes))
	if n < 0 {
		return 0
	}
	return n
}

// SumRates returns the total rate per minute.
func SumRates(rates []Rate) float64 {
	sum := 0.0
	for _, r := range rates {
		sum += r.PerMinute
	}
	return sum
}

// Overflow determines how placed positions beyond the number of requested
// types are labeled.
type Overflow int32

//go:generate stringer -type=Overflow

const (
	// PadWithLast repeats the last type in the shuffled type list.
	PadWithLast Overflow = iota

	// FallbackDefault labels extra positions with the scheduler Default type.
	FallbackDefault

	OverflowN
)

var KiT_Overflow = kit.Enums.AddEnum(OverflowN, kit.NotBitFlag, nil)

func (ev Overflow) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Overflow) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }
