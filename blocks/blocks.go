// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package blocks synthesizes the trials of a single block of a session.

Each block category has its own Generator. A Registry maps block type names
to generators so that the session assembler never branches on type names,
and new categories can be added by registering another Generator.

Every generator draws from its own erand.Rand seeded from the session
variant and the block type name (see package seeds), so a block's trials
depend only on (Spec, variant).
*/
package blocks

import (
	"errors"
	"fmt"

	"github.com/emer/trialgen/oddball"
	"github.com/emer/trialgen/stim"
)

var (
	// ErrUnknownBlock is returned for a block type with no generator.
	ErrUnknownBlock = errors.New("blocks: unknown block type")

	// ErrUnknownOddball is returned for an oddball type missing from stim.Oddballs,
	// or not usable in the block category.
	ErrUnknownOddball = errors.New("blocks: unknown oddball type")

	// ErrInvalidSpec is returned for out-of-range spec values.
	ErrInvalidSpec = errors.New("blocks: invalid block spec")

	// ErrNoOddballs is returned by oddball blocks that require rates but have none.
	ErrNoOddballs = errors.New("blocks: oddball block without oddball rates")
)

// MovieParams are the playback parameters of a movie block.
type MovieParams struct {
	Width   int     `desc:"movie width, pixels"`
	Height  int     `desc:"movie height, pixels"`
	Seconds float64 `desc:"duration of one playback, seconds; 0 = block duration"`
	Repeats int     `desc:"number of playbacks"`
}

// Defaults sets the standard movie geometry for a block of given minutes.
func (mp *MovieParams) Defaults(minutes float64) {
	mp.Width = 120
	mp.Height = 95
	mp.Seconds = minutes * 60
	mp.Repeats = 1
}

// Spec is the declarative description of one block.
type Spec struct {
	Type     string            `desc:"block type, resolved through the Registry"`
	Minutes  float64           `desc:"nominal block duration, minutes"`
	Label    string            `desc:"human readable label written to every trial of the block"`
	Oddballs []oddball.Rate    `desc:"ordered oddball rates per minute; order determines the random draws"`
	Movie    *MovieParams      `desc:"movie playback parameters (movie_* blocks only)"`
	Repeats  int               `desc:"repeat count override for rf_mapping and sequential_control_block; 0 = default"`
	Rounding *oddball.Rounding `desc:"rounding policy override for the block's oddball count"`
	Overflow *oddball.Overflow `desc:"overflow policy override for the block's scheduler"`
}

// Seconds returns the nominal duration in seconds.
func (sp *Spec) Seconds() float64 {
	return sp.Minutes * 60
}

// RoundingOr returns the spec's rounding override, or def.
func (sp *Spec) RoundingOr(def oddball.Rounding) oddball.Rounding {
	if sp.Rounding != nil {
		return *sp.Rounding
	}
	return def
}

// OverflowOr returns the spec's overflow override, or def.
func (sp *Spec) OverflowOr(def oddball.Overflow) oddball.Overflow {
	if sp.Overflow != nil {
		return *sp.Overflow
	}
	return def
}

// MovieOrDefaults returns the movie parameters with unset fields defaulted.
func (sp *Spec) MovieOrDefaults() MovieParams {
	var mp MovieParams
	mp.Defaults(sp.Minutes)
	if sp.Movie == nil {
		return mp
	}
	if sp.Movie.Width > 0 {
		mp.Width = sp.Movie.Width
	}
	if sp.Movie.Height > 0 {
		mp.Height = sp.Movie.Height
	}
	if sp.Movie.Seconds > 0 {
		mp.Seconds = sp.Movie.Seconds
	}
	if sp.Movie.Repeats > 0 {
		mp.Repeats = sp.Movie.Repeats
	}
	return mp
}

// Validate checks the values that every generator relies on.
func (sp *Spec) Validate() error {
	if sp.Type == "" {
		return fmt.Errorf("%w: empty block type", ErrInvalidSpec)
	}
	if !(sp.Minutes > 0) {
		return fmt.Errorf("%w: %s duration %v minutes", ErrInvalidSpec, sp.Type, sp.Minutes)
	}
	if sp.Repeats < 0 {
		return fmt.Errorf("%w: %s repeats %d", ErrInvalidSpec, sp.Type, sp.Repeats)
	}
	for _, r := range sp.Oddballs {
		if _, ok := stim.Oddball(r.Type); !ok {
			return fmt.Errorf("%w: %q in %s", ErrUnknownOddball, r.Type, sp.Type)
		}
		if r.PerMinute < 0 {
			return fmt.Errorf("%w: %s rate %v for %s", ErrInvalidSpec, r.Type, r.PerMinute, sp.Type)
		}
	}
	if sp.Rounding != nil && (*sp.Rounding < 0 || *sp.Rounding >= oddball.RoundingN) {
		return fmt.Errorf("%w: %s rounding %v", ErrInvalidSpec, sp.Type, *sp.Rounding)
	}
	if sp.Overflow != nil && (*sp.Overflow < 0 || *sp.Overflow >= oddball.OverflowN) {
		return fmt.Errorf("%w: %s overflow %v", ErrInvalidSpec, sp.Type, *sp.Overflow)
	}
	if sp.Movie != nil && (sp.Movie.Width < 0 || sp.Movie.Height < 0 || sp.Movie.Seconds < 0 || sp.Movie.Repeats < 0) {
		return fmt.Errorf("%w: %s negative movie params", ErrInvalidSpec, sp.Type)
	}
	return nil
}

// Generator produces the trials of one block category.
type Generator interface {
	// Generate returns the trials of the block, with parameter fields set.
	// Enrichment fields are left zero.
	Generate(sp *Spec, variant int) ([]stim.Trial, error)

	// Sequenced returns true if trials come in fixed 5-step sequences.
	Sequenced() bool
}
