// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package oddball schedules rare oddball events among standard events in a
quantized index space: trial slots for trial-based blocks, or frame numbers
for closed-loop blocks running at a fixed frame rate.

Placement is a greedy pass over a shuffled candidate pool that keeps every
accepted position at least MinInterval away from all others, and at least
EdgeBuffer away from either end of the space. Types are then assigned to the
sorted positions from a shuffled list built from the per-type rates.

How the number of events is derived from the rates (Rounding) and how extra
positions are labeled (Overflow) are explicit parameters, because different
block categories use different combinations.
*/
package oddball

import (
	"log/slog"
	"sort"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/trialgen/seeds"
)

// Placement is one scheduled oddball.
type Placement struct {
	Pos  int    `desc:"index in the space (trial index or frame number)"`
	Type string `desc:"oddball type name"`
}

// Params are the placement constraints and policies of a scheduler.
type Params struct {
	MinInterval int      `min:"1" desc:"minimum distance between any two placed events, in index units"`
	EdgeBuffer  int      `min:"0" desc:"positions excluded from placement at each end of the space"`
	Span        int      `min:"1" desc:"index units consumed by each event; 1 in trial space, the event duration in frame space"`
	Rounding    Rounding `desc:"how the number of events to place is derived from the rates"`
	Overflow    Overflow `desc:"how positions beyond the requested type list are labeled"`
	Default     string   `desc:"type used for extra positions under FallbackDefault"`
}

// TrialDefaults sets the trial-index parameters used for prerecorded
// open-loop blocks at 30 Hz: 2 s spacing, 5 s edge buffer.
func (pr *Params) TrialDefaults() {
	pr.MinInterval = 60
	pr.EdgeBuffer = 150
	pr.Span = 1
	pr.Rounding = PerTypeRounding
	pr.Overflow = PadWithLast
	pr.Default = "motor_halt"
}

// FrameDefaults sets the frame-index parameters used for closed-loop motor
// blocks at 60 Hz: 2 s spacing, 5 s edge buffer, 21 frame (~0.35 s) events.
func (pr *Params) FrameDefaults() {
	pr.MinInterval = 120
	pr.EdgeBuffer = 300
	pr.Span = 21
	pr.Rounding = AggregateRounding
	pr.Overflow = FallbackDefault
	pr.Default = "motor_halt"
}

// Scheduler places oddballs according to its Params.
type Scheduler struct {
	Params

	// Log receives under-fill warnings.
	Log *slog.Logger
}

// NewScheduler returns a scheduler with given params.
// A nil logger uses slog.Default().
func NewScheduler(pr Params, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{Params: pr, Log: log}
}

// Schedule places oddballs for rates over minutes in a space of n positions.
// Random draws happen in a fixed order: candidate shuffle, then type shuffle.
func (sc *Scheduler) Schedule(n int, rates []Rate, minutes float64, rnd erand.Rand) []Placement {
	want := sc.Rounding.Count(rates, minutes)
	pos := sc.Place(n, want, rnd)
	types := TypeList(rates, minutes)
	seeds.Shuffle(types, rnd)
	return sc.Assign(pos, types)
}

// Place selects up to want positions in [EdgeBuffer, n-EdgeBuffer), pairwise
// at least MinInterval apart, and returns them sorted ascending. Running out
// of candidates before want is reached is logged, not an error.
func (sc *Scheduler) Place(n, want int, rnd erand.Rand) []int {
	cands := Candidates(n, sc.EdgeBuffer)
	erand.PermuteInts(cands, rnd)
	if want <= 0 {
		return nil
	}
	placed := make([]int, 0, want)
	for _, c := range cands {
		if !sc.fits(c, placed) {
			continue
		}
		placed = append(placed, c)
		if len(placed) >= want {
			break
		}
	}
	if len(placed) < want {
		sc.Log.Warn("oddball schedule under-filled",
			slog.Int("placed", len(placed)),
			slog.Int("requested", want),
			slog.Int("positions", n),
			slog.Int("min_interval", sc.MinInterval),
			slog.Int("edge_buffer", sc.EdgeBuffer))
	}
	sort.Ints(placed)
	return placed
}

func (sc *Scheduler) fits(c int, placed []int) bool {
	for _, p := range placed {
		d := c - p
		if d < 0 {
			d = -d
		}
		if d < sc.MinInterval {
			return false
		}
	}
	return true
}

// Assign zips sorted positions with types. Surplus types are dropped;
// surplus positions are labeled per the Overflow policy.
func (sc *Scheduler) Assign(pos []int, types []string) []Placement {
	if len(types) > len(pos) {
		types = types[:len(pos)]
	}
	pls := make([]Placement, 0, len(pos))
	for i, p := range pos {
		var typ string
		switch {
		case i < len(types):
			typ = types[i]
		case sc.Overflow == FallbackDefault:
			typ = sc.Default
		case len(types) > 0:
			typ = types[len(types)-1]
		default:
			// nothing to pad from
			return pls
		}
		pls = append(pls, Placement{Pos: p, Type: typ})
	}
	return pls
}

// Candidates returns the positions [buffer, n-buffer) in order.
func Candidates(n, buffer int) []int {
	if buffer < 0 {
		buffer = 0
	}
	end := n - buffer
	if end <= buffer {
		return nil
	}
	cands := make([]int, 0, end-buffer)
	for i := buffer; i < end; i++ {
		cands = append(cands, i)
	}
	return cands
}

// TypeList returns each rate's type repeated floor(rate * minutes) times,
// in rate order.
func TypeList(rates []Rate, minutes float64) []string {
	var types []string
	for _, r := range rates {
		n := PerType(r.PerMinute, minutes)
		for i := 0; i < n; i++ {
			types = append(types, r.Type)
		}
	}
	return types
}
