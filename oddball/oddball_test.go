// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oddball

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sort"
	"testing"

	"github.com/emer/trialgen/seeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fourRates = []Rate{
	{Type: "orientation_45", PerMinute: 1.35},
	{Type: "orientation_90", PerMinute: 1.35},
	{Type: "halt", PerMinute: 1.35},
	{Type: "omission", PerMinute: 1.35},
}

func checkSpacing(t *testing.T, pos []int, n, minInt, buf int) {
	t.Helper()
	require.True(t, sort.IntsAreSorted(pos), "positions must be sorted")
	for i, p := range pos {
		assert.GreaterOrEqual(t, p, buf)
		assert.Less(t, p, n-buf)
		for _, q := range pos[i+1:] {
			assert.GreaterOrEqual(t, q-p, minInt, "positions %d and %d too close", p, q)
		}
	}
}

func TestFrameScheduling(t *testing.T) {
	var pr Params
	pr.FrameDefaults()
	sc := NewScheduler(pr, nil)
	for variant := 0; variant < 20; variant++ {
		rnd := seeds.ForBlock(variant, seeds.Motor, "motor_oddball")
		pos := sc.Place(3600, 5, rnd)
		require.Len(t, pos, 5)
		checkSpacing(t, pos, 3600, 120, 300)
	}
}

func TestPlaceLongBlock(t *testing.T) {
	var pr Params
	pr.FrameDefaults()
	sc := NewScheduler(pr, nil)
	n := 26 * 60 * 60
	want := AggregateRounding.Count(fourRates, 26)
	require.Equal(t, 140, want)
	pos := sc.Place(n, want, seeds.NewRand(5))
	require.Len(t, pos, want)
	checkSpacing(t, pos, n, 120, 300)
}

func TestPlaceUnderFill(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	sc := NewScheduler(Params{MinInterval: 100, EdgeBuffer: 10, Span: 1}, log)
	// only [10, 310) is available: at most 3 events 100 apart
	pos := sc.Place(320, 10, seeds.NewRand(1))
	assert.LessOrEqual(t, len(pos), 3)
	assert.NotEmpty(t, pos)
	checkSpacing(t, pos, 320, 100, 10)
	assert.Contains(t, buf.String(), "under-filled")
}

func TestPlaceEmptySpace(t *testing.T) {
	sc := NewScheduler(Params{MinInterval: 10, EdgeBuffer: 50}, nil)
	assert.Empty(t, sc.Place(80, 3, seeds.NewRand(1)))
	assert.Empty(t, sc.Place(1000, 0, seeds.NewRand(1)))
	assert.Nil(t, Candidates(100, 50))
	assert.Equal(t, []int{2, 3}, Candidates(6, 2))
}

func TestRounding(t *testing.T) {
	// aggregate vs per-type disagree for 4 x 1.35/min over one minute
	assert.Equal(t, 5, AggregateRounding.Count(fourRates, 1))
	assert.Equal(t, 4, PerTypeRounding.Count(fourRates, 1))
	assert.Equal(t, 4, AggregateRounding.Count(fourRates, 0.75))
	assert.Equal(t, 4, PerTypeRounding.Count(fourRates, 0.75))
	assert.Equal(t, 0, PerType(-2, 1))
	assert.Len(t, TypeList(fourRates, 1), 4)
	assert.Equal(t, []string{"a", "a", "b"}, TypeList([]Rate{{Type: "a", PerMinute: 2.5}, {Type: "b", PerMinute: 1}}, 1))
}

func TestAssignOverflow(t *testing.T) {
	pos := []int{10, 20, 30}

	pad := NewScheduler(Params{Overflow: PadWithLast}, nil)
	pls := pad.Assign(pos, []string{"x", "y"})
	require.Len(t, pls, 3)
	assert.Equal(t, "y", pls[2].Type)

	def := NewScheduler(Params{Overflow: FallbackDefault, Default: "motor_halt"}, nil)
	pls = def.Assign(pos, []string{"x"})
	require.Len(t, pls, 3)
	assert.Equal(t, []Placement{{10, "x"}, {20, "motor_halt"}, {30, "motor_halt"}}, pls)

	// truncation
	pls = pad.Assign(pos[:1], []string{"x", "y", "z"})
	assert.Equal(t, []Placement{{10, "x"}}, pls)

	// nothing to pad from
	assert.Empty(t, pad.Assign(pos, nil))
	assert.Len(t, def.Assign(pos, nil), 3)
}

func TestScheduleReproducible(t *testing.T) {
	var pr Params
	pr.TrialDefaults()
	assert.Equal(t, "motor_halt", pr.Default)
	sc := NewScheduler(pr, nil)
	a := sc.Schedule(3*60*30, fourRates, 3, seeds.NewRand(4242))
	b := sc.Schedule(3*60*30, fourRates, 3, seeds.NewRand(4242))
	assert.Equal(t, a, b)
	require.Len(t, a, 16)
	pos := make([]int, len(a))
	counts := map[string]int{}
	for i, pl := range a {
		pos[i] = pl.Pos
		counts[pl.Type]++
	}
	checkSpacing(t, pos, 3*60*30, 60, 150)
	for _, r := range fourRates {
		assert.Equal(t, 4, counts[r.Type])
	}
}

func TestPolicyNames(t *testing.T) {
	var r Rounding
	require.NoError(t, r.FromString("PerTypeRounding"))
	assert.Equal(t, PerTypeRounding, r)
	assert.Equal(t, "AggregateRounding", AggregateRounding.String())
	assert.Error(t, r.FromString("Nearest"))

	var o Overflow
	require.NoError(t, o.FromString("FallbackDefault"))
	assert.Equal(t, FallbackDefault, o)

	b, err := json.Marshal(PadWithLast)
	require.NoError(t, err)
	assert.Equal(t, `"PadWithLast"`, string(b))
}
