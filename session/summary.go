// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package session

import (
	"log/slog"
	"sort"

	"github.com/emer/trialgen/stim"
)

// BlockSummary describes one block of an assembled session.
type BlockSummary struct {
	Number   int            `desc:"1-based block number"`
	Label    string         `desc:"block label"`
	Type     string         `desc:"block type label of the trials"`
	Minutes  float64        `desc:"nominal duration"`
	Trials   int            `desc:"number of trials"`
	Seconds  float64        `desc:"sum of delay + duration over all trials"`
	Oddballs map[string]int `desc:"oddball count per trial type"`
}

// NOddballs returns the total oddball count.
func (bs *BlockSummary) NOddballs() int {
	n := 0
	for _, c := range bs.Oddballs {
		n += c
	}
	return n
}

// LogValue logs the summary as a group, with oddball types in sorted order.
func (bs BlockSummary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("block", bs.Number),
		slog.String("label", bs.Label),
		slog.String("type", bs.Type),
		slog.Int("trials", bs.Trials),
		slog.Float64("seconds", bs.Seconds),
		slog.Int("oddballs", bs.NOddballs()),
	}
	tys := make([]string, 0, len(bs.Oddballs))
	for ty := range bs.Oddballs {
		tys = append(tys, ty)
	}
	sort.Strings(tys)
	for _, ty := range tys {
		attrs = append(attrs, slog.Int(ty, bs.Oddballs[ty]))
	}
	return slog.GroupValue(attrs...)
}

// Summarize returns one summary per block of an enriched session.
func Summarize(trials []stim.Trial) []BlockSummary {
	var sums []BlockSummary
	for i := range trials {
		tr := &trials[i]
		if len(sums) == 0 || sums[len(sums)-1].Number != tr.BlockNumber {
			sums = append(sums, BlockSummary{
				Number:   tr.BlockNumber,
				Label:    tr.BlockLabel,
				Type:     tr.BlockType,
				Minutes:  tr.BlockMinutes,
				Oddballs: map[string]int{},
			})
		}
		bs := &sums[len(sums)-1]
		bs.Trials++
		bs.Seconds += tr.Delay + tr.Duration
		if tr.IsOddball() {
			bs.Oddballs[tr.TrialType]++
		}
	}
	return sums
}
