// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package session assembles a complete session from a named list of block
specs, and holds the catalog of session types.

The Assembler generates each block in order through a blocks.Registry and
fills in the enrichment fields of every trial: block number and label,
block duration, the session-wide running trial number, and for sequenced
blocks the sequence number and position within the sequence.
*/
package session

import (
	"fmt"
	"log/slog"

	"github.com/emer/trialgen/blocks"
	"github.com/emer/trialgen/stim"
)

// Assembler generates and enriches the trials of a session.
type Assembler struct {
	Registry *blocks.Registry
	Log      *slog.Logger
}

// NewAssembler returns an assembler using rg. A nil logger uses slog.Default().
func NewAssembler(rg *blocks.Registry, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{Registry: rg, Log: log}
}

// Assemble returns all trials of df for given variant, enriched. Any block
// error aborts the whole session.
func (as *Assembler) Assemble(df *Def, variant int) ([]stim.Trial, error) {
	var all []stim.Trial
	tnum := 0
	for bi := range df.Blocks {
		sp := &df.Blocks[bi]
		gen, err := as.Registry.Lookup(sp.Type)
		if err != nil {
			return nil, fmt.Errorf("%s block %d: %w", df.Name, bi+1, err)
		}
		if err := sp.Validate(); err != nil {
			return nil, fmt.Errorf("%s block %d: %w", df.Name, bi+1, err)
		}
		trials, err := gen.Generate(sp, variant)
		if err != nil {
			return nil, fmt.Errorf("%s block %d (%s): %w", df.Name, bi+1, sp.Label, err)
		}
		Enrich(trials, sp, bi+1, tnum, gen.Sequenced())
		tnum += len(trials)
		as.Log.Info("block generated",
			slog.Int("block", bi+1),
			slog.String("label", sp.Label),
			slog.String("type", sp.Type),
			slog.Float64("minutes", sp.Minutes),
			slog.Int("trials", len(trials)))
		all = append(all, trials...)
	}
	return all, nil
}

// Enrich sets the bookkeeping fields of one block's trials. Trial numbers
// continue from prev. Sequenced blocks number their sequences from 1 and
// positions within a sequence 1..stim.SeqLen; other blocks get 0 for both.
func Enrich(trials []stim.Trial, sp *blocks.Spec, block, prev int, sequenced bool) {
	for i := range trials {
		tr := &trials[i]
		tr.BlockNumber = block
		tr.BlockLabel = sp.Label
		tr.BlockMinutes = sp.Minutes
		tr.TrialNumber = prev + i + 1
		if sequenced {
			tr.SequenceNumber = i/stim.SeqLen + 1
			tr.TrialInSequence = i%stim.SeqLen + 1
		} else {
			tr.SequenceNumber = 0
			tr.TrialInSequence = 0
		}
	}
}
