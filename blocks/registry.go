// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blocks

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/emer/trialgen/phases"
	"github.com/emer/trialgen/stim"
)

// MoviePrefix selects the movie generator for any block type it prefixes.
const MoviePrefix = "movie_"

// Registry maps block type names to generators.
type Registry struct {
	gens     map[string]Generator
	prefixes map[string]Generator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{gens: map[string]Generator{}, prefixes: map[string]Generator{}}
}

// Standard returns a registry with every built-in block type. The loader
// backs open_loop_prerecorded blocks; log receives scheduler warnings.
func Standard(ld *phases.Loader, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	rg := NewRegistry()
	rg.Register("standard_control", &StdControl{})
	rg.Register("jitter_control", &JitterControl{})
	rg.Register("sequential_control_block", &SeqControl{})
	rg.Register("standard_oddball", &Discrete{})
	rg.Register("jitter_oddball", &Discrete{})
	rg.Register("sequential_oddball", &SeqOddball{})
	rg.Register("sequential_long", &SeqLong{})
	rg.Register("motor_long", &MotorLong{})
	rg.Register("motor_control", &MotorControl{})
	rg.Register("motor_oddball", &MotorOddball{Log: log})
	rg.Register("open_loop_prerecorded", &Prerecorded{Loader: ld, Log: log})
	rg.Register("rf_mapping", &RFMapping{})
	rg.RegisterPrefix(MoviePrefix, &Movie{})
	return rg
}

// Register adds gen under an exact block type name.
func (rg *Registry) Register(typ string, gen Generator) {
	rg.gens[typ] = gen
}

// RegisterPrefix adds gen for every block type starting with prefix.
func (rg *Registry) RegisterPrefix(prefix string, gen Generator) {
	rg.prefixes[prefix] = gen
}

// Lookup returns the generator for block type typ. Exact names win over
// prefixes; among prefixes the longest match wins.
func (rg *Registry) Lookup(typ string) (Generator, error) {
	if gen, ok := rg.gens[typ]; ok {
		return gen, nil
	}
	best := ""
	for pfx := range rg.prefixes {
		if strings.HasPrefix(typ, pfx) && len(pfx) > len(best) {
			best = pfx
		}
	}
	if best != "" {
		return rg.prefixes[best], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBlock, typ)
}

// Generate validates sp and generates its trials with the matching generator.
func (rg *Registry) Generate(sp *Spec, variant int) ([]stim.Trial, error) {
	gen, err := rg.Lookup(sp.Type)
	if err != nil {
		return nil, err
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	return gen.Generate(sp, variant)
}

// Types returns the sorted exact type names and prefixes (with a trailing *).
func (rg *Registry) Types() []string {
	tys := make([]string, 0, len(rg.gens)+len(rg.prefixes))
	for nm := range rg.gens {
		tys = append(tys, nm)
	}
	for pfx := range rg.prefixes {
		tys = append(tys, pfx+"*")
	}
	sort.Strings(tys)
	return tys
}
