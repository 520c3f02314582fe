// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package seeds derives the per-block random number generators used during
session generation.

Every block owns a private generator seeded from the session variant and the
block type name. The name enters through a fixed 32-bit content hash of its
UTF-8 bytes, so the same variant and block list produce the same session in
every process, on every machine.
*/
package seeds

import (
	"github.com/cespare/xxhash/v2"
	"github.com/emer/emergent/v2/erand"
)

// Salts multiply the variant for each family of block generators.
const (
	// General is used by control, rf mapping, movie and long blocks.
	General int64 = 42

	// Discrete is used by standard, jitter and sequential oddball blocks.
	Discrete int64 = 123

	// Motor is used by closed-loop motor blocks.
	Motor int64 = 789
)

// Offsets are added to the variant for streams that do not depend
// on the block type.
const (
	// PhasePool selects the prerecorded file and window.
	PhasePool int64 = 1337

	// Injection places oddballs into prerecorded phase blocks.
	Injection int64 = 4242
)

// Hash returns the stable 32-bit content hash of name.
func Hash(name string) uint32 {
	return uint32(xxhash.Sum64String(name))
}

// Block returns the seed for a block of given type:
// variant * salt + Hash(blockType).
func Block(variant int, salt int64, blockType string) int64 {
	return int64(variant)*salt + int64(Hash(blockType))
}

// Offset returns variant + off, for streams keyed only on the variant.
func Offset(variant int, off int64) int64 {
	return int64(variant) + off
}

// NewRand returns a private generator for given seed.
// It never touches the global math/rand source.
func NewRand(seed int64) erand.Rand {
	return erand.NewSysRand(seed)
}

// ForBlock is shorthand for NewRand(Block(variant, salt, blockType)).
func ForBlock(variant int, salt int64, blockType string) erand.Rand {
	return NewRand(Block(variant, salt, blockType))
}

// Permutation returns a permuted list of 0..n-1 drawn from rnd.
func Permutation(n int, rnd erand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	erand.PermuteInts(p, rnd)
	return p
}

// Shuffle reorders items in place according to a permutation drawn from rnd.
func Shuffle[T any](items []T, rnd erand.Rand) {
	if len(items) < 2 {
		return
	}
	perm := Permutation(len(items), rnd)
	tmp := make([]T, len(items))
	for i, pi := range perm {
		tmp[i] = items[pi]
	}
	copy(items, tmp)
}
