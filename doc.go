// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package trialgen is the overall repository for generating deterministic
trial schedules for visual and visuomotor mismatch experiments.
A session is a list of blocks, and every block expands into the trials
of one table row each, all derived from a single session variant seed.

The sub-packages are:

* seeds: deterministic seed derivation and shuffling used by everything else.

* stim: the Trial record, its output columns, and the oddball overrides.

* oddball: rate to count conversion and spaced placement of oddballs.

* phases: prerecorded running phase pool loading and wheel conversion.

* blocks: the block generators and the Registry that dispatches block types.

* session: the session catalog (built-in and YAML) and the Assembler that
concatenates blocks into one enriched trial list.

* table: conversion of trials into an etable.Table and atomic CSV output.

* examples/generate: command that writes the trials of one session.

* examples/phasepool: command that converts a wheel recording into a pool file.
*/
package trialgen
