// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package phases loads prerecorded running-wheel phase traces for blocks that
replay recorded motion instead of synthesizing it.

Loading is strict: a missing pool directory, an empty pool, a file without a
Phase_Radians column, a short or non-numeric row, or a recording shorter
than requested are all errors.
Replacing a prerecorded trace with anything else would invalidate the
block, so there is no fallback.

Pool files are comma-separated tables with a header row, as written by
BuildPool: Index, Timestamp, Wheel_Degrees, Phase_Degrees, Phase_Radians.
*/
package phases

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/trialgen/seeds"
)

// SampleRate is the rate of pool recordings, in samples per second.
const SampleRate = 30

// RadiansCol is the required phase column.
const RadiansCol = "Phase_Radians"

var (
	// ErrBadDuration is returned for a non-positive request.
	ErrBadDuration = errors.New("phases: requested non-positive duration")

	// ErrNoPool is returned when the pool directory does not exist.
	ErrNoPool = errors.New("phases: missing pool directory")

	// ErrEmptyPool is returned when the pool directory has no csv files.
	ErrEmptyPool = errors.New("phases: no csv files in pool directory")

	// ErrNoPhaseColumn is returned when the chosen file has no Phase_Radians column.
	ErrNoPhaseColumn = errors.New("phases: no " + RadiansCol + " column")

	// ErrShortRecording is returned when the chosen file has too few samples.
	ErrShortRecording = errors.New("phases: not enough samples")

	// ErrBadRow is returned for a row that is short or not numeric.
	ErrBadRow = errors.New("phases: malformed row")
)

// Loader loads contiguous windows from a pool directory.
type Loader struct {
	// Dir is the pool directory.
	Dir string

	// Log receives the chosen file and window.
	Log *slog.Logger
}

// NewLoader returns a loader for given pool directory.
func NewLoader(dir string, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{Dir: dir, Log: log}
}

// Samples returns the number of samples for a window of given seconds.
func Samples(seconds float64) int {
	return int(seconds * SampleRate)
}

// Load returns Samples(seconds) contiguous phase samples in radians.
// The file and the window start are drawn from a generator seeded with
// variant + seeds.PhasePool, independent of the block generators.
func (ld *Loader) Load(seconds float64, variant int) ([]float64, error) {
	target := Samples(seconds)
	if target <= 0 {
		return nil, ErrBadDuration
	}
	files, err := ld.Files()
	if err != nil {
		return nil, err
	}
	rnd := seeds.NewRand(seeds.Offset(variant, seeds.PhasePool))
	chosen := files[rnd.Intn(len(files), -1)]
	phs, err := ReadRadians(chosen)
	if err != nil {
		return nil, err
	}
	if len(phs) < target {
		return nil, fmt.Errorf("%w in %s (have %d need %d)", ErrShortRecording, filepath.Base(chosen), len(phs), target)
	}
	start := rnd.Intn(len(phs)-target+1, -1)
	ld.Log.Debug("loaded prerecorded phases",
		slog.String("file", filepath.Base(chosen)),
		slog.Int("start", start),
		slog.Int("samples", target))
	return phs[start : start+target], nil
}

// Files returns the sorted csv files in the pool directory.
func (ld *Loader) Files() ([]string, error) {
	st, err := os.Stat(ld.Dir)
	if err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoPool, ld.Dir)
	}
	files, err := filepath.Glob(filepath.Join(ld.Dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPool, ld.Dir)
	}
	sort.Strings(files)
	return files, nil
}

// ReadRadians reads the Phase_Radians column of a pool file.
func ReadRadians(fname string) ([]float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dt, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("phases: reading %s: %w", filepath.Base(fname), err)
	}
	if dt.ColIdx(RadiansCol) < 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPhaseColumn, filepath.Base(fname))
	}
	phs := make([]float64, dt.Rows)
	for r := range phs {
		phs[r] = dt.CellFloat(RadiansCol, r)
	}
	return phs, nil
}

// ReadTable reads a comma-separated table with a plain header row into
// FLOAT64 columns. Column types are fixed from the header instead of being
// inferred from the first data row, where an integral value such as 0
// would otherwise turn a phase column into integers. Every row must have
// one finite number per header column, otherwise ErrBadRow is returned.
func ReadTable(r io.Reader) (*etable.Table, error) {
	cr := csv.NewReader(r)
	recs, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: %v", ErrBadRow, err)
		}
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrBadRow)
	}
	hdr, rows := recs[0], recs[1:]
	sc := make(etable.Schema, len(hdr))
	for i, nm := range hdr {
		sc[i] = etable.Column{Name: strings.TrimSpace(nm), Type: etensor.FLOAT64}
	}
	dt := &etable.Table{}
	dt.SetFromSchema(sc, len(rows))
	for ri, rec := range rows {
		for ci, str := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: line %d %s %q", ErrBadRow, ri+2, sc[ci].Name, str)
			}
			dt.SetCellFloatIdx(ci, ri, v)
		}
	}
	return dt, nil
}
