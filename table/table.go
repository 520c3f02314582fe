// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package table writes an assembled session to its fixed-column,
comma-separated trial table.

The session is first materialized into an etable.Table with one string
column per output column, so every cell is formatted exactly once, then
written in a single pass to a renameio pending file beside the destination,
synced, and renamed into place. A failed write never leaves a partial file
behind.
*/
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/trialgen/stim"
	"github.com/google/renameio/v2"
)

// Schema returns the output schema: all columns are pre-formatted strings.
func Schema() etable.Schema {
	cols := stim.Columns()
	sc := make(etable.Schema, len(cols))
	for i, nm := range cols {
		sc[i] = etable.Column{Name: nm, Type: etensor.STRING}
	}
	return sc
}

// FromTrials materializes trials into a new table.
func FromTrials(trials []stim.Trial) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "TrialTable")
	dt.SetMetaData("desc", "session trial table")
	dt.SetFromSchema(Schema(), len(trials))
	cols := stim.Columns()
	for r := range trials {
		vals := trials[r].Values()
		for ci, nm := range cols {
			dt.SetCellString(nm, r, vals[ci])
		}
	}
	return dt
}

// WriteCSV writes dt with a plain header row (column names only, no
// type markers) followed by all rows. The first error returned by w is
// reported even when the row writer would drop it.
func WriteCSV(w io.Writer, dt *etable.Table) error {
	_, err := writeCSV(w, dt)
	return err
}

func writeCSV(w io.Writer, dt *etable.Table) (int64, error) {
	cnt := &countWriter{w: w}
	cw := csv.NewWriter(cnt)
	if err := cw.Write(dt.ColNames); err != nil {
		return cnt.n, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return cnt.n, err
	}
	if err := dt.WriteCSV(cnt, etable.Comma, etable.NoHeaders); err != nil {
		return cnt.n, err
	}
	return cnt.n, cnt.err
}

// Write writes trials to fname atomically. The parent directory is created
// if needed. Returns the number of bytes written.
func Write(fname string, trials []stim.Trial) (int64, error) {
	return WriteTable(fname, FromTrials(trials))
}

// WriteTable writes dt to fname atomically: a pending file in the same
// directory is synced and renamed over fname, or removed on any error.
func WriteTable(fname string, dt *etable.Table) (int64, error) {
	dir := filepath.Dir(fname)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("table: creating output directory: %w", err)
	}
	pf, err := renameio.NewPendingFile(fname, renameio.WithTempDir(dir), renameio.WithStaticPermissions(0o644))
	if err != nil {
		return 0, fmt.Errorf("table: creating temp file: %w", err)
	}
	defer pf.Cleanup()
	n, err := writeCSV(pf, dt)
	if err != nil {
		return 0, fmt.Errorf("table: writing %s: %w", fname, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("table: replacing %s: %w", fname, err)
	}
	return n, nil
}

// countWriter counts bytes and keeps the first write error.
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countWriter) Write(p []byte) (int, error) {
	if cw.err != nil {
		return 0, cw.err
	}
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	if err != nil {
		cw.err = err
	}
	return n, err
}
