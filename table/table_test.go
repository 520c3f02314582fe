// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emer/trialgen/stim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrials() []stim.Trial {
	std := stim.Standard("standard_oddball")
	std.BlockNumber = 1
	std.BlockLabel = "Std, with comma"
	std.BlockMinutes = 6.4
	std.TrialNumber = 1

	odd := std
	odd.TrialNumber = 2
	odd.Orientation = 45
	odd.TrialType = "orientation_45"

	wheel := stim.ClosedLoop("motor_oddball", stim.WheelPhase())
	wheel.BlockNumber = 2
	wheel.BlockLabel = "Motor"
	wheel.BlockMinutes = 26
	wheel.TrialNumber = 3

	seq := stim.SeqStep("sequential_oddball")
	seq.Orientation = 90
	seq.BlockNumber = 3
	seq.BlockLabel = "Seq"
	seq.BlockMinutes = 0.75
	seq.TrialNumber = 4
	seq.SequenceNumber = 1
	seq.TrialInSequence = 1
	return []stim.Trial{std, odd, wheel, seq}
}

func readBack(t *testing.T, fname string) [][]string {
	t.Helper()
	f, err := os.Open(fname)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "out", "nested", "session.csv")
	trials := sampleTrials()
	n, err := Write(fname, trials)
	require.NoError(t, err)

	st, err := os.Stat(fname)
	require.NoError(t, err)
	assert.Equal(t, st.Size(), n)

	recs := readBack(t, fname)
	require.Len(t, recs, len(trials)+1)
	assert.Equal(t, stim.Columns(), recs[0])
	for i := range trials {
		assert.Equal(t, trials[i].Values(), recs[i+1])
	}
	assert.Equal(t, "Std, with comma", recs[1][1])
	assert.Equal(t, "wheel", recs[3][16])
	assert.Equal(t, "0.03333333333333333", recs[3][10])

	// no temp files left behind
	ents, err := os.ReadDir(filepath.Dir(fname))
	require.NoError(t, err)
	assert.Len(t, ents, 1)
}

func TestWriteDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	_, err := Write(a, sampleTrials())
	require.NoError(t, err)
	_, err = Write(b, sampleTrials())
	require.NoError(t, err)
	ab, _ := os.ReadFile(a)
	bb, _ := os.ReadFile(b)
	assert.True(t, bytes.Equal(ab, bb))
	assert.True(t, strings.HasPrefix(string(ab), "Block_Number,Block_Label,"))
}

func TestWriteReplaces(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "session.csv")
	require.NoError(t, os.WriteFile(fname, []byte("stale"), 0o644))
	_, err := Write(fname, sampleTrials()[:1])
	require.NoError(t, err)
	recs := readBack(t, fname)
	assert.Len(t, recs, 2)
}

func TestWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	// parent path is a regular file
	_, err := Write(filepath.Join(blocker, "session.csv"), sampleTrials())
	assert.Error(t, err)

	// destination is a directory: rename fails and the temp file is removed
	target := filepath.Join(dir, "target.csv")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))
	_, err = Write(target, sampleTrials())
	assert.Error(t, err)
	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, ents, 2, "only the blocker file and the target directory remain")
}

func TestFromTrials(t *testing.T) {
	dt := FromTrials(sampleTrials())
	assert.Equal(t, 4, dt.Rows)
	assert.Equal(t, stim.Columns(), dt.ColNames)
	assert.Equal(t, "orientation_45", dt.CellString("Trial_Type", 1))
	assert.Equal(t, "1", dt.CellString("Sequence_Number", 3))
}

var errDiskFull = errors.New("disk full")

// limitWriter accepts up to left bytes, then fails.
type limitWriter struct {
	left int
	buf  bytes.Buffer
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	if len(p) > lw.left {
		n := lw.left
		lw.buf.Write(p[:n])
		lw.left = 0
		return n, errDiskFull
	}
	lw.left -= len(p)
	return lw.buf.Write(p)
}

func TestWriteCSVRowError(t *testing.T) {
	dt := FromTrials(sampleTrials())
	hdr := len(strings.Join(stim.Columns(), ",")) + 1

	// header fits, the rows do not
	lw := &limitWriter{left: hdr + 10}
	err := WriteCSV(lw, dt)
	assert.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, hdr+10, lw.buf.Len())

	// header does not fit
	err = WriteCSV(&limitWriter{left: 5}, dt)
	assert.ErrorIs(t, err, errDiskFull)

	var full bytes.Buffer
	require.NoError(t, WriteCSV(&full, dt))
	lw = &limitWriter{left: full.Len()}
	require.NoError(t, WriteCSV(lw, dt))
	assert.Equal(t, full.String(), lw.buf.String())
}
