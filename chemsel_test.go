/*
 * chemsel_test.go, part of chemsel.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chemsel

import (
	"bytes"
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/sel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOptions() *Options {
	o := DefaultOptions()
	o.Logger(NoopLogger())
	return o
}

func TestEvaluateSelectionScenario(t *testing.T) {
	s, err := CompileSelection("resname ALA and name C1")
	require.NoError(t, err)
	cols := atoms.Columns{
		Name:    []string{"C1", "C2", "O1"},
		Resname: []string{"ALA", "ALA", "ALA"},
		Resid:   []int{1, 1, 1},
	}
	res, err := EvaluateSelection(context.Background(), s, 3, cols, nil, quietOptions())
	require.NoError(t, err)
	require.Len(t, res.Masks, 1)
	assert.Equal(t, []bool{true, false, false}, res.Masks[0])
	assert.Equal(t, []int{0}, res.Indexes(0))
}

func TestCompileSelectionError(t *testing.T) {
	_, err := CompileSelection("resname ALA and (name CA")
	require.Error(t, err)
	assert.True(t, IsSyntaxError(err))
	assert.False(t, IsDataError(err))
	var e Error
	require.ErrorAs(t, err, &e)
	assert.True(t, e.Critical())
	assert.Contains(t, e.Decorate(""), "CompileSelection")
}

//randomSystem returns a set of n atoms in residues of 3, and nframes random frames.
func randomSystem(t *testing.T, n, nframes int, seed int64) (*atoms.AtomSet, []*atoms.Frame) {
	r := rand.New(rand.NewSource(seed))
	names := []string{"N", "CA", "C"}
	cols := atoms.Columns{Name: make([]string, n), Resname: make([]string, n), Resid: make([]int, n)}
	for i := 0; i < n; i++ {
		cols.Name[i] = names[i%3]
		cols.Resname[i] = "GLY"
		cols.Resid[i] = i/3 + 1
	}
	set, err := atoms.NewAtomSet(n, cols)
	require.NoError(t, err)
	data := make([]float32, 3*n*nframes)
	for i := range data {
		data[i] = r.Float32() * 20
	}
	frames, err := atoms.SplitFrames(n, data)
	require.NoError(t, err)
	return set, frames
}

func TestEvaluateConcurrentFrames(t *testing.T) {
	set, frames := randomSystem(t, 300, 8, 7)
	s, err := CompileSelection("same residue as within 3 of (resid 1 to 5 and name CA)")
	require.NoError(t, err)
	o := quietOptions()
	o.Cpus(4)
	res, err := Evaluate(context.Background(), s, set, frames, o)
	require.NoError(t, err)
	require.Len(t, res.Masks, len(frames))
	for i, f := range frames {
		mask, err := s.Evaluate(set, f)
		require.NoError(t, err)
		assert.Equal(t, mask, res.Masks[i], "frame %d", i)
	}
}

//A zero Options, with no cpus, logger or table set, falls back to the defaults
//for each unset field.
func TestEvaluateZeroOptions(t *testing.T) {
	set, frames := randomSystem(t, 60, 3, 11)
	s, err := CompileSelection("within 2 of name CA")
	require.NoError(t, err)
	o := new(Options)
	done := make(chan error, 1)
	go func() {
		res, err := Evaluate(context.Background(), s, set, frames, o)
		if err == nil && len(res.Masks) != len(frames) {
			t.Errorf("expected %d masks, got %d", len(frames), len(res.Masks))
		}
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Evaluate with zero Options did not return")
	}
	assert.Equal(t, 0, o.Cpus(), "the caller's options must not change")
	assert.Nil(t, o.Logger())

	elements := make([]string, set.Len())
	for i := range elements {
		elements[i] = "C"
	}
	_, err = InferBonds(set.Len(), elements, frames[:1], new(Options))
	require.NoError(t, err)
}

func TestEvaluateErrors(t *testing.T) {
	set, frames := randomSystem(t, 30, 2, 3)
	within := sel.MustCompile("within 2 of index 0")
	_, err := Evaluate(context.Background(), within, set, nil, quietOptions())
	assert.True(t, IsDataError(err), "no frames: %v", err)

	_, other := randomSystem(t, 31, 1, 3)
	_, err = Evaluate(context.Background(), within, set, append(frames, other...), quietOptions())
	assert.True(t, IsDataError(err), "wrong frame size: %v", err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, within, set, frames, quietOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateWarnings(t *testing.T) {
	var buf bytes.Buffer
	o := DefaultOptions()
	o.Logger(NewTextLogger(&buf, 0))
	s, err := CompileSelection("segname LONGSEG")
	require.NoError(t, err)
	cols := atoms.Columns{Name: []string{"CA", "CB"}, Segname: []string{"PROTA", "PROT"}}
	res, err := EvaluateSelection(context.Background(), s, 2, cols, nil, o)
	require.NoError(t, err)
	codes := make([]string, 0, len(res.Warnings))
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, atoms.WarnSegnameIgnored)
	assert.Contains(t, codes, atoms.WarnSegnameTruncated)
	assert.Contains(t, buf.String(), atoms.WarnSegnameIgnored)
	assert.Equal(t, []bool{false, false}, res.Masks[0])
}

func TestInferBonds(t *testing.T) {
	xyz := []float32{
		0, 0, 0,
		1.5, 0, 0,
		11.5, 0, 0,
	}
	f, err := atoms.NewFrame(3, xyz)
	require.NoError(t, err)
	res, err := InferBonds(3, []string{"C", "C", "C"}, []*atoms.Frame{f}, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 1}}, res.Bonds)
	assert.InDelta(t, 1.5, res.Distances[0], 1e-6)

	_, err = InferBonds(3, []string{"C", "C", "C"}, []*atoms.Frame{f, f}, quietOptions())
	assert.True(t, IsDataError(err))
	_, err = InferBonds(3, []string{"C", "C", "C"}, nil, quietOptions())
	assert.True(t, IsDataError(err))
	_, err = InferBonds(2, []string{"C", "C", "C"}, []*atoms.Frame{f}, quietOptions())
	assert.True(t, IsDataError(err))
}

func TestInferBondsGeometryError(t *testing.T) {
	nan := float32(math.NaN())
	f, err := atoms.NewFrame(2, []float32{nan, 0, 0, 0, nan, 0})
	require.NoError(t, err)
	_, err = InferBonds(2, []string{"C", "O"}, []*atoms.Frame{f}, quietOptions())
	assert.True(t, IsGeometryError(err), "%v", err)
}
