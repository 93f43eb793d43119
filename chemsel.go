/*
 * chemsel.go, part of chemsel.
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
	"context"
	"strconv"

	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/bonds"
	"github.com/rmera/chemsel/sel"
	"golang.org/x/sync/errgroup"
)

//Result contains one mask per frame evaluated, and the non-fatal problems
//found while building the atoms, compiling the selection or evaluating it.
type Result struct {
	Masks    [][]bool
	Warnings []atoms.Warning
}

//Indexes returns the indexes of the atoms selected in frame i.
func (r *Result) Indexes(frame int) []int {
	return sel.Indexes(r.Masks[frame])
}

//BondResult contains the bonds guessed for one frame, as pairs [i,j] with i<j,
//with the distance between the atoms of each pair.
type BondResult struct {
	Bonds     [][2]int
	Distances []float64
	Warnings  []atoms.Warning
}

//CompileSelection compiles the selection text. It returns a *sel.SyntaxError if the text
//can't be compiled. The selection can be evaluated any number of times, concurrently.
func CompileSelection(text string) (*sel.Selection, error) {
	s, err := sel.Compile(text)
	if err != nil {
		return nil, errDecorate(err, "CompileSelection")
	}
	return s, nil
}

//EvaluateSelection builds a set of n atoms with the columns given and evaluates s on it
//for each of the frames. See Evaluate.
func EvaluateSelection(ctx context.Context, s *sel.Selection, n int, cols atoms.Columns, frames []*atoms.Frame, options ...*Options) (*Result, error) {
	set, err := atoms.NewAtomSet(n, cols)
	if err != nil {
		return nil, errDecorate(err, "EvaluateSelection")
	}
	return Evaluate(ctx, s, set, frames, options...)
}

//Evaluate returns the mask of the atoms of set selected by s in each of the frames.
//Frames are evaluated concurrently, using up to the number of CPUs set in the options.
//If no frames are given, a selection that doesn't use coordinates is evaluated once, and
//one that does results in a *atoms.DataError. Frames with a number of atoms different
//from the set's are also a *atoms.DataError. The context is checked before each frame is
//evaluated, and its error is returned if it is cancelled.
func Evaluate(ctx context.Context, s *sel.Selection, set *atoms.AtomSet, frames []*atoms.Frame, options ...*Options) (*Result, error) {
	o := getOptions(options)
	if s == nil || set == nil {
		return nil, atoms.NewDataError("Evaluate", "nil selection or atom set")
	}
	res := &Result{}
	res.Warnings = append(res.Warnings, set.Warnings()...)
	res.Warnings = append(res.Warnings, s.Warnings()...)
	if len(frames) == 0 {
		if s.NeedsCoords() {
			return nil, atoms.NewDataError("Evaluate", "selection '%s' needs coordinates, but no frames were given", s.Text())
		}
		mask, err := s.Evaluate(set, nil)
		if err != nil {
			return nil, errDecorate(err, "Evaluate")
		}
		res.Masks = [][]bool{mask}
		logWarnings(o.logger, "Evaluate", res.Warnings)
		return res, nil
	}
	for i, f := range frames {
		if err := set.CheckFrame(f); err != nil {
			return nil, errDecorate(err, fmtFrame("Evaluate", i))
		}
	}
	res.Masks = make([][]bool, len(frames))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cpus)
	for i, f := range frames {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			//each call builds its own cell list, if needed.
			mask, err := s.Evaluate(set, f)
			if err != nil {
				return errDecorate(err, fmtFrame("Evaluate", i))
			}
			res.Masks[i] = mask
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logWarnings(o.logger, "Evaluate", res.Warnings)
	return res, nil
}

//InferBonds guesses the bonds between n atoms with the given elements, in the only frame
//in frames. Blank elements are treated as unknown. See GuessBonds.
func InferBonds(n int, elements []string, frames []*atoms.Frame, options ...*Options) (*BondResult, error) {
	set, err := atoms.NewAtomSet(n, atoms.Columns{Element: elements})
	if err != nil {
		return nil, errDecorate(err, "InferBonds")
	}
	return GuessBonds(set, frames, options...)
}

//GuessBonds guesses the bonds between the atoms of set, using the coordinates in frames,
//which must contain exactly one frame (otherwise, a *atoms.DataError is returned).
//A *bonds.GeometryError is returned if none of the atoms has finite coordinates.
func GuessBonds(set *atoms.AtomSet, frames []*atoms.Frame, options ...*Options) (*BondResult, error) {
	o := getOptions(options)
	if set == nil {
		return nil, atoms.NewDataError("GuessBonds", "nil atom set")
	}
	if len(frames) != 1 {
		return nil, atoms.NewDataError("GuessBonds", "bonds are guessed for a single frame, %d given", len(frames))
	}
	G, err := bonds.Infer(set, frames[0], o.bondOptions())
	if err != nil {
		return nil, errDecorate(err, "GuessBonds")
	}
	res := &BondResult{
		Bonds:     G.Pairs(),
		Distances: make([]float64, G.Len()),
	}
	for i, b := range G.Bonds {
		res.Distances[i] = b.Dist
	}
	res.Warnings = append(res.Warnings, set.Warnings()...)
	res.Warnings = append(res.Warnings, G.Warnings...)
	logWarnings(o.logger, "GuessBonds", res.Warnings)
	return res, nil
}

func fmtFrame(caller string, frame int) string {
	return caller + ": frame " + strconv.Itoa(frame)
}
