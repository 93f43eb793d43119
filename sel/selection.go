/*
 * selection.go, part of chemsel.
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

package sel

import (
	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/cells"
)

//Selection is a compiled selection. It doesn't depend on any set of atoms or frame, and
//is never modified after Compile returns, so it can be evaluated concurrently.
type Selection struct {
	text      string
	root      Node
	coords    bool
	maxRadius float64
	warnings  []atoms.Warning
}

//Compile parses a selection. It returns a *SyntaxError if text can't be parsed.
func Compile(text string) (*Selection, error) {
	p, err := newParser(text)
	if err != nil {
		return nil, err
	}
	root, err := p.parseSelection()
	if err != nil {
		return nil, err
	}
	return &Selection{text: text, root: root, coords: p.coords, maxRadius: p.maxRadius, warnings: p.warnings}, nil
}

//MustCompile is like Compile, but panics if the selection can't be compiled.
func MustCompile(text string) *Selection {
	s, err := Compile(text)
	if err != nil {
		panic(err.Error())
	}
	return s
}

//Root returns the root of the syntax tree.
func (s *Selection) Root() Node {
	return s.root
}

//Text returns the selection as it was given to Compile.
func (s *Selection) Text() string {
	return s.text
}

//String returns the canonical, fully parenthesized form of the selection.
//Compiling it gives the same syntax tree.
func (s *Selection) String() string {
	return s.root.String()
}

//NeedsCoords returns true if the selection can't be evaluated without a frame.
func (s *Selection) NeedsCoords() bool {
	return s.coords
}

//MaxRadius returns the largest distance used in a within or exwithin in the selection.
func (s *Selection) MaxRadius() float64 {
	return s.maxRadius
}

//Warnings returns the non-fatal problems found while compiling (i.e. truncated segnames).
func (s *Selection) Warnings() []atoms.Warning {
	return s.warnings
}

//Evaluate returns the mask of the atoms in set selected by s, with the coordinates in frame.
//frame can be nil if the selection doesn't need coordinates. A grid previously built
//for the same frame can be given, and it will be used instead of building a new one.
func (s *Selection) Evaluate(set *atoms.AtomSet, frame *atoms.Frame, grid ...*cells.Grid) ([]bool, error) {
	if set == nil {
		return nil, atoms.NewDataError("Evaluate", "no atoms given")
	}
	if frame != nil {
		if err := set.CheckFrame(frame); err != nil {
			return nil, err
		}
	} else if s.coords {
		return nil, atoms.NewDataError("Evaluate", "selection '%s' needs coordinates, but no frame was given", s.text)
	}
	e := &evaluator{set: set, frame: frame, cellSize: s.maxRadius, n: uint(set.Len())}
	if len(grid) > 0 && grid[0] != nil && s.coords {
		if grid[0].Len() != set.Len() {
			return nil, atoms.NewDataError("Evaluate", "grid built for %d atoms, the set has %d", grid[0].Len(), set.Len())
		}
		e.grid = grid[0]
	}
	return toBools(e.eval(s.root), e.n), nil
}

//Indexes returns the indexes of the true elements of mask.
func Indexes(mask []bool) []int {
	ret := make([]int, 0, len(mask)/4)
	for i, v := range mask {
		if v {
			ret = append(ret, i)
		}
	}
	return ret
}
