/*
 * eval.go, part of chemsel.
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
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/cells"
)

//evaluator computes the mask of each node over the whole set of atoms. Nothing is
//short-circuited. The grid is built the first time a spatial node needs it.
type evaluator struct {
	set      *atoms.AtomSet
	frame    *atoms.Frame
	grid     *cells.Grid
	cellSize float64
	n        uint
}

func (e *evaluator) getGrid() *cells.Grid {
	if e.grid == nil {
		e.grid = cells.Build(e.frame, e.cellSize)
	}
	return e.grid
}

func (e *evaluator) all() *bitset.BitSet {
	return bitset.New(e.n).Complement()
}

func (e *evaluator) eval(node Node) *bitset.BitSet {
	switch v := node.(type) {
	case Bool:
		if v.Value {
			return e.all()
		}
		return bitset.New(e.n)
	case Macro:
		return e.eval(v.Expr)
	case Not:
		return e.eval(v.X).Complement()
	case And:
		l := e.eval(v.L)
		l.InPlaceIntersection(e.eval(v.R))
		return l
	case Or:
		l := e.eval(v.L)
		l.InPlaceUnion(e.eval(v.R))
		return l
	case Compare:
		return e.compare(v)
	case Match:
		return e.match(v)
	case Regex:
		ret := bitset.New(e.n)
		for i, s := range e.set.Strings(keywords[v.Key].attr) {
			if v.re.MatchString(s) {
				ret.Set(uint(i))
			}
		}
		return ret
	case Within:
		return e.within(v)
	case Same:
		return e.same(v)
	case WithinBonds:
		base := e.eval(v.X)
		seeds := make([]bool, e.n)
		for i, ok := base.NextSet(0); ok; i, ok = base.NextSet(i + 1) {
			seeds[i] = true
		}
		return fromBools(e.set.Topology().WithinBonds(seeds, v.K))
	}
	panic(fmt.Sprintf("BUG: unknown node type %T", node))
}

//numbers returns the values of a numeric keyword for all atoms.
func (e *evaluator) numbers(k keyword) []float64 {
	if k.coordinate() {
		ret := make([]float64, e.n)
		for i := range ret {
			v := e.frame.Vec(i)
			ret[i] = [3]float64{v.X, v.Y, v.Z}[k.axis]
		}
		return ret
	}
	if k.kind == atoms.KindFloat {
		return e.set.Floats(k.attr)
	}
	ints := e.set.Ints(k.attr)
	ret := make([]float64, len(ints))
	for i, v := range ints {
		ret[i] = float64(v)
	}
	return ret
}

func (e *evaluator) compare(C Compare) *bitset.BitSet {
	k := keywords[C.Key]
	ret := bitset.New(e.n)
	if k.kind == atoms.KindString {
		for i, s := range e.set.Strings(k.attr) {
			if compareStr(s, C.Op, C.Value.Str) {
				ret.Set(uint(i))
			}
		}
		return ret
	}
	//atoms with non-finite coordinates don't satisfy any coordinate comparison, != included.
	coord := k.coordinate()
	for i, f := range e.numbers(k) {
		if coord && !e.frame.Finite(i) {
			continue
		}
		if compareNum(f, C.Op, C.Value.Num) {
			ret.Set(uint(i))
		}
	}
	return ret
}

func compareNum(a float64, op string, b float64) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	panic("BUG: unknown operator " + op)
}

//strings are ordered byte-wise.
func compareStr(a, op, b string) bool {
	switch op {
	case "=":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	panic("BUG: unknown operator " + op)
}

func (e *evaluator) match(M Match) *bitset.BitSet {
	k := keywords[M.Key]
	ret := bitset.New(e.n)
	if k.kind == atoms.KindString {
		set := make(map[string]bool, len(M.Values))
		for _, v := range M.Values {
			set[v.Str] = true
		}
		for i, s := range e.set.Strings(k.attr) {
			if set[s] {
				ret.Set(uint(i))
			}
		}
		return ret
	}
	for i, f := range e.numbers(k) {
		for _, v := range M.Values {
			if (v.Range && f >= v.Num && f <= v.Hi) || (!v.Range && f == v.Num) {
				ret.Set(uint(i))
				break
			}
		}
	}
	return ret
}

//within adds to the base set the atoms close to it. The search starts from whichever
//is smaller, the base set or its complement.
func (e *evaluator) within(W Within) *bitset.BitSet {
	base := e.eval(W.X)
	ret := base.Clone()
	g := e.getGrid()
	buf := make([]int, 0, 64)
	count := base.Count()
	if count <= e.n-count {
		for i, ok := base.NextSet(0); ok; i, ok = base.NextSet(i + 1) {
			buf = g.Neighbors(int(i), W.Radius, buf[:0])
			for _, j := range buf {
				ret.Set(uint(j))
			}
		}
	} else {
		for j, ok := base.NextClear(0); ok && j < e.n; j, ok = base.NextClear(j + 1) {
			buf = g.Neighbors(int(j), W.Radius, buf[:0])
			for _, i := range buf {
				if base.Test(uint(i)) {
					ret.Set(j)
					break
				}
			}
		}
	}
	if W.Exclusive {
		ret.InPlaceDifference(base)
	}
	return ret
}

func (e *evaluator) same(S Same) *bitset.BitSet {
	k := keywords[S.Key]
	base := e.eval(S.X)
	ret := bitset.New(e.n)
	switch k.kind {
	case atoms.KindString:
		col := e.set.Strings(k.attr)
		vals := make(map[string]bool)
		for i, ok := base.NextSet(0); ok; i, ok = base.NextSet(i + 1) {
			vals[col[i]] = true
		}
		for i, v := range col {
			if vals[v] {
				ret.Set(uint(i))
			}
		}
	default:
		col := e.numbers(k)
		vals := make(map[float64]bool)
		for i, ok := base.NextSet(0); ok; i, ok = base.NextSet(i + 1) {
			vals[col[i]] = true
		}
		for i, v := range col {
			if vals[v] {
				ret.Set(uint(i))
			}
		}
	}
	return ret
}

func fromBools(mask []bool) *bitset.BitSet {
	ret := bitset.New(uint(len(mask)))
	for i, v := range mask {
		if v {
			ret.Set(uint(i))
		}
	}
	return ret
}

func toBools(b *bitset.BitSet, n uint) []bool {
	ret := make([]bool, n)
	for i, ok := b.NextSet(0); ok && i < n; i, ok = b.NextSet(i + 1) {
		ret[i] = true
	}
	return ret
}
