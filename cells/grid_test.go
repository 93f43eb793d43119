/*
 * grid_test.go, part of chemsel.
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

package cells

import (
	"math"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/rmera/chemsel/atoms"
	"gonum.org/v1/gonum/spatial/r3"
)

func randomFrame(Te *testing.T, n int, side float32, seed int64) *atoms.Frame {
	r := rand.New(rand.NewSource(seed))
	xyz := make([]float32, 3*n)
	for i := range xyz {
		xyz[i] = r.Float32()*side - side/2
	}
	F, err := atoms.NewFrame(n, xyz)
	if err != nil {
		Te.Fatal(err)
	}
	return F
}

func brute(F *atoms.Frame, p r3.Vec, radius float64) []int {
	ret := make([]int, 0)
	for i := 0; i < F.Len(); i++ {
		if !F.Finite(i) {
			continue
		}
		if r3.Norm2(r3.Sub(F.Vec(i), p)) <= radius*radius {
			ret = append(ret, i)
		}
	}
	return ret
}

func TestQueryBrute(Te *testing.T) {
	F := randomFrame(Te, 500, 30, 1)
	for _, cellsize := range []float64{0.5, 2, 5, 100, 0} {
		G := Build(F, cellsize)
		for _, radius := range []float64{0, 1.5, 3, 7.5, 40} {
			for i := 0; i < F.Len(); i += 37 {
				p := F.Vec(i)
				got := G.Query(p, radius, nil)
				sort.Ints(got)
				expected := brute(F, p, radius)
				if !reflect.DeepEqual(got, expected) {
					Te.Errorf("cell %v radius %v atom %d: grid gave %v, brute force %v", cellsize, radius, i, got, expected)
				}
			}
			//a point outside the box
			p := r3.Vec{X: 16, Y: -17, Z: 15}
			got := G.Query(p, radius, nil)
			sort.Ints(got)
			if expected := brute(F, p, radius); len(got) != len(expected) {
				Te.Errorf("cell %v radius %v outside point: grid gave %d atoms, brute force %d", cellsize, radius, len(got), len(expected))
			}
		}
	}
}

func TestCellGrowth(Te *testing.T) {
	F := randomFrame(Te, 10, 1000, 2)
	G := Build(F, 0.1)
	if G.CellSize() <= 0.1 {
		Te.Errorf("Cell size should have grown for a sparse frame, got %v", G.CellSize())
	}
	if G.Len() != 10 {
		Te.Errorf("Wrong number of atoms in grid: %d", G.Len())
	}
	got := G.Neighbors(0, 2000, nil)
	if len(got) != 9 {
		Te.Errorf("Every other atom should be a neighbor of 0 with a large radius, got %v", got)
	}
}

func TestNonFinite(Te *testing.T) {
	nan := float32(math.NaN())
	F, err := atoms.NewFrame(3, []float32{0, 0, 0, nan, 0, 0, 1, 0, 0})
	if err != nil {
		Te.Fatal(err)
	}
	G := Build(F, 2)
	if G.Indexed(1) {
		Te.Errorf("NaN atom shouldn't be indexed")
	}
	if got := G.Neighbors(0, 1, nil); !reflect.DeepEqual(got, []int{2}) {
		Te.Errorf("Expected only atom 2 as neighbor of 0 (inclusive radius), got %v", got)
	}
	if got := G.Neighbors(1, 10, nil); len(got) != 0 {
		Te.Errorf("NaN atom should have no neighbors, got %v", got)
	}
	all, _ := atoms.NewFrame(1, []float32{nan, nan, nan})
	if got := Build(all, 1).Query(r3.Vec{}, 10, nil); len(got) != 0 {
		Te.Errorf("Grid without finite atoms should return nothing, got %v", got)
	}
	empty, _ := atoms.NewFrame(0, nil)
	if got := Build(empty, 1).Query(r3.Vec{}, 10, nil); len(got) != 0 {
		Te.Errorf("Empty grid should return nothing, got %v", got)
	}
}
