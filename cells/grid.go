/*
 * grid.go, part of chemsel.
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

//Package cells implements a cell list: the atoms of one frame are partitioned
//into cubic cells, so all the atoms within a radius of a point can be found
//by looking only at the cells around it.
package cells

import (
	"math"

	"github.com/rmera/chemsel/atoms"
	"gonum.org/v1/gonum/spatial/r3"
)

//minCells is the number of cells always allowed, regardless of the number of atoms.
const minCells = 64

//Grid is a cell list for one frame. Cells are stored in x-major order, and
//the atoms of each cell are contiguous in one array (cell c holds
//atoms[start[c]:start[c+1]]). A Grid is never modified after Build returns,
//so it can be queried from several goroutines.
type Grid struct {
	n        int
	cellSize float64
	inv      float64
	origin   r3.Vec
	dims     [3]int
	start    []int32
	atoms    []int32
	pos      []r3.Vec
	indexed  []bool
}

//Build returns a Grid with the coordinates in F, with cells of side cellSize.
//If cellSize is not a positive number, 1 is used. If the number of cells
//would be larger than max(64, 2N), the cell size is increased. The cell
//size doesn't affect the results of the queries, only their cost.
//Atoms with non-finite coordinates are not included in the Grid.
func Build(F *atoms.Frame, cellSize float64) *Grid {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = 1
	}
	n := F.Len()
	G := &Grid{n: n, pos: make([]r3.Vec, n), indexed: make([]bool, n)}
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	count := 0
	for i := 0; i < n; i++ {
		if !F.Finite(i) {
			continue
		}
		v := F.Vec(i)
		G.pos[i] = v
		G.indexed[i] = true
		count++
		lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	if count == 0 {
		lo, hi = r3.Vec{}, r3.Vec{}
	}
	G.origin = lo
	extent := r3.Sub(hi, lo)
	maxcells := float64(2 * n)
	if maxcells < minCells {
		maxcells = minCells
	}
	for {
		fd := [3]float64{
			math.Floor(extent.X/cellSize) + 1,
			math.Floor(extent.Y/cellSize) + 1,
			math.Floor(extent.Z/cellSize) + 1,
		}
		total := fd[0] * fd[1] * fd[2]
		if total <= maxcells {
			G.dims = [3]int{int(fd[0]), int(fd[1]), int(fd[2])}
			break
		}
		//the factor is always > 1, and the loop ends once the box fits in one cell.
		cellSize *= math.Max(math.Cbrt(total/maxcells), 1.01)
	}
	G.cellSize = cellSize
	G.inv = 1 / cellSize
	ncells := G.dims[0] * G.dims[1] * G.dims[2]
	G.start = make([]int32, ncells+1)
	cellof := make([]int32, n)
	for i := 0; i < n; i++ {
		if !G.indexed[i] {
			continue
		}
		c := G.cellIndex(G.pos[i])
		cellof[i] = int32(c)
		G.start[c+1]++
	}
	for c := 0; c < ncells; c++ {
		G.start[c+1] += G.start[c]
	}
	G.atoms = make([]int32, count)
	fill := make([]int32, ncells)
	copy(fill, G.start[:ncells])
	for i := 0; i < n; i++ {
		if !G.indexed[i] {
			continue
		}
		c := cellof[i]
		G.atoms[fill[c]] = int32(i)
		fill[c]++
	}
	return G
}

//cell returns the cell coordinate of x along axis ax, not clamped.
func (G *Grid) cell(x float64, ax int) float64 {
	var o float64
	switch ax {
	case 0:
		o = G.origin.X
	case 1:
		o = G.origin.Y
	default:
		o = G.origin.Z
	}
	return math.Floor((x - o) * G.inv)
}

func (G *Grid) clamp(c float64, ax int) int {
	if !(c > 0) {
		return 0
	}
	if c > float64(G.dims[ax]-1) {
		return G.dims[ax] - 1
	}
	return int(c)
}

func (G *Grid) cellIndex(v r3.Vec) int {
	x := G.clamp(G.cell(v.X, 0), 0)
	y := G.clamp(G.cell(v.Y, 1), 1)
	z := G.clamp(G.cell(v.Z, 2), 2)
	return (x*G.dims[1]+y)*G.dims[2] + z
}

//Len returns the number of atoms of the frame used to build the Grid.
func (G *Grid) Len() int {
	return G.n
}

//CellSize returns the side of the cells of the Grid.
func (G *Grid) CellSize() float64 {
	return G.cellSize
}

//Indexed returns true if atom i is in the Grid, i.e., if its coordinates are finite.
func (G *Grid) Indexed(i int) bool {
	return G.indexed[i]
}

//Query appends to dst the indexes of all the atoms at a distance smaller than or equal to radius
//from point, and returns the resulting slice. Each atom appears at most once.
//Nothing is appended if radius is negative or point is not finite.
func (G *Grid) Query(point r3.Vec, radius float64, dst []int) []int {
	return G.query(point, radius, -1, dst)
}

//Neighbors appends to dst the indexes of all atoms other than i within radius of atom i, and returns the
//resulting slice. Nothing is appended if atom i is not in the grid.
func (G *Grid) Neighbors(i int, radius float64, dst []int) []int {
	if i < 0 || i >= G.n || !G.indexed[i] {
		return dst
	}
	return G.query(G.pos[i], radius, i, dst)
}

func (G *Grid) query(point r3.Vec, radius float64, skip int, dst []int) []int {
	if !(radius >= 0) || len(G.atoms) == 0 {
		return dst
	}
	p := [3]float64{point.X, point.Y, point.Z}
	var lo, hi [3]int
	for ax := 0; ax < 3; ax++ {
		if math.IsNaN(p[ax]) || math.IsInf(p[ax], 0) {
			return dst
		}
		lo[ax] = G.clamp(G.cell(p[ax]-radius, ax), ax)
		hi[ax] = G.clamp(G.cell(p[ax]+radius, ax), ax)
	}
	r2 := radius * radius
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			row := (x*G.dims[1] + y) * G.dims[2]
			for c := row + lo[2]; c <= row+hi[2]; c++ {
				for _, a := range G.atoms[G.start[c]:G.start[c+1]] {
					j := int(a)
					if j == skip {
						continue
					}
					if r3.Norm2(r3.Sub(G.pos[j], point)) <= r2 {
						dst = append(dst, j)
					}
				}
			}
		}
	}
	return dst
}
