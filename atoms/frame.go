/*
 * frame.go, part of chemsel.
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

package atoms

import (
	"math"

	"github.com/rmera/chemsel/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//Frame contains the coordinates of N atoms for one snapshot, as single precision
//numbers in a contiguous, row-major N×3 array.
type Frame struct {
	n   int
	xyz []float32
}

//NewFrame returns a frame for n atoms, using the coordinates in xyz, which
//must have exactly 3n elements (x0,y0,z0,x1,...). The slice is not copied.
func NewFrame(n int, xyz []float32) (*Frame, error) {
	if n < 0 {
		return nil, NewDataError("NewFrame", "negative number of atoms: %d", n)
	}
	if len(xyz) != 3*n {
		return nil, NewDataError("NewFrame", "coordinate array has %d elements, expected %d (3*%d)", len(xyz), 3*n, n)
	}
	return &Frame{n: n, xyz: xyz}, nil
}

//SplitFrames splits data, which contains the coordinates of several frames of n atoms
//one after the other, into independent frames. Each frame gets its own copy of the coordinates.
func SplitFrames(n int, data []float32) ([]*Frame, error) {
	if n <= 0 {
		if len(data) != 0 {
			return nil, NewDataError("SplitFrames", "%d coordinates given for %d atoms", len(data), n)
		}
		return nil, nil
	}
	if len(data)%(3*n) != 0 {
		return nil, NewDataError("SplitFrames", "%d coordinates is not a multiple of 3*%d", len(data), n)
	}
	nframes := len(data) / (3 * n)
	ret := make([]*Frame, nframes)
	for i := range ret {
		c := make([]float32, 3*n)
		copy(c, data[i*3*n:(i+1)*3*n])
		ret[i] = &Frame{n: n, xyz: c}
	}
	return ret, nil
}

//FrameFromMatrix returns a single precision frame with the coordinates in the matrix M.
func FrameFromMatrix(M *v3.Matrix) *Frame {
	n := M.NVecs()
	F := &Frame{n: n, xyz: make([]float32, 3*n)}
	for i := 0; i < n; i++ {
		v := M.Vec(i)
		F.xyz[3*i] = float32(v.X)
		F.xyz[3*i+1] = float32(v.Y)
		F.xyz[3*i+2] = float32(v.Z)
	}
	return F
}

//Len returns the number of atoms in the frame.
func (F *Frame) Len() int {
	return F.n
}

//Coords returns the underlying coordinate array. It must not be modified.
func (F *Frame) Coords() []float32 {
	return F.xyz
}

//Vec returns the position of atom i
func (F *Frame) Vec(i int) r3.Vec {
	if i < 0 || i >= F.n {
		panic(ErrIndexOutOfRange)
	}
	c := F.xyz[3*i : 3*i+3]
	return r3.Vec{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2])}
}

//Finite returns true if the 3 coordinates of atom i are finite numbers.
func (F *Frame) Finite(i int) bool {
	v := F.Vec(i)
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

//Matrix returns the coordinates of the frame as a double precision goChem matrix.
func (F *Frame) Matrix() *v3.Matrix {
	M := v3.Zeros(F.n)
	for i := 0; i < F.n; i++ {
		M.SetVec(i, F.Vec(i))
	}
	return M
}
