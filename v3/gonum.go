/*
 * gonum.go, part of chemsel.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//gonum.go contains what is needed for handling the gonum/mat types.
//All the *Vec functions operate on row vectors, i.e. one point in space per row.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Matrix is a set of vectors in 3D space. The underlying implementation is a row-major gonum Dense.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
//A Matrix with 0 vectors is valid and has a nil Dense.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	if vecs == 0 {
		return &Matrix{}
	}
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//data is not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return &Matrix{}, nil
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vec returns a copy of the ith vector of F as a gonum r3.Vec.
func (F *Matrix) Vec(i int) r3.Vec {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	return r3.Vec{X: F.At(i, 0), Y: F.At(i, 1), Z: F.At(i, 2)}
}

//SetVec sets the ith vector of F to the values in v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

//Errors

type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("goChem/v3: A VecMatrix should have 3 columns")
	ErrIndexOutOfRange = PanicMsg("goChem/v3: index out of range")
)
