/*
 * v3_test.go, part of chemsel.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package v3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("Expected 3 vectors, got %d", A.NVecs())
	}
	if v := A.Vec(1); v != (r3.Vec{X: 4, Y: 5, Z: 6}) {
		Te.Errorf("Wrong second vector: %v", v)
	}
	a[3] = 100
	if A.At(1, 0) != 100 {
		Te.Errorf("The matrix doesn't share data with the original slice")
	}
	_, err = NewMatrix([]float64{1, 2})
	if err == nil {
		Te.Errorf("Expected an error for a slice not divisible by 3")
	}
	if e, ok := err.(Error); !ok || !e.Critical() || len(e.Decorate("")) == 0 {
		Te.Errorf("Expected a critical, decorated v3.Error, got %v", err)
	}
	if Z := Zeros(0); Z.NVecs() != 0 {
		Te.Errorf("Empty matrix should have 0 vectors")
	}
	if E, _ := NewMatrix(nil); E.NVecs() != 0 {
		Te.Errorf("Matrix from an empty slice should have 0 vectors")
	}
}

func TestSetVec(Te *testing.T) {
	B := Zeros(3)
	B.SetVec(2, r3.Vec{X: 16, Y: 17, Z: 18})
	if B.At(2, 2) != 18 || B.At(0, 0) != 0 {
		Te.Errorf("Wrong vector set: %v", B.Vec(2))
	}
	defer func() {
		if r := recover(); r != ErrIndexOutOfRange {
			Te.Errorf("Expected an index out of range panic, got %v", r)
		}
	}()
	B.SetVec(3, r3.Vec{})
}
