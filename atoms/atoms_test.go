/*
 * atoms_test.go, part of chemsel.
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
	"reflect"
	"testing"

	"github.com/rmera/chemsel/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewAtomSet(Te *testing.T) {
	cols := Columns{
		Name:    []string{"N", "CA", "C", "N", "CA", "ZN"},
		Resname: []string{"ALA", "ALA", "ALA", "GLY", "GLY", "ZN"},
		Resid:   []int{1, 1, 1, 2, 2, 2},
		Chain:   []string{"A", "A", "A", "A", "A", "B"},
		Bonds:   [][2]int{{1, 0}, {1, 2}, {2, 3}, {3, 4}, {0, 1}},
	}
	A, err := NewAtomSet(6, cols)
	if err != nil {
		Te.Fatal(err)
	}
	if A.Len() != 6 {
		Te.Errorf("Expected 6 atoms, got %d", A.Len())
	}
	if r := A.Ints(AttrResidue); !reflect.DeepEqual(r, []int{0, 0, 0, 1, 1, 2}) {
		Te.Errorf("Wrong residue column: %v", r)
	}
	if s := A.Ints(AttrSerial); s[0] != 1 || s[5] != 6 {
		Te.Errorf("Wrong serial column: %v", s)
	}
	if f := A.Ints(AttrFragment); !reflect.DeepEqual(f, []int{0, 0, 0, 0, 0, 1}) {
		Te.Errorf("Wrong fragment column: %v", f)
	}
	if b := A.Bonds(); !reflect.DeepEqual(b, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}}) {
		Te.Errorf("Bonds not cleaned: %v", b)
	}
	if e := A.Strings(AttrElement); !reflect.DeepEqual(e, []string{"N", "C", "C", "N", "C", "Zn"}) {
		Te.Errorf("Wrong guessed elements: %v", e)
	}
	if len(A.Warnings()) != 1 || A.Warnings()[0].Code != WarnElementGuessed {
		Te.Errorf("Expected one element-guessed warning, got %v", A.Warnings())
	}
	if s := A.Strings(AttrSegname); len(s) != 6 || s[0] != "" {
		Te.Errorf("Missing segname column should be blank, got %v", s)
	}
	if b := A.Floats(AttrBeta); len(b) != 6 || b[3] != 0 {
		Te.Errorf("Missing beta column should be zero, got %v", b)
	}
}

func TestNewAtomSetErrors(Te *testing.T) {
	if _, err := NewAtomSet(3, Columns{Name: []string{"C1", "C2"}}); !IsDataError(err) {
		Te.Errorf("Short column should give a DataError, got %v", err)
	}
	if _, err := NewAtomSet(2, Columns{Bonds: [][2]int{{0, 2}}}); !IsDataError(err) {
		Te.Errorf("Out of range bond should give a DataError, got %v", err)
	}
	if _, err := NewAtomSet(2, Columns{Bonds: [][2]int{{1, 1}}}); !IsDataError(err) {
		Te.Errorf("Self bond should give a DataError, got %v", err)
	}
	A, err := NewAtomSet(0, Columns{})
	if err != nil || A.Len() != 0 {
		Te.Errorf("Empty AtomSet should be valid: %v", err)
	}
}

func TestSegnameIgnored(Te *testing.T) {
	A, err := NewAtomSet(2, Columns{Segname: []string{"PROA", "PROTEIN"}, Element: []string{"C", "c"}})
	if err != nil {
		Te.Fatal(err)
	}
	if s := A.Strings(AttrSegname); s[0] != "" || s[1] != "" {
		Te.Errorf("Segnames should have been ignored, got %v", s)
	}
	ws := A.Warnings()
	if len(ws) != 1 || ws[0].Code != WarnSegnameIgnored {
		Te.Errorf("Expected a segname warning, got %v", ws)
	}
	if e := A.Strings(AttrElement); e[1] != "C" {
		Te.Errorf("Element not normalized: %v", e)
	}
}

func TestSegnameWidthInCharacters(Te *testing.T) {
	A, err := NewAtomSet(2, Columns{Segname: []string{"ÅBC", "ΔΔΔΔ"}})
	if err != nil {
		Te.Fatal(err)
	}
	if s := A.Strings(AttrSegname); s[0] != "ÅBC" || s[1] != "ΔΔΔΔ" {
		Te.Errorf("Segnames of up to %d characters should be kept, got %v", MaxSegnameLen, s)
	}
	if ws := A.Warnings(); len(ws) != 0 {
		Te.Errorf("Expected no warnings, got %v", ws)
	}
	A, err = NewAtomSet(1, Columns{Segname: []string{"ΔΔΔΔΔ"}})
	if err != nil {
		Te.Fatal(err)
	}
	if s := A.Strings(AttrSegname); s[0] != "" {
		Te.Errorf("A 5-character segname should be ignored, got %v", s)
	}
}

func TestSymbolFromName(Te *testing.T) {
	for _, v := range []struct{ name, resname, symbol string }{
		{"CA", "ALA", "C"},
		{"CA", "CA", "Ca"},
		{"1HB", "ALA", "H"},
		{"CL", "CL", "Cl"},
		{"OXT", "GLY", "O"},
		{"SG", "CYS", "S"},
		{"ZN1", "ZNX", "Zn"},
	} {
		s, ok := SymbolFromName(v.name, v.resname)
		if !ok || s != v.symbol {
			Te.Errorf("%s %s: expected %s, got %s", v.name, v.resname, v.symbol, s)
		}
	}
	if _, ok := SymbolFromName("XX", "UNK"); ok {
		Te.Errorf("XX shouldn't be guessed")
	}
}

func TestFrames(Te *testing.T) {
	data := []float32{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3}
	frames, err := SplitFrames(2, data)
	if err != nil {
		Te.Fatal(err)
	}
	if len(frames) != 2 {
		Te.Fatalf("Expected 2 frames, got %d", len(frames))
	}
	data[0] = 100
	if frames[0].Vec(0).X != 0 {
		Te.Errorf("Frames must not alias the input")
	}
	if v := frames[1].Vec(1); v != (r3.Vec{X: 3, Y: 3, Z: 3}) {
		Te.Errorf("Wrong coordinates: %v", v)
	}
	if _, err := SplitFrames(2, data[:5]); !IsDataError(err) {
		Te.Errorf("Bad length should give a DataError, got %v", err)
	}
	if _, err := NewFrame(3, data); !IsDataError(err) {
		Te.Errorf("Bad length should give a DataError, got %v", err)
	}
	F, _ := NewFrame(1, []float32{float32(math.NaN()), 0, 0})
	if F.Finite(0) {
		Te.Errorf("NaN coordinates reported as finite")
	}
	M := frames[1].Matrix()
	if M.NVecs() != 2 || M.Vec(0).Y != 2 {
		Te.Errorf("Wrong matrix conversion: %v", M)
	}
	back := FrameFromMatrix(M)
	if !reflect.DeepEqual(back.Coords(), frames[1].Coords()) {
		Te.Errorf("Matrix round trip changed the coordinates: %v", back.Coords())
	}
	if FrameFromMatrix(v3.Zeros(0)).Len() != 0 {
		Te.Errorf("Empty matrix should give an empty frame")
	}
}
