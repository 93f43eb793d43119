/*
 * table.go, part of chemsel.
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

package bonds

import (
	"fmt"
	"io"
	"math"

	"github.com/pelletier/go-toml"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	MinDist       = 0.63 //atoms closer than this are never bonded
	Tolerance     = 0.45 //added to the sum of the covalent radii
	DefaultRadius = 0.77 //used for elements not in the table
)

//Covalent radii, in A, from DOI:10.1039/b801115j (Cordero et al. 2008).
//For the metals with several spin states, the high-spin radius is used.
var covRadii = map[string]float64{
	"H":  0.31,
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Ar": 1.06,
	"K":  2.03,
	"Ca": 1.76,
	"Sc": 1.70,
	"Ti": 1.60,
	"V":  1.53,
	"Cr": 1.39,
	"Mn": 1.61, //hs
	"Fe": 1.52, //hs
	"Co": 1.50, //hs
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"Ge": 1.20,
	"As": 1.19,
	"Se": 1.20,
	"Br": 1.20,
	"Kr": 1.16,
	"Rb": 2.20,
	"Sr": 1.95,
	"Y":  1.90,
	"Zr": 1.75,
	"Mo": 1.54,
	"Ru": 1.46,
	"Rh": 1.42,
	"Pd": 1.39,
	"Ag": 1.45,
	"Cd": 1.44,
	"In": 1.42,
	"Sn": 1.39,
	"Sb": 1.39,
	"Te": 1.38,
	"I":  1.39,
	"Xe": 1.40,
	"Cs": 2.44,
	"Ba": 2.15,
	"W":  1.62,
	"Pt": 1.36,
	"Au": 1.36,
	"Hg": 1.32,
	"Pb": 1.46,
	"Bi": 1.48,
}

//The maximum number of bonds for some elements, used when pruning.
//Elements not present are not checked.
var maxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//Table contains the covalent radii and bonding thresholds used to decide
//whether 2 atoms are bonded: atoms i and j are bonded if
//MinDist < d(i,j) <= Radii[i]+Radii[j]+Tolerance.
type Table struct {
	Radii         map[string]float64
	MaxBonds      map[string]int
	Tolerance     float64
	MinDist       float64
	DefaultRadius float64
}

//DefaultTable returns a new copy of the default table.
func DefaultTable() *Table {
	T := &Table{
		Radii:         make(map[string]float64, len(covRadii)),
		MaxBonds:      make(map[string]int, len(maxBonds)),
		Tolerance:     Tolerance,
		MinDist:       MinDist,
		DefaultRadius: DefaultRadius,
	}
	for k, v := range covRadii {
		T.Radii[k] = v
	}
	for k, v := range maxBonds {
		T.MaxBonds[k] = v
	}
	return T
}

//Radius returns the covalent radius for the element symbol, and false if
//the symbol is not in the table, in which case the default radius is returned.
func (T *Table) Radius(symbol string) (float64, bool) {
	r, ok := T.Radii[symbol]
	if !ok {
		return T.DefaultRadius, false
	}
	return r, true
}

//tableFile is the TOML representation of a Table. Keys not present
//keep their default values.
type tableFile struct {
	Tolerance     *float64           `toml:"tolerance"`
	MinDist       *float64           `toml:"min_dist"`
	DefaultRadius *float64           `toml:"default_radius"`
	Radii         map[string]float64 `toml:"radii"`
	MaxBonds      map[string]int     `toml:"max_bonds"`
}

//ReadTable reads a TOML document from r, and returns the default table with the
//values in the document replacing the default ones. i.e.
//
//	tolerance = 0.4
//	[radii]
//	Zn = 1.3
//	[max_bonds]
//	N = 4
func ReadTable(r io.Reader) (*Table, error) {
	var f tableFile
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("bonds: reading table: %w", err)
	}
	T := DefaultTable()
	if f.Tolerance != nil {
		T.Tolerance = *f.Tolerance
	}
	if f.MinDist != nil {
		T.MinDist = *f.MinDist
	}
	if f.DefaultRadius != nil {
		T.DefaultRadius = *f.DefaultRadius
	}
	for k, v := range f.Radii {
		T.Radii[k] = v
	}
	for k, v := range f.MaxBonds {
		T.MaxBonds[k] = v
	}
	if err := T.Check(); err != nil {
		return nil, err
	}
	return T, nil
}

//Check returns an error if the table contains negative or non-finite values.
func (T *Table) Check() error {
	bad := func(f float64) bool { return f < 0 || math.IsNaN(f) || math.IsInf(f, 0) }
	if bad(T.Tolerance) || bad(T.MinDist) || bad(T.DefaultRadius) {
		return fmt.Errorf("bonds: invalid table thresholds: tolerance %v, min_dist %v, default_radius %v", T.Tolerance, T.MinDist, T.DefaultRadius)
	}
	for k, v := range T.Radii {
		if bad(v) {
			return fmt.Errorf("bonds: invalid radius for %s: %v", k, v)
		}
	}
	for k, v := range T.MaxBonds {
		if v < 0 {
			return fmt.Errorf("bonds: invalid maximum number of bonds for %s: %d", k, v)
		}
	}
	return nil
}
