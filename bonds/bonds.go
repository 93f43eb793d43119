/*
 * bonds.go, part of chemsel.
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

//Package bonds guesses covalent bonds from the distances between atoms and
//their covalent radii, using a cell list to avoid checking every pair.
package bonds

import (
	"fmt"
	"sort"

	"github.com/rmera/chemsel/atoms"
	"github.com/rmera/chemsel/cells"
	"github.com/rmera/chemsel/chemgraph"
	"gonum.org/v1/gonum/spatial/r3"
)

//bondsPerAtom is used to preallocate the bond list.
const bondsPerAtom = 5

//Bond is a covalent bond between atoms I and J, I<J.
type Bond struct {
	I, J int
	Dist float64
}

//Graph is the set of bonds guessed for one frame. The bonds are sorted by I, then J,
//and no pair appears twice.
type Graph struct {
	n        int
	Bonds    []Bond
	Warnings []atoms.Warning
}

//Len returns the number of bonds in the graph.
func (G *Graph) Len() int {
	return len(G.Bonds)
}

//Pairs returns the bonds as pairs of atom indexes.
func (G *Graph) Pairs() [][2]int {
	ret := make([][2]int, len(G.Bonds))
	for i, b := range G.Bonds {
		ret[i] = [2]int{b.I, b.J}
	}
	return ret
}

//Topology returns the bonds as a graph with one node per atom.
func (G *Graph) Topology() *chemgraph.Topology {
	return chemgraph.New(G.n, G.Pairs())
}

//Options for the guessing of bonds.
type Options struct {
	table *Table
	prune bool
}

//DefaultOptions returns an Options with the default table and no pruning.
func DefaultOptions() *Options {
	return &Options{table: DefaultTable(), prune: false}
}

//Table returns the current radii table and sets it to the one given, if any.
func (O *Options) Table(table ...*Table) *Table {
	ret := O.table
	if len(table) > 0 && table[0] != nil {
		O.table = table[0]
	}
	return ret
}

//Prune returns whether bonds are removed from atoms with more bonds than their maximum
//and sets the value to the one given, if any. The longest bonds are removed first.
func (O *Options) Prune(prune ...bool) bool {
	ret := O.prune
	if len(prune) > 0 {
		O.prune = prune[0]
	}
	return ret
}

//Infer guesses the bonds between the atoms of set, with the coordinates in F. Atoms i and j
//are bonded if MinDist < d(i,j) <= r(i)+r(j)+Tolerance, with the radii and thresholds of the table
//in the options. Atoms with different, non-blank alternate locations are never bonded.
//Atoms with non-finite coordinates are skipped, with a Warning. If no atom has finite coordinates,
//a GeometryError is returned.
func Infer(set *atoms.AtomSet, F *atoms.Frame, options ...*Options) (*Graph, error) {
	var o *Options
	if len(options) > 0 && options[0] != nil {
		o = options[0]
	} else {
		o = DefaultOptions()
	}
	if err := set.CheckFrame(F); err != nil {
		return nil, errDecorate(err, "Infer")
	}
	table := o.table
	if table == nil {
		table = DefaultTable()
	}
	if err := table.Check(); err != nil {
		return nil, err
	}
	n := set.Len()
	G := &Graph{n: n, Bonds: make([]Bond, 0, bondsPerAtom*n)}
	if n == 0 {
		return G, nil
	}
	elements := set.Strings(atoms.AttrElement)
	altloc := set.Strings(atoms.AttrAltloc)
	radii := make([]float64, n)
	var first, second float64 //the 2 largest radii
	var nonfinite, defaulted int
	unknown := make(map[string]bool)
	for i := 0; i < n; i++ {
		if !F.Finite(i) {
			nonfinite++
			continue
		}
		r, ok := table.Radius(elements[i])
		if !ok {
			defaulted++
			unknown[elements[i]] = true
		}
		radii[i] = r
		if r > first {
			first, second = r, first
		} else if r > second {
			second = r
		}
	}
	if nonfinite == n {
		return nil, newGeometryError("Infer", "none of the %d atoms has finite coordinates", n)
	}
	if nonfinite > 0 {
		G.Warnings = append(G.Warnings, atoms.Warning{Code: atoms.WarnNonFinite,
			Detail: fmt.Sprintf("%d atoms with non-finite coordinates were not considered for bonding", nonfinite)})
	}
	if defaulted > 0 {
		G.Warnings = append(G.Warnings, atoms.Warning{Code: atoms.WarnDefaultRadius,
			Detail: fmt.Sprintf("default radius (%.2f) used for %d atoms with elements %v", table.DefaultRadius, defaulted, sortedKeys(unknown))})
	}
	//the slack keeps pairs exactly at the cutoff from being lost to rounding.
	cutoff := (first + second + table.Tolerance) * (1 + 1e-9)
	grid := cells.Build(F, cutoff)
	neigh := make([]int, 0, 32)
	for i := 0; i < n; i++ {
		if !grid.Indexed(i) {
			continue
		}
		neigh = grid.Neighbors(i, cutoff, neigh[:0])
		vi := F.Vec(i)
		for _, j := range neigh {
			if j < i {
				continue
			}
			if altloc[i] != "" && altloc[j] != "" && altloc[i] != altloc[j] {
				continue
			}
			d := r3.Norm(r3.Sub(F.Vec(j), vi))
			if d > table.MinDist && d <= radii[i]+radii[j]+table.Tolerance {
				G.Bonds = append(G.Bonds, Bond{I: i, J: j, Dist: d})
			}
		}
	}
	sortBonds(G.Bonds)
	if o.prune {
		G.Bonds = prune(G.Bonds, elements, table)
	}
	return G, nil
}

func sortBonds(b []Bond) {
	sort.Slice(b, func(i, j int) bool {
		if b[i].I != b[j].I {
			return b[i].I < b[j].I
		}
		return b[i].J < b[j].J
	})
}

//prune removes, for each atom with more bonds than allowed by the table,
//the longest bonds until the atom has the maximum number allowed.
//Atoms are processed in order. The result keeps the order of bonds.
func prune(bonds []Bond, elements []string, table *Table) []Bond {
	perAtom := make(map[int][]int)
	for k, b := range bonds {
		perAtom[b.I] = append(perAtom[b.I], k)
		perAtom[b.J] = append(perAtom[b.J], k)
	}
	removed := make([]bool, len(bonds))
	for i := range elements {
		max := table.MaxBonds[elements[i]]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		alive := make([]int, 0, len(perAtom[i]))
		for _, k := range perAtom[i] {
			if !removed[k] {
				alive = append(alive, k)
			}
		}
		if len(alive) <= max {
			continue
		}
		sort.SliceStable(alive, func(x, y int) bool { return bonds[alive[x]].Dist < bonds[alive[y]].Dist })
		for _, k := range alive[max:] {
			removed[k] = true
		}
	}
	ret := bonds[:0]
	for k, b := range bonds {
		if !removed[k] {
			ret = append(ret, b)
		}
	}
	return ret
}

func sortedKeys(m map[string]bool) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
