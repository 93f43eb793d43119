/*
 * atomset.go, part of chemsel.
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
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/rmera/chemsel/chemgraph"
)

//MaxSegnameLen is the width of the segname field, in characters (runes). If any
//segname is longer, the whole segname column is ignored.
const MaxSegnameLen = 4

//Attr identifies a per-atom attribute column.
type Attr int

const (
	AttrName Attr = iota
	AttrType
	AttrResname
	AttrChain
	AttrSegname
	AttrInsertion
	AttrAltloc
	AttrElement
	AttrResid
	AttrIndex
	AttrSerial
	AttrResidue
	AttrFragment
	AttrBeta
	AttrOccupancy
	numAttrs
)

var attrNames = [numAttrs]string{"name", "type", "resname", "chain", "segname", "insertion",
	"altloc", "element", "resid", "index", "serial", "residue", "fragment", "beta", "occupancy"}

func (a Attr) String() string {
	if a < 0 || a >= numAttrs {
		return fmt.Sprintf("Attr(%d)", int(a))
	}
	return attrNames[a]
}

//Kind is the type of the values of an attribute.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

//Kind returns the kind of values stored in the column of the attribute.
func (a Attr) Kind() Kind {
	switch {
	case a <= AttrElement:
		return KindString
	case a <= AttrFragment:
		return KindInt
	default:
		return KindFloat
	}
}

//Columns holds the per-atom data used to build an AtomSet.
//Any column can be nil, in which case it is filled with neutral
//values ("" or 0). Non-nil columns must have exactly one element per atom.
type Columns struct {
	Name      []string
	Type      []string
	Resname   []string
	Resid     []int
	Chain     []string
	Segname   []string
	Insertion []string
	Altloc    []string
	Beta      []float64
	Occupancy []float64
	Element   []string
	Bonds     [][2]int //explicit bonds, if known. Used for fragments and withinbonds.
}

//AtomSet is a read-only columnar store of per-atom attributes. It is never modified after
//NewAtomSet returns, so it can be shared among goroutines. The AtomSet keeps references to the
//slices in the Columns given, so they should not be modified afterwards.
type AtomSet struct {
	n        int
	strs     [AttrElement + 1][]string
	ints     [AttrFragment - AttrResid + 1][]int
	floats   [AttrOccupancy - AttrBeta + 1][]float64
	bonds    [][2]int
	topology *chemgraph.Topology
	warnings []Warning
}

//NewAtomSet validates the columns given and builds an AtomSet with n atoms.
//Non-fatal problems (too long segnames, elements guessed) are recorded as
//Warnings, available through the Warnings method.
func NewAtomSet(n int, cols Columns) (*AtomSet, error) {
	if n < 0 {
		return nil, NewDataError("NewAtomSet", "negative number of atoms: %d", n)
	}
	A := &AtomSet{n: n}
	strcols := []struct {
		attr Attr
		col  []string
	}{
		{AttrName, cols.Name}, {AttrType, cols.Type}, {AttrResname, cols.Resname}, {AttrChain, cols.Chain},
		{AttrSegname, cols.Segname}, {AttrInsertion, cols.Insertion}, {AttrAltloc, cols.Altloc}, {AttrElement, cols.Element},
	}
	for _, v := range strcols {
		c, err := stringColumn(v.attr, v.col, n)
		if err != nil {
			return nil, errDecorate(err, "NewAtomSet")
		}
		A.strs[v.attr] = c
	}
	resid, err := intColumn(AttrResid, cols.Resid, n)
	if err != nil {
		return nil, errDecorate(err, "NewAtomSet")
	}
	A.ints[AttrResid-AttrResid] = resid
	for _, v := range []struct {
		attr Attr
		col  []float64
	}{{AttrBeta, cols.Beta}, {AttrOccupancy, cols.Occupancy}} {
		c, err := floatColumn(v.attr, v.col, n)
		if err != nil {
			return nil, errDecorate(err, "NewAtomSet")
		}
		A.floats[v.attr-AttrBeta] = c
	}
	if A.bonds, err = cleanBonds(cols.Bonds, n); err != nil {
		return nil, errDecorate(err, "NewAtomSet")
	}
	A.checkSegnames()
	A.fillElements()
	A.fillDerived()
	return A, nil
}

func stringColumn(attr Attr, col []string, n int) ([]string, error) {
	if col == nil {
		return make([]string, n), nil
	}
	if len(col) != n {
		return nil, NewDataError("stringColumn", "'%s' not natoms in length: %d, expected %d", attr, len(col), n)
	}
	return col, nil
}

func intColumn(attr Attr, col []int, n int) ([]int, error) {
	if col == nil {
		return make([]int, n), nil
	}
	if len(col) != n {
		return nil, NewDataError("intColumn", "'%s' not natoms in length: %d, expected %d", attr, len(col), n)
	}
	return col, nil
}

func floatColumn(attr Attr, col []float64, n int) ([]float64, error) {
	if col == nil {
		return make([]float64, n), nil
	}
	if len(col) != n {
		return nil, NewDataError("floatColumn", "'%s' not natoms in length: %d, expected %d", attr, len(col), n)
	}
	return col, nil
}

//cleanBonds validates the bonds, puts the lower index first, and removes duplicates.
//The result is sorted.
func cleanBonds(bonds [][2]int, n int) ([][2]int, error) {
	if len(bonds) == 0 {
		return nil, nil
	}
	ret := make([][2]int, 0, len(bonds))
	for k, b := range bonds {
		if b[0] < 0 || b[1] < 0 || b[0] >= n || b[1] >= n {
			return nil, NewDataError("cleanBonds", "bond %d (%d-%d) out of range for %d atoms", k, b[0], b[1], n)
		}
		if b[0] == b[1] {
			return nil, NewDataError("cleanBonds", "bond %d bonds atom %d to itself", k, b[0])
		}
		if b[0] > b[1] {
			b[0], b[1] = b[1], b[0]
		}
		ret = append(ret, b)
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i][0] != ret[j][0] {
			return ret[i][0] < ret[j][0]
		}
		return ret[i][1] < ret[j][1]
	})
	uniq := ret[:1]
	for _, b := range ret[1:] {
		if b != uniq[len(uniq)-1] {
			uniq = append(uniq, b)
		}
	}
	return uniq, nil
}

//checkSegnames blanks the segname column if any of them is longer than MaxSegnameLen.
func (A *AtomSet) checkSegnames() {
	seg := A.strs[AttrSegname]
	for i, s := range seg {
		if utf8.RuneCountInString(s) > MaxSegnameLen {
			A.warnings = append(A.warnings, Warning{WarnSegnameIgnored,
				fmt.Sprintf("more than %d characters were used for segids (atom %d: %q); segids will be ignored for the atom selection", MaxSegnameLen, i, s)})
			A.strs[AttrSegname] = make([]string, A.n)
			return
		}
	}
}

//fillElements normalizes the element symbols, and guesses the missing ones from the atom names.
//The column is copied before any change.
func (A *AtomSet) fillElements() {
	orig := A.strs[AttrElement]
	elem := make([]string, A.n)
	var guessed, unknown int
	firstunknown := -1
	for i, e := range orig {
		elem[i] = NormalizeSymbol(e)
		if elem[i] != "" {
			continue
		}
		s, ok := SymbolFromName(A.strs[AttrName][i], A.strs[AttrResname][i])
		if !ok {
			unknown++
			if firstunknown < 0 {
				firstunknown = i
			}
			continue
		}
		elem[i] = s
		guessed++
	}
	A.strs[AttrElement] = elem
	if guessed > 0 {
		A.warnings = append(A.warnings, Warning{WarnElementGuessed, fmt.Sprintf("element guessed from the atom name for %d atoms", guessed)})
	}
	if unknown > 0 {
		A.warnings = append(A.warnings, Warning{WarnElementUnknown,
			fmt.Sprintf("couldn't determine the element of %d atoms (first: %d, name %q)", unknown, firstunknown, A.strs[AttrName][firstunknown])})
	}
}

//fillDerived computes the index, serial, residue and fragment columns.
func (A *AtomSet) fillDerived() {
	index := make([]int, A.n)
	serial := make([]int, A.n)
	residue := make([]int, A.n)
	resid := A.ints[AttrResid-AttrResid]
	ins := A.strs[AttrInsertion]
	chain := A.strs[AttrChain]
	seg := A.strs[AttrSegname]
	for i := 0; i < A.n; i++ {
		index[i] = i
		serial[i] = i + 1
		if i == 0 {
			continue
		}
		residue[i] = residue[i-1]
		if resid[i] != resid[i-1] || ins[i] != ins[i-1] || chain[i] != chain[i-1] || seg[i] != seg[i-1] {
			residue[i]++
		}
	}
	A.ints[AttrIndex-AttrResid] = index
	A.ints[AttrSerial-AttrResid] = serial
	A.ints[AttrResidue-AttrResid] = residue
	A.topology = chemgraph.New(A.n, A.bonds)
	A.ints[AttrFragment-AttrResid] = A.topology.Fragments()
}

//Len returns the number of atoms in the set.
func (A *AtomSet) Len() int {
	return A.n
}

//Warnings returns the non-fatal problems found when building the set.
func (A *AtomSet) Warnings() []Warning {
	return A.warnings
}

//Strings returns the column for a string attribute. It panics if attr is not of KindString.
//The returned slice must not be modified.
func (A *AtomSet) Strings(attr Attr) []string {
	if attr.Kind() != KindString || attr < 0 {
		panic(ErrWrongKind)
	}
	return A.strs[attr]
}

//Ints returns the column for an integer attribute. It panics if attr is not of KindInt.
//The returned slice must not be modified.
func (A *AtomSet) Ints(attr Attr) []int {
	if attr.Kind() != KindInt {
		panic(ErrWrongKind)
	}
	return A.ints[attr-AttrResid]
}

//Floats returns the column for a float attribute. It panics if attr is not of KindFloat.
//The returned slice must not be modified.
func (A *AtomSet) Floats(attr Attr) []float64 {
	if attr.Kind() != KindFloat || attr >= numAttrs {
		panic(ErrWrongKind)
	}
	return A.floats[attr-AttrBeta]
}

//Bonds returns the explicit bonds of the set, with the lower index first, sorted
//and without duplicates. It returns nil if no bonds were given.
func (A *AtomSet) Bonds() [][2]int {
	return A.bonds
}

//Topology returns the bond graph built from the explicit bonds.
func (A *AtomSet) Topology() *chemgraph.Topology {
	return A.topology
}

//CheckFrame returns a DataError if the frame F can't be used with the atoms in A.
func (A *AtomSet) CheckFrame(F *Frame) error {
	if F == nil {
		return NewDataError("CheckFrame", "no coordinates available")
	}
	if F.Len() != A.n {
		return NewDataError("CheckFrame", "frame has %d atoms, the atom set has %d", F.Len(), A.n)
	}
	return nil
}

//PanicMsg is a message used for panics, for programming errors.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrWrongKind       = PanicMsg("atoms: column requested with the wrong kind")
	ErrIndexOutOfRange = PanicMsg("atoms: index out of range")
)
